// Package view derives the ordered list of catalog entries to display from
// the full catalog and the user's query. The catalog is never modified.
package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/germanamz/modelcards/pkg/catalog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Capability selects entries by a fixed boolean-flag predicate.
type Capability string

// Supported capability filters.
const (
	CapabilityAll       Capability = "all"
	CapabilityTools     Capability = "tools"
	CapabilityVision    Capability = "vision"
	CapabilityAudio     Capability = "audio"
	CapabilityReasoning Capability = "reasoning"
)

// Sort selects the display order.
type Sort string

// Supported sort keys.
const (
	SortNameAsc  Sort = "name-asc"
	SortNameDesc Sort = "name-desc"
	SortCostAsc  Sort = "cost-asc"
	SortCostDesc Sort = "cost-desc"
)

// Query is the user-controlled part of the view state.
type Query struct {
	Search     string
	Capability Capability
	Sort       Sort
}

// DefaultQuery matches everything and orders by name.
func DefaultQuery() Query {
	return Query{Capability: CapabilityAll, Sort: SortNameAsc}
}

// Builder computes views. Name ordering follows the collation rules of its
// locale.
type Builder struct {
	locale language.Tag
}

// NewBuilder returns a Builder that collates names for locale.
func NewBuilder(locale language.Tag) Builder {
	return Builder{locale: locale}
}

// Build applies search, then the capability filter, then the sort, and
// returns a new slice. An unknown capability matches nothing; an unknown sort
// keeps the filtered order.
func (b Builder) Build(entries []catalog.Entry, q Query) []catalog.Entry {
	out := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if MatchesSearch(e, q.Search) && MatchesCapability(e, q.Capability) {
			out = append(out, e)
		}
	}

	b.sort(out, q.Sort)

	return out
}

func (b Builder) sort(entries []catalog.Entry, s Sort) {
	switch s {
	case SortNameAsc, SortNameDesc:
		// Collators keep internal buffers, so each sort gets its own.
		col := collate.New(b.locale)
		sign := 1
		if s == SortNameDesc {
			sign = -1
		}
		slices.SortStableFunc(entries, func(x, y catalog.Entry) int {
			return sign * col.CompareString(x.Name, y.Name)
		})
	case SortCostAsc:
		slices.SortStableFunc(entries, func(x, y catalog.Entry) int {
			return cmp.Compare(x.TotalCost(), y.TotalCost())
		})
	case SortCostDesc:
		slices.SortStableFunc(entries, func(x, y catalog.Entry) int {
			return cmp.Compare(y.TotalCost(), x.TotalCost())
		})
	}
}

// MatchesSearch reports whether term is a case-insensitive substring of the
// entry's name or key. An empty term matches every entry.
func MatchesSearch(e catalog.Entry, term string) bool {
	if term == "" {
		return true
	}

	term = strings.ToLower(term)

	return strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(e.Key), term)
}

// MatchesCapability evaluates the filter predicate for c.
func MatchesCapability(e catalog.Entry, c Capability) bool {
	switch c {
	case CapabilityAll:
		return true
	case CapabilityTools:
		return e.HasToolUsage()
	case CapabilityVision:
		return e.Vision
	case CapabilityAudio:
		return e.HasAudio()
	case CapabilityReasoning:
		return e.Reasoning
	default:
		return false
	}
}
