package session

import (
	"github.com/germanamz/modelcards/pkg/catalog"
	"github.com/germanamz/modelcards/pkg/view"
)

// Action is a named state transition request.
type Action interface {
	action()
}

// KeyChanged updates the credential while unauthenticated.
type KeyChanged struct{ Key string }

// FetchStarted begins loading the catalog with the current key.
type FetchStarted struct{}

// FetchSucceeded delivers a deduplicated catalog for generation Gen.
type FetchSucceeded struct {
	Gen     uint64
	Entries []catalog.Entry
}

// FetchFailed reports a fetch error for generation Gen.
type FetchFailed struct {
	Gen uint64
	Err error
}

// SearchChanged sets the search text.
type SearchChanged struct{ Term string }

// SearchCleared empties the search text.
type SearchCleared struct{}

// CapabilityChanged sets the capability filter.
type CapabilityChanged struct{ Capability view.Capability }

// SortChanged sets the sort key.
type SortChanged struct{ Sort view.Sort }

// EntrySelected opens the detail overlay for Entry.
type EntrySelected struct{ Entry catalog.Entry }

// DetailClosed closes the detail overlay.
type DetailClosed struct{}

// Logout clears the key, the catalog and all view state.
type Logout struct{}

func (KeyChanged) action()        {}
func (FetchStarted) action()      {}
func (FetchSucceeded) action()    {}
func (FetchFailed) action()       {}
func (SearchChanged) action()     {}
func (SearchCleared) action()     {}
func (CapabilityChanged) action() {}
func (SortChanged) action()       {}
func (EntrySelected) action()     {}
func (DetailClosed) action()      {}
func (Logout) action()            {}
