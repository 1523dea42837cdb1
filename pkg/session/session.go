// Package session holds the viewer's state as a single immutable value that
// only changes through named actions.
//
// The phase machine is:
//
//	Unauthenticated --FetchStarted--> Loading
//	Loading --FetchSucceeded--> Authenticated
//	Loading --FetchFailed--> Unauthenticated (with error)
//	Authenticated --Logout--> Unauthenticated
//
// Every FetchStarted and Logout bumps a generation counter. Fetch results
// carry the generation they were started under and are ignored once it is
// stale, so a superseded request can never overwrite a newer one.
package session

import (
	"github.com/germanamz/modelcards/pkg/catalog"
	"github.com/germanamz/modelcards/pkg/detail"
	"github.com/germanamz/modelcards/pkg/view"
)

// Phase is the authentication phase of a session.
type Phase int

// Session phases.
const (
	Unauthenticated Phase = iota
	Loading
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Unauthenticated:
		return "unauthenticated"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Messages shown to the user.
const (
	MissingKeyMessage  = "Please enter an API key"
	fetchFailurePrefix = "Failed to fetch models: "
)

// State is one snapshot of the session. Treat it as a value: Reduce never
// modifies its argument and slices held by a State are never written.
type State struct {
	Phase    Phase
	Key      string
	Catalog  []catalog.Entry
	Query    view.Query
	Selected *catalog.Entry // non-nil while the detail overlay is open
	Err      string
	Gen      uint64

	defaults view.Query
}

// New returns an unauthenticated session whose query starts at defaults.
func New(defaults view.Query) State {
	return State{Query: defaults, defaults: defaults}
}

// Visible is the list to render: the catalog filtered and sorted by Query.
func (s State) Visible(b view.Builder) []catalog.Entry {
	return b.Build(s.Catalog, s.Query)
}

// Detail presents the selected entry.
func (s State) Detail() detail.Detail {
	return detail.Present(s.Selected)
}

// Reduce applies a to s and returns the next state.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case KeyChanged:
		if s.Phase == Unauthenticated {
			s.Key = a.Key
		}
	case FetchStarted:
		return s.startFetch()
	case FetchSucceeded:
		if s.Phase != Loading || a.Gen != s.Gen {
			return s
		}
		s.Phase = Authenticated
		s.Catalog = a.Entries
		s.Err = ""
	case FetchFailed:
		if s.Phase != Loading || a.Gen != s.Gen {
			return s
		}
		s.Phase = Unauthenticated
		s.Catalog = nil
		s.Selected = nil
		s.Err = fetchFailurePrefix + errorText(a.Err)
	case SearchChanged:
		s.Query.Search = a.Term
	case SearchCleared:
		s.Query.Search = ""
	case CapabilityChanged:
		s.Query.Capability = a.Capability
	case SortChanged:
		s.Query.Sort = a.Sort
	case EntrySelected:
		e := a.Entry
		s.Selected = &e
	case DetailClosed:
		s.Selected = nil
	case Logout:
		next := New(s.defaults)
		next.Gen = s.Gen + 1
		return next
	}

	return s
}

func (s State) startFetch() State {
	if s.Phase == Authenticated {
		return s
	}

	if s.Key == "" {
		s.Err = MissingKeyMessage
		return s
	}

	s.Phase = Loading
	s.Err = ""
	s.Gen++

	return s
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
