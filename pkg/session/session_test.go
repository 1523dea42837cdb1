package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/germanamz/modelcards/pkg/catalog"
	"github.com/germanamz/modelcards/pkg/gateway"
	"github.com/germanamz/modelcards/pkg/session"
	"github.com/germanamz/modelcards/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fakeFetcher struct {
	raws  []json.RawMessage
	err   error
	calls int
}

func (f *fakeFetcher) FetchCatalog(context.Context) ([]json.RawMessage, error) {
	f.calls++
	return f.raws, f.err
}

func reduce(s session.State, actions ...session.Action) session.State {
	for _, a := range actions {
		s = session.Reduce(s, a)
	}
	return s
}

func loading(t *testing.T) session.State {
	t.Helper()

	s := reduce(session.New(view.DefaultQuery()),
		session.KeyChanged{Key: "sk"},
		session.FetchStarted{},
	)
	require.Equal(t, session.Loading, s.Phase)

	return s
}

func TestNew(t *testing.T) {
	s := session.New(view.DefaultQuery())

	assert.Equal(t, session.Unauthenticated, s.Phase)
	assert.Equal(t, view.DefaultQuery(), s.Query)
	assert.Empty(t, s.Key)
	assert.Nil(t, s.Catalog)
	assert.False(t, s.Detail().Open)
}

func TestFetchStarted_EmptyKey(t *testing.T) {
	s := session.Reduce(session.New(view.DefaultQuery()), session.FetchStarted{})

	assert.Equal(t, session.Unauthenticated, s.Phase)
	assert.Equal(t, session.MissingKeyMessage, s.Err)
	assert.Zero(t, s.Gen)
}

func TestFetchSucceeded(t *testing.T) {
	s := loading(t)
	entries := []catalog.Entry{{ID: "1", Name: "A"}}

	s = session.Reduce(s, session.FetchSucceeded{Gen: s.Gen, Entries: entries})

	assert.Equal(t, session.Authenticated, s.Phase)
	assert.Equal(t, entries, s.Catalog)
	assert.Empty(t, s.Err)
	assert.Equal(t, "sk", s.Key)
}

func TestFetchFailed(t *testing.T) {
	s := loading(t)

	s = session.Reduce(s, session.FetchFailed{Gen: s.Gen, Err: &gateway.RequestError{StatusCode: 401}})

	assert.Equal(t, session.Unauthenticated, s.Phase)
	assert.Nil(t, s.Catalog)
	assert.Equal(t, "Failed to fetch models: HTTP error! status: 401", s.Err)
}

func TestFetchFailed_NilError(t *testing.T) {
	s := loading(t)

	s = session.Reduce(s, session.FetchFailed{Gen: s.Gen})

	assert.Equal(t, "Failed to fetch models: unknown error", s.Err)
}

func TestStaleResultsAreIgnored(t *testing.T) {
	s := loading(t)
	first := s.Gen

	// The user resubmits before the first request resolves.
	s = session.Reduce(s, session.FetchStarted{})
	require.Equal(t, first+1, s.Gen)

	s = session.Reduce(s, session.FetchFailed{Gen: first, Err: errors.New("late failure")})
	assert.Equal(t, session.Loading, s.Phase)
	assert.Empty(t, s.Err)

	s = session.Reduce(s, session.FetchSucceeded{Gen: s.Gen, Entries: []catalog.Entry{{ID: "2"}}})
	assert.Equal(t, session.Authenticated, s.Phase)

	s = session.Reduce(s, session.FetchSucceeded{Gen: first, Entries: []catalog.Entry{{ID: "1"}}})
	assert.Equal(t, "2", s.Catalog[0].ID)
}

func TestResultAfterLogoutIsIgnored(t *testing.T) {
	s := loading(t)
	gen := s.Gen

	s = session.Reduce(s, session.Logout{})
	s = session.Reduce(s, session.FetchSucceeded{Gen: gen, Entries: []catalog.Entry{{ID: "1"}}})

	assert.Equal(t, session.Unauthenticated, s.Phase)
	assert.Nil(t, s.Catalog)
}

func TestFetchStarted_IgnoredWhenAuthenticated(t *testing.T) {
	s := loading(t)
	s = session.Reduce(s, session.FetchSucceeded{Gen: s.Gen})
	gen := s.Gen

	s = session.Reduce(s, session.FetchStarted{})

	assert.Equal(t, session.Authenticated, s.Phase)
	assert.Equal(t, gen, s.Gen)
}

func TestKeyChanged_OnlyWhileUnauthenticated(t *testing.T) {
	s := loading(t)

	s = session.Reduce(s, session.KeyChanged{Key: "other"})

	assert.Equal(t, "sk", s.Key)
}

func TestLogoutClearsEverything(t *testing.T) {
	defaults := view.Query{Capability: view.CapabilityAll, Sort: view.SortCostAsc}
	s := reduce(session.New(defaults),
		session.KeyChanged{Key: "sk"},
		session.FetchStarted{},
	)
	s = reduce(s,
		session.FetchSucceeded{Gen: s.Gen, Entries: []catalog.Entry{{ID: "1"}}},
		session.SearchChanged{Term: "gpt"},
		session.CapabilityChanged{Capability: view.CapabilityVision},
		session.EntrySelected{Entry: catalog.Entry{ID: "1"}},
		session.Logout{},
	)

	assert.Equal(t, session.Unauthenticated, s.Phase)
	assert.Empty(t, s.Key)
	assert.Nil(t, s.Catalog)
	assert.Equal(t, defaults, s.Query)
	assert.Nil(t, s.Selected)
	assert.Empty(t, s.Err)
}

func TestQueryActions(t *testing.T) {
	s := reduce(session.New(view.DefaultQuery()),
		session.SearchChanged{Term: "claude"},
		session.CapabilityChanged{Capability: view.CapabilityReasoning},
		session.SortChanged{Sort: view.SortCostDesc},
	)

	assert.Equal(t, view.Query{Search: "claude", Capability: view.CapabilityReasoning, Sort: view.SortCostDesc}, s.Query)

	s = session.Reduce(s, session.SearchCleared{})
	assert.Empty(t, s.Query.Search)
}

func TestDetailOpenClose(t *testing.T) {
	e := catalog.Normalize(json.RawMessage(`{"model_name":"A","model_info":{"id":"1"}}`))

	s := session.Reduce(session.New(view.DefaultQuery()), session.EntrySelected{Entry: e})
	d := s.Detail()
	assert.True(t, d.Open)
	assert.Equal(t, "A", d.Title)

	s = session.Reduce(s, session.DetailClosed{})
	assert.False(t, s.Detail().Open)
}

func TestReduceDoesNotModifyInput(t *testing.T) {
	s := loading(t)
	before := s

	_ = reduce(s,
		session.FetchSucceeded{Gen: s.Gen, Entries: []catalog.Entry{{ID: "1"}}},
		session.SearchChanged{Term: "x"},
	)

	assert.Equal(t, before, s)
}

func TestLoad(t *testing.T) {
	f := &fakeFetcher{raws: []json.RawMessage{
		json.RawMessage(`{"model_name":"A","model_info":{"id":"1"}}`),
		json.RawMessage(`{"model_name":"B","model_info":{"id":"1"}}`),
	}}

	a := session.Load(context.Background(), f, 3)

	ok, isOK := a.(session.FetchSucceeded)
	require.True(t, isOK)
	assert.Equal(t, uint64(3), ok.Gen)
	require.Len(t, ok.Entries, 1)
	assert.Equal(t, "A", ok.Entries[0].Name)
	assert.Equal(t, 1, f.calls)
}

func TestLoad_Error(t *testing.T) {
	f := &fakeFetcher{err: &gateway.FormatError{Reason: "x"}}

	a := session.Load(context.Background(), f, 1)

	failed, ok := a.(session.FetchFailed)
	require.True(t, ok)
	var fmtErr *gateway.FormatError
	assert.ErrorAs(t, failed.Err, &fmtErr)
}

func TestEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-e2e", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"model_name":"A","model_info":{"id":"1","supports_vision":true}},{"model_name":"B","model_info":{"id":"1"}}]}`))
	}))
	t.Cleanup(srv.Close)

	b := view.NewBuilder(language.English)
	s := reduce(session.New(view.DefaultQuery()),
		session.KeyChanged{Key: "sk-e2e"},
		session.FetchStarted{},
	)

	client := gateway.New(srv.URL, s.Key, srv.Client())
	client.CatalogPath = "/"
	s = session.Reduce(s, session.Load(context.Background(), client, s.Gen))

	require.Equal(t, session.Authenticated, s.Phase)
	require.Len(t, s.Catalog, 1)
	assert.Equal(t, "A", s.Catalog[0].Name)

	searched := session.Reduce(s, session.SearchChanged{Term: "b"})
	assert.Empty(t, searched.Visible(b))

	vision := session.Reduce(s, session.CapabilityChanged{Capability: view.CapabilityVision})
	visible := vision.Visible(b)
	require.Len(t, visible, 1)
	assert.Equal(t, "A", visible[0].Name)
}
