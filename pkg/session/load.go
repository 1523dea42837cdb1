package session

import (
	"context"
	"encoding/json"

	"github.com/germanamz/modelcards/pkg/catalog"
)

// Fetcher performs one catalog read. *gateway.Client implements it.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]json.RawMessage, error)
}

// Load fetches the catalog once and ingests it. The returned action is ready
// to be passed to Reduce.
func Load(ctx context.Context, f Fetcher, gen uint64) Action {
	raws, err := f.FetchCatalog(ctx)
	if err != nil {
		return FetchFailed{Gen: gen, Err: err}
	}

	return FetchSucceeded{Gen: gen, Entries: catalog.Ingest(raws)}
}
