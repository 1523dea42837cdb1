package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/germanamz/modelcards/pkg/catalog"
	"github.com/germanamz/modelcards/pkg/view"
)

const noModels = "No models found matching your criteria"

func runList(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: modelcards list [flags]\n\nPrint one summary line per model.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	common := bindCommonFlags(fs)
	search := fs.String("search", "", "case-insensitive substring of the model name or key")
	capability := fs.String("capability", "", "capability filter: all, tools, vision, audio, reasoning (default from config)")
	sortKey := fs.String("sort", "", "sort: name-asc, name-desc, cost-asc, cost-desc (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := prepare(*common)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	q, err := overrideQuery(s.query, *search, *capability, *sortKey)
	if err != nil {
		return err
	}

	entries, err := loadEntries(ctx, s)
	if err != nil {
		return err
	}

	return writeSummaries(out, s.builder.Build(entries, q))
}

// overrideQuery applies the non-empty flag values on top of base.
func overrideQuery(base view.Query, search, capability, sortKey string) (view.Query, error) {
	q := base
	q.Search = search

	if capability != "" {
		c, err := view.ParseCapability(capability)
		if err != nil {
			return view.Query{}, err
		}
		q.Capability = c
	}

	if sortKey != "" {
		srt, err := view.ParseSort(sortKey)
		if err != nil {
			return view.Query{}, err
		}
		q.Sort = srt
	}

	return q, nil
}

// loadEntries fetches and ingests the catalog once.
func loadEntries(ctx context.Context, s *setup) ([]catalog.Entry, error) {
	raws, err := s.client.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", err)
	}

	entries := catalog.Ingest(raws)
	s.log.Info("catalog loaded", "raw", len(raws), "models", len(entries))

	return entries, nil
}

func writeSummaries(out io.Writer, entries []catalog.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, noModels)
		return err
	}

	for _, e := range entries {
		if _, err := fmt.Fprintln(out, e.Summary()); err != nil {
			return err
		}
	}

	return nil
}
