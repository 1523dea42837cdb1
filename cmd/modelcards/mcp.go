package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/germanamz/modelcards/pkg/mcpserver"
)

// runMCP fetches the catalog once and serves it over stdio until the client
// disconnects.
func runMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: modelcards mcp [flags]\n\nServe list_models and get_model over stdio.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	common := bindCommonFlags(fs)
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

	entries, err := loadEntries(ctx, s)
	if err != nil {
		return err
	}

	srv := mcpserver.New("modelcards", version, mcpserver.CatalogTools(entries, s.builder, s.query)...)

	s.log.Info("serving mcp", "models", len(entries))

	return srv.ServeStdio(ctx)
}
