// Command modelcards browses the model catalog of a LiteLLM-style gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/app"
	"github.com/germanamz/modelcards/cmd/modelcards/internal/detailview"
	"github.com/germanamz/modelcards/pkg/session"
)

var version = "dev"

// subcommands run instead of the viewer when named as the first argument.
var subcommands = map[string]func(args []string) error{
	"init": runInit,
	"list": func(args []string) error { return runList(args, os.Stdout) },
	"mcp":  runMCP,
	"version": func([]string) error {
		fmt.Println(version)
		return nil
	},
}

func main() {
	if len(os.Args) > 1 {
		if cmd, ok := subcommands[os.Args[1]]; ok {
			if err := cmd(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: modelcards [flags]\n       modelcards <command> [flags]\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n"+
			"  init     Write a modelcards.yaml interactively\n"+
			"  list     Print the catalog without the TUI\n"+
			"  mcp      Serve the catalog as MCP tools over stdio\n"+
			"  version  Print the version\n")
	}

	common := bindCommonFlags(flag.CommandLine)
	autoLoad := flag.Bool("auto", false, "load the catalog on start when a key is available")
	flag.Parse()

	if err := run(*common, *autoLoad); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run starts the interactive viewer.
func run(flags commonFlags, autoLoad bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, err := prepare(flags)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	s.log.Info("starting", "version", version, "base_url", s.cfg.Gateway.BaseURL)

	// Detected before the program owns stdin; see detailview.Markdown.
	md := detailview.NewMarkdown(lipgloss.HasDarkBackground())

	model := app.New(ctx, app.Options{
		Defaults: s.query,
		Builder:  s.builder,
		Fetcher:  func(key string) session.Fetcher { return s.client.WithKey(key) },
		Renderer: md.Renderer,
		Logger:   s.log,
		Key:      s.key,
		AutoLoad: autoLoad,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}
