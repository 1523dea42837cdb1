package main

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/modelcards/pkg/config"
	"github.com/germanamz/modelcards/pkg/view"
	"gopkg.in/yaml.v3"
)

// initAnswers are the values collected by the init form.
type initAnswers struct {
	BaseURL    string
	KeyEnv     string
	Capability string
	Sort       string
	Locale     string
	LogFile    string
}

func defaultAnswers() initAnswers {
	d := config.Default()
	return initAnswers{
		BaseURL:    d.Gateway.BaseURL,
		KeyEnv:     keyEnv,
		Capability: d.View.Capability,
		Sort:       d.View.Sort,
		Locale:     d.View.Locale,
	}
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: modelcards init [flags]\n\nWrite a configuration file interactively.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	path := fs.String("config", config.DefaultPath, "path of the configuration file to write")
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(*path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", *path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	a := defaultAnswers()
	if err := runInitForm(&a); err != nil {
		return err
	}

	data, err := marshalInitConfig(a)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*path, data, 0o600); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", *path)

	return nil
}

func runInitForm(a *initAnswers) error {
	capabilities := make([]huh.Option[string], 0, len(view.Capabilities()))
	for _, o := range view.Capabilities() {
		capabilities = append(capabilities, huh.NewOption(o.Label, string(o.Value)))
	}

	sorts := make([]huh.Option[string], 0, len(view.Sorts()))
	for _, o := range view.Sorts() {
		sorts = append(sorts, huh.NewOption(o.Label, string(o.Value)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Gateway base URL").Value(&a.BaseURL).Validate(validateBaseURL),
			huh.NewInput().Title("API key env var (empty = enter the key in the viewer)").Value(&a.KeyEnv),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default capability filter").Options(capabilities...).Value(&a.Capability),
			huh.NewSelect[string]().Title("Default sort").Options(sorts...).Value(&a.Sort),
			huh.NewInput().Title("Locale for name sorting (BCP 47)").Value(&a.Locale),
			huh.NewInput().Title("Log file (empty = no logs)").Value(&a.LogFile),
		),
	).Run()
}

func validateBaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL")
	}

	return nil
}

// marshalInitConfig renders the answers as a config file. The key is stored
// as a ${VAR} reference so the file holds no secret.
func marshalInitConfig(a initAnswers) ([]byte, error) {
	cfg := config.Default()
	cfg.Gateway.BaseURL = a.BaseURL
	cfg.View.Capability = a.Capability
	cfg.View.Sort = a.Sort
	cfg.View.Locale = a.Locale
	cfg.Log.File = a.LogFile

	if a.KeyEnv != "" {
		cfg.Gateway.APIKey = "${" + a.KeyEnv + "}"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return yaml.Marshal(cfg)
}
