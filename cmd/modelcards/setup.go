package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/germanamz/modelcards/pkg/config"
	"github.com/germanamz/modelcards/pkg/gateway"
	"github.com/germanamz/modelcards/pkg/view"
	"github.com/joho/godotenv"
)

// keyEnv pre-fills the API key when set.
const keyEnv = "MODELCARDS_API_KEY"

// commonFlags are accepted by the viewer and by every subcommand that talks
// to the gateway.
type commonFlags struct {
	ConfigPath string
	EnvFile    string
	Key        string
}

func bindCommonFlags(fs *flag.FlagSet) *commonFlags {
	f := &commonFlags{}
	fs.StringVar(&f.ConfigPath, "config", "", "path to configuration file (default: "+config.DefaultPath+" if present)")
	fs.StringVar(&f.EnvFile, "env", ".env", "path to .env file (ignored if missing)")
	fs.StringVar(&f.Key, "key", "", "API key (default: $"+keyEnv+" or gateway.api_key)")
	return f
}

// setup is everything resolved from flags, environment and config.
type setup struct {
	cfg     config.Config
	log     *slog.Logger
	query   view.Query
	builder view.Builder
	client  *gateway.Client
	key     string

	logFile *os.File
}

func prepare(flags commonFlags) (*setup, error) {
	if err := loadDotEnv(flags.EnvFile); err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validate has already checked these.
	query, _ := cfg.View.Query()
	tag, _ := cfg.View.Tag()

	log, logFile, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	key := resolveKey(flags.Key, cfg)

	client, err := cfg.Gateway.Client(key, log.With("component", "gateway"))
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}

	return &setup{
		cfg:     cfg,
		log:     log,
		query:   query,
		builder: view.NewBuilder(tag),
		client:  client,
		key:     key,
		logFile: logFile,
	}, nil
}

func (s *setup) Close() error {
	if s.logFile == nil {
		return nil
	}
	return s.logFile.Close()
}

// resolveKey picks the key: explicit flag, then the environment, then the
// config file.
func resolveKey(flagKey string, cfg config.Config) string {
	if flagKey != "" {
		return flagKey
	}
	if k := os.Getenv(keyEnv); k != "" {
		return k
	}
	return cfg.Gateway.APIKey
}

// newLogger opens the configured log file. Without one, logs are discarded
// and the returned file is nil.
func newLogger(lc config.LogConfig) (*slog.Logger, *os.File, error) {
	level, err := lc.SlogLevel()
	if err != nil {
		return nil, nil, err
	}

	if lc.File == "" {
		return slog.New(slog.DiscardHandler), nil, nil
	}

	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path from configuration
	if err != nil {
		return nil, nil, fmt.Errorf("log: open %s: %w", lc.File, err)
	}

	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

// loadDotEnv loads environment variables from path. If the file does not exist
// it is silently ignored so that .env files remain optional.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
