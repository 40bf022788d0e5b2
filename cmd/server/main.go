package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/stellarlinkco/mcq-eval/api"
	"github.com/stellarlinkco/mcq-eval/internal/config"
	"github.com/stellarlinkco/mcq-eval/internal/eval"
	"github.com/stellarlinkco/mcq-eval/internal/oracle"
	"github.com/stellarlinkco/mcq-eval/internal/store"
	"github.com/stellarlinkco/mcq-eval/internal/ws"
)

var (
	osExit                 = os.Exit
	stderrWriter io.Writer = os.Stderr

	loadConfig         = config.Load
	openStore          = store.Open
	providerFromConfig = oracle.FromConfig
	newServer          = api.NewServer
	runServer          = (*api.Server).Run
)

func main() {
	osExit(runMain(os.Args[1:]))
}

func runMain(args []string) int {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(stderrWriter)

	var addr string
	var configPath string
	fs.StringVar(&addr, "addr", ":8080", "listen address")
	fs.StringVar(&configPath, "config", config.DefaultPath, "path to config file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	_ = godotenv.Load()

	cfg, err := loadConfigOrDefault(configPath)
	if err != nil {
		fmt.Fprintln(stderrWriter, err)
		return 1
	}

	st, err := openStore(cfg)
	if err != nil {
		fmt.Fprintln(stderrWriter, err)
		return 1
	}
	defer func() { _ = st.Close() }()

	provider, err := providerFromConfig(cfg)
	if err != nil {
		fmt.Fprintln(stderrWriter, err)
		return 1
	}

	hub := ws.NewHub()
	runner := &eval.Runner{
		Store:      st,
		Oracle:     oracle.NewClient(provider),
		Notifier:   hub,
		Domains:    cfg.Evaluation.Domains,
		SampleSize: cfg.Evaluation.SampleSize,
	}
	agg := &eval.Aggregator{
		Store:   st,
		Domains: cfg.Evaluation.Domains,
	}

	srv, err := newServer(cfg, st, runner, agg, hub)
	if err != nil {
		fmt.Fprintln(stderrWriter, err)
		return 1
	}
	if err := runServer(srv, addr); err != nil {
		fmt.Fprintln(stderrWriter, err)
		return 1
	}

	return 0
}

// loadConfigOrDefault falls back to built-in defaults when the default
// config file is absent; an explicitly named file must exist.
func loadConfigOrDefault(path string) (*config.Config, error) {
	cfg, err := loadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if path == config.DefaultPath && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}
