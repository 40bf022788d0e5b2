package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/stellarlinkco/mcq-eval/internal/config"
	"github.com/stellarlinkco/mcq-eval/internal/oracle"
	"github.com/stellarlinkco/mcq-eval/internal/store"
)

type cliState struct {
	configPath string
}

var (
	osExit                 = os.Exit
	stderrWriter io.Writer = os.Stderr

	providerFromConfig = oracle.FromConfig
)

func main() {
	_ = godotenv.Load()

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderrWriter, err)
		osExit(1)
	}
}

func newRootCmd() *cobra.Command {
	st := &cliState{configPath: config.DefaultPath}

	root := &cobra.Command{
		Use:           "mcq",
		Short:         "Evaluate a language model on stored multiple-choice questions",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", st.configPath, "path to config file")

	root.AddCommand(newSeedCmd(st))
	root.AddCommand(newRunCmd(st))
	root.AddCommand(newResultsCmd(st))
	root.AddCommand(newResetCmd(st))
	return root
}

// loadConfig falls back to built-in defaults when the default config
// file is absent; an explicitly named file must exist.
func (st *cliState) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(st.configPath)
	if err == nil {
		return cfg, nil
	}
	if st.configPath == config.DefaultPath && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

func (st *cliState) openStore() (*config.Config, store.Store, error) {
	cfg, err := st.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}
