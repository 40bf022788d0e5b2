package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/stellarlinkco/mcq-eval/internal/eval"
	"github.com/stellarlinkco/mcq-eval/internal/oracle"
)

func newRunCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "run [domain]",
		Short: "Run the evaluation and print per-domain results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := st.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			provider, err := providerFromConfig(cfg)
			if err != nil {
				return err
			}

			runner := &eval.Runner{
				Store:      s,
				Oracle:     oracle.NewClient(provider),
				Notifier:   &progressPrinter{w: cmd.OutOrStdout()},
				Domains:    cfg.Evaluation.Domains,
				SampleSize: cfg.Evaluation.SampleSize,
			}

			domains := cfg.Evaluation.Domains
			if len(args) == 1 {
				domains = []string{args[0]}
				err = runner.RunDomain(cmd.Context(), args[0])
			} else {
				err = runner.RunAll(cmd.Context())
			}
			if err != nil {
				return err
			}

			agg := &eval.Aggregator{Store: s, Domains: domains}
			results, err := agg.ComputeResults(cmd.Context())
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), results)
		},
	}
}

// progressPrinter mirrors the websocket progress stream onto the
// terminal. Domains run concurrently, so writes are serialized.
type progressPrinter struct {
	mu sync.Mutex
	w  io.Writer
}

func (p *progressPrinter) Broadcast(v any) {
	ev, ok := v.(eval.ProgressEvent)
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %d/%d (%dms)\n", ev.Category, ev.Index, ev.Total, ev.TimeMs)
}
