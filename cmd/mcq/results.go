package main

import (
	"github.com/spf13/cobra"

	"github.com/stellarlinkco/mcq-eval/internal/eval"
)

func newResultsCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Print per-domain accuracy and average latency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := st.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			agg := &eval.Aggregator{Store: s, Domains: cfg.Evaluation.Domains}
			results, err := agg.ComputeResults(cmd.Context())
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), results)
		},
	}
}
