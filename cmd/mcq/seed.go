package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stellarlinkco/mcq-eval/internal/dataset"
)

func newSeedCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.jsonl>",
		Short: "Load questions from a JSONL file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := st.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			recs, err := dataset.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for _, rec := range recs {
				if err := s.InsertQuestion(cmd.Context(), rec); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d questions\n", len(recs))
			return nil
		},
	}
}
