package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all observed answers and latencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := st.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			if err := s.ResetAll(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "reset complete")
			return nil
		},
	}
}
