package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alkoleft/lezer-bsl/internal/replay"
)

func newReplayCmd(a *app) *cobra.Command {
	var showTrees bool

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay an edit script and compare incremental trees with full parses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			s := a.newSession()
			results, err := replay.Run(s, script)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			bad := 0
			for _, r := range results {
				status := "ok"
				switch {
				case !r.Matches:
					status = "MISMATCH"
					bad++
				case !r.Expected:
					status = "UNEXPECTED"
					bad++
				}
				fmt.Fprintf(out, "step %d %s: %s (reused %d)\n", r.Step, r.Name, status, r.Reused)
				if showTrees || status != "ok" {
					fmt.Fprintf(out, "  incremental: %s\n", r.Tree)
					fmt.Fprintf(out, "  full:        %s\n", r.Full)
				}
			}
			stats := s.Stats()
			a.log.Info("replay finished", "steps", len(results), "reused", stats.ReusedNodes, "rejected", stats.RejectedBatches)
			if bad > 0 {
				return fmt.Errorf("%d of %d steps failed", bad, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTrees, "trees", false, "print the trees of every step")

	return cmd
}
