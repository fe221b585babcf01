package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alkoleft/lezer-bsl/bsl/corpus"
	"github.com/alkoleft/lezer-bsl/bsl/session"
)

func newCorpusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "corpus <dir|file>...",
		Short: "Run Markdown parser test cases",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cases []corpus.Case
			for _, arg := range args {
				info, err := os.Stat(arg)
				if err != nil {
					return fmt.Errorf("corpus: %w", err)
				}
				var loaded []corpus.Case
				if info.IsDir() {
					loaded, err = corpus.LoadDir(arg)
				} else {
					loaded, err = corpus.LoadFile(arg)
				}
				if err != nil {
					return err
				}
				cases = append(cases, loaded...)
			}

			s := a.newSession(session.WithComments())
			results := corpus.Run(s.Parse, cases)
			failed := corpus.Failed(results)

			out := cmd.OutOrStdout()
			for _, r := range failed {
				fmt.Fprintf(out, "FAIL %s:%d %s\n  want: %s\n   got: %s\n", r.File, r.Line, r.Name, r.Expected, r.Got)
			}
			fmt.Fprintf(out, "%d passed, %d failed\n", len(results)-len(failed), len(failed))
			if len(failed) > 0 {
				return fmt.Errorf("%d corpus cases failed", len(failed))
			}
			return nil
		},
	}
}
