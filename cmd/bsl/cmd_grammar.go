package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alkoleft/lezer-bsl/bsl/parser"
)

func newGrammarCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the EBNF grammar the parser follows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !check {
				_, err := fmt.Fprint(cmd.OutOrStdout(), parser.GrammarSource())
				return err
			}
			g, err := parser.Grammar()
			if err != nil {
				return fmt.Errorf("grammar: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d productions reachable from %s\n", len(g), parser.StartProduction)
			return err
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "verify the grammar instead of printing it")

	return cmd
}
