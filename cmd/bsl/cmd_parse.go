package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alkoleft/lezer-bsl/bsl/session"
	"github.com/alkoleft/lezer-bsl/format"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var includeComments bool
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a BSL module and print its syntax tree",
		Long: "Parse a BSL module and print its syntax tree.\n\n" +
			"Formats: text (indented outline), tree (compact one-line form), json, yaml.\n" +
			"Reads standard input when no file or \"-\" is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			src, err := a.readSource(cmd, name)
			if err != nil {
				return err
			}

			var opts []session.Option
			if includeComments {
				opts = append(opts, session.WithComments())
			}
			tree := a.newSession(opts...).Parse(src)
			if errs := tree.Errors(); len(errs) > 0 {
				a.log.Warn("syntax errors", "file", name, "count", len(errs))
			}

			out := cmd.OutOrStdout()
			var encoder format.Encoder
			switch outputFormat {
			case "text":
				encoder = styledEncoder(out, src, includePositions)
			case "tree":
				_, err := fmt.Fprintln(out, tree.String())
				return err
			case "json":
				encoder = format.NewTreeJSONEncoder(out, src)
			case "yaml":
				encoder = format.NewYAMLEncoder(out, src)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err := encoder.Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, tree, json, yaml)")
	cmd.Flags().BoolVar(&includeComments, "comments", false, "keep comments in the tree")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "print byte ranges in text output")

	return cmd
}

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the highlighting tags of a BSL module",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			src, err := a.readSource(cmd, name)
			if err != nil {
				return err
			}
			tree := a.newSession(session.WithComments()).Parse(src)
			if err := format.NewLineEncoder(cmd.OutOrStdout(), src).Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}
}
