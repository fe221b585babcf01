package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/alkoleft/lezer-bsl/bsl/workspace"
)

func newLSPCmd(a *app) *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			server := workspace.NewServer(version, a.cfg.WorkspaceOptions())
			return server.RunStdio()
		},
	}

	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 1, "log verbosity on stderr")

	return cmd
}
