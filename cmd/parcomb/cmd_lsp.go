package main

import (
	"github.com/dhamidi/parcomb/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start a JSON language server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(cfg.LSP.Name, version)
			return server.RunStdio()
		},
	}
}
