package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jsonv/lsp"
)

func newLSPCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version)
			if address != "" {
				return server.RunTCP(address)
			}
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVar(&address, "tcp", "", "listen on this address instead of stdio")

	return cmd
}
