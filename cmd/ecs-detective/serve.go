// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/norrietaylor/ecs-detective/internal/tool"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analyzer as an MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, err := buildAnalyzer(cmd, opts)
			if err != nil {
				return err
			}

			server := mcp.NewServer(&mcp.Implementation{
				Name:    "ecs-detective",
				Version: version,
			}, nil)
			mcp.AddTool(server, tool.MetadataAnalyzeSource, tool.AnalyzeSource(analyzer))

			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
