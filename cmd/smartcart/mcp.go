package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nawi-n/SmartCart/pkg/config"
	"github.com/nawi-n/SmartCart/pkg/mcpserver"
	smartotel "github.com/nawi-n/SmartCart/pkg/otel"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve every operation as an MCP tool over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := setupLogging(cfg)
			shutdown, err := smartotel.Init(ctx, smartotel.Config{ServiceVersion: version, UseStdout: cfg.OTelStdout})
			if err != nil {
				return err
			}
			defer func() { _ = shutdown(ctx) }()

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			srv, err := mcpserver.New(a.registry, version, mcpserver.WithLogger(logger))
			if err != nil {
				return err
			}
			logger.Info("mcp server ready", "tools", len(a.registry.Names()))
			return srv.Run(ctx, &mcp.StdioTransport{})
		},
	}
}
