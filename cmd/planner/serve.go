package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"studyplanner/internal/api"
	"studyplanner/internal/config"
	"studyplanner/internal/llm"
	"studyplanner/internal/tools"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the planning HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}

			gen, err := llm.Select(cfg.Backend)
			if err != nil {
				return err
			}

			registry, err := buildRegistry(cfg)
			if err != nil {
				return fmt.Errorf("registry error: %w", err)
			}

			r := api.SetupRouter(cfg, gen, registry)
			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			fmt.Printf("Starting planner server on %s\n", addr)
			return r.Run(addr)
		},
	}
}

// buildRegistry registers the three leaf tools with the configured limits
func buildRegistry(cfg *config.Config) (*tools.Registry, error) {
	registry := tools.NewRegistry()
	for _, tool := range []tools.Tool{
		tools.NewSearchTool(cfg.Tools.RequestTimeout),
		tools.NewScrapeTool(cfg.Tools.RequestTimeout, cfg.Tools.UserAgent, cfg.Tools.MaxPageSizeMB),
		tools.NewCalculateTool(),
	} {
		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
