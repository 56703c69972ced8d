package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"studyplanner/internal/config"
	"studyplanner/internal/llm"
	"studyplanner/internal/planner"
)

func planCmd() *cobra.Command {
	var (
		origin    string
		cities    string
		subject   string
		level     string
		budget    string
		interests string
		start     string
		end       string
		outDir    string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run one planning pipeline and write the markdown report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if outDir != "" {
				cfg.Export.OutputDir = outDir
			}

			gen, err := llm.Select(cfg.Backend)
			if err != nil {
				return err
			}

			inputs := map[string]interface{}{
				"origin":       origin,
				"cities":       cities,
				"subject":      subject,
				"study_level":  level,
				"budget_range": budget,
				"interests":    interests,
			}
			if start != "" && end != "" {
				inputs["daterange"] = []string{start, end}
			}

			pipeline := planner.New(gen)
			pipeline.OnProgress(func(event planner.ProgressEvent) {
				log.Printf("[Plan] %3d%% %s", event.Percent, event.Message)
			})

			plan, err := pipeline.Run(cmd.Context(), inputs)
			if err != nil {
				return err
			}

			path, err := planner.ExportMarkdown(plan, cfg.Export.OutputDir)
			if err != nil {
				return err
			}
			fmt.Printf("Study plan written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&origin, "origin", "", "where the student is applying from")
	cmd.Flags().StringVar(&cities, "cities", "", "semicolon-separated destination cities")
	cmd.Flags().StringVar(&subject, "subject", "", "field of study")
	cmd.Flags().StringVar(&level, "level", "", "study level (Bachelor, Master, PhD)")
	cmd.Flags().StringVar(&budget, "budget", "", "budget range label")
	cmd.Flags().StringVar(&interests, "interests", "", "free-text interests")
	cmd.Flags().StringVar(&start, "start", "", "period start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "period end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides EXPORT_DIR)")

	return cmd
}
