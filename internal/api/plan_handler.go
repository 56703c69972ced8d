package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studyplanner/internal/config"
	"studyplanner/internal/llm"
	"studyplanner/internal/planner"
)

// stageSummary is the per-stage metadata returned alongside the document
type stageSummary struct {
	Stage      string `json:"stage"`
	Words      int    `json:"words"`
	DurationMS int64  `json:"duration_ms"`
}

// PlanHandler runs the full pipeline synchronously. The request body is the
// raw input mapping; absent keys default downstream, so the only rejected
// body is malformed JSON.
func PlanHandler(cfg *config.Config, gen llm.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inputs map[string]interface{}
		if err := c.ShouldBindJSON(&inputs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		pipeline := planner.New(gen)
		plan, err := pipeline.Run(c.Request.Context(), inputs)
		if err != nil {
			var stageErr *planner.StageError
			if errors.As(err, &stageErr) {
				c.JSON(http.StatusBadGateway, gin.H{
					"error": stageErr.Error(),
					"stage": stageErr.Stage,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		exportFile := ""
		if cfg.Export.OutputDir != "" {
			path, err := planner.ExportMarkdown(plan, cfg.Export.OutputDir)
			if err != nil {
				// The document is still returned inline; only the file copy failed.
				log.Printf("[API] Export failed for run %s: %v", plan.RunID, err)
			} else {
				exportFile = path
			}
		}

		stages := make([]stageSummary, 0, len(plan.Stages))
		for _, s := range plan.Stages {
			stages = append(stages, stageSummary{
				Stage:      s.Stage,
				Words:      len(strings.Fields(s.Output)),
				DurationMS: s.Duration.Milliseconds(),
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"run_id":      plan.RunID,
			"markdown":    plan.Markdown,
			"stages":      stages,
			"export_file": exportFile,
		})
	}
}
