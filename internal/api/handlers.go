package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studyplanner/internal/config"
	"studyplanner/internal/llm"
)

// HealthHandler reports liveness and, when the generator is the standard
// backend client, which endpoint it targets
func HealthHandler(gen llm.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if client, ok := gen.(*llm.Client); ok {
			status["backend"] = client.Endpoint().BaseURL
			status["model"] = client.Endpoint().Model
		}
		c.JSON(http.StatusOK, status)
	}
}

// ConfigHandler echoes the non-secret parts of the configuration
func ConfigHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"model":      cfg.Backend.Model,
			"hosted":     cfg.Backend.APIKey != "",
			"export_dir": cfg.Export.OutputDir,
		})
	}
}
