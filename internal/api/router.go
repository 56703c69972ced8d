package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"studyplanner/internal/config"
	"studyplanner/internal/llm"
	"studyplanner/internal/tools"
)

// SetupRouter wires the HTTP surface: plan execution, websocket progress
// streaming, direct tool access, and health/config probes
func SetupRouter(cfg *config.Config, gen llm.Generator, registry *tools.Registry) *gin.Engine {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if cfg.Server.AllowedOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Content-Type"}
	r.Use(cors.New(corsCfg))

	group := r.Group("/api")
	{
		group.GET("/health", HealthHandler(gen))
		group.GET("/config", ConfigHandler(cfg))

		group.POST("/plan", PlanHandler(cfg, gen))
		group.GET("/ws/plan", WSPlanHandler(cfg, gen))

		group.POST("/tools/search", ToolHandler(registry, tools.CapabilitySearch, "query"))
		group.POST("/tools/scrape", ToolHandler(registry, tools.CapabilityScrape, "url"))
		group.POST("/tools/calculate", ToolHandler(registry, tools.CapabilityCalculate, "expression"))
	}

	return r
}
