package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studyplanner/internal/tools"
)

// ToolHandler exposes one registered tool over HTTP. The body carries a
// single field named by the tool's input kind (query, url, expression).
func ToolHandler(registry *tools.Registry, toolName, field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		input := body[field]
		if input == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing '" + field + "' field"})
			return
		}

		output, err := registry.Run(c.Request.Context(), toolName, input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"output": output})
	}
}
