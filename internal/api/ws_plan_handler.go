package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"studyplanner/internal/config"
	"studyplanner/internal/llm"
	"studyplanner/internal/planner"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsEvent is the message envelope sent to the client
type wsEvent struct {
	Event    string `json:"event"`
	Stage    string `json:"stage,omitempty"`
	Message  string `json:"message,omitempty"`
	Percent  int    `json:"percent,omitempty"`
	Markdown string `json:"markdown,omitempty"`
	RunID    string `json:"run_id,omitempty"`
}

// writeEvent sends one event to the client, logging the failure when the
// connection has gone away
func writeEvent(conn *websocket.Conn, event wsEvent) {
	if err := conn.WriteJSON(event); err != nil {
		log.Printf("[API] WebSocket write failed (run %s, event %s): %v", event.RunID, event.Event, err)
	}
}

// WSPlanHandler runs the pipeline for a websocket client, streaming progress
// events as stages complete. The client sends the raw input mapping as its
// first message; the connection closes after the done or error event.
func WSPlanHandler(cfg *config.Config, gen llm.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[API] WebSocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		var inputs map[string]interface{}
		if err := conn.ReadJSON(&inputs); err != nil {
			writeEvent(conn, wsEvent{Event: "error", Message: "invalid request message"})
			return
		}

		pipeline := planner.New(gen)
		pipeline.OnProgress(func(event planner.ProgressEvent) {
			writeEvent(conn, wsEvent{
				Event:   "progress",
				Stage:   event.Stage,
				Message: event.Message,
				Percent: event.Percent,
				RunID:   event.RunID,
			})
		})

		plan, err := pipeline.Run(c.Request.Context(), inputs)
		if err != nil {
			writeEvent(conn, wsEvent{Event: "error", Message: err.Error()})
			return
		}

		if cfg.Export.OutputDir != "" {
			if _, err := planner.ExportMarkdown(plan, cfg.Export.OutputDir); err != nil {
				log.Printf("[API] Export failed for run %s: %v", plan.RunID, err)
			}
		}

		writeEvent(conn, wsEvent{Event: "done", Markdown: plan.Markdown, RunID: plan.RunID})
	}
}
