// internal/tools/types.go
package tools

import "context"

// Tool is the single-operation contract every leaf tool satisfies: one string
// in, one formatted text block out. Failures never escape a tool; they are
// rendered into the returned text, so callers always receive a string.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Description returns a human-readable description of what the tool does
	Description() string

	// Run executes the tool against a single text input
	Run(ctx context.Context, input string) string
}

// Capability names used by pipeline stages to declare which tools a stage may
// invoke. They double as registry keys.
const (
	CapabilitySearch    = "search"
	CapabilityScrape    = "scrape"
	CapabilityCalculate = "calculate"
)
