// internal/tools/registry.go
package tools

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Registry manages all available tools
type Registry struct {
	tools map[string]Tool
	mu    sync.RWMutex
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}

	r.tools[name] = tool
	log.Printf("[ToolRegistry] Registered tool: %s - %s", name, tool.Description())
	return nil
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("tool not found: %s", name)
	}

	return tool, nil
}

// Run executes a named tool and returns its formatted text output. Tools
// themselves never fail; the only error here is an unknown name.
func (r *Registry) Run(ctx context.Context, name, input string) (string, error) {
	tool, err := r.Get(name)
	if err != nil {
		return "", err
	}

	start := time.Now()
	output := tool.Run(ctx, input)
	log.Printf("[ToolRegistry] Tool '%s' completed in %s", name, time.Since(start))

	return output, nil
}

// List returns all registered tool names and descriptions
func (r *Registry) List() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make(map[string]string)
	for name, tool := range r.tools {
		list[name] = tool.Description()
	}
	return list
}
