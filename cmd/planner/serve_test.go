package main

import (
	"testing"
	"time"

	"studyplanner/internal/config"
	"studyplanner/internal/tools"
)

func TestBuildRegistry(t *testing.T) {
	cfg := &config.Config{
		Tools: config.ToolsConfig{
			RequestTimeout: time.Second,
			UserAgent:      "test-agent",
			MaxPageSizeMB:  1,
		},
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		t.Fatalf("buildRegistry failed: %v", err)
	}

	for _, name := range []string{tools.CapabilitySearch, tools.CapabilityScrape, tools.CapabilityCalculate} {
		if _, err := registry.Get(name); err != nil {
			t.Errorf("tool %q not registered: %v", name, err)
		}
	}
	if len(registry.List()) != 3 {
		t.Errorf("registered tools = %v, want exactly 3", registry.List())
	}
}
