// internal/llm/select.go
package llm

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"studyplanner/internal/config"
)

// probeTimeout bounds each availability check during backend selection
const probeTimeout = 5 * time.Second

// Select picks a backend once at startup. A hosted endpoint with an API key
// wins; otherwise the local endpoint's model list is fetched and the first
// configured fallback model that it serves is used. Selection happens exactly
// once, never deep inside a planning run.
func Select(cfg config.BackendConfig) (*Client, error) {
	if cfg.APIKey != "" {
		log.Printf("[LLM] Using hosted backend %s (model %s)", cfg.APIBase, cfg.Model)
		return NewClient(Endpoint{
			BaseURL: cfg.APIBase,
			Model:   cfg.Model,
			APIKey:  cfg.APIKey,
		}, cfg.Timeout), nil
	}

	available, err := fetchModels(cfg.LocalBase)
	if err != nil {
		return nil, fmt.Errorf("no text-generation backend available: set OPENAI_API_KEY or run a local server at %s: %w", cfg.LocalBase, err)
	}

	model := pickModel(cfg.FallbackModels, available)
	if model == "" {
		return nil, fmt.Errorf("local backend %s serves no usable model (wanted one of %v)", cfg.LocalBase, cfg.FallbackModels)
	}

	log.Printf("[LLM] Using local backend %s (model %s)", cfg.LocalBase, model)
	return NewClient(Endpoint{
		BaseURL: cfg.LocalBase,
		Model:   model,
	}, cfg.Timeout), nil
}

// pickModel returns the first preferred model that is actually served,
// falling back to whatever the endpoint offers first
func pickModel(preferred, available []string) string {
	for _, want := range preferred {
		for _, have := range available {
			if want == have {
				return want
			}
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

// fetchModels lists model names from an OpenAI-compatible /models endpoint
func fetchModels(baseURL string) ([]string, error) {
	client := &http.Client{Timeout: probeTimeout}
	resp, err := client.Get(baseURL + "/models")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var result struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}

	names := make([]string, 0, len(result.Data))
	for _, m := range result.Data {
		names = append(names, m.ID)
	}
	return names, nil
}
