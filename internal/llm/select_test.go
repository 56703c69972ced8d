package llm

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studyplanner/internal/config"
)

func TestSelectPrefersHosted(t *testing.T) {
	client, err := Select(config.BackendConfig{
		APIKey:  "secret",
		APIBase: "https://api.example.com/v1",
		Model:   "gpt-4o-mini",
		Timeout: time.Second,
	})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if client.Endpoint().BaseURL != "https://api.example.com/v1" || client.Endpoint().Model != "gpt-4o-mini" {
		t.Errorf("endpoint = %+v", client.Endpoint())
	}
}

func TestSelectLocalFallbackModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"data": [{"id": "qwen:0.5b"}, {"id": "llama3.1:8b"}]}`))
	}))
	defer server.Close()

	client, err := Select(config.BackendConfig{
		LocalBase:      server.URL,
		FallbackModels: []string{"llama3.2:3b", "llama3.1:8b"},
		Timeout:        time.Second,
	})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	// First preferred model actually served wins over list order.
	if client.Endpoint().Model != "llama3.1:8b" {
		t.Errorf("model = %q, want llama3.1:8b", client.Endpoint().Model)
	}
	if client.Endpoint().APIKey != "" {
		t.Errorf("local endpoint must not carry a key")
	}
}

func TestSelectNoBackend(t *testing.T) {
	_, err := Select(config.BackendConfig{
		LocalBase: "http://127.0.0.1:1",
		Timeout:   time.Second,
	})
	if err == nil {
		t.Fatalf("expected error when no backend is reachable")
	}
}

func TestPickModel(t *testing.T) {
	cases := []struct {
		name      string
		preferred []string
		available []string
		want      string
	}{
		{"preferred match", []string{"a", "b"}, []string{"c", "b"}, "b"},
		{"no match takes first available", []string{"a"}, []string{"x", "y"}, "x"},
		{"nothing available", []string{"a"}, nil, ""},
	}
	for _, tc := range cases {
		if got := pickModel(tc.preferred, tc.available); got != tc.want {
			t.Errorf("%s: pickModel = %q, want %q", tc.name, got, tc.want)
		}
	}
}
