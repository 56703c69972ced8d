package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Stream bool `json:"stream"`
}

func TestClientGenerate(t *testing.T) {
	var got chatRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "  generated text  "}}]}`))
	}))
	defer server.Close()

	client := NewClient(Endpoint{BaseURL: server.URL, Model: "test-model", APIKey: "secret"}, 5*time.Second)

	out, err := client.Generate(context.Background(), GenerateRequest{
		System: "Role: tester",
		Prompt: "say something",
		Tools:  []string{"search", "calculate"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "generated text" {
		t.Errorf("out = %q", out)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if got.Model != "test-model" || got.Stream {
		t.Errorf("payload = %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("messages = %+v", got.Messages)
	}
	if !strings.Contains(got.Messages[0].Content, "Available capabilities: search, calculate.") {
		t.Errorf("system message missing capabilities: %q", got.Messages[0].Content)
	}
	if got.Messages[1].Content != "say something" {
		t.Errorf("user message = %q", got.Messages[1].Content)
	}
}

func TestClientGenerateNoAuthWithoutKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer server.Close()

	client := NewClient(Endpoint{BaseURL: server.URL, Model: "m"}, 5*time.Second)
	if _, err := client.Generate(context.Background(), GenerateRequest{Prompt: "hi"}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want unset", gotAuth)
	}
}

func TestClientGenerateErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Endpoint{BaseURL: server.URL, Model: "m"}, 5*time.Second)
	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	if err == nil || !strings.Contains(err.Error(), "status 503") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestClientGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient(Endpoint{BaseURL: server.URL, Model: "m"}, 5*time.Second)
	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Errorf("expected no-choices error, got %v", err)
	}
}
