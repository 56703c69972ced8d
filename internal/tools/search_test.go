package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestSearchTool(handler http.HandlerFunc) (*SearchTool, *httptest.Server) {
	server := httptest.NewServer(handler)
	tool := NewSearchTool(5 * time.Second)
	tool.endpoint = server.URL
	tool.pause = 0
	return tool, server
}

func TestSearchRequestParameters(t *testing.T) {
	var gotQuery map[string]string
	tool, server := newTestSearchTool(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":             r.URL.Query().Get("q"),
			"format":        r.URL.Query().Get("format"),
			"no_html":       r.URL.Query().Get("no_html"),
			"skip_disambig": r.URL.Query().Get("skip_disambig"),
		}
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	tool.Run(context.Background(), "universities in Berlin")

	if gotQuery["q"] != "universities in Berlin" {
		t.Errorf("q = %q", gotQuery["q"])
	}
	if gotQuery["format"] != "json" || gotQuery["no_html"] != "1" || gotQuery["skip_disambig"] != "1" {
		t.Errorf("unexpected query parameters: %v", gotQuery)
	}
}

func TestSearchFormatsSections(t *testing.T) {
	tool, server := newTestSearchTool(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"Abstract": "Berlin hosts several major universities.",
			"Answer": "42",
			"RelatedTopics": [
				{"Text": "Humboldt University"},
				{"Text": "Free University"},
				{"Text": "Technical University"},
				{"Text": "Fourth topic never rendered"}
			]
		}`))
	})
	defer server.Close()

	out := tool.Run(context.Background(), "berlin universities")

	if !strings.HasPrefix(out, "Summary: Berlin hosts several major universities.") {
		t.Errorf("summary must come first:\n%s", out)
	}
	if !strings.Contains(out, "Related Information:\n• Humboldt University\n• Free University\n• Technical University") {
		t.Errorf("missing related topics block:\n%s", out)
	}
	if strings.Contains(out, "Fourth topic") {
		t.Errorf("related topics must be capped at %d:\n%s", maxRelatedTopics, out)
	}
	if !strings.Contains(out, "Direct Answer: 42") {
		t.Errorf("missing direct answer:\n%s", out)
	}
	if strings.Index(out, "Related Information") > strings.Index(out, "Direct Answer") {
		t.Errorf("sections out of order:\n%s", out)
	}
}

func TestSearchEmptyResponse(t *testing.T) {
	tool, server := newTestSearchTool(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Abstract": "", "Answer": "", "RelatedTopics": []}`))
	})
	defer server.Close()

	out := tool.Run(context.Background(), "obscure query")
	want := "No detailed results found for 'obscure query'. Try a more specific search term."
	if out != want {
		t.Errorf("out = %q, want %q", out, want)
	}
}

func TestSearchFailureText(t *testing.T) {
	tool := NewSearchTool(time.Second)
	tool.endpoint = "http://127.0.0.1:1/"

	out := tool.Run(context.Background(), "anything")
	if !strings.HasPrefix(out, "Search failed: ") || !strings.HasSuffix(out, "Check your internet connection.") {
		t.Errorf("unexpected failure text: %q", out)
	}
}

func TestSearchNonOKStatus(t *testing.T) {
	tool, server := newTestSearchTool(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	defer server.Close()

	out := tool.Run(context.Background(), "anything")
	if !strings.Contains(out, "status 429") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestSearchUniversitiesScopesQuery(t *testing.T) {
	var got string
	tool, server := newTestSearchTool(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("q")
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	tool.SearchUniversities(context.Background(), "computer science Toronto")
	if got != "university computer science Toronto site:edu" {
		t.Errorf("q = %q", got)
	}
}

func TestSearchEducationalDatabases(t *testing.T) {
	var queries []string
	tool, server := newTestSearchTool(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		if strings.Contains(q, "petersons.com") {
			w.Write([]byte(`{"Abstract": "Program listings for the subject."}`))
			return
		}
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	out := tool.SearchEducationalDatabases(context.Background(), "engineering programs")

	if len(queries) != 2 {
		t.Fatalf("expected 2 site lookups, got %v", queries)
	}
	// The empty collegeboard result is skipped, not rendered.
	if strings.Contains(out, "collegeboard.org") {
		t.Errorf("empty result should be skipped:\n%s", out)
	}
	if !strings.Contains(out, "From petersons.com:\nSummary: Program listings for the subject.") {
		t.Errorf("missing labeled result:\n%s", out)
	}
}

func TestSearchEducationalDatabasesAllEmpty(t *testing.T) {
	tool, server := newTestSearchTool(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	defer server.Close()

	out := tool.SearchEducationalDatabases(context.Background(), "niche topic")
	if out != "No educational database results found for 'niche topic'" {
		t.Errorf("out = %q", out)
	}
}

func TestRegistryRunAndErrors(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(NewCalculateTool()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(NewCalculateTool()); err == nil {
		t.Errorf("duplicate Register should fail")
	}

	out, err := registry.Run(context.Background(), CapabilityCalculate, "2 + 2")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, "✅ Result: 4") {
		t.Errorf("unexpected output: %q", out)
	}

	if _, err := registry.Run(context.Background(), "nonexistent", ""); err == nil {
		t.Errorf("unknown tool should error")
	}
}
