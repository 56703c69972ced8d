// internal/tools/search.go
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// instantAnswerURL is DuckDuckGo's keyless instant-answer endpoint
const instantAnswerURL = "https://api.duckduckgo.com/"

// maxRelatedTopics bounds the related-information block
const maxRelatedTopics = 3

// eduSites are the reference domains walked by SearchEducationalDatabases.
// Only the first two are queried to bound outbound request volume.
var eduSites = []string{
	"site:collegeboard.org",
	"site:petersons.com",
	"site:usnews.com/best-colleges",
	"site:timeshighereducation.com",
}

// SearchTool queries the instant-answer API and formats whatever it returns
type SearchTool struct {
	endpoint   string
	httpClient *http.Client
	// pause separates consecutive multi-site lookups; shortened in tests
	pause time.Duration
}

// instantAnswer is the subset of the instant-answer response we render
type instantAnswer struct {
	Abstract      string `json:"Abstract"`
	Answer        string `json:"Answer"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

// NewSearchTool creates a search tool with the given request timeout
func NewSearchTool(timeout time.Duration) *SearchTool {
	return &SearchTool{
		endpoint:   instantAnswerURL,
		httpClient: &http.Client{Timeout: timeout},
		pause:      time.Second,
	}
}

// Name returns the tool identifier
func (t *SearchTool) Name() string {
	return CapabilitySearch
}

// Description returns what the tool does
func (t *SearchTool) Description() string {
	return "Search the web using DuckDuckGo's instant answer API"
}

// Run performs one search. Failures render as text; nothing propagates.
func (t *SearchTool) Run(ctx context.Context, query string) string {
	result, err := t.search(ctx, query)
	if err != nil {
		return fmt.Sprintf("Search failed: %v. Check your internet connection.", err)
	}
	return result
}

// SearchUniversities scopes the query to educational domains
func (t *SearchTool) SearchUniversities(ctx context.Context, query string) string {
	return t.Run(ctx, fmt.Sprintf("university %s site:edu", query))
}

// SearchEducationalDatabases walks the education-reference domains, pausing
// between lookups and skipping any site whose lookup fails
func (t *SearchTool) SearchEducationalDatabases(ctx context.Context, query string) string {
	var results []string
sites:
	for i, site := range eduSites[:2] {
		if i > 0 {
			select {
			case <-time.After(t.pause):
			case <-ctx.Done():
				break sites
			}
		}

		result, err := t.search(ctx, fmt.Sprintf("%s %s", query, site))
		if err != nil {
			continue
		}
		if result == "" || strings.Contains(result, "No detailed results found") {
			continue
		}
		domain := strings.TrimPrefix(site, "site:")
		results = append(results, fmt.Sprintf("From %s:\n%s", domain, result))
	}

	if len(results) == 0 {
		return fmt.Sprintf("No educational database results found for '%s'", query)
	}
	return strings.Join(results, "\n\n")
}

// search issues one instant-answer lookup and formats the response
func (t *SearchTool) search(ctx context.Context, query string) (string, error) {
	u, err := url.Parse(t.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var answer instantAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return formatInstantAnswer(query, answer), nil
}

// formatInstantAnswer renders abstract, related topics and direct answer in
// that fixed order
func formatInstantAnswer(query string, answer instantAnswer) string {
	var results []string

	if answer.Abstract != "" {
		results = append(results, fmt.Sprintf("Summary: %s", answer.Abstract))
	}

	if len(answer.RelatedTopics) > 0 {
		var topics []string
		limit := maxRelatedTopics
		if limit > len(answer.RelatedTopics) {
			limit = len(answer.RelatedTopics)
		}
		for _, topic := range answer.RelatedTopics[:limit] {
			if topic.Text != "" {
				topics = append(topics, fmt.Sprintf("• %s", topic.Text))
			}
		}
		if len(topics) > 0 {
			results = append(results, "\nRelated Information:\n"+strings.Join(topics, "\n"))
		}
	}

	if answer.Answer != "" {
		results = append(results, fmt.Sprintf("\nDirect Answer: %s", answer.Answer))
	}

	if len(results) == 0 {
		return fmt.Sprintf("No detailed results found for '%s'. Try a more specific search term.", query)
	}
	return strings.Join(results, "\n")
}
