// internal/tools/browser.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ScrapeTool implements the Tool interface over the page extractor
type ScrapeTool struct {
	extractor *Extractor
}

// rankingSites are tried in order by LookupRankings; only the first
// successful scrape is reported to bound outbound request volume
var rankingSites = []string{
	"https://www.topuniversities.com/",
	"https://www.timeshighereducation.com/",
	"https://www.usnews.com/best-colleges",
}

// NewScrapeTool creates a scrape tool with the given fetch settings
func NewScrapeTool(timeout time.Duration, userAgent string, maxSizeMB int) *ScrapeTool {
	return &ScrapeTool{
		extractor: NewExtractor(timeout, userAgent, maxSizeMB),
	}
}

// Name returns the tool identifier
func (t *ScrapeTool) Name() string {
	return CapabilityScrape
}

// Description returns what the tool does
func (t *ScrapeTool) Description() string {
	return "Fetch a web page and summarize its university and study-abroad content"
}

// Run scrapes one URL. All failures render as text; nothing propagates.
func (t *ScrapeTool) Run(ctx context.Context, input string) string {
	url := strings.TrimSpace(input)
	if url == "" {
		return "❌ No URL provided"
	}

	report, err := t.extractor.Extract(ctx, url)
	if err != nil {
		var noContent *NoContentError
		if errors.As(err, &noContent) {
			return fmt.Sprintf("Could not extract content from %s", url)
		}
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) {
			return fmt.Sprintf("❌ Error accessing %s: %v", url, fetchErr.Err)
		}
		return fmt.Sprintf("❌ Error processing %s: %v", url, err)
	}

	return report.Format()
}

// LookupRankings scrapes ranking sites for the query, stopping after the
// first site that yields a report
func (t *ScrapeTool) LookupRankings(ctx context.Context, query string) string {
	for _, site := range rankingSites[:1] {
		report, err := t.extractor.Extract(ctx, site)
		if err != nil {
			continue
		}
		return fmt.Sprintf("From %s:\n%s", site, report.Format())
	}
	return fmt.Sprintf("Could not retrieve ranking information for: %s", query)
}
