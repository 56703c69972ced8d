// internal/tools/browser_client.go
package tools

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Extractor fetches web pages and reduces them to bounded study-abroad
// summaries
type Extractor struct {
	httpClient *http.Client
	userAgent  string
	maxSizeMB  int
	// throttle inserts the polite pre-request delay; replaced in tests
	throttle func()
}

// ExtractionReport is the structured result of one page extraction
type ExtractionReport struct {
	URL        string
	Title      string
	FullText   string // capped at fullTextLimit, with truncation marker
	Preview    string // capped at previewLimit, with truncation marker
	Highlights []Highlight
}

// Highlight is one keyword-tagged snippet from the page
type Highlight struct {
	Category string
	Snippet  string
}

// FetchError reports a network or HTTP failure reaching a URL
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("error accessing %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NoContentError reports a fetched page with no extractable content region
type NoContentError struct {
	URL string
}

func (e *NoContentError) Error() string {
	return fmt.Sprintf("could not extract content from %s", e.URL)
}

const (
	fullTextLimit = 2000
	previewLimit  = 500
	maxHighlights = 5
	noTitle       = "No title found"
)

// contentSelectors is the ordered list of structural regions tried before
// falling back to the whole body. Order is part of the output contract.
var contentSelectors = []string{
	"main", "article", ".content", "#content",
	".main-content", "#main-content", ".entry-content",
	".post-content", "section", ".container",
}

// educationKeywords maps page keywords to highlight categories. Highlights are
// emitted in this order regardless of where keywords occur in the page, so a
// given page always produces the same report.
var educationKeywords = []struct {
	Keyword  string
	Category string
}{
	{"tuition", "Tuition and Fees Information"},
	{"admission", "Admission Requirements"},
	{"scholarship", "Scholarship Opportunities"},
	{"international student", "International Student Services"},
	{"campus", "Campus Information"},
	{"program", "Academic Programs"},
	{"degree", "Degree Options"},
	{"application", "Application Process"},
	{"deadline", "Important Deadlines"},
	{"ranking", "University Rankings"},
	{"accommodation", "Housing and Accommodation"},
	{"visa", "Visa Requirements"},
}

// NewExtractor creates an extractor with a fixed request timeout and a
// randomized 1-3s pre-request delay
func NewExtractor(timeout time.Duration, userAgent string, maxSizeMB int) *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxSizeMB: maxSizeMB,
		throttle: func() {
			time.Sleep(time.Duration(1000+rand.Intn(2000)) * time.Millisecond)
		},
	}
}

// Extract fetches a URL and reduces it to an ExtractionReport
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*ExtractionReport, error) {
	e.throttle()

	html, err := e.fetchHTML(ctx, pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	// Drop scripts and styles before any text extraction
	doc.Find("script, style").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = noTitle
	}

	text := normalizeText(e.selectContent(doc).Text())
	if text == "" {
		// Last resort before giving up: readability's article extraction
		// handles pages whose content lives outside the usual containers.
		text = e.readabilityFallback(pageURL, html)
	}
	if text == "" {
		return nil, &NoContentError{URL: pageURL}
	}

	full := truncate(text, fullTextLimit)
	return &ExtractionReport{
		URL:        pageURL,
		Title:      title,
		FullText:   full,
		Preview:    truncate(full, previewLimit),
		Highlights: findHighlights(full),
	}, nil
}

// fetchHTML retrieves the page with a conventional browser request signature
func (e *Extractor) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	maxBytes := int64(e.maxSizeMB) * 1024 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	return string(body), nil
}

// selectContent returns the first matching content region, falling back to
// the whole body
func (e *Extractor) selectContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Find("body")
}

// readabilityFallback runs article extraction over the raw HTML
func (e *Extractor) readabilityFallback(pageURL, html string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		return ""
	}
	return normalizeText(article.TextContent)
}

// normalizeText trims lines, splits on double-space boundaries, drops empty
// fragments and joins with single spaces
func normalizeText(raw string) string {
	var chunks []string
	for _, line := range strings.Split(raw, "\n") {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	return strings.Join(chunks, " ")
}

// truncate caps text at limit characters with an explicit marker. The cap
// counts runes, not bytes, so multi-byte text is never cut mid-sequence.
func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}

// findHighlights scans the keyword table against the text and returns at most
// maxHighlights hits, in table order
func findHighlights(text string) []Highlight {
	lower := strings.ToLower(text)
	sentences := strings.Split(text, ".")

	var found []Highlight
	for _, entry := range educationKeywords {
		if len(found) >= maxHighlights {
			break
		}
		if !strings.Contains(lower, entry.Keyword) {
			continue
		}
		for _, sentence := range sentences {
			if !strings.Contains(strings.ToLower(sentence), entry.Keyword) {
				continue
			}
			snippet := strings.TrimSpace(sentence)
			if runes := []rune(snippet); len(runes) > 100 {
				snippet = string(runes[:100])
			}
			found = append(found, Highlight{Category: entry.Category, Snippet: snippet})
			break
		}
	}
	return found
}

// Format renders the report with the fixed template: URL, title, highlight
// block, preview. Byte-for-byte reproducible for the same fetched bytes.
func (r *ExtractionReport) Format() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🌐 Website: %s\n", r.URL))
	b.WriteString(fmt.Sprintf("📄 Title: %s\n\n", r.Title))

	b.WriteString("📝 Summary:\n")
	if len(r.Highlights) == 0 {
		b.WriteString("General university/education website content found.")
	} else {
		lines := make([]string, 0, len(r.Highlights))
		for _, h := range r.Highlights {
			lines = append(lines, fmt.Sprintf("• %s: %s...", h.Category, h.Snippet))
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("\n\n📋 Full Content Preview:\n")
	b.WriteString(r.Preview)

	return b.String()
}
