// internal/planner/request.go
package planner

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// PlanningRequest is the normalized form of the raw request mapping. It is
// created once per run and owned by that run.
type PlanningRequest struct {
	Origin      string
	Cities      []string
	DateRange   DateRange
	Interests   string
	Subject     string
	StudyLevel  string
	BudgetRange string
	Advanced    map[string]bool
}

// DateRange is a closed calendar-date interval
type DateRange struct {
	Start time.Time
	End   time.Time
}

const dateLayout = "2006-01-02"

// String renders the range the way stage prompts embed it
func (d DateRange) String() string {
	return fmt.Sprintf("%s to %s", d.Start.Format(dateLayout), d.End.Format(dateLayout))
}

// Degenerate reports a zero-length range
func (d DateRange) Degenerate() bool {
	return d.Start.Equal(d.End)
}

// CityList joins the cities for prompt embedding, with an N/A sentinel when
// none were supplied
func (r PlanningRequest) CityList() string {
	if len(r.Cities) == 0 {
		return "N/A"
	}
	return strings.Join(r.Cities, ", ")
}

// CollectInputs normalizes a raw request mapping into a PlanningRequest. It
// is total: absent or malformed keys fall back to empty values, and an
// unusable date range degrades to today..today with a logged warning. The
// silent part of that fallback masked bad input in the past, hence the log.
func CollectInputs(inputs map[string]interface{}) PlanningRequest {
	req := PlanningRequest{
		Origin:      getString(inputs, "origin"),
		Cities:      parseCities(inputs["cities"]),
		Interests:   getString(inputs, "interests"),
		Subject:     getString(inputs, "subject"),
		StudyLevel:  getString(inputs, "study_level"),
		BudgetRange: getString(inputs, "budget_range"),
		Advanced:    parseAdvanced(inputs["advanced"]),
	}

	dr, ok := parseDateRange(inputs["daterange"])
	if !ok {
		y, m, d := time.Now().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		dr = DateRange{Start: today, End: today}
		log.Printf("[Planner] WARNING: no usable date range supplied; defaulting to degenerate range %s", dr)
	}
	req.DateRange = dr

	return req
}

// parseCities accepts a semicolon-delimited string or a sequence of values;
// entries are trimmed and empty segments dropped
func parseCities(v interface{}) []string {
	var raw []string
	switch val := v.(type) {
	case string:
		raw = strings.Split(val, ";")
	case []string:
		raw = val
	case []interface{}:
		for _, item := range val {
			raw = append(raw, fmt.Sprint(item))
		}
	}

	cities := make([]string, 0, len(raw))
	for _, c := range raw {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	return cities
}

// parseDateRange accepts a two-element sequence of YYYY-MM-DD strings
func parseDateRange(v interface{}) (DateRange, bool) {
	var parts []string
	switch val := v.(type) {
	case []string:
		parts = val
	case []interface{}:
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
	}
	if len(parts) != 2 {
		return DateRange{}, false
	}

	start, err := time.Parse(dateLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return DateRange{}, false
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return DateRange{}, false
	}
	return DateRange{Start: start, End: end}, true
}

func parseAdvanced(v interface{}) map[string]bool {
	prefs := make(map[string]bool)
	m, ok := v.(map[string]interface{})
	if !ok {
		return prefs
	}
	for key, val := range m {
		if b, ok := val.(bool); ok {
			prefs[key] = b
		}
	}
	return prefs
}

func getString(inputs map[string]interface{}, key string) string {
	s, _ := inputs[key].(string)
	return strings.TrimSpace(s)
}
