// internal/planner/export.go
package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportMarkdown writes the assembled plan to
// <dir>/study_plan_<subject>_<date>.md and returns the file path
func ExportMarkdown(plan *Plan, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	subject := strings.ReplaceAll(plan.Request.Subject, " ", "_")
	name := fmt.Sprintf("study_plan_%s_%s.md", subject, plan.FinishedAt.Format(dateLayout))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(plan.Markdown), 0o644); err != nil {
		return "", fmt.Errorf("failed to write plan: %w", err)
	}
	return path, nil
}
