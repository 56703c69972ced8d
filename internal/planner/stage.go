// internal/planner/stage.go
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studyplanner/internal/llm"
)

// StageConfig is a data-described pipeline stage: a role, the capabilities it
// declares to the backend, and a prompt template. Stages carry no behavior of
// their own; runStage executes any of them against a Generator.
type StageConfig struct {
	// Name keys the stage's result in the pipeline context
	Name string
	// Title is the markdown section header in the assembled plan
	Title string

	Role      string
	Goal      string
	Backstory string

	// Capabilities are the tool names the stage is permitted to invoke
	Capabilities []string
	// MinWords is the contractual output length. Stated in the prompt, not
	// enforced here.
	MinWords int

	// Prompt builds the task description from the request and the results of
	// earlier stages
	Prompt func(req PlanningRequest, pctx Context) string
}

// StageResult is one stage's produced text plus everything needed to
// reproduce it: the request it was derived from and the predecessor texts it
// consumed.
type StageResult struct {
	Stage    string
	Output   string
	Request  PlanningRequest
	Sources  map[string]string
	Duration time.Duration
}

// Context accumulates stage results over one pipeline run. It is owned by a
// single run and discarded after assembly.
type Context map[string]StageResult

// Get returns a prior stage's output text, or empty if the stage has not run
func (c Context) Get(name string) string {
	return c[name].Output
}

// StageError reports a failed delegate call for a stage
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// runStage executes one stage as a single blocking delegate call
func runStage(ctx context.Context, gen llm.Generator, cfg StageConfig, req PlanningRequest, pctx Context) (StageResult, error) {
	system := fmt.Sprintf("Role: %s\nGoal: %s\nBackstory: %s", cfg.Role, cfg.Goal, cfg.Backstory)

	sources := make(map[string]string)
	for name, result := range pctx {
		sources[name] = result.Output
	}

	start := time.Now()
	output, err := gen.Generate(ctx, llm.GenerateRequest{
		System: system,
		Prompt: cfg.Prompt(req, pctx),
		Tools:  cfg.Capabilities,
	})
	if err != nil {
		return StageResult{}, &StageError{Stage: cfg.Name, Err: err}
	}

	return StageResult{
		Stage:    cfg.Name,
		Output:   strings.TrimSpace(output),
		Request:  req,
		Sources:  sources,
		Duration: time.Since(start),
	}, nil
}
