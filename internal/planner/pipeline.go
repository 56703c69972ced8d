// internal/planner/pipeline.go
package planner

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"studyplanner/internal/llm"
)

// ProgressEvent describes where a run currently is
type ProgressEvent struct {
	RunID   string `json:"run_id"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Percent int    `json:"percent"`
}

// ProgressFunc receives progress events during a run
type ProgressFunc func(event ProgressEvent)

// Pipeline runs the three planning stages in strict sequence, threading each
// stage's output into the next. One Pipeline value serves one run at a time;
// independent runs use independent Pipelines.
type Pipeline struct {
	gen      llm.Generator
	stages   []StageConfig
	progress ProgressFunc
}

// Plan is the assembled result of a full run
type Plan struct {
	RunID      string
	Request    PlanningRequest
	Stages     []StageResult
	Markdown   string
	StartedAt  time.Time
	FinishedAt time.Time
}

// stagePercents mark pipeline progress as each stage begins
var stagePercents = map[string]int{
	StageUniversityResearch: 35,
	StageLocalGuide:         65,
	StageTimelinePlan:       85,
}

// New creates a pipeline with the three default stages
func New(gen llm.Generator) *Pipeline {
	return &Pipeline{
		gen:    gen,
		stages: defaultStages(),
	}
}

// OnProgress sets the progress callback for subsequent runs
func (p *Pipeline) OnProgress(fn ProgressFunc) {
	p.progress = fn
}

// Run normalizes the raw inputs and executes all stages. A stage failure
// aborts the run: later stages do not execute and no partial document is
// assembled.
func (p *Pipeline) Run(ctx context.Context, inputs map[string]interface{}) (*Plan, error) {
	runID := uuid.NewString()
	startedAt := time.Now()

	req := CollectInputs(inputs)
	p.emit(ProgressEvent{RunID: runID, Stage: "collect_inputs", Message: "Inputs collected", Percent: 10})
	log.Printf("[Pipeline] Run %s started: subject=%q cities=%q", runID, req.Subject, req.CityList())

	pctx := make(Context, len(p.stages))
	results := make([]StageResult, 0, len(p.stages))

	for _, stage := range p.stages {
		p.emit(ProgressEvent{
			RunID:   runID,
			Stage:   stage.Name,
			Message: stage.Title + " in progress",
			Percent: stagePercents[stage.Name],
		})

		result, err := runStage(ctx, p.gen, stage, req, pctx)
		if err != nil {
			log.Printf("[Pipeline] Run %s aborted: %v", runID, err)
			return nil, err
		}
		log.Printf("[Pipeline] Run %s: stage %s done in %s (%d words)",
			runID, stage.Name, result.Duration.Round(time.Millisecond), wordCount(result.Output))

		pctx[stage.Name] = result
		results = append(results, result)
	}

	plan := &Plan{
		RunID:      runID,
		Request:    req,
		Stages:     results,
		Markdown:   p.assemble(results),
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	}
	p.emit(ProgressEvent{RunID: runID, Stage: "done", Message: "Study plan assembled", Percent: 100})
	log.Printf("[Pipeline] Run %s finished in %s", runID, plan.FinishedAt.Sub(startedAt).Round(time.Millisecond))

	return plan, nil
}

// assemble concatenates the stage outputs under fixed section headers,
// separated by horizontal rules
func (p *Pipeline) assemble(results []StageResult) string {
	sections := make([]string, 0, len(results))
	for i, result := range results {
		sections = append(sections, "## "+p.stages[i].Title+"\n\n"+result.Output)
	}
	return strings.Join(sections, "\n\n---\n\n")
}

func (p *Pipeline) emit(event ProgressEvent) {
	if p.progress != nil {
		p.progress(event)
	}
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
