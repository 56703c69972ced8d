// internal/planner/stages.go
package planner

import (
	"fmt"

	"studyplanner/internal/tools"
)

// Stage result keys, in execution order
const (
	StageUniversityResearch = "university_report"
	StageLocalGuide         = "local_guide"
	StageTimelinePlan       = "timeline_plan"
)

// defaultStages returns the three planning stages in their fixed order:
// university research, local living guide, timeline and budget. Each consumes
// the outputs of every earlier stage.
func defaultStages() []StageConfig {
	return []StageConfig{
		{
			Name:  StageUniversityResearch,
			Title: "University Research",
			Role:  "University Selection Research Expert",
			Goal:  "Research rankings, costs, admission requirements, deadlines, and program specifics.",
			Backstory: "Senior education consultant with 15 years of experience helping international students. " +
				"Expert in program rankings, admissions, international requirements, and scholarships.",
			Capabilities: []string{tools.CapabilitySearch, tools.CapabilityScrape},
			MinWords:     800,
			Prompt: func(req PlanningRequest, pctx Context) string {
				return fmt.Sprintf(`CRITICAL: Provide an 800+ word university research report for subject '%s' and study level '%s'.
Cities to analyze: %s. Origin: %s. Period: %s.
Include: program rankings, admission requirements with exact thresholds, tuition by year, deadlines, scholarships, and employment outcomes.`,
					req.Subject, req.StudyLevel, req.CityList(), req.Origin, req.DateRange)
			},
		},
		{
			Name:  StageLocalGuide,
			Title: "Local Living Guide",
			Role:  "Local City Student Life Expert",
			Goal:  "Provide cost of living, housing, transport, and cultural integration with specific prices and places.",
			Backstory: "Local expert with insider knowledge of major university cities. " +
				"Provides exact prices and practical tips.",
			Capabilities: []string{tools.CapabilitySearch, tools.CapabilityScrape},
			MinWords:     700,
			Prompt: func(req PlanningRequest, pctx Context) string {
				return fmt.Sprintf(`Using the selected universities and insights below, write a 700+ word local living guide.
Subject: %s, Level: %s, Origin: %s. Period: %s. Cities: %s.
SOURCE REPORT: %s
Include: housing options with exact costs, neighborhood tips, transport passes and monthly costs, food costs, utilities, mobile/internet, textbooks, entertainment.`,
					req.Subject, req.StudyLevel, req.Origin, req.DateRange, req.CityList(),
					pctx.Get(StageUniversityResearch))
			},
		},
		{
			Name:  StageTimelinePlan,
			Title: "Timeline & Budget Plan",
			Role:  "Study Abroad Travel Timeline Specialist",
			Goal:  "Create a month-by-month plan with dates, visa steps, budget totals, and logistics.",
			Backstory: "Specialist in international study timelines and logistics, visas, flights, and budget planning.",
			Capabilities: []string{tools.CapabilitySearch, tools.CapabilityScrape, tools.CapabilityCalculate},
			MinWords:     1000,
			Prompt: func(req PlanningRequest, pctx Context) string {
				return fmt.Sprintf(`Create a 1000+ word month-by-month timeline and budget for %s, subject '%s', level '%s'.
SOURCE REPORTS:
- University research: %s
- Local living guide: %s
Include: standardized test dates, application deadlines, deposit timings, visa steps with dates, flight booking windows, arrival setup, semester milestones.`,
					req.DateRange, req.Subject, req.StudyLevel,
					pctx.Get(StageUniversityResearch), pctx.Get(StageLocalGuide))
			},
		},
	}
}
