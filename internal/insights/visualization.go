package insights

import (
	"math"
	"math/rand"

	"github.com/careersynapse/backend/internal/types"
)

// placeholderCurrentLevel synthesizes a "current level" for a skill that is
// not completed. There is no backing data for it, so the value is a random
// 10-49 and the visualization payload is NOT deterministic between calls.
// Swappable so tests (and an eventual real computation) can replace it
// without touching callers.
var placeholderCurrentLevel = func() int {
	return rand.Intn(40) + 10
}

// Visualization builds the chart-ready payload from the latest analysis.
func Visualization(latest *types.CareerAnalysis) VisualizationData {
	entries := latest.SkillGap
	barEntries := entries
	if len(barEntries) > 5 {
		barEntries = barEntries[:5]
	}

	bars := make([]SkillGapBar, 0, len(barEntries))
	for _, entry := range barEntries {
		current := placeholderCurrentLevel()
		if entry.Completed {
			current = 85
		}
		required := types.RequiredProficiencyFor(entry.Importance)
		gap := required - current
		if gap < 0 {
			gap = 0
		}
		bars = append(bars, SkillGapBar{
			Skill:    entry.SkillName,
			Current:  current,
			Required: required,
			Gap:      gap,
		})
	}

	total := len(entries)
	completed := 0
	for _, entry := range entries {
		if entry.Completed {
			completed++
		}
	}
	completionRate := 0.0
	if total > 0 {
		completionRate = float64(completed) / float64(total) * 100
	}

	stages := []PathwayStage{
		{Stage: "Foundation", Completed: math.Min(100, completionRate+20), Total: 100, Skills: skillNamesByImportance(entries, types.ImportanceNiceToHave)},
		{Stage: "Technical", Completed: math.Min(100, completionRate), Total: 100, Skills: skillNamesByImportance(entries, types.ImportanceImportant)},
		{Stage: "Advanced", Completed: math.Max(0, completionRate-30), Total: 100, Skills: skillNamesByImportance(entries, types.ImportanceCritical)},
		{Stage: "Leadership", Completed: math.Max(0, completionRate-50), Total: 100, Skills: []string{"Project Management", "Team Leadership"}},
	}

	inProgress := total * 20 / 100
	distribution := []DistributionSlice{
		{Name: "Completed", Value: completed, Color: "#22c55e"},
		{Name: "In Progress", Value: inProgress, Color: "#3b82f6"},
		{Name: "Not Started", Value: total - completed - inProgress, Color: "#ef4444"},
	}

	return VisualizationData{
		SkillGapData:      bars,
		CareerPathwayData: stages,
		SkillDistribution: distribution,
	}
}

func skillNamesByImportance(entries []types.SkillGapEntry, importance string) []string {
	names := []string{}
	for _, entry := range entries {
		if entry.Importance == importance {
			names = append(names, entry.SkillName)
		}
	}
	return names
}
