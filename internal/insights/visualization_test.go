package insights

import (
	"testing"

	"github.com/careersynapse/backend/internal/types"
)

// The placeholder level is random in production; tests pin it to a constant.
func pinPlaceholder(t *testing.T, level int) {
	t.Helper()
	prev := placeholderCurrentLevel
	placeholderCurrentLevel = func() int { return level }
	t.Cleanup(func() { placeholderCurrentLevel = prev })
}

func TestVisualizationBars(t *testing.T) {
	pinPlaceholder(t, 25)

	latest := &types.CareerAnalysis{
		SkillGap: []types.SkillGapEntry{
			{SkillName: "FHIR", Importance: types.ImportanceCritical},
			{SkillName: "SQL", Importance: types.ImportanceImportant, Completed: true},
			{SkillName: "Python", Importance: types.ImportanceNiceToHave},
			{SkillName: "HL7", Importance: types.ImportanceCritical},
			{SkillName: "HIPAA", Importance: types.ImportanceCritical},
			{SkillName: "Excel", Importance: types.ImportanceNiceToHave},
		},
	}
	viz := Visualization(latest)

	if len(viz.SkillGapData) != 5 {
		t.Fatalf("len(SkillGapData) = %d, want top 5", len(viz.SkillGapData))
	}

	fhir := viz.SkillGapData[0]
	if fhir.Current != 25 || fhir.Required != 90 || fhir.Gap != 65 {
		t.Fatalf("FHIR bar = %+v, want current 25, required 90, gap 65", fhir)
	}

	sql := viz.SkillGapData[1]
	if sql.Current != 85 {
		t.Fatalf("completed skill current = %d, want fixed 85", sql.Current)
	}
	if sql.Required != 80 || sql.Gap != 0 {
		t.Fatalf("SQL bar = %+v, want required 80 and gap clamped to 0", sql)
	}
}

func TestVisualizationPlaceholderRange(t *testing.T) {
	latest := &types.CareerAnalysis{
		SkillGap: []types.SkillGapEntry{{SkillName: "FHIR", Importance: types.ImportanceCritical}},
	}
	for i := 0; i < 50; i++ {
		viz := Visualization(latest)
		current := viz.SkillGapData[0].Current
		if current < 10 || current > 49 {
			t.Fatalf("placeholder current = %d, want within [10,49]", current)
		}
	}
}

func TestVisualizationPathwayOffsets(t *testing.T) {
	pinPlaceholder(t, 25)

	// 2 of 4 completed: completion rate 50.
	latest := &types.CareerAnalysis{
		SkillGap: []types.SkillGapEntry{
			{SkillName: "A", Importance: types.ImportanceCritical, Completed: true},
			{SkillName: "B", Importance: types.ImportanceCritical, Completed: true},
			{SkillName: "C", Importance: types.ImportanceImportant},
			{SkillName: "D", Importance: types.ImportanceNiceToHave},
		},
	}
	viz := Visualization(latest)

	stages := viz.CareerPathwayData
	if len(stages) != 4 {
		t.Fatalf("len(stages) = %d, want 4", len(stages))
	}
	wantCompleted := []float64{70, 50, 20, 0}
	for i, want := range wantCompleted {
		if stages[i].Completed != want {
			t.Fatalf("stage %q completed = %v, want %v", stages[i].Stage, stages[i].Completed, want)
		}
	}
}

func TestVisualizationDistribution(t *testing.T) {
	pinPlaceholder(t, 25)

	entries := make([]types.SkillGapEntry, 10)
	for i := range entries {
		entries[i] = types.SkillGapEntry{SkillName: "S", Importance: types.ImportanceImportant}
	}
	entries[0].Completed = true
	entries[1].Completed = true

	viz := Visualization(&types.CareerAnalysis{SkillGap: entries})
	dist := viz.SkillDistribution
	if len(dist) != 3 {
		t.Fatalf("len(dist) = %d, want 3", len(dist))
	}
	if dist[0].Value != 2 {
		t.Fatalf("completed slice = %d, want 2", dist[0].Value)
	}
	if dist[1].Value != 2 {
		t.Fatalf("in-progress slice = %d, want 20%% of 10", dist[1].Value)
	}
	if dist[2].Value != 6 {
		t.Fatalf("not-started slice = %d, want remainder 6", dist[2].Value)
	}
}
