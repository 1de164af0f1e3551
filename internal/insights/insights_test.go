package insights

import (
	"math"
	"testing"
	"time"

	"github.com/careersynapse/backend/internal/types"
)

func analysisWithReadiness(score float64) *types.CareerAnalysis {
	s := score
	return &types.CareerAnalysis{ReadinessScore: &s, AnalysisCompleted: true}
}

func analysisWithGap(gap float64) *types.CareerAnalysis {
	g := gap
	return &types.CareerAnalysis{GapPercentage: &g, AnalysisCompleted: true}
}

func TestReadinessResolution(t *testing.T) {
	tests := []struct {
		name     string
		analysis *types.CareerAnalysis
		want     float64
	}{
		{"score wins", &types.CareerAnalysis{ReadinessScore: f64(70), GapPercentage: f64(50)}, 70},
		{"gap complement", analysisWithGap(35), 65},
		{"both absent", &types.CareerAnalysis{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.analysis.Readiness(); got != tt.want {
				t.Fatalf("Readiness() = %v, want %v", got, tt.want)
			}
		})
	}
}

func f64(v float64) *float64 {
	return &v
}

func TestReadinessGrowthPositive(t *testing.T) {
	analyses := []*types.CareerAnalysis{
		analysisWithReadiness(50),
		analysisWithReadiness(64),
	}
	got := ReadinessGrowth(analyses)
	if got.Value != "+14.0%" {
		t.Fatalf("Value = %q, want %q", got.Value, "+14.0%")
	}
	if got.Status != "positive" {
		t.Fatalf("Status = %q, want positive", got.Status)
	}
}

func TestReadinessGrowthSingleAnalysis(t *testing.T) {
	got := ReadinessGrowth([]*types.CareerAnalysis{analysisWithReadiness(50)})
	if got.Value != "0%" || got.Status != "neutral" {
		t.Fatalf("got %+v, want neutral zero-growth", got)
	}
}

func TestReadinessGrowthNegative(t *testing.T) {
	analyses := []*types.CareerAnalysis{
		analysisWithReadiness(60),
		analysisWithReadiness(55.5),
	}
	got := ReadinessGrowth(analyses)
	if got.Value != "-4.5%" {
		t.Fatalf("Value = %q, want -4.5%%", got.Value)
	}
	if got.Status != "negative" {
		t.Fatalf("Status = %q, want negative", got.Status)
	}
}

func TestStrongestAreaPositional(t *testing.T) {
	latest := &types.CareerAnalysis{
		SkillGap: []types.SkillGapEntry{
			{SkillName: "FHIR", Completed: false},
			{SkillName: "SQL", Completed: true},
			{SkillName: "Python", Completed: true},
		},
	}
	got := StrongestArea(latest)
	if got.Value != "SQL" {
		t.Fatalf("Value = %q, want SQL (first completed in entry order)", got.Value)
	}
}

func TestStrongestAreaNoneCompleted(t *testing.T) {
	got := StrongestArea(&types.CareerAnalysis{SkillGap: []types.SkillGapEntry{{SkillName: "FHIR"}}})
	if got.Value != "None yet" || got.Status != "neutral" {
		t.Fatalf("got %+v, want None yet / neutral", got)
	}
}

func TestPriorityGapFirstCriticalUnmet(t *testing.T) {
	latest := &types.CareerAnalysis{
		SkillGap: []types.SkillGapEntry{
			{SkillName: "SQL", Importance: types.ImportanceImportant},
			{SkillName: "HIPAA", Importance: types.ImportanceCritical, Completed: true},
			{SkillName: "HL7", Importance: types.ImportanceCritical},
			{SkillName: "FHIR", Importance: types.ImportanceCritical},
		},
	}
	got := PriorityGap(latest)
	if got.Value != "HL7" {
		t.Fatalf("Value = %q, want HL7", got.Value)
	}
	if got.Status != "warning" {
		t.Fatalf("Status = %q, want warning", got.Status)
	}
}

func TestCoursesCompletedNotDeduplicated(t *testing.T) {
	analyses := []*types.CareerAnalysis{
		{SkillGap: []types.SkillGapEntry{{SkillName: "SQL", Completed: true}}},
		{SkillGap: []types.SkillGapEntry{{SkillName: "SQL", Completed: true}, {SkillName: "FHIR", Completed: true}}},
	}
	got := CoursesCompleted(analyses)
	if got.Value != "3" {
		t.Fatalf("Value = %q, want 3 (repeat completions count each time)", got.Value)
	}
}

func TestReadinessTrendLabels(t *testing.T) {
	now := time.Now()
	analyses := []*types.CareerAnalysis{
		{ReadinessScore: f64(40), CreatedAt: now.Add(-48 * time.Hour)},
		{ReadinessScore: f64(55), CreatedAt: now},
	}
	points := ReadinessTrend(analyses)
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
	if points[0].Week != "Analysis 1" || points[1].Week != "Analysis 2" {
		t.Fatalf("week labels = %q, %q", points[0].Week, points[1].Week)
	}
	if points[1].Readiness != 55 {
		t.Fatalf("points[1].Readiness = %v, want 55", points[1].Readiness)
	}
}

func TestBenchmarkComparisonNoPeers(t *testing.T) {
	got := BenchmarkComparison(analysisWithReadiness(62), nil)
	if got.PeerAverage != 50 {
		t.Fatalf("PeerAverage = %d, want default 50", got.PeerAverage)
	}
	if got.PercentileRank != 50 {
		t.Fatalf("PercentileRank = %d, want default 50", got.PercentileRank)
	}
	if got.Benchmark != 80 {
		t.Fatalf("Benchmark = %d, want 80", got.Benchmark)
	}
	if got.UserReadiness != 62 {
		t.Fatalf("UserReadiness = %d, want 62", got.UserReadiness)
	}
}

func TestBenchmarkComparisonWithPeers(t *testing.T) {
	peers := []*types.CareerAnalysis{
		analysisWithReadiness(40),
		analysisWithReadiness(50),
		analysisWithReadiness(70),
		analysisWithGap(60), // readiness 40
	}
	got := BenchmarkComparison(analysisWithReadiness(60), peers)
	if got.PeerAverage != 50 {
		t.Fatalf("PeerAverage = %d, want 50", got.PeerAverage)
	}
	// Ahead of 3 of 4 peers.
	if got.PercentileRank != 75 {
		t.Fatalf("PercentileRank = %d, want 75", got.PercentileRank)
	}
}

func TestTimeInsightsFewerThanTwo(t *testing.T) {
	got := CalcTimeInsights([]*types.CareerAnalysis{analysisWithReadiness(50)})
	if got != (TimeInsights{}) {
		t.Fatalf("got %+v, want zero block", got)
	}
}

func TestTimeInsightsProjection(t *testing.T) {
	first := analysisWithReadiness(30)
	latest := analysisWithReadiness(68)
	latest.TotalLearningHours = 20
	got := CalcTimeInsights([]*types.CareerAnalysis{first, latest})

	// avgWeeklyProgress = (68-30)/2 = 19; ceil((80-68)/19) = 1.
	if got.EstimatedWeeksToReady != 1 {
		t.Fatalf("EstimatedWeeksToReady = %d, want 1", got.EstimatedWeeksToReady)
	}
	if got.AvgHoursPerWeek != 10 {
		t.Fatalf("AvgHoursPerWeek = %v, want 10", got.AvgHoursPerWeek)
	}
	if got.ConsistencyScore != 20 {
		t.Fatalf("ConsistencyScore = %d, want 20", got.ConsistencyScore)
	}
	if got.EstimatedMonthsToReady != 0.2 {
		t.Fatalf("EstimatedMonthsToReady = %v, want 0.2", got.EstimatedMonthsToReady)
	}
}

func TestTimeInsightsDefaults(t *testing.T) {
	// No progress: default 12 weeks; no recorded hours: default 8.5.
	got := CalcTimeInsights([]*types.CareerAnalysis{analysisWithReadiness(50), analysisWithReadiness(50)})
	if got.EstimatedWeeksToReady != 12 {
		t.Fatalf("EstimatedWeeksToReady = %d, want 12", got.EstimatedWeeksToReady)
	}
	if got.AvgHoursPerWeek != 8.5 {
		t.Fatalf("AvgHoursPerWeek = %v, want 8.5", got.AvgHoursPerWeek)
	}
	if got.ConsistencyScore != 20 {
		t.Fatalf("ConsistencyScore = %d, want 20", got.ConsistencyScore)
	}
}

func TestTimeInsightsConsistencyCap(t *testing.T) {
	analyses := make([]*types.CareerAnalysis, 10)
	for i := range analyses {
		analyses[i] = analysisWithReadiness(50)
	}
	got := CalcTimeInsights(analyses)
	if got.ConsistencyScore != 85 {
		t.Fatalf("ConsistencyScore = %d, want 85 cap", got.ConsistencyScore)
	}
}

func TestSkillImpactOnlyNewlyCompleted(t *testing.T) {
	earlier := analysisWithReadiness(40)
	earlier.SkillGap = []types.SkillGapEntry{
		{SkillName: "SQL", Completed: true},
		{SkillName: "FHIR"},
		{SkillName: "HL7"},
	}
	later := analysisWithReadiness(52)
	later.SkillGap = []types.SkillGapEntry{
		{SkillName: "SQL", Completed: true},
		{SkillName: "FHIR", Completed: true},
		{SkillName: "HL7", Completed: true},
	}

	got := SkillImpactInsights([]*types.CareerAnalysis{earlier, later})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (SQL was already completed)", len(got))
	}
	for _, impact := range got {
		if impact.ImpactValue != 12 {
			t.Fatalf("ImpactValue = %v, want the full 12-point delta on every skill", impact.ImpactValue)
		}
	}
}

func TestSkillImpactKeepsLastFive(t *testing.T) {
	analyses := []*types.CareerAnalysis{analysisWithReadiness(30)}
	skills := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, name := range skills {
		next := analysisWithReadiness(30 + float64(i+1))
		var entries []types.SkillGapEntry
		for j := 0; j <= i; j++ {
			entries = append(entries, types.SkillGapEntry{SkillName: skills[j], Completed: true})
		}
		next.SkillGap = entries
		_ = name
		analyses = append(analyses, next)
	}
	got := SkillImpactInsights(analyses)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	if got[len(got)-1].Action != `Completed "G"` {
		t.Fatalf("last action = %q, want the most recent completion", got[len(got)-1].Action)
	}
}

func TestSummary(t *testing.T) {
	first := analysisWithReadiness(32.4)
	latest := analysisWithReadiness(61.8)
	latest.SkillGap = []types.SkillGapEntry{
		{SkillName: "SQL", Completed: true},
		{SkillName: "FHIR", Completed: true},
		{SkillName: "HL7"},
	}
	got := Summary(latest, []*types.CareerAnalysis{first, latest})

	if got.SkillsAssessed != 3 || got.SkillsLearned != 2 {
		t.Fatalf("assessed/learned = %d/%d, want 3/2", got.SkillsAssessed, got.SkillsLearned)
	}
	if got.TotalHours != 30 {
		t.Fatalf("TotalHours = %v, want 2*15 fallback", got.TotalHours)
	}
	if got.CurrentReadiness != 62 {
		t.Fatalf("CurrentReadiness = %d, want round(61.8)", got.CurrentReadiness)
	}
	if got.ReadinessGain != int(math.Round(61.8-32.4)) {
		t.Fatalf("ReadinessGain = %d, want %d", got.ReadinessGain, int(math.Round(61.8-32.4)))
	}
}

func TestSummaryStoredHoursWin(t *testing.T) {
	latest := analysisWithReadiness(50)
	latest.TotalLearningHours = 45
	latest.SkillGap = []types.SkillGapEntry{{SkillName: "SQL", Completed: true}}
	got := Summary(latest, []*types.CareerAnalysis{latest})
	if got.TotalHours != 45 {
		t.Fatalf("TotalHours = %v, want stored 45", got.TotalHours)
	}
	if got.ReadinessGain != 0 {
		t.Fatalf("ReadinessGain = %d, want 0 with a single analysis", got.ReadinessGain)
	}
}
