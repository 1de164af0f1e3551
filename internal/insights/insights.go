package insights

import (
	"fmt"
	"math"
	"time"

	"github.com/careersynapse/backend/internal/types"
)

// TargetReadiness is the fixed benchmark every learner is measured against.
const TargetReadiness = 80

// HoursPerSkill is the fixed learning-hour increment credited per completed
// skill, also used to estimate total hours when none were recorded.
const HoursPerSkill = 15

// The aggregator operates on a user's completed analyses ordered oldest
// first. Missing data degrades to neutral/zero values; nothing here returns
// an error.

// ReadinessGrowth compares the last two analyses in the sequence.
func ReadinessGrowth(analyses []*types.CareerAnalysis) Insight {
	if len(analyses) < 2 {
		return Insight{
			Value:       "0%",
			Description: "Not enough data for growth calculation",
			Status:      "neutral",
		}
	}

	latest := analyses[len(analyses)-1]
	previous := analyses[len(analyses)-2]
	growth := latest.Readiness() - previous.Readiness()

	value := fmt.Sprintf("%.1f%%", growth)
	if growth > 0 {
		value = fmt.Sprintf("+%.1f%%", growth)
	}

	direction := "decreased"
	status := "negative"
	switch {
	case growth > 0:
		direction = "increased"
		status = "positive"
	case growth == 0:
		status = "neutral"
	}

	return Insight{
		Value:       value,
		Description: fmt.Sprintf("Readiness %s by %.1f%% since last analysis", direction, math.Abs(growth)),
		Status:      status,
	}
}

// StrongestArea is the first completed entry in the latest analysis, in
// entry order. Positional by policy, not ranked by any score.
func StrongestArea(latest *types.CareerAnalysis) Insight {
	for _, entry := range latest.SkillGap {
		if entry.Completed {
			return Insight{
				Value:       entry.SkillName,
				Description: fmt.Sprintf("%s - Completed and mastered", entry.SkillName),
				Status:      "positive",
			}
		}
	}
	return Insight{
		Value:       "None yet",
		Description: "Complete your first skill to see strongest areas",
		Status:      "neutral",
	}
}

// PriorityGap is the first critical, not-yet-completed entry in entry order.
func PriorityGap(latest *types.CareerAnalysis) Insight {
	for _, entry := range latest.SkillGap {
		if entry.Importance == types.ImportanceCritical && !entry.Completed {
			return Insight{
				Value:       entry.SkillName,
				Description: fmt.Sprintf("%s - Critical skill gap identified", entry.SkillName),
				Status:      "warning",
			}
		}
	}
	return Insight{
		Value:       "None",
		Description: "All critical skills completed",
		Status:      "positive",
	}
}

// CoursesCompleted sums completed entries across every analysis. A skill
// completed in several successive analyses counts each time; that
// non-deduplicated behavior is kept for compatibility.
func CoursesCompleted(analyses []*types.CareerAnalysis) Insight {
	total := 0
	for _, analysis := range analyses {
		for _, entry := range analysis.SkillGap {
			if entry.Completed {
				total++
			}
		}
	}
	return Insight{
		Value:       fmt.Sprintf("%d", total),
		Description: fmt.Sprintf("%d skills completed across all analyses", total),
		Status:      "positive",
	}
}

func ReadinessTrend(analyses []*types.CareerAnalysis) []TrendPoint {
	points := make([]TrendPoint, 0, len(analyses))
	for i, analysis := range analyses {
		points = append(points, TrendPoint{
			Week:      fmt.Sprintf("Analysis %d", i+1),
			Readiness: analysis.Readiness(),
			Date:      analysis.CreatedAt,
		})
	}
	return points
}

// BenchmarkComparison ranks the user's latest readiness against peers
// (other users' completed analyses with the same career goal). With no
// peers both the average and the percentile default to 50.
func BenchmarkComparison(latest *types.CareerAnalysis, peers []*types.CareerAnalysis) Benchmark {
	userReadiness := latest.Readiness()

	peerAverage := 50.0
	percentileRank := 50
	if len(peers) > 0 {
		sum := 0.0
		ahead := 0
		for _, peer := range peers {
			r := peer.Readiness()
			sum += r
			if userReadiness > r {
				ahead++
			}
		}
		peerAverage = sum / float64(len(peers))
		percentileRank = int(math.Round(float64(ahead) / float64(len(peers)) * 100))
	}

	return Benchmark{
		UserReadiness:  int(math.Round(userReadiness)),
		PeerAverage:    int(math.Round(peerAverage)),
		Benchmark:      TargetReadiness,
		PercentileRank: percentileRank,
		Comparison:     fmt.Sprintf("You are ahead of %d%% of learners targeting the same role", percentileRank),
	}
}

// CalcTimeInsights projects time to the target readiness from historical
// progress. Fewer than two analyses yields the all-zero block.
func CalcTimeInsights(analyses []*types.CareerAnalysis) TimeInsights {
	if len(analyses) < 2 {
		return TimeInsights{}
	}

	count := len(analyses)
	latest := analyses[count-1]
	currentReadiness := latest.Readiness()
	firstReadiness := analyses[0].Readiness()

	avgWeeklyProgress := (currentReadiness - firstReadiness) / float64(count)

	estimatedWeeks := 12
	if avgWeeklyProgress > 0 {
		estimatedWeeks = int(math.Ceil((TargetReadiness - currentReadiness) / avgWeeklyProgress))
	}
	if estimatedWeeks < 1 {
		estimatedWeeks = 1
	}

	avgHours := latest.TotalLearningHours / float64(count)
	if avgHours == 0 {
		avgHours = 8.5
	}

	consistency := count * 10
	if consistency > 85 {
		consistency = 85
	}

	return TimeInsights{
		AvgHoursPerWeek:        avgHours,
		ConsistencyScore:       consistency,
		EstimatedWeeksToReady:  estimatedWeeks,
		EstimatedMonthsToReady: math.Round(float64(estimatedWeeks)/4.33*10) / 10,
	}
}

// SkillImpactInsights walks consecutive pairs and attributes the readiness
// delta of each transition, whole, to every skill newly completed in it.
// Only the most recent five insights are kept.
func SkillImpactInsights(analyses []*types.CareerAnalysis) []SkillImpact {
	var results []SkillImpact

	for i := 1; i < len(analyses); i++ {
		current := analyses[i]
		previous := analyses[i-1]

		previouslyCompleted := make(map[string]bool)
		for _, entry := range previous.SkillGap {
			if entry.Completed {
				previouslyCompleted[entry.SkillName] = true
			}
		}

		impact := current.Readiness() - previous.Readiness()
		for _, entry := range current.SkillGap {
			if !entry.Completed || previouslyCompleted[entry.SkillName] {
				continue
			}
			results = append(results, SkillImpact{
				ID:          len(results) + 1,
				Action:      fmt.Sprintf("Completed %q", entry.SkillName),
				Result:      fmt.Sprintf("%s upgraded to completed status", entry.SkillName),
				Impact:      fmt.Sprintf("+%.1f%% readiness", impact),
				Date:        current.CreatedAt,
				ImpactValue: impact,
			})
		}
	}

	if len(results) > 5 {
		results = results[len(results)-5:]
	}
	return results
}

func Summary(latest *types.CareerAnalysis, analyses []*types.CareerAnalysis) ReportSummary {
	skillsAssessed := len(latest.SkillGap)
	skillsLearned := 0
	for _, entry := range latest.SkillGap {
		if entry.Completed {
			skillsLearned++
		}
	}

	currentReadiness := latest.Readiness()
	initialReadiness := 0.0
	if len(analyses) > 0 {
		initialReadiness = analyses[0].Readiness()
	}

	totalHours := latest.TotalLearningHours
	if totalHours == 0 {
		totalHours = float64(skillsLearned * HoursPerSkill)
	}

	return ReportSummary{
		GeneratedDate:    time.Now().Format("1/2/2006"),
		ReportPeriod:     "All time",
		SkillsAssessed:   skillsAssessed,
		SkillsLearned:    skillsLearned,
		CoursesCompleted: skillsLearned,
		TotalHours:       totalHours,
		CurrentReadiness: int(math.Round(currentReadiness)),
		TargetReadiness:  TargetReadiness,
		ReadinessGain:    int(math.Round(currentReadiness - initialReadiness)),
	}
}
