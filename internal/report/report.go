package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/careersynapse/backend/internal/insights"
	"github.com/careersynapse/backend/internal/types"
)

// JSONReport is the downloadable JSON export of a user's full history.
type JSONReport struct {
	User           types.PublicUser           `json:"user"`
	GeneratedAt    time.Time                  `json:"generatedAt"`
	Analyses       []*types.CareerAnalysis    `json:"analyses"`
	Visualizations insights.VisualizationData `json:"visualizations"`
	Summary        JSONSummary                `json:"summary"`
}

type JSONSummary struct {
	TotalAnalyses        int     `json:"totalAnalyses"`
	LatestGapPercentage  float64 `json:"latestGapPercentage"`
	AverageGapPercentage float64 `json:"averageGapPercentage"`
	ReadinessScore       float64 `json:"readinessScore"`
}

// BuildJSON assembles the JSON report. newestFirst must be ordered newest
// first; the summary averages gap percentages across the whole history.
func BuildJSON(user *types.User, newestFirst []*types.CareerAnalysis) JSONReport {
	latest := newestFirst[0]

	gapSum := 0.0
	for _, analysis := range newestFirst {
		if analysis.GapPercentage != nil {
			gapSum += *analysis.GapPercentage
		}
	}

	latestGap := 0.0
	if latest.GapPercentage != nil {
		latestGap = *latest.GapPercentage
	}

	return JSONReport{
		User:           user.Public(),
		GeneratedAt:    time.Now().UTC(),
		Analyses:       newestFirst,
		Visualizations: insights.Visualization(latest),
		Summary: JSONSummary{
			TotalAnalyses:        len(newestFirst),
			LatestGapPercentage:  latestGap,
			AverageGapPercentage: gapSum / float64(len(newestFirst)),
			ReadinessScore:       latest.Readiness(),
		},
	}
}

// BuildPDF renders the insights report as a PDF document.
func BuildPDF(user *types.User, latest *types.CareerAnalysis) ([]byte, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.Text(50, 60, "Career Insights Report")

	doc.SetFont("Helvetica", "", 12)
	doc.Text(50, 85, fmt.Sprintf("Generated for: %s", user.Username))
	doc.Text(50, 105, fmt.Sprintf("Date: %s", time.Now().Format("1/2/2006")))

	doc.SetFont("Helvetica", "B", 16)
	doc.Text(50, 145, "Career Analysis Summary")

	gap := 0.0
	if latest.GapPercentage != nil {
		gap = *latest.GapPercentage
	}
	doc.SetFont("Helvetica", "", 12)
	doc.Text(50, 170, fmt.Sprintf("Target Role: %s", latest.CareerGoal))
	doc.Text(50, 190, fmt.Sprintf("Gap Percentage: %.0f%%", gap))
	doc.Text(50, 210, fmt.Sprintf("Readiness Score: %.0f%%", latest.Readiness()))

	viz := insights.Visualization(latest)
	doc.SetFont("Helvetica", "B", 14)
	doc.Text(50, 250, "Data Visualizations Summary:")
	doc.SetFont("Helvetica", "", 10)
	doc.Text(70, 270, "- Career Pathway Progress: "+pathwayLine(viz.CareerPathwayData))
	doc.Text(70, 290, "- Skill Gap Analysis: "+skillGapLine(viz.SkillGapData))
	doc.Text(70, 310, "- Skill Distribution: "+distributionLine(viz.SkillDistribution))

	doc.SetFont("Helvetica", "B", 14)
	doc.Text(50, 350, "Skill Gaps:")

	doc.SetFont("Helvetica", "", 10)
	y := 370.0
	for i, entry := range latest.SkillGap {
		if y > 780 {
			doc.AddPage()
			y = 50
		}
		doc.Text(70, y, fmt.Sprintf("%d. %s (%s)", i+1, entry.SkillName, entry.Importance))
		y += 20
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf report: %w", err)
	}
	return buf.Bytes(), nil
}

func pathwayLine(stages []insights.PathwayStage) string {
	parts := make([]string, 0, len(stages))
	for _, stage := range stages {
		parts = append(parts, fmt.Sprintf("%s (%.0f%%)", stage.Stage, stage.Completed))
	}
	return strings.Join(parts, ", ")
}

func skillGapLine(bars []insights.SkillGapBar) string {
	parts := make([]string, 0, len(bars))
	for _, bar := range bars {
		parts = append(parts, fmt.Sprintf("%s (%d%% gap)", bar.Skill, bar.Gap))
	}
	return strings.Join(parts, ", ")
}

func distributionLine(slices []insights.DistributionSlice) string {
	parts := make([]string, 0, len(slices))
	for _, slice := range slices {
		parts = append(parts, fmt.Sprintf("%s: %d", slice.Name, slice.Value))
	}
	return strings.Join(parts, ", ")
}
