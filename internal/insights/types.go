package insights

import "time"

// Insight is one headline card on the dashboard.
type Insight struct {
	Value       string `json:"value"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type KeyInsights struct {
	ReadinessGrowth  Insight `json:"readinessGrowth"`
	StrongestArea    Insight `json:"strongestArea"`
	PriorityGap      Insight `json:"priorityGap"`
	CoursesCompleted Insight `json:"coursesCompleted"`
}

type TrendPoint struct {
	Week      string    `json:"week"`
	Readiness float64   `json:"readiness"`
	Date      time.Time `json:"date"`
}

type Benchmark struct {
	UserReadiness  int    `json:"userReadiness"`
	PeerAverage    int    `json:"peerAverage"`
	Benchmark      int    `json:"benchmark"`
	PercentileRank int    `json:"percentileRank"`
	Comparison     string `json:"comparison"`
}

type TimeInsights struct {
	AvgHoursPerWeek        float64 `json:"avgHoursPerWeek"`
	ConsistencyScore       int     `json:"consistencyScore"`
	EstimatedWeeksToReady  int     `json:"estimatedWeeksToReady"`
	EstimatedMonthsToReady float64 `json:"estimatedMonthsToReady"`
}

type SkillImpact struct {
	ID          int       `json:"id"`
	Action      string    `json:"action"`
	Result      string    `json:"result"`
	Impact      string    `json:"impact"`
	Date        time.Time `json:"date"`
	ImpactValue float64   `json:"impactValue"`
}

type ReportSummary struct {
	GeneratedDate    string `json:"generatedDate"`
	ReportPeriod     string `json:"reportPeriod"`
	SkillsAssessed   int    `json:"skillsAssessed"`
	SkillsLearned    int    `json:"skillsLearned"`
	CoursesCompleted int    `json:"coursesCompleted"`
	TotalHours       float64 `json:"totalHours"`
	CurrentReadiness int    `json:"currentReadiness"`
	TargetReadiness  int    `json:"targetReadiness"`
	ReadinessGain    int    `json:"readinessGain"`
}

type SkillGapBar struct {
	Skill    string `json:"skill"`
	Current  int    `json:"current"`
	Required int    `json:"required"`
	Gap      int    `json:"gap"`
}

type PathwayStage struct {
	Stage     string   `json:"stage"`
	Completed float64  `json:"completed"`
	Total     int      `json:"total"`
	Skills    []string `json:"skills"`
}

type DistributionSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type VisualizationData struct {
	SkillGapData      []SkillGapBar       `json:"skillGapData"`
	CareerPathwayData []PathwayStage      `json:"careerPathwayData"`
	SkillDistribution []DistributionSlice `json:"skillDistribution"`
}

// Data is the full payload behind GET /api/insights/data.
type Data struct {
	KeyInsights         KeyInsights       `json:"keyInsights"`
	ReadinessTrend      []TrendPoint      `json:"readinessTrend"`
	BenchmarkComparison Benchmark         `json:"benchmarkComparison"`
	TimeInsights        TimeInsights      `json:"timeInsights"`
	SkillImpactInsights []SkillImpact     `json:"skillImpactInsights"`
	ReportSummary       ReportSummary     `json:"reportSummary"`
	VisualizationData   VisualizationData `json:"visualizationData"`
}
