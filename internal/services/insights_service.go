package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/careersynapse/backend/internal/clients/redis"
	"github.com/careersynapse/backend/internal/insights"
	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/report"
	"github.com/careersynapse/backend/internal/repos"
	"github.com/careersynapse/backend/internal/types"
)

const insightsCacheTTL = 5 * time.Minute

// InsightsService assembles the dashboard payload and the downloadable
// reports. The dashboard payload is cached per user for a short window and
// invalidated by the analysis service on every mutation.
type InsightsService interface {
	GetData(ctx context.Context, userID uuid.UUID) (*insights.Data, error)
	GetReportJSON(ctx context.Context, userID uuid.UUID) (*report.JSONReport, error)
	GetReportPDF(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

type insightsService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	analysisRepo repos.CareerAnalysisRepo
	cache        redisclient.Cache
}

func NewInsightsService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	analysisRepo repos.CareerAnalysisRepo,
	cache redisclient.Cache,
) InsightsService {
	return &insightsService{
		db:           db,
		log:          log.With("service", "InsightsService"),
		userRepo:     userRepo,
		analysisRepo: analysisRepo,
		cache:        cache,
	}
}

func (s *insightsService) GetData(ctx context.Context, userID uuid.UUID) (*insights.Data, error) {
	cacheKey := insightsCacheKey(userID)
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached insights.Data
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	completed, err := s.analysisRepo.ListCompletedByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load analyses: %w", err)
	}
	if len(completed) == 0 {
		return nil, notFoundError("No completed analysis found")
	}
	latest := completed[len(completed)-1]

	// Peer rows are independent of the user's own series; fetch them in
	// parallel with nothing else blocking on them.
	var peers []*types.CareerAnalysis
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var gErr error
		peers, gErr = s.analysisRepo.ListCompletedByGoalExcludingUser(groupCtx, nil, latest.CareerGoal, userID)
		return gErr
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("Failed to load peer analyses: %w", err)
	}

	data := &insights.Data{
		KeyInsights: insights.KeyInsights{
			ReadinessGrowth:  insights.ReadinessGrowth(completed),
			StrongestArea:    insights.StrongestArea(latest),
			PriorityGap:      insights.PriorityGap(latest),
			CoursesCompleted: insights.CoursesCompleted(completed),
		},
		ReadinessTrend:      insights.ReadinessTrend(completed),
		BenchmarkComparison: insights.BenchmarkComparison(latest, peers),
		TimeInsights:        insights.CalcTimeInsights(completed),
		SkillImpactInsights: insights.SkillImpactInsights(completed),
		ReportSummary:       insights.Summary(latest, completed),
		VisualizationData:   insights.Visualization(latest),
	}

	if s.cache != nil {
		if raw, err := json.Marshal(data); err == nil {
			s.cache.Set(ctx, cacheKey, raw, insightsCacheTTL)
		}
	}
	return data, nil
}

func (s *insightsService) GetReportJSON(ctx context.Context, userID uuid.UUID) (*report.JSONReport, error) {
	user, analyses, err := s.loadReportInputs(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := report.BuildJSON(user, analyses)
	return &out, nil
}

func (s *insightsService) GetReportPDF(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	user, analyses, err := s.loadReportInputs(ctx, userID)
	if err != nil {
		return nil, err
	}
	pdfBytes, err := report.BuildPDF(user, analyses[0])
	if err != nil {
		return nil, fmt.Errorf("Failed to render PDF report: %w", err)
	}
	return pdfBytes, nil
}

// loadReportInputs fetches the user row and the completed history (newest
// first) concurrently; both are needed by either report format.
func (s *insightsService) loadReportInputs(ctx context.Context, userID uuid.UUID) (*types.User, []*types.CareerAnalysis, error) {
	var (
		user     *types.User
		analyses []*types.CareerAnalysis
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		users, gErr := s.userRepo.GetByIDs(groupCtx, nil, []uuid.UUID{userID})
		if gErr != nil {
			return fmt.Errorf("Failed to load user: %w", gErr)
		}
		if len(users) == 0 {
			return notFoundError("User not found")
		}
		user = users[0]
		return nil
	})
	group.Go(func() error {
		completed, gErr := s.analysisRepo.ListCompletedByUserID(groupCtx, nil, userID)
		if gErr != nil {
			return fmt.Errorf("Failed to load analyses: %w", gErr)
		}
		// Reports want newest first.
		for i, j := 0, len(completed)-1; i < j; i, j = i+1, j-1 {
			completed[i], completed[j] = completed[j], completed[i]
		}
		analyses = completed
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	if len(analyses) == 0 {
		return nil, nil, notFoundError("No completed analysis found")
	}
	return user, analyses, nil
}
