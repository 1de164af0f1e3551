package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careersynapse/backend/internal/inference"
	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/types"
)

type fakeAnalysisRepo struct {
	latest *types.CareerAnalysis
	saved  *types.CareerAnalysis
}

func (r *fakeAnalysisRepo) Create(ctx context.Context, tx *gorm.DB, analyses []*types.CareerAnalysis) ([]*types.CareerAnalysis, error) {
	return analyses, nil
}

func (r *fakeAnalysisRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.CareerAnalysis, error) {
	return nil, nil
}

func (r *fakeAnalysisRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CareerAnalysis, error) {
	return nil, nil
}

func (r *fakeAnalysisRepo) ListCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CareerAnalysis, error) {
	return nil, nil
}

func (r *fakeAnalysisRepo) LatestCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CareerAnalysis, error) {
	return r.latest, nil
}

func (r *fakeAnalysisRepo) LatestPendingByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CareerAnalysis, error) {
	return nil, nil
}

func (r *fakeAnalysisRepo) ListCompletedByGoalExcludingUser(ctx context.Context, tx *gorm.DB, careerGoal string, excludeUserID uuid.UUID) ([]*types.CareerAnalysis, error) {
	return nil, nil
}

func (r *fakeAnalysisRepo) Save(ctx context.Context, tx *gorm.DB, analysis *types.CareerAnalysis) error {
	r.saved = analysis
	return nil
}

func (r *fakeAnalysisRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func testAnalysisService(t *testing.T, repo *fakeAnalysisRepo) AnalysisService {
	t.Helper()
	log, err := logger.New("debug")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	var inferenceClient inference.Client
	return NewAnalysisService(nil, log, repo, inferenceClient, nil)
}

func completedAnalysis(entries []types.SkillGapEntry) *types.CareerAnalysis {
	score := 40.0
	return &types.CareerAnalysis{
		ID:                uuid.New(),
		UserID:            uuid.New(),
		SkillGap:          entries,
		ReadinessScore:    &score,
		AnalysisCompleted: true,
	}
}

func TestMarkSkillCompletedTransition(t *testing.T) {
	skillID := uuid.New().String()
	analysis := completedAnalysis([]types.SkillGapEntry{
		{ID: skillID, SkillName: "FHIR"},
		{ID: uuid.New().String(), SkillName: "SQL", Completed: true},
		{ID: uuid.New().String(), SkillName: "HL7"},
		{ID: uuid.New().String(), SkillName: "HIPAA"},
	})
	analysis.CompletedSkillsCount = 1
	analysis.TotalLearningHours = 15

	repo := &fakeAnalysisRepo{latest: analysis}
	svc := testAnalysisService(t, repo)

	got, err := svc.MarkSkillCompleted(context.Background(), analysis.UserID, skillID)
	if err != nil {
		t.Fatalf("MarkSkillCompleted: %v", err)
	}
	if repo.saved == nil {
		t.Fatal("transition was not persisted")
	}

	if !got.SkillGap[0].Completed {
		t.Fatal("entry not marked completed")
	}
	if got.TotalLearningHours != 30 {
		t.Fatalf("TotalLearningHours = %v, want 15+15", got.TotalLearningHours)
	}
	if got.CompletedSkillsCount != 2 {
		t.Fatalf("CompletedSkillsCount = %d, want fresh recount of 2", got.CompletedSkillsCount)
	}
	// 30 + 65*2/4 = 62.5, overwriting the previous score.
	if got.ReadinessScore == nil || *got.ReadinessScore != 62.5 {
		t.Fatalf("ReadinessScore = %v, want 62.5", got.ReadinessScore)
	}
	if len(got.ProgressHistory) != 1 {
		t.Fatalf("len(ProgressHistory) = %d, want 1", len(got.ProgressHistory))
	}
}

func TestMarkSkillCompletedCeiling(t *testing.T) {
	entries := make([]types.SkillGapEntry, 4)
	for i := range entries {
		entries[i] = types.SkillGapEntry{ID: uuid.New().String(), SkillName: "S", Completed: i != 0}
	}
	analysis := completedAnalysis(entries)
	repo := &fakeAnalysisRepo{latest: analysis}
	svc := testAnalysisService(t, repo)

	got, err := svc.MarkSkillCompleted(context.Background(), analysis.UserID, entries[0].ID)
	if err != nil {
		t.Fatalf("MarkSkillCompleted: %v", err)
	}
	// 30 + 65*4/4 = 95, already at the cap.
	if got.ReadinessScore == nil || *got.ReadinessScore != 95 {
		t.Fatalf("ReadinessScore = %v, want capped at 95", got.ReadinessScore)
	}
}

func TestMarkSkillCompletedIdempotent(t *testing.T) {
	skillID := uuid.New().String()
	analysis := completedAnalysis([]types.SkillGapEntry{
		{ID: skillID, SkillName: "FHIR", Completed: true},
		{ID: uuid.New().String(), SkillName: "SQL"},
	})
	analysis.CompletedSkillsCount = 1
	analysis.TotalLearningHours = 15

	repo := &fakeAnalysisRepo{latest: analysis}
	svc := testAnalysisService(t, repo)

	got, err := svc.MarkSkillCompleted(context.Background(), analysis.UserID, skillID)
	if err != nil {
		t.Fatalf("MarkSkillCompleted: %v", err)
	}
	if repo.saved != nil {
		t.Fatal("re-marking a completed skill should not persist anything")
	}
	if got.TotalLearningHours != 15 {
		t.Fatalf("TotalLearningHours = %v, want unchanged 15", got.TotalLearningHours)
	}
	if got.ReadinessScore == nil || *got.ReadinessScore != 40 {
		t.Fatalf("ReadinessScore = %v, want unchanged 40", got.ReadinessScore)
	}
}

func TestMarkSkillCompletedUnknownSkill(t *testing.T) {
	analysis := completedAnalysis([]types.SkillGapEntry{
		{ID: uuid.New().String(), SkillName: "FHIR"},
	})
	repo := &fakeAnalysisRepo{latest: analysis}
	svc := testAnalysisService(t, repo)

	_, err := svc.MarkSkillCompleted(context.Background(), analysis.UserID, uuid.New().String())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMarkSkillCompletedNoAnalysis(t *testing.T) {
	repo := &fakeAnalysisRepo{}
	svc := testAnalysisService(t, repo)

	_, err := svc.MarkSkillCompleted(context.Background(), uuid.New(), uuid.New().String())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteAnalysisNotFound(t *testing.T) {
	repo := &fakeAnalysisRepo{}
	svc := testAnalysisService(t, repo)

	err := svc.DeleteAnalysis(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound when no row matched", err)
	}
}
