package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/types"
)

// CareerAnalysisRepo is the analysis record store. Ownership is enforced at
// the query level: lookups that take a userID never return another user's
// rows, so a wrong-owner fetch is indistinguishable from a missing row.
type CareerAnalysisRepo interface {
	Create(ctx context.Context, tx *gorm.DB, analyses []*types.CareerAnalysis) ([]*types.CareerAnalysis, error)
	GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.CareerAnalysis, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CareerAnalysis, error)
	ListCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CareerAnalysis, error)
	LatestCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CareerAnalysis, error)
	LatestPendingByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CareerAnalysis, error)
	ListCompletedByGoalExcludingUser(ctx context.Context, tx *gorm.DB, careerGoal string, excludeUserID uuid.UUID) ([]*types.CareerAnalysis, error)
	Save(ctx context.Context, tx *gorm.DB, analysis *types.CareerAnalysis) error
	DeleteByIDForUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (int64, error)
}

type careerAnalysisRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCareerAnalysisRepo(db *gorm.DB, baseLog *logger.Logger) CareerAnalysisRepo {
	return &careerAnalysisRepo{db: db, log: baseLog.With("repo", "CareerAnalysisRepo")}
}

func (cr *careerAnalysisRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *careerAnalysisRepo) Create(ctx context.Context, tx *gorm.DB, analyses []*types.CareerAnalysis) ([]*types.CareerAnalysis, error) {
	if len(analyses) == 0 {
		return []*types.CareerAnalysis{}, nil
	}
	if err := cr.conn(tx).WithContext(ctx).Create(&analyses).Error; err != nil {
		return nil, err
	}
	return analyses, nil
}

func (cr *careerAnalysisRepo) GetByIDForUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (*types.CareerAnalysis, error) {
	var results []*types.CareerAnalysis
	if err := cr.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (cr *careerAnalysisRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CareerAnalysis, error) {
	var results []*types.CareerAnalysis
	if err := cr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListCompletedByUserID returns completed analyses oldest first, the order
// the insights aggregator expects.
func (cr *careerAnalysisRepo) ListCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.CareerAnalysis, error) {
	var results []*types.CareerAnalysis
	if err := cr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND analysis_completed = ?", userID, true).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *careerAnalysisRepo) LatestCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CareerAnalysis, error) {
	var results []*types.CareerAnalysis
	if err := cr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND analysis_completed = ?", userID, true).
		Order("created_at DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// LatestPendingByUserID finds the newest record that went through the resume
// stage but not yet the gap stage.
func (cr *careerAnalysisRepo) LatestPendingByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CareerAnalysis, error) {
	var results []*types.CareerAnalysis
	if err := cr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND predict_completed = ? AND analysis_completed = ?", userID, true, false).
		Order("created_at DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (cr *careerAnalysisRepo) ListCompletedByGoalExcludingUser(ctx context.Context, tx *gorm.DB, careerGoal string, excludeUserID uuid.UUID) ([]*types.CareerAnalysis, error) {
	var results []*types.CareerAnalysis
	if err := cr.conn(tx).WithContext(ctx).
		Where("career_goal = ? AND user_id <> ? AND analysis_completed = ?", careerGoal, excludeUserID, true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *careerAnalysisRepo) Save(ctx context.Context, tx *gorm.DB, analysis *types.CareerAnalysis) error {
	return cr.conn(tx).WithContext(ctx).Save(analysis).Error
}

func (cr *careerAnalysisRepo) DeleteByIDForUser(ctx context.Context, tx *gorm.DB, id, userID uuid.UUID) (int64, error) {
	result := cr.conn(tx).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.CareerAnalysis{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
