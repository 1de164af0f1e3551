package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/types"
)

type ChatStateRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*types.ChatState, error)
	Save(ctx context.Context, tx *gorm.DB, state *types.ChatState) error
}

type chatStateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatStateRepo(db *gorm.DB, baseLog *logger.Logger) ChatStateRepo {
	return &chatStateRepo{db: db, log: baseLog.With("repo", "ChatStateRepo")}
}

func (cs *chatStateRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cs.db
}

func (cs *chatStateRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*types.ChatState, error) {
	var results []*types.ChatState
	if err := cs.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (cs *chatStateRepo) Save(ctx context.Context, tx *gorm.DB, state *types.ChatState) error {
	return cs.conn(tx).WithContext(ctx).Save(state).Error
}
