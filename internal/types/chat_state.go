package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatState struct {
	ID          uuid.UUID                        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      string                           `gorm:"index;not null;column:user_id" json:"user_id"`
	Domain      string                           `gorm:"not null;column:domain" json:"domain"`
	ChatHistory datatypes.JSONSlice[ChatMessage] `gorm:"column:chat_history" json:"chat_history"`
	LastNode    string                           `gorm:"column:last_node" json:"last_node,omitempty"`
	CreatedAt   time.Time                        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time                        `gorm:"not null;default:now()" json:"updated_at"`
}

func (ChatState) TableName() string {
	return "chat_state"
}
