package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careersynapse/backend/internal/chatbot"
	"github.com/careersynapse/backend/internal/inference"
	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/repos"
	"github.com/careersynapse/backend/internal/types"
)

const chatDomain = "career"

// ChatService relays messages to the model-backed chat endpoint and falls
// back to the canned keyword responder when it is unreachable. The exchange
// is appended to the user's chat state either way.
type ChatService interface {
	SendMessage(ctx context.Context, userID uuid.UUID, message string) (string, bool, error)
	Status(ctx context.Context) (bool, error)
}

type chatService struct {
	db            *gorm.DB
	log           *logger.Logger
	chatStateRepo repos.ChatStateRepo
	inference     inference.Client
}

func NewChatService(
	db *gorm.DB,
	log *logger.Logger,
	chatStateRepo repos.ChatStateRepo,
	inferenceClient inference.Client,
) ChatService {
	return &chatService{
		db:            db,
		log:           log.With("service", "ChatService"),
		chatStateRepo: chatStateRepo,
		inference:     inferenceClient,
	}
}

// SendMessage returns the reply text plus whether the fallback responder
// produced it.
func (s *chatService) SendMessage(ctx context.Context, userID uuid.UUID, message string) (string, bool, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", false, validationError("Message is required")
	}

	fallback := false
	reply, err := s.inference.Chat(ctx, userID.String(), message)
	if err != nil {
		s.log.Warn("Chat service unreachable, using keyword responder", "error", err)
		reply = chatbot.Respond(message)
		fallback = true
	}

	if err := s.appendExchange(ctx, userID, message, reply); err != nil {
		// The reply already exists; losing the transcript row is not worth
		// failing the request over.
		s.log.Error("Failed to store chat exchange", "user_id", userID, "error", err)
	}
	return reply, fallback, nil
}

// Status reports whether the model-backed chat endpoint answered a probe.
func (s *chatService) Status(ctx context.Context) (bool, error) {
	_, err := s.inference.Chat(ctx, "status-probe", "ping")
	return err == nil, nil
}

func (s *chatService) appendExchange(ctx context.Context, userID uuid.UUID, message, reply string) error {
	state, err := s.chatStateRepo.GetByUserID(ctx, nil, userID.String())
	if err != nil {
		return fmt.Errorf("load chat state: %w", err)
	}
	if state == nil {
		state = &types.ChatState{
			ID:     uuid.New(),
			UserID: userID.String(),
			Domain: chatDomain,
		}
	}

	now := time.Now()
	state.ChatHistory = append(state.ChatHistory,
		types.ChatMessage{Role: "user", Content: message, Timestamp: now},
		types.ChatMessage{Role: "assistant", Content: reply, Timestamp: now},
	)
	if err := s.chatStateRepo.Save(ctx, nil, state); err != nil {
		return fmt.Errorf("save chat state: %w", err)
	}
	return nil
}
