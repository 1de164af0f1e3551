package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/services"
)

type ChatbotHandler struct {
	log         *logger.Logger
	chatService services.ChatService
}

func NewChatbotHandler(log *logger.Logger, chatService services.ChatService) *ChatbotHandler {
	return &ChatbotHandler{
		log:         log.With("handler", "ChatbotHandler"),
		chatService: chatService,
	}
}

type chatMessageRequest struct {
	Message string `json:"message"`
}

func (h *ChatbotHandler) Message(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	reply, fallback, err := h.chatService.SendMessage(c.Request.Context(), userID, req.Message)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "response": reply, "fallback": fallback})
}

func (h *ChatbotHandler) Status(c *gin.Context) {
	online, err := h.chatService.Status(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	status := "offline"
	if online {
		status = "online"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}
