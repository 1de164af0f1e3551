package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/services"
)

type AnalysisHandler struct {
	log             *logger.Logger
	analysisService services.AnalysisService
}

func NewAnalysisHandler(log *logger.Logger, analysisService services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		log:             log.With("handler", "AnalysisHandler"),
		analysisService: analysisService,
	}
}

// Create accepts multipart form data: `skills` (JSON array or comma list),
// `careerGoal`, and an optional `document` PDF whose text is attached to the
// analysis.
func (h *AnalysisHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	skills := parseSkillsField(c.PostForm("skills"))
	careerGoal := c.PostForm("careerGoal")

	var (
		documentName  string
		documentBytes []byte
	)
	if fileHeader, err := c.FormFile("document"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Could not read uploaded document"})
			return
		}
		defer file.Close()
		documentBytes, err = io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Could not read uploaded document"})
			return
		}
		documentName = fileHeader.Filename
	}

	analysis, err := h.analysisService.CreateAnalysis(c.Request.Context(), userID, skills, careerGoal, documentName, documentBytes)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "analysis": analysis})
}

func (h *AnalysisHandler) UserAnalyses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	analyses, err := h.analysisService.ListAnalyses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analyses": analyses})
}

func (h *AnalysisHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid analysis id"})
		return
	}
	analysis, err := h.analysisService.GetAnalysis(c.Request.Context(), userID, analysisID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

func (h *AnalysisHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid analysis id"})
		return
	}
	if err := h.analysisService.DeleteAnalysis(c.Request.Context(), userID, analysisID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Analysis deleted"})
}

// parseSkillsField tolerates both encodings the client sends: a JSON array
// string and a plain comma-separated list.
func parseSkillsField(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var parsed []string
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			return parsed
		}
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
