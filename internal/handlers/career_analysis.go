package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/services"
	"github.com/careersynapse/backend/internal/types"
)

type CareerAnalysisHandler struct {
	log             *logger.Logger
	analysisService services.AnalysisService
}

func NewCareerAnalysisHandler(log *logger.Logger, analysisService services.AnalysisService) *CareerAnalysisHandler {
	return &CareerAnalysisHandler{
		log:             log.With("handler", "CareerAnalysisHandler"),
		analysisService: analysisService,
	}
}

type createCareerAnalysisRequest struct {
	Skills     []string          `json:"skills"`
	CareerGoal string            `json:"careerGoal"`
	ResumeData *types.ResumeData `json:"resumeData,omitempty"`
}

// Create is the direct flow: skills and career goal in, completed analysis
// out, with the static fallback covering an unreachable model service.
func (h *CareerAnalysisHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req createCareerAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	analysis, err := h.analysisService.CreateCareerAnalysis(c.Request.Context(), userID, req.Skills, req.CareerGoal, req.ResumeData)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "analysis": analysis})
}

type submitProfileRequest struct {
	Skills     []string `json:"skills"`
	CareerGoal string   `json:"careerGoal"`
}

// SubmitProfile is phase two of the resume flow: it completes the newest
// pending analysis with the confirmed skills and career goal.
func (h *CareerAnalysisHandler) SubmitProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req submitProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	analysis, err := h.analysisService.SubmitProfile(c.Request.Context(), userID, req.Skills, req.CareerGoal)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

func (h *CareerAnalysisHandler) User(c *gin.Context) {
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

func (h *CareerAnalysisHandler) Latest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	analysis, err := h.analysisService.LatestAnalysis(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}

func (h *CareerAnalysisHandler) GetByID(c *gin.Context) {
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

func (h *CareerAnalysisHandler) CompleteSkill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	analysis, err := h.analysisService.MarkSkillCompleted(c.Request.Context(), userID, c.Param("skillId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": analysis})
}
