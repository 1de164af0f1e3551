package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/services"
)

type PDFHandler struct {
	log             *logger.Logger
	analysisService services.AnalysisService
}

func NewPDFHandler(log *logger.Logger, analysisService services.AnalysisService) *PDFHandler {
	return &PDFHandler{
		log:             log.With("handler", "PDFHandler"),
		analysisService: analysisService,
	}
}

// Analyze forwards the uploaded resume to the predict endpoint and persists
// the extracted profile as a new pending analysis.
func (h *PDFHandler) Analyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No PDF file uploaded"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Could not read uploaded file"})
		return
	}
	defer file.Close()
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Could not read uploaded file"})
		return
	}

	prediction, analysisID, err := h.analysisService.AnalyzeResume(c.Request.Context(), userID, fileHeader.Filename, fileBytes)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    prediction.Message,
		"data":       prediction.Data,
		"analysisId": analysisID,
	})
}
