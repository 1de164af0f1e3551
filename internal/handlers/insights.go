package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/services"
)

type InsightsHandler struct {
	log             *logger.Logger
	insightsService services.InsightsService
}

func NewInsightsHandler(log *logger.Logger, insightsService services.InsightsService) *InsightsHandler {
	return &InsightsHandler{
		log:             log.With("handler", "InsightsHandler"),
		insightsService: insightsService,
	}
}

func (h *InsightsHandler) Data(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	data, err := h.insightsService.GetData(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *InsightsHandler) ReportPDF(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	pdfBytes, err := h.insightsService.GetReportPDF(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	filename := fmt.Sprintf("career-insights-%d.pdf", time.Now().UnixMilli())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *InsightsHandler) ReportJSON(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reportPayload, err := h.insightsService.GetReportJSON(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	filename := fmt.Sprintf("career-insights-%d.json", time.Now().UnixMilli())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, reportPayload)
}
