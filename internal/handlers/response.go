package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/requestdata"
	"github.com/careersynapse/backend/internal/services"
)

// respondError maps a service error to the {success:false, error:...}
// envelope. Anything without a sentinel tag is a 500 with a generic message;
// the detail stays in the server log.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrUpstream):
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	default:
		log.Error("Request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
	}
}

// currentUserID pulls the authenticated user id the middleware stored on the
// request context. Routes behind the auth middleware can rely on it being
// present; a miss means a wiring bug, answered with a 401.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
		return uuid.Nil, false
	}
	return rd.UserID, true
}
