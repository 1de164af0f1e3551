package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/requestdata"
	"github.com/careersynapse/backend/internal/services"
)

func testRouter(t *testing.T) (*gin.Engine, services.AuthService, *uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New("debug")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	authService := services.NewAuthService(nil, log, nil, nil, "test-secret", time.Hour)

	var seenUserID uuid.UUID
	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(authService, log), func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd != nil {
			seenUserID = rd.UserID
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, authService, &seenUserID
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router, _, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for missing token", w.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router, _, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for non-bearer header", w.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router, _, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	// Invalid and absent tokens share the same status.
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for invalid token", w.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router, authService, seenUserID := testRouter(t)

	userID := uuid.New()
	token, err := authService.GenerateSessionToken(userID)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if *seenUserID != userID {
		t.Fatalf("request context user id = %s, want %s", *seenUserID, userID)
	}
}
