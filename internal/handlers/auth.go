package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/services"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	log          *logger.Logger
	authService  services.AuthService
	oauthService services.OAuthService
	clientURL    string
}

func NewAuthHandler(
	log *logger.Logger,
	authService services.AuthService,
	oauthService services.OAuthService,
	clientURL string,
) *AuthHandler {
	return &AuthHandler{
		log:          log.With("handler", "AuthHandler"),
		authService:  authService,
		oauthService: oauthService,
		clientURL:    clientURL,
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if err := h.authService.Signup(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User registered successfully"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user.Public()})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	token, err := h.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to your email", "token": token})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
	Token string `json:"token"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if err := h.authService.VerifyOTP(c.Request.Context(), req.Email, req.OTP, req.Token); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if err := h.authService.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.Token, req.NewPassword); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
}

// OAuthRedirect starts the provider flow. The state value lives in a
// short-lived cookie and is checked on the way back.
func (h *AuthHandler) OAuthRedirect(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := uuid.New().String()
		c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)

		authURL, err := h.oauthService.AuthCodeURL(provider, state)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

func (h *AuthHandler) OAuthCallback(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		expectedState, err := c.Cookie(oauthStateCookie)
		if err != nil || expectedState == "" || c.Query("state") != expectedState {
			c.Redirect(http.StatusTemporaryRedirect, h.clientURL+"/login?error=oauth_state_mismatch")
			return
		}
		c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

		code := c.Query("code")
		if code == "" {
			c.Redirect(http.StatusTemporaryRedirect, h.clientURL+"/login?error=oauth_denied")
			return
		}

		token, user, err := h.oauthService.HandleCallback(c.Request.Context(), provider, code)
		if err != nil {
			h.log.Error("OAuth callback failed", "provider", provider, "error", err)
			c.Redirect(http.StatusTemporaryRedirect, h.clientURL+"/login?error=oauth_failed")
			return
		}

		userJSON, err := json.Marshal(user.Public())
		if err != nil {
			c.Redirect(http.StatusTemporaryRedirect, h.clientURL+"/login?error=oauth_failed")
			return
		}

		redirect := h.clientURL + "/auth/success?token=" + url.QueryEscape(token) + "&user=" + url.QueryEscape(string(userJSON))
		c.Redirect(http.StatusTemporaryRedirect, redirect)
	}
}
