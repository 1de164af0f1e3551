package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/repos"
	"github.com/careersynapse/backend/internal/types"
)

const (
	ProviderGoogle = "google"
	ProviderGithub = "github"
)

// OAuthService drives the Google/GitHub redirect flow: build the consent
// URL, exchange the callback code, link or create the local user, and hand
// back a session token.
type OAuthService interface {
	AuthCodeURL(provider, state string) (string, error)
	HandleCallback(ctx context.Context, provider, code string) (string, *types.User, error)
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GithubClientID     string
	GithubClientSecret string
	CallbackBaseURL    string
}

type oauthService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	authService AuthService
	google      *oauth2.Config
	github      *oauth2.Config
}

func NewOAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	authService AuthService,
	cfg OAuthConfig,
) OAuthService {
	base := strings.TrimRight(cfg.CallbackBaseURL, "/")
	return &oauthService{
		db:          db,
		log:         log.With("service", "OAuthService"),
		userRepo:    userRepo,
		authService: authService,
		google: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  base + "/api/auth/google/callback",
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.profile", "https://www.googleapis.com/auth/userinfo.email"},
			Endpoint:     google.Endpoint,
		},
		github: &oauth2.Config{
			ClientID:     cfg.GithubClientID,
			ClientSecret: cfg.GithubClientSecret,
			RedirectURL:  base + "/api/auth/github/callback",
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

func (s *oauthService) config(provider string) (*oauth2.Config, error) {
	switch provider {
	case ProviderGoogle:
		return s.google, nil
	case ProviderGithub:
		return s.github, nil
	}
	return nil, validationError("Unknown OAuth provider")
}

func (s *oauthService) AuthCodeURL(provider, state string) (string, error) {
	cfg, err := s.config(provider)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider, code string) (string, *types.User, error) {
	cfg, err := s.config(provider)
	if err != nil {
		return "", nil, err
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", nil, upstreamError("Failed to exchange OAuth code", err)
	}

	profile, err := s.fetchProfile(ctx, provider, cfg, token)
	if err != nil {
		return "", nil, err
	}

	user, err := s.findOrCreateUser(ctx, provider, profile)
	if err != nil {
		return "", nil, err
	}

	sessionToken, err := s.authService.GenerateSessionToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return sessionToken, user, nil
}

type oauthProfile struct {
	ProviderID string
	Email      string
	Name       string
}

func (s *oauthService) fetchProfile(ctx context.Context, provider string, cfg *oauth2.Config, token *oauth2.Token) (*oauthProfile, error) {
	client := cfg.Client(ctx, token)

	switch provider {
	case ProviderGoogle:
		var payload struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := getJSON(client, "https://www.googleapis.com/oauth2/v2/userinfo", &payload); err != nil {
			return nil, upstreamError("Failed to fetch Google profile", err)
		}
		return &oauthProfile{ProviderID: payload.ID, Email: payload.Email, Name: payload.Name}, nil

	case ProviderGithub:
		var payload struct {
			ID    int64  `json:"id"`
			Login string `json:"login"`
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := getJSON(client, "https://api.github.com/user", &payload); err != nil {
			return nil, upstreamError("Failed to fetch GitHub profile", err)
		}
		email := payload.Email
		if email == "" {
			email = payload.Login + "@github.local"
		}
		name := payload.Name
		if name == "" {
			name = payload.Login
		}
		return &oauthProfile{ProviderID: fmt.Sprintf("%d", payload.ID), Email: email, Name: name}, nil
	}
	return nil, validationError("Unknown OAuth provider")
}

func (s *oauthService) findOrCreateUser(ctx context.Context, provider string, profile *oauthProfile) (*types.User, error) {
	user, err := s.userRepo.GetByProviderID(ctx, nil, provider, profile.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("Failed to look up %s identity: %w", provider, err)
	}
	if user != nil {
		return user, nil
	}

	// Link by email before creating a fresh account.
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	existing, err := s.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, fmt.Errorf("Failed to look up email: %w", err)
	}
	if len(existing) > 0 {
		user = existing[0]
		setProviderID(user, provider, profile.ProviderID)
		if err := s.userRepo.Save(ctx, nil, user); err != nil {
			return nil, fmt.Errorf("Failed to link %s identity: %w", provider, err)
		}
		return user, nil
	}

	username := strings.ToLower(strings.ReplaceAll(profile.Name, " ", ""))
	if username == "" {
		username = provider + "user"
	}
	username = fmt.Sprintf("%s%d", username, rand.Intn(1000))

	user = &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: uuid.New().String(),
	}
	setProviderID(user, provider, profile.ProviderID)

	if _, err := s.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return nil, fmt.Errorf("Failed to create OAuth user: %w", err)
	}
	s.log.Info("Created user from OAuth login", "provider", provider, "user_id", user.ID)
	return user, nil
}

func setProviderID(user *types.User, provider, providerID string) {
	if provider == ProviderGithub {
		user.GithubID = providerID
		return
	}
	user.GoogleID = providerID
}

func getJSON(client *http.Client, url string, out interface{}) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(detail))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
