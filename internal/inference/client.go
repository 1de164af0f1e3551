package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/types"
)

// Client is the boundary to the externally hosted model service. Every call
// is attempted exactly once; analyze and chat are capped at a fixed timeout
// and the caller decides whether a fallback applies.
type Client interface {
	Predict(ctx context.Context, filename string, fileBytes []byte) (*PredictResponse, error)
	AnalyzeGap(ctx context.Context, req GapRequest) (*GapResult, error)
	Chat(ctx context.Context, userID, message string) (string, error)
}

type Config struct {
	PredictURL string
	AnalyzeURL string
	ChatURL    string
}

const analyzeTimeout = 30 * time.Second

type PredictResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *types.ResumeData `json:"data"`
}

type GapRequest struct {
	Skills     []string          `json:"skills"`
	CareerGoal string            `json:"career_goal"`
	ResumeData *types.ResumeData `json:"resume_data,omitempty"`
}

type GapResult struct {
	SkillGap        []types.SkillGapEntry `json:"skill_gap"`
	GapPercentage   float64               `json:"gap_percentage"`
	Recommendations string                `json:"recommendations"`
	Fallback        bool                  `json:"-"`
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
	Message  string `json:"message"`
	Answer   string `json:"answer"`
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.PredictURL) == "" {
		return nil, fmt.Errorf("missing model predict URL")
	}
	return &client{
		log:        log.With("client", "InferenceClient"),
		cfg:        cfg,
		httpClient: &http.Client{},
	}, nil
}

func (c *client) Predict(ctx context.Context, filename string, fileBytes []byte) (*PredictResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build predict upload: %w", err)
	}
	if _, err := part.Write(fileBytes); err != nil {
		return nil, fmt.Errorf("build predict upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build predict upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.PredictURL, &body)
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readErrorDetail(resp.Body)
		return nil, fmt.Errorf("predict service returned status %d: %s", resp.StatusCode, detail)
	}

	var out PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	if out.Data == nil {
		return nil, fmt.Errorf("predict response missing profile data")
	}
	return &out, nil
}

// AnalyzeGap never returns an error for upstream trouble: any failure on the
// analyze path degrades to the deterministic static fallback.
func (c *client) AnalyzeGap(ctx context.Context, gapReq GapRequest) (*GapResult, error) {
	if strings.TrimSpace(c.cfg.AnalyzeURL) == "" {
		c.log.Warn("No analyze URL configured, using static fallback")
		return fallbackGapResult(gapReq), nil
	}

	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	payload, err := json.Marshal(gapReq)
	if err != nil {
		return nil, fmt.Errorf("marshal gap request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AnalyzeURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Analyze call failed, using static fallback", "error", err)
		return fallbackGapResult(gapReq), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("Analyze service returned non-2xx, using static fallback", "status", resp.StatusCode)
		return fallbackGapResult(gapReq), nil
	}

	var out GapResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Warn("Analyze response undecodable, using static fallback", "error", err)
		return fallbackGapResult(gapReq), nil
	}
	return &out, nil
}

// Chat returns an error on any upstream trouble; the chat service owns the
// keyword-matched fallback.
func (c *client) Chat(ctx context.Context, userID, message string) (string, error) {
	if strings.TrimSpace(c.cfg.ChatURL) == "" {
		return "", fmt.Errorf("no chat URL configured")
	}

	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{UserID: userID, Message: message})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ChatURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("chat service returned status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	switch {
	case out.Response != "":
		return out.Response, nil
	case out.Message != "":
		return out.Message, nil
	case out.Answer != "":
		return out.Answer, nil
	}
	return "Response received", nil
}

func readErrorDetail(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))
	var detail struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &detail); err == nil {
		if detail.Detail != "" {
			return detail.Detail
		}
		if detail.Error != "" {
			return detail.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
