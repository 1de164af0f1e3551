package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	ledongpdf "github.com/ledongthuc/pdf"
	"gorm.io/gorm"

	redisclient "github.com/careersynapse/backend/internal/clients/redis"
	"github.com/careersynapse/backend/internal/inference"
	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/normalization"
	"github.com/careersynapse/backend/internal/repos"
	"github.com/careersynapse/backend/internal/types"
)

const (
	hoursPerCompletedSkill = 15.0
	readinessCeiling       = 95.0
)

// AnalysisService owns the analysis record lifecycle: the two-phase resume
// flow (predict, then profile submit), direct creation, reads, deletion, and
// skill completion. Every mutation invalidates the user's insights cache.
type AnalysisService interface {
	AnalyzeResume(ctx context.Context, userID uuid.UUID, filename string, fileBytes []byte) (*inference.PredictResponse, uuid.UUID, error)
	SubmitProfile(ctx context.Context, userID uuid.UUID, skills []string, careerGoal string) (*types.CareerAnalysis, error)
	CreateCareerAnalysis(ctx context.Context, userID uuid.UUID, skills []string, careerGoal string, resumeData *types.ResumeData) (*types.CareerAnalysis, error)
	CreateAnalysis(ctx context.Context, userID uuid.UUID, skills []string, careerGoal string, documentName string, documentBytes []byte) (*types.CareerAnalysis, error)
	ListAnalyses(ctx context.Context, userID uuid.UUID) ([]*types.CareerAnalysis, error)
	GetAnalysis(ctx context.Context, userID, analysisID uuid.UUID) (*types.CareerAnalysis, error)
	LatestAnalysis(ctx context.Context, userID uuid.UUID) (*types.CareerAnalysis, error)
	DeleteAnalysis(ctx context.Context, userID, analysisID uuid.UUID) error
	MarkSkillCompleted(ctx context.Context, userID uuid.UUID, skillID string) (*types.CareerAnalysis, error)
}

type analysisService struct {
	db           *gorm.DB
	log          *logger.Logger
	analysisRepo repos.CareerAnalysisRepo
	inference    inference.Client
	cache        redisclient.Cache
}

func NewAnalysisService(
	db *gorm.DB,
	log *logger.Logger,
	analysisRepo repos.CareerAnalysisRepo,
	inferenceClient inference.Client,
	cache redisclient.Cache,
) AnalysisService {
	return &analysisService{
		db:           db,
		log:          log.With("service", "AnalysisService"),
		analysisRepo: analysisRepo,
		inference:    inferenceClient,
		cache:        cache,
	}
}

func insightsCacheKey(userID uuid.UUID) string {
	return "insights:data:" + userID.String()
}

func (s *analysisService) invalidateInsights(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		s.cache.Del(ctx, insightsCacheKey(userID))
	}
}

// AnalyzeResume is phase one of the two-phase flow: the uploaded resume goes
// to the predict endpoint and the extracted profile is stored with
// predict_completed set. The gap stage happens later via SubmitProfile.
func (s *analysisService) AnalyzeResume(ctx context.Context, userID uuid.UUID, filename string, fileBytes []byte) (*inference.PredictResponse, uuid.UUID, error) {
	if len(fileBytes) == 0 {
		return nil, uuid.Nil, validationError("No PDF file uploaded")
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return nil, uuid.Nil, validationError("Only PDF files are supported")
	}

	prediction, err := s.inference.Predict(ctx, filename, fileBytes)
	if err != nil {
		return nil, uuid.Nil, upstreamError("Resume analysis failed", err)
	}

	analysis := &types.CareerAnalysis{
		ID:               uuid.New(),
		UserID:           userID,
		ResumeData:       prediction.Data,
		CurrentSkills:    append([]string{}, prediction.Data.TechnicalSkills...),
		PredictCompleted: true,
	}
	if _, err := s.analysisRepo.Create(ctx, nil, []*types.CareerAnalysis{analysis}); err != nil {
		return nil, uuid.Nil, fmt.Errorf("Failed to store resume analysis: %w", err)
	}

	s.invalidateInsights(ctx, userID)
	s.log.Info("Stored resume prediction", "user_id", userID, "analysis_id", analysis.ID)
	return prediction, analysis.ID, nil
}

// SubmitProfile is phase two: attach the user-confirmed skills and career
// goal to the newest pending record, run the gap analysis, and merge the
// result into fields the predict stage left empty.
func (s *analysisService) SubmitProfile(ctx context.Context, userID uuid.UUID, skills []string, careerGoal string) (*types.CareerAnalysis, error) {
	careerGoal = normalization.TrimInputString(careerGoal)
	if careerGoal == "" {
		return nil, validationError("Career goal is required")
	}

	pending, err := s.analysisRepo.LatestPendingByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to look up pending analysis: %w", err)
	}
	if pending == nil {
		return nil, notFoundError("No resume analysis found. Upload a resume first.")
	}

	merged := mergeSkills(pending.CurrentSkills, skills)
	result, err := s.inference.AnalyzeGap(ctx, inference.GapRequest{
		Skills:     merged,
		CareerGoal: careerGoal,
		ResumeData: pending.ResumeData,
	})
	if err != nil {
		return nil, upstreamError("Skill gap analysis failed", err)
	}

	pending.CareerGoal = careerGoal
	pending.AdditionalSkills = skills
	pending.CurrentSkills = merged
	applyGapResult(pending, result, false)
	pending.AnalysisCompleted = true
	pending.ProgressHistory = append(pending.ProgressHistory, types.ProgressPoint{
		Date:                 time.Now(),
		ReadinessScore:       pending.Readiness(),
		CompletedSkillsCount: pending.CompletedSkillsCount,
	})

	if err := s.analysisRepo.Save(ctx, nil, pending); err != nil {
		return nil, fmt.Errorf("Failed to store completed analysis: %w", err)
	}

	s.invalidateInsights(ctx, userID)
	s.log.Info("Completed profile submission", "user_id", userID, "analysis_id", pending.ID, "fallback", result.Fallback)
	return pending, nil
}

// CreateCareerAnalysis creates a completed record in one shot, skipping the
// resume stage. The analyze endpoint failing silently degrades to the static
// role-table fallback inside the inference client.
func (s *analysisService) CreateCareerAnalysis(ctx context.Context, userID uuid.UUID, skills []string, careerGoal string, resumeData *types.ResumeData) (*types.CareerAnalysis, error) {
	careerGoal = normalization.TrimInputString(careerGoal)
	if careerGoal == "" {
		return nil, validationError("Career goal is required")
	}
	if len(skills) == 0 && resumeData == nil {
		return nil, validationError("At least one skill is required")
	}

	result, err := s.inference.AnalyzeGap(ctx, inference.GapRequest{
		Skills:     skills,
		CareerGoal: careerGoal,
		ResumeData: resumeData,
	})
	if err != nil {
		return nil, upstreamError("Skill gap analysis failed", err)
	}

	analysis := &types.CareerAnalysis{
		ID:                uuid.New(),
		UserID:            userID,
		ResumeData:        resumeData,
		CareerGoal:        careerGoal,
		CurrentSkills:     skills,
		PredictCompleted:  resumeData != nil,
		AnalysisCompleted: true,
	}
	applyGapResult(analysis, result, true)
	analysis.ProgressHistory = append(analysis.ProgressHistory, types.ProgressPoint{
		Date:                 time.Now(),
		ReadinessScore:       analysis.Readiness(),
		CompletedSkillsCount: 0,
	})

	if _, err := s.analysisRepo.Create(ctx, nil, []*types.CareerAnalysis{analysis}); err != nil {
		return nil, fmt.Errorf("Failed to store career analysis: %w", err)
	}

	s.invalidateInsights(ctx, userID)
	s.log.Info("Created career analysis", "user_id", userID, "analysis_id", analysis.ID, "fallback", result.Fallback)
	return analysis, nil
}

// CreateAnalysis takes an optional supporting document alongside the typed
// skills, extracts its text, and runs the gap analysis against the combined
// skill set. Non-PDF documents are rejected before any upstream call.
func (s *analysisService) CreateAnalysis(ctx context.Context, userID uuid.UUID, skills []string, careerGoal string, documentName string, documentBytes []byte) (*types.CareerAnalysis, error) {
	careerGoal = normalization.TrimInputString(careerGoal)
	if careerGoal == "" {
		return nil, validationError("Career goal is required")
	}
	if len(skills) == 0 {
		return nil, validationError("At least one skill is required")
	}

	documentText := ""
	if len(documentBytes) > 0 {
		if !strings.HasSuffix(strings.ToLower(documentName), ".pdf") {
			return nil, validationError("Only PDF documents are supported")
		}
		text, err := extractPDFText(documentBytes)
		if err != nil {
			return nil, validationError("Could not read the uploaded PDF")
		}
		documentText = text
	}

	result, err := s.inference.AnalyzeGap(ctx, inference.GapRequest{
		Skills:     skills,
		CareerGoal: careerGoal,
	})
	if err != nil {
		return nil, upstreamError("Skill gap analysis failed", err)
	}

	analysis := &types.CareerAnalysis{
		ID:                uuid.New(),
		UserID:            userID,
		CareerGoal:        careerGoal,
		CurrentSkills:     skills,
		DocumentText:      documentText,
		AnalysisCompleted: true,
	}
	applyGapResult(analysis, result, true)
	analysis.ProgressHistory = append(analysis.ProgressHistory, types.ProgressPoint{
		Date:                 time.Now(),
		ReadinessScore:       analysis.Readiness(),
		CompletedSkillsCount: 0,
	})

	if _, err := s.analysisRepo.Create(ctx, nil, []*types.CareerAnalysis{analysis}); err != nil {
		return nil, fmt.Errorf("Failed to store analysis: %w", err)
	}

	s.invalidateInsights(ctx, userID)
	return analysis, nil
}

func (s *analysisService) ListAnalyses(ctx context.Context, userID uuid.UUID) ([]*types.CareerAnalysis, error) {
	analyses, err := s.analysisRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to list analyses: %w", err)
	}
	return analyses, nil
}

func (s *analysisService) GetAnalysis(ctx context.Context, userID, analysisID uuid.UUID) (*types.CareerAnalysis, error) {
	analysis, err := s.analysisRepo.GetByIDForUser(ctx, nil, analysisID, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to look up analysis: %w", err)
	}
	if analysis == nil {
		return nil, notFoundError("Analysis not found")
	}
	return analysis, nil
}

func (s *analysisService) LatestAnalysis(ctx context.Context, userID uuid.UUID) (*types.CareerAnalysis, error) {
	analysis, err := s.analysisRepo.LatestCompletedByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to look up latest analysis: %w", err)
	}
	if analysis == nil {
		return nil, notFoundError("No completed analysis found")
	}
	return analysis, nil
}

func (s *analysisService) DeleteAnalysis(ctx context.Context, userID, analysisID uuid.UUID) error {
	deleted, err := s.analysisRepo.DeleteByIDForUser(ctx, nil, analysisID, userID)
	if err != nil {
		return fmt.Errorf("Failed to delete analysis: %w", err)
	}
	if deleted == 0 {
		return notFoundError("Analysis not found")
	}
	s.invalidateInsights(ctx, userID)
	return nil
}

// MarkSkillCompleted flips one skill-gap entry to completed on the latest
// completed analysis. The transition is one-way and idempotent: re-marking a
// completed skill changes nothing. On a real transition learning hours grow
// by a fixed per-skill amount, the completed count is recounted in full, and
// the readiness score is overwritten from the completion ratio.
func (s *analysisService) MarkSkillCompleted(ctx context.Context, userID uuid.UUID, skillID string) (*types.CareerAnalysis, error) {
	if strings.TrimSpace(skillID) == "" {
		return nil, validationError("Skill id is required")
	}

	analysis, err := s.analysisRepo.LatestCompletedByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to look up latest analysis: %w", err)
	}
	if analysis == nil {
		return nil, notFoundError("No completed analysis found")
	}

	idx := -1
	for i := range analysis.SkillGap {
		if analysis.SkillGap[i].ID == skillID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, notFoundError("Skill not found in the latest analysis")
	}
	if analysis.SkillGap[idx].Completed {
		return analysis, nil
	}

	analysis.SkillGap[idx].Completed = true
	analysis.TotalLearningHours += hoursPerCompletedSkill
	completed := analysis.RecountCompletedSkills()

	total := len(analysis.SkillGap)
	readiness := math.Min(readinessCeiling, 30+65*float64(completed)/float64(total))
	analysis.ReadinessScore = &readiness

	analysis.ProgressHistory = append(analysis.ProgressHistory, types.ProgressPoint{
		Date:                 time.Now(),
		ReadinessScore:       readiness,
		CompletedSkillsCount: completed,
	})

	if err := s.analysisRepo.Save(ctx, nil, analysis); err != nil {
		return nil, fmt.Errorf("Failed to store skill completion: %w", err)
	}

	s.invalidateInsights(ctx, userID)
	s.log.Info("Marked skill completed", "user_id", userID, "analysis_id", analysis.ID, "skill_id", skillID, "readiness", readiness)
	return analysis, nil
}

// applyGapResult copies an analyze result onto a record. With overwrite set
// every field is taken; otherwise only fields the record has not filled yet,
// which is what the profile-submit merge wants.
func applyGapResult(analysis *types.CareerAnalysis, result *inference.GapResult, overwrite bool) {
	entries := make([]types.SkillGapEntry, len(result.SkillGap))
	copy(entries, result.SkillGap)
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.New().String()
		}
		if entries[i].Importance == "" {
			entries[i].Importance = types.ImportanceNiceToHave
		}
		if entries[i].RequiredProficiency == 0 {
			entries[i].RequiredProficiency = types.RequiredProficiencyFor(entries[i].Importance)
		}
	}

	if overwrite || len(analysis.SkillGap) == 0 {
		analysis.SkillGap = entries
	}
	if overwrite || analysis.GapPercentage == nil {
		gap := result.GapPercentage
		analysis.GapPercentage = &gap
	}
	if overwrite || analysis.Recommendations == "" {
		analysis.Recommendations = result.Recommendations
	}

	required := make([]string, 0, len(analysis.SkillGap))
	matching := make([]string, 0, len(analysis.SkillGap))
	for _, entry := range analysis.SkillGap {
		required = append(required, entry.SkillName)
		if entry.CurrentProficiency > 0 {
			matching = append(matching, entry.SkillName)
		}
	}
	if overwrite || len(analysis.RequiredSkills) == 0 {
		analysis.RequiredSkills = required
	}
	if overwrite || len(analysis.MatchingSkills) == 0 {
		analysis.MatchingSkills = matching
	}

	analysis.RecountCompletedSkills()
}

func mergeSkills(base []string, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, skill := range list {
			key := strings.ToLower(strings.TrimSpace(skill))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, strings.TrimSpace(skill))
		}
	}
	return merged
}

func extractPDFText(raw []byte) (string, error) {
	reader, err := ledongpdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return text, nil
}
