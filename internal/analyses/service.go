package analyses

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/telemetry"
)

// Service contains business logic for resume analyses. Each request runs the
// pipeline start to finish on the caller's goroutine; there is no background
// work and no partial persistence.
type Service struct {
	Repo Repo
	LLM  llm.Client
}

// Analyze runs the full pipeline for one uploaded resume: extract text,
// build the prompt, call the completion service once, validate the response,
// and persist the record. A failure at any stage persists nothing.
func (s *Service) Analyze(ctx context.Context, userID, fileName string, data []byte) (Analysis, error) {
	if userID == "" {
		return Analysis{}, errors.New("userID is required")
	}

	format, err := extract.FormatFromFilename(fileName)
	if err != nil {
		metrics.IncAnalyzeFailed()
		return Analysis{}, err
	}
	text, err := extract.Text(data, format)
	if err != nil {
		metrics.IncAnalyzeFailed()
		telemetry.Warn("analysis.extract_failed", map[string]any{
			"user_id":   userID,
			"file_name": fileName,
			"error":     err.Error(),
		})
		return Analysis{}, err
	}

	raw, err := s.complete(ctx, llm.BuildAnalysisPrompt(text))
	if err != nil {
		metrics.IncAnalyzeFailed()
		return Analysis{}, err
	}
	result, err := ParseAnalysisResult(raw)
	if err != nil {
		metrics.IncAnalyzeFailed()
		telemetry.Warn("analysis.validation_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return Analysis{}, err
	}

	now := time.Now().UTC()
	analysis := Analysis{
		ID:          uuid.NewString(),
		UserID:      userID,
		FileName:    fileName,
		ResumeText:  text,
		ATSScore:    result.ATSScore,
		Skills:      result.Skills,
		Strengths:   result.Strengths,
		Weaknesses:  result.Weaknesses,
		Suggestions: result.Suggestions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncAnalyzeFailed()
		return Analysis{}, err
	}

	metrics.IncAnalyzeCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id": analysis.ID,
		"user_id":     userID,
		"ats_score":   analysis.ATSScore,
	})
	return analysis, nil
}

// MatchJob compares an owned analysis against a job description and records
// the result on the analysis, overwriting any previous match. The returned
// MatchResult also carries matchedSkills and recommendations, which are
// response-only and never stored.
func (s *Service) MatchJob(ctx context.Context, userID, analysisID, jobDescription string) (MatchResult, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return MatchResult{}, ErrJobDescriptionRequired
	}

	analysis, err := s.Repo.GetOwned(ctx, analysisID, userID)
	if err != nil {
		return MatchResult{}, err
	}

	raw, err := s.complete(ctx, llm.BuildMatchPrompt(analysis.ResumeText, jobDescription))
	if err != nil {
		metrics.IncMatchFailed()
		return MatchResult{}, err
	}
	match, err := ParseMatchResult(raw)
	if err != nil {
		metrics.IncMatchFailed()
		telemetry.Warn("match.validation_failed", map[string]any{
			"analysis_id": analysisID,
			"user_id":     userID,
			"error":       err.Error(),
		})
		return MatchResult{}, err
	}

	if err := s.Repo.UpdateMatch(ctx, analysisID, userID, jobDescription, match.MatchScore, match.MissingSkills); err != nil {
		metrics.IncMatchFailed()
		return MatchResult{}, err
	}

	metrics.IncMatchCompleted()
	telemetry.Info("match.completed", map[string]any{
		"analysis_id": analysisID,
		"user_id":     userID,
		"match_score": match.MatchScore,
	})
	return match, nil
}

// Get returns an owned analysis.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	return s.Repo.GetOwned(ctx, analysisID, userID)
}

// List returns the user's analyses newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes an owned analysis.
func (s *Service) Delete(ctx context.Context, userID, analysisID string) error {
	return s.Repo.Delete(ctx, analysisID, userID)
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	raw, err := s.LLM.Complete(ctx, prompt)
	metrics.ObserveCompletionDurationMs(float64(time.Since(start).Milliseconds()))
	return raw, err
}
