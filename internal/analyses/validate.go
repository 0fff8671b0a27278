package analyses

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// jsonSpan locates the candidate JSON object in a completion response:
// everything from the first '{' through the last '}'. Models often wrap the
// payload in prose or markdown fences; the greedy span tolerates that. It is
// not balance-aware, so stray braces in surrounding prose can defeat it, in
// which case parsing fails and the whole response is rejected.
func jsonSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// ParseAnalysisResult extracts and validates a resume-evaluation payload.
// All five fields must be present; the score must be within [0,100]. Nothing
// partial is ever returned: any failure yields a zero result and an error.
func ParseAnalysisResult(raw string) (AnalysisResult, error) {
	span, ok := jsonSpan(raw)
	if !ok {
		return AnalysisResult{}, ErrMalformedResponse
	}

	var payload struct {
		ATSScore    *float64 `json:"atsScore"`
		Skills      []string `json:"skills"`
		Strengths   []string `json:"strengths"`
		Weaknesses  []string `json:"weaknesses"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return AnalysisResult{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	for name, missing := range map[string]bool{
		"atsScore":    payload.ATSScore == nil,
		"skills":      payload.Skills == nil,
		"strengths":   payload.Strengths == nil,
		"weaknesses":  payload.Weaknesses == nil,
		"suggestions": payload.Suggestions == nil,
	} {
		if missing {
			return AnalysisResult{}, fmt.Errorf("%w: missing field %q", ErrIncompleteAnalysis, name)
		}
	}
	score, err := validScore(*payload.ATSScore, "atsScore")
	if err != nil {
		return AnalysisResult{}, err
	}

	return AnalysisResult{
		ATSScore:    score,
		Skills:      payload.Skills,
		Strengths:   payload.Strengths,
		Weaknesses:  payload.Weaknesses,
		Suggestions: payload.Suggestions,
	}, nil
}

// ParseMatchResult extracts and validates a job-match payload. Same contract
// as ParseAnalysisResult: all four fields required, score within [0,100].
func ParseMatchResult(raw string) (MatchResult, error) {
	span, ok := jsonSpan(raw)
	if !ok {
		return MatchResult{}, ErrMalformedResponse
	}

	var payload struct {
		MatchScore      *float64 `json:"matchScore"`
		MissingSkills   []string `json:"missingSkills"`
		MatchedSkills   []string `json:"matchedSkills"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return MatchResult{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	for name, missing := range map[string]bool{
		"matchScore":      payload.MatchScore == nil,
		"missingSkills":   payload.MissingSkills == nil,
		"matchedSkills":   payload.MatchedSkills == nil,
		"recommendations": payload.Recommendations == nil,
	} {
		if missing {
			return MatchResult{}, fmt.Errorf("%w: missing field %q", ErrIncompleteAnalysis, name)
		}
	}
	score, err := validScore(*payload.MatchScore, "matchScore")
	if err != nil {
		return MatchResult{}, err
	}

	return MatchResult{
		MatchScore:      score,
		MissingSkills:   payload.MissingSkills,
		MatchedSkills:   payload.MatchedSkills,
		Recommendations: payload.Recommendations,
	}, nil
}

func validScore(value float64, field string) (int, error) {
	if value < 0 || value > 100 || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: %s out of range: %v", ErrIncompleteAnalysis, field, value)
	}
	return int(math.Round(value)), nil
}
