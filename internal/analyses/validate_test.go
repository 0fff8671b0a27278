package analyses

import (
	"errors"
	"fmt"
	"testing"
)

const validAnalysisJSON = `{
  "atsScore": 72,
  "skills": ["Python"],
  "strengths": ["clear formatting"],
  "weaknesses": ["no metrics"],
  "suggestions": ["quantify impact"]
}`

func TestParseAnalysisResultAcceptsWrappedJSON(t *testing.T) {
	raw := "Sure! Here is the analysis you asked for:\n```json\n" + validAnalysisJSON + "\n```\nLet me know if you need anything else."

	result, err := ParseAnalysisResult(raw)
	if err != nil {
		t.Fatalf("ParseAnalysisResult: %v", err)
	}
	if result.ATSScore != 72 {
		t.Fatalf("atsScore = %d, want 72", result.ATSScore)
	}
	if len(result.Skills) != 1 || result.Skills[0] != "Python" {
		t.Fatalf("skills = %v, want [Python]", result.Skills)
	}
}

func TestParseAnalysisResultNoObject(t *testing.T) {
	_, err := ParseAnalysisResult("I could not process this resume.")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestParseAnalysisResultInvalidJSON(t *testing.T) {
	_, err := ParseAnalysisResult(`{"atsScore": 72, "skills": [}`)
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("err = %v, want ErrInvalidJSON", err)
	}
}

func TestParseAnalysisResultMissingFields(t *testing.T) {
	fields := []string{"atsScore", "skills", "strengths", "weaknesses", "suggestions"}
	values := map[string]string{
		"atsScore":    "72",
		"skills":      `["Go"]`,
		"strengths":   `["a"]`,
		"weaknesses":  `["b"]`,
		"suggestions": `["c"]`,
	}
	for _, omitted := range fields {
		raw := "{"
		first := true
		for _, field := range fields {
			if field == omitted {
				continue
			}
			if !first {
				raw += ","
			}
			raw += fmt.Sprintf("%q: %s", field, values[field])
			first = false
		}
		raw += "}"

		if _, err := ParseAnalysisResult(raw); !errors.Is(err, ErrIncompleteAnalysis) {
			t.Errorf("without %q: err = %v, want ErrIncompleteAnalysis", omitted, err)
		}
	}
}

func TestParseAnalysisResultNullField(t *testing.T) {
	raw := `{"atsScore": 72, "skills": null, "strengths": ["a"], "weaknesses": ["b"], "suggestions": ["c"]}`
	if _, err := ParseAnalysisResult(raw); !errors.Is(err, ErrIncompleteAnalysis) {
		t.Fatalf("err = %v, want ErrIncompleteAnalysis", err)
	}
}

func TestParseAnalysisResultScoreOutOfRange(t *testing.T) {
	for _, score := range []string{"-1", "101", "250"} {
		raw := fmt.Sprintf(`{"atsScore": %s, "skills": ["Go"], "strengths": ["a"], "weaknesses": ["b"], "suggestions": ["c"]}`, score)
		if _, err := ParseAnalysisResult(raw); !errors.Is(err, ErrIncompleteAnalysis) {
			t.Errorf("score %s: err = %v, want ErrIncompleteAnalysis", score, err)
		}
	}
}

func TestParseAnalysisResultBoundaryScores(t *testing.T) {
	for _, score := range []int{0, 100} {
		raw := fmt.Sprintf(`{"atsScore": %d, "skills": ["Go"], "strengths": ["a"], "weaknesses": ["b"], "suggestions": ["c"]}`, score)
		result, err := ParseAnalysisResult(raw)
		if err != nil {
			t.Fatalf("score %d: %v", score, err)
		}
		if result.ATSScore != score {
			t.Fatalf("atsScore = %d, want %d", result.ATSScore, score)
		}
	}
}

func TestParseAnalysisResultEmptyArraysAllowed(t *testing.T) {
	raw := `{"atsScore": 40, "skills": [], "strengths": [], "weaknesses": [], "suggestions": []}`
	result, err := ParseAnalysisResult(raw)
	if err != nil {
		t.Fatalf("ParseAnalysisResult: %v", err)
	}
	if result.Skills == nil || len(result.Skills) != 0 {
		t.Fatalf("skills = %v, want empty non-nil", result.Skills)
	}
}

func TestParseMatchResultRequiresAllFields(t *testing.T) {
	raw := `{"matchScore": 65, "missingSkills": ["Kubernetes"], "matchedSkills": ["Go"], "recommendations": ["learn Kubernetes"]}`
	match, err := ParseMatchResult(raw)
	if err != nil {
		t.Fatalf("ParseMatchResult: %v", err)
	}
	if match.MatchScore != 65 {
		t.Fatalf("matchScore = %d, want 65", match.MatchScore)
	}

	// Unlike a permissive reading of the original behavior, every field is
	// required here, recommendations included.
	incomplete := `{"matchScore": 65, "missingSkills": ["Kubernetes"], "matchedSkills": ["Go"]}`
	if _, err := ParseMatchResult(incomplete); !errors.Is(err, ErrIncompleteAnalysis) {
		t.Fatalf("err = %v, want ErrIncompleteAnalysis", err)
	}
}

func TestParseMatchResultNoObject(t *testing.T) {
	if _, err := ParseMatchResult("no json here"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestJSONSpanGreedy(t *testing.T) {
	span, ok := jsonSpan(`prefix {"a": {"b": 1}} suffix`)
	if !ok {
		t.Fatal("expected a span")
	}
	if span != `{"a": {"b": 1}}` {
		t.Fatalf("span = %q", span)
	}
}
