package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPromptIsDeterministic(t *testing.T) {
	resume := "Jane Doe, software engineer with ten years of Go experience."

	first := BuildAnalysisPrompt(resume)
	second := BuildAnalysisPrompt(resume)

	assert.Equal(t, first, second)
}

func TestBuildAnalysisPromptEmbedsResumeAndContract(t *testing.T) {
	resume := "Jane Doe, software engineer with ten years of Go experience."

	prompt := BuildAnalysisPrompt(resume)

	assert.Contains(t, prompt, resume)
	assert.NotContains(t, prompt, "{{RESUME_TEXT}}")
	// The field names here are the validator's contract.
	for _, field := range []string{"atsScore", "skills", "strengths", "weaknesses", "suggestions"} {
		assert.Contains(t, prompt, `"`+field+`"`)
	}
	assert.Contains(t, prompt, "ONLY with valid JSON")
}

func TestBuildMatchPromptEmbedsBothSides(t *testing.T) {
	resume := "Jane Doe, Go and Postgres."
	jd := "Looking for a backend engineer with Kubernetes experience."

	prompt := BuildMatchPrompt(resume, jd)

	assert.Contains(t, prompt, resume)
	assert.Contains(t, prompt, jd)
	assert.NotContains(t, prompt, "{{JOB_DESCRIPTION}}")
	for _, field := range []string{"matchScore", "missingSkills", "matchedSkills", "recommendations"} {
		assert.Contains(t, prompt, `"`+field+`"`)
	}

	assert.Equal(t, prompt, BuildMatchPrompt(resume, jd))
	// Swapping inputs must change the prompt; templates are not symmetric.
	assert.NotEqual(t, prompt, BuildMatchPrompt(jd, resume))
}
