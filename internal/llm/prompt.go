package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/analyze.txt
	analyzeTemplate string
	//go:embed prompts/match.txt
	matchTemplate string
)

// BuildAnalysisPrompt renders the resume-evaluation instruction for the
// completion service. Pure: identical input yields byte-identical output.
// The field names requested here are exactly the ones the response validator
// requires; rename them in lock-step or not at all.
func BuildAnalysisPrompt(resumeText string) string {
	return strings.NewReplacer(
		"{{RESUME_TEXT}}", resumeText,
	).Replace(analyzeTemplate)
}

// BuildMatchPrompt renders the resume-to-job-description comparison
// instruction. Pure, same contract as BuildAnalysisPrompt.
func BuildMatchPrompt(resumeText, jobDescription string) string {
	return strings.NewReplacer(
		"{{RESUME_TEXT}}", resumeText,
		"{{JOB_DESCRIPTION}}", jobDescription,
	).Replace(matchTemplate)
}
