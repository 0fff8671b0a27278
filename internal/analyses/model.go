package analyses

import "time"

// Analysis is one analyzed resume owned by a single user. It permanently
// carries the normalized resume text and the analysis result, plus at most
// one job match; a later match overwrites the previous one in place.
type Analysis struct {
	ID          string
	UserID      string
	FileName    string
	ResumeText  string
	ATSScore    int
	Skills      []string
	Strengths   []string
	Weaknesses  []string
	Suggestions []string

	// Job-match fields. Nil/empty until the first match is recorded.
	JobDescription string
	MatchScore     *int
	MissingSkills  []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnalysisResult is the validated payload of a resume-evaluation completion.
// The JSON tags are the completion contract; the prompt templates request
// exactly these names.
type AnalysisResult struct {
	ATSScore    int      `json:"atsScore"`
	Skills      []string `json:"skills"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

// MatchResult is the validated payload of a job-match completion.
// MatchedSkills and Recommendations are returned to the caller but never
// persisted; only MatchScore and MissingSkills land on the record.
type MatchResult struct {
	MatchScore      int      `json:"matchScore"`
	MissingSkills   []string `json:"missingSkills"`
	MatchedSkills   []string `json:"matchedSkills"`
	Recommendations []string `json:"recommendations"`
}
