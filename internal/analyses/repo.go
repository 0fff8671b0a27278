package analyses

import "context"

// Repo defines persistence operations for analyses. Every read and write is
// scoped to an owner; there is no cross-user access path.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	// GetOwned returns the analysis only when it exists and belongs to
	// userID; otherwise ErrNotFound.
	GetOwned(ctx context.Context, analysisID, userID string) (Analysis, error)
	// UpdateMatch replaces the job-match fields on an owned analysis.
	// Previous match data is overwritten, not accumulated.
	UpdateMatch(ctx context.Context, analysisID, userID, jobDescription string, matchScore int, missingSkills []string) error
	// ListByUser returns the user's analyses newest-first. Resume text is
	// omitted from list results.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error)
	// Delete removes an owned analysis; ErrNotFound when nothing matched.
	Delete(ctx context.Context, analysisID, userID string) error
}
