package analyses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
// Used for tests and for local development without Postgres.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Analysis)}
}

// Create stores the analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[analysis.ID] = analysis
	return nil
}

// GetOwned returns the analysis when it exists and belongs to userID.
func (r *MemoryRepo) GetOwned(ctx context.Context, analysisID, userID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok || analysis.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// UpdateMatch replaces the job-match fields on an owned analysis.
func (r *MemoryRepo) UpdateMatch(ctx context.Context, analysisID, userID, jobDescription string, matchScore int, missingSkills []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok || analysis.UserID != userID {
		return ErrNotFound
	}
	analysis.JobDescription = jobDescription
	analysis.MatchScore = &matchScore
	analysis.MissingSkills = missingSkills
	analysis.UpdatedAt = time.Now().UTC()
	r.byID[analysisID] = analysis
	return nil
}

// ListByUser returns the user's analyses newest-first, resume text omitted.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []Analysis
	for _, analysis := range r.byID {
		if analysis.UserID == userID {
			analysis.ResumeText = ""
			owned = append(owned, analysis)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	if offset >= len(owned) {
		return []Analysis{}, nil
	}
	owned = owned[offset:]
	if limit > 0 && limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

// Delete removes an owned analysis.
func (r *MemoryRepo) Delete(ctx context.Context, analysisID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok || analysis.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, analysisID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
