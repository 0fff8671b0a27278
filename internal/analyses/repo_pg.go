package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres. String-list fields are stored as
// JSONB columns.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
	id, user_id, file_name, resume_text, ats_score,
	skills, strengths, weaknesses, suggestions,
	job_description, match_score, missing_skills,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	skills, err := marshalStringList(analysis.Skills)
	if err != nil {
		return err
	}
	strengths, err := marshalStringList(analysis.Strengths)
	if err != nil {
		return err
	}
	weaknesses, err := marshalStringList(analysis.Weaknesses)
	if err != nil {
		return err
	}
	suggestions, err := marshalStringList(analysis.Suggestions)
	if err != nil {
		return err
	}
	missingSkills, err := marshalStringList(analysis.MissingSkills)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.UserID,
		analysis.FileName,
		analysis.ResumeText,
		analysis.ATSScore,
		skills,
		strengths,
		weaknesses,
		suggestions,
		nullString(analysis.JobDescription),
		nullInt(analysis.MatchScore),
		missingSkills,
		analysis.CreatedAt,
		analysis.UpdatedAt,
	)
	return err
}

// GetOwned returns the analysis only when it belongs to userID.
func (r *PGRepo) GetOwned(ctx context.Context, analysisID, userID string) (Analysis, error) {
	const query = `
SELECT id, user_id, file_name, resume_text, ats_score,
       skills, strengths, weaknesses, suggestions,
       job_description, match_score, missing_skills,
       created_at, updated_at
FROM analyses
WHERE id = $1 AND user_id = $2
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, analysisID, userID)
	analysis, err := scanAnalysis(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return analysis, err
}

// UpdateMatch replaces the job-match fields on an owned analysis.
func (r *PGRepo) UpdateMatch(ctx context.Context, analysisID, userID, jobDescription string, matchScore int, missingSkills []string) error {
	const query = `
UPDATE analyses
SET job_description = $3, match_score = $4, missing_skills = $5, updated_at = $6
WHERE id = $1 AND user_id = $2`

	payload, err := marshalStringList(missingSkills)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, analysisID, userID, jobDescription, matchScore, payload, time.Now().UTC())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns the user's analyses newest-first. Resume text is not
// selected; list payloads never carry it.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	const query = `
SELECT id, user_id, file_name, '' AS resume_text, ats_score,
       skills, strengths, weaknesses, suggestions,
       job_description, match_score, missing_skills,
       created_at, updated_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Analysis, 0, limit)
	for rows.Next() {
		analysis, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

// Delete removes an owned analysis.
func (r *PGRepo) Delete(ctx context.Context, analysisID, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1 AND user_id = $2`, analysisID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAnalysis(scan func(dest ...any) error) (Analysis, error) {
	var (
		a             Analysis
		skills        []byte
		strengths     []byte
		weaknesses    []byte
		suggestions   []byte
		missingSkills []byte
		jobDesc       sql.NullString
		matchScore    sql.NullInt64
	)
	err := scan(
		&a.ID, &a.UserID, &a.FileName, &a.ResumeText, &a.ATSScore,
		&skills, &strengths, &weaknesses, &suggestions,
		&jobDesc, &matchScore, &missingSkills,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	if jobDesc.Valid {
		a.JobDescription = jobDesc.String
	}
	if matchScore.Valid {
		score := int(matchScore.Int64)
		a.MatchScore = &score
	}
	for _, col := range []struct {
		raw  []byte
		dest *[]string
		name string
	}{
		{skills, &a.Skills, "skills"},
		{strengths, &a.Strengths, "strengths"},
		{weaknesses, &a.Weaknesses, "weaknesses"},
		{suggestions, &a.Suggestions, "suggestions"},
		{missingSkills, &a.MissingSkills, "missing_skills"},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return Analysis{}, fmt.Errorf("decode %s: %w", col.name, err)
		}
	}
	return a, nil
}

func marshalStringList(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

var _ Repo = (*PGRepo)(nil)
