package analyses

import "errors"

var (
	// ErrNotFound covers both a missing record and a record owned by
	// somebody else; callers cannot tell the two apart.
	ErrNotFound = errors.New("analysis not found")

	// ErrJobDescriptionRequired is returned when a match is requested
	// with a blank job description.
	ErrJobDescriptionRequired = errors.New("job description is required")

	// ErrMalformedResponse means no JSON object could be located in the
	// completion output.
	ErrMalformedResponse = errors.New("no JSON object in completion response")

	// ErrInvalidJSON means a candidate object was located but failed to parse.
	ErrInvalidJSON = errors.New("completion response is not valid JSON")

	// ErrIncompleteAnalysis means the parsed object is missing required
	// fields or carries an out-of-range score.
	ErrIncompleteAnalysis = errors.New("incomplete completion payload")
)
