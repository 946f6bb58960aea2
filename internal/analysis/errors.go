package analysis

import "errors"

// Fatal analysis errors. Both abort the whole request; no partial results are
// returned. They are pure validation failures, so callers must not retry.
var (
	// ErrNoCandidates means the requested institution has no courses in the
	// registry subset handed to the matcher.
	ErrNoCandidates = errors.New("no candidate courses for requested source")

	// ErrMalformedEntry means a student course entry is missing its title or
	// code. The batch is rejected all-or-nothing.
	ErrMalformedEntry = errors.New("student course entry missing title or code")
)
