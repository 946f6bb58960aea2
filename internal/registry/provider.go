package registry

import (
	"context"
	"errors"

	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
)

// ErrUnknownSource means the requested institution matches no registered
// source code or alias.
var ErrUnknownSource = errors.New("unknown source institution")

// Provider supplies the canonical course catalog. Implementations must return
// catalogs in a fixed, reproducible order; the matcher's tie-breaking
// depends on it. Records are shared read-only; callers never mutate them.
type Provider interface {
	// ResolveSource maps a free-form institution name (canonical code or any
	// registered alias, case-insensitive) to its source code.
	ResolveSource(ctx context.Context, source string) (string, error)

	// FetchCatalog returns every course for the given source code, in
	// snapshot order. An unknown code returns an empty catalog, not an error.
	FetchCatalog(ctx context.Context, sourceCode string) ([]model.CourseRecord, error)

	// Sources lists all institutions the registry holds catalogs for.
	Sources(ctx context.Context) ([]model.Institution, error)
}
