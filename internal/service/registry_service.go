package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
	"github.com/DigiCred-Holdings/credential-analysis/internal/registry"
)

// CatalogLister is the optional paginated listing surface a provider may
// implement (the PostgreSQL provider does).
type CatalogLister interface {
	CountCourses(ctx context.Context, sourceCode string) (int, error)
	ListCourses(ctx context.Context, sourceCode string, limit, offset int) ([]model.CourseRecord, error)
}

// RegistryService exposes read-only registry browsing for the API.
type RegistryService struct {
	provider registry.Provider
	lister   CatalogLister
	log      zerolog.Logger
}

// NewRegistryService wires the browsing service. lister may be nil when the
// backing provider has no pagination support (file snapshots); listing then
// falls back to slicing the full catalog.
func NewRegistryService(provider registry.Provider, lister CatalogLister, log zerolog.Logger) *RegistryService {
	return &RegistryService{
		provider: provider,
		lister:   lister,
		log:      log.With().Str("component", "registry_service").Logger(),
	}
}

func (s *RegistryService) ListSources(ctx context.Context) ([]model.Institution, error) {
	return s.provider.Sources(ctx)
}

// ListCourses returns one page of an institution's catalog plus the total
// course count. The source may be a canonical code or any registered alias.
func (s *RegistryService) ListCourses(ctx context.Context, source string, page, perPage int) ([]model.CourseRecord, int, error) {
	sourceCode, err := s.provider.ResolveSource(ctx, source)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	if s.lister != nil {
		total, err := s.lister.CountCourses(ctx, sourceCode)
		if err != nil {
			return nil, 0, err
		}
		courses, err := s.lister.ListCourses(ctx, sourceCode, perPage, offset)
		if err != nil {
			return nil, 0, err
		}
		return courses, total, nil
	}

	catalog, err := s.provider.FetchCatalog(ctx, sourceCode)
	if err != nil {
		return nil, 0, err
	}
	total := len(catalog)
	if offset >= total {
		return []model.CourseRecord{}, total, nil
	}
	end := offset + perPage
	if end > total {
		end = total
	}
	return catalog[offset:end], total, nil
}
