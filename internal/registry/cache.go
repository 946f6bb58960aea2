package registry

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/DigiCred-Holdings/credential-analysis/internal/config"
	"github.com/DigiCred-Holdings/credential-analysis/internal/model"
)

// CachedProvider wraps another Provider with a Redis catalog cache. Catalogs
// are stored as JSON per source code with a TTL; cache misses and Redis
// failures fall through to the wrapped provider, never failing the request.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedProvider(inner Provider, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		log:   log.With().Str("component", "registry_cache").Logger(),
	}
}

func (p *CachedProvider) ResolveSource(ctx context.Context, source string) (string, error) {
	key := config.CacheKey.SourceAliasKey(source)

	if code, err := p.rdb.Get(ctx, key).Result(); err == nil && code != "" {
		return code, nil
	} else if err != nil && !errors.Is(err, redis.Nil) {
		p.log.Warn().Err(err).Str("source", source).Msg("Alias cache read failed")
	}

	code, err := p.inner.ResolveSource(ctx, source)
	if err != nil {
		return "", err
	}

	if err := p.rdb.Set(ctx, key, code, p.ttl).Err(); err != nil {
		p.log.Warn().Err(err).Str("key", key).Msg("Alias cache write failed")
	}
	return code, nil
}

func (p *CachedProvider) FetchCatalog(ctx context.Context, sourceCode string) ([]model.CourseRecord, error) {
	key := config.CacheKey.RegistryCatalogKey(sourceCode)

	data, err := p.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var catalog []model.CourseRecord
		if err := json.Unmarshal(data, &catalog); err == nil {
			return catalog, nil
		}
		// Corrupt cache entry; drop it and reload from the source of truth.
		p.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		p.log.Warn().Err(err).Str("source", sourceCode).Msg("Catalog cache read failed")
	}

	catalog, err := p.inner.FetchCatalog(ctx, sourceCode)
	if err != nil {
		return nil, err
	}

	p.store(ctx, key, catalog)
	return catalog, nil
}

func (p *CachedProvider) Sources(ctx context.Context) ([]model.Institution, error) {
	key := config.CacheKey.RegistrySourcesKey()

	data, err := p.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var institutions []model.Institution
		if err := json.Unmarshal(data, &institutions); err == nil {
			return institutions, nil
		}
		p.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		p.log.Warn().Err(err).Msg("Source list cache read failed")
	}

	institutions, err := p.inner.Sources(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(institutions); err == nil {
		if err := p.rdb.Set(ctx, key, encoded, p.ttl).Err(); err != nil {
			p.log.Warn().Err(err).Str("key", key).Msg("Source list cache write failed")
		}
	}
	return institutions, nil
}

// Prewarm loads every known source's catalog into Redis. Called once before
// the server accepts traffic, and again by the refresh worker.
func (p *CachedProvider) Prewarm(ctx context.Context) error {
	institutions, err := p.inner.Sources(ctx)
	if err != nil {
		return err
	}

	for _, inst := range institutions {
		catalog, err := p.inner.FetchCatalog(ctx, inst.Code)
		if err != nil {
			return err
		}
		p.store(ctx, config.CacheKey.RegistryCatalogKey(inst.Code), catalog)
	}

	p.log.Info().Int("sources", len(institutions)).Msg("Registry cache prewarmed")
	return nil
}

func (p *CachedProvider) store(ctx context.Context, key string, catalog []model.CourseRecord) {
	data, err := json.Marshal(catalog)
	if err != nil {
		return
	}
	if err := p.rdb.Set(ctx, key, data, p.ttl).Err(); err != nil {
		p.log.Warn().Err(err).Str("key", key).Msg("Catalog cache write failed")
	}
}
