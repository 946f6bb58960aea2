package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/DigiCred-Holdings/credential-analysis/internal/registry"
)

// RegistryRefreshWorker periodically re-warms the Redis catalog cache from
// the backing store so serving nodes keep a hot cache across TTL expiry and
// registry updates.
type RegistryRefreshWorker struct {
	cache    *registry.CachedProvider
	interval time.Duration
	log      zerolog.Logger
}

func NewRegistryRefreshWorker(cache *registry.CachedProvider, interval time.Duration, log zerolog.Logger) *RegistryRefreshWorker {
	return &RegistryRefreshWorker{
		cache:    cache,
		interval: interval,
		log:      log.With().Str("component", "registry_refresh_worker").Logger(),
	}
}

// Start runs the refresh loop until the context is cancelled. A failed
// refresh is logged and retried on the next tick; the serving path keeps
// using the previous cache entries meanwhile.
func (w *RegistryRefreshWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("RegistryRefreshWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("RegistryRefreshWorker stopped")
			return
		case <-ticker.C:
			if err := w.cache.Prewarm(ctx); err != nil && ctx.Err() == nil {
				w.log.Error().Err(err).Msg("Registry cache refresh failed")
			}
		}
	}
}
