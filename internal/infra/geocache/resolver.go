package geocache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
)

// Store persists geocoding results keyed by normalized query.
type Store interface {
	Get(ctx context.Context, key string) (uvexposure.Location, bool, error)
	Set(ctx context.Context, key string, loc uvexposure.Location, ttl time.Duration) error
}

// Resolver caches an upstream LocationResolver. Misses and not-found results are
// passed through; store failures are logged and bypassed.
type Resolver struct {
	next   uvexposure.LocationResolver
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewResolver wraps next with store.
func NewResolver(next uvexposure.LocationResolver, store Store, ttl time.Duration, logger *slog.Logger) *Resolver {
	return &Resolver{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "geocache.resolver"),
	}
}

// Resolve implements uvexposure.LocationResolver.
func (r *Resolver) Resolve(ctx context.Context, query string) (uvexposure.Location, error) {
	key := normalize(query)
	if loc, ok, err := r.store.Get(ctx, key); err != nil {
		r.logger.Warn("geocache read failed", "key", key, "error", err)
	} else if ok {
		return loc, nil
	}

	loc, err := r.next.Resolve(ctx, query)
	if err != nil {
		return uvexposure.Location{}, err
	}
	if err := r.store.Set(ctx, key, loc, r.ttl); err != nil {
		r.logger.Warn("geocache write failed", "key", key, "error", err)
	}
	return loc, nil
}

func normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

var _ uvexposure.LocationResolver = (*Resolver)(nil)
