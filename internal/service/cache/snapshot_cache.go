package cache

import (
	"context"
	"errors"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	pkgcache "MacroPulse/pkg/cache"
	applogger "MacroPulse/pkg/logger"
)

var snapshotsKey = pkgcache.GenerateKey("snapshots", "latest")

// SnapshotCache stores the collected indicator snapshots behind pkg/cache so
// evaluations within the TTL reuse one upstream fetch.
type SnapshotCache struct {
	backend pkgcache.Service
	ttl     time.Duration
	log     *applogger.Logger
}

// NewSnapshotCache wraps a cache backend with snapshot semantics.
func NewSnapshotCache(backend pkgcache.Service, ttl time.Duration, log *applogger.Logger) drepo.SnapshotCache {
	if log == nil {
		log = applogger.Nop()
	}
	return &SnapshotCache{backend: backend, ttl: ttl, log: log}
}

func (c *SnapshotCache) GetSnapshots(ctx context.Context) (map[string]*models.Snapshot, bool) {
	var snaps map[string]*models.Snapshot
	if err := c.backend.Get(ctx, snapshotsKey, &snaps); err != nil {
		if !errors.Is(err, pkgcache.ErrCacheMiss) {
			c.log.Warn("snapshot cache read failed", applogger.Error(err))
		}
		return nil, false
	}
	if len(snaps) == 0 {
		return nil, false
	}
	return snaps, true
}

func (c *SnapshotCache) SetSnapshots(ctx context.Context, snaps map[string]*models.Snapshot) error {
	return c.backend.Set(ctx, snapshotsKey, snaps, c.ttl)
}

func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	return c.backend.Delete(ctx, snapshotsKey)
}
