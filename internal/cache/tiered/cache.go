package tiered

import (
	"context"
	"time"

	"github.com/mkoval24/printflow/internal/domain"
	"github.com/mkoval24/printflow/internal/ports"
	"github.com/mkoval24/printflow/pkg/metrics"
)

// tier — общий контракт уровней кэша. Ему удовлетворяют memory.Store и
// file.Store.
type tier interface {
	Get(ctx context.Context, key string) (*domain.ResolutionResult, bool)
	Set(ctx context.Context, key string, value *domain.ResolutionResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) domain.TierStats
	Cleanup(ctx context.Context) int
}

// Cache — двухуровневый кэш результатов поиска файлов: быстрый уровень в
// памяти поверх медленного на диске. Чтение идёт сверху вниз, попадание на
// диске поднимает запись в память (с TTL уровня памяти). Запись сквозная —
// в оба уровня сразу.
type Cache struct {
	mem     tier
	file    tier
	ttlMem  time.Duration
	ttlFile time.Duration
	log     ports.Logger
}

var _ ports.ResolutionCache = (*Cache)(nil)

func New(mem, file tier, ttlMem, ttlFile time.Duration, log ports.Logger) *Cache {
	return &Cache{
		mem:     mem,
		file:    file,
		ttlMem:  ttlMem,
		ttlFile: ttlFile,
		log:     log,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (*domain.ResolutionResult, bool) {
	if v, ok := c.mem.Get(ctx, key); ok {
		return v, true
	}

	v, ok := c.file.Get(ctx, key)
	if !ok {
		return nil, false
	}

	// Подъём с диска в память. Неудача подъёма не мешает отдать значение.
	if err := c.mem.Set(ctx, key, v, c.ttlMem); err != nil {
		c.log.Warnf(ctx, "cache: promote %q to memory failed: %v", key, err)
	} else {
		metrics.CacheOps.WithLabelValues("memory", "promoted").Inc()
	}
	return v, true
}

func (c *Cache) Set(ctx context.Context, key string, value *domain.ResolutionResult) error {
	if err := c.mem.Set(ctx, key, value, c.ttlMem); err != nil {
		c.log.Warnf(ctx, "cache: memory set %q failed: %v", key, err)
	}
	return c.file.Set(ctx, key, value, c.ttlFile)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.mem.Delete(ctx, key); err != nil {
		c.log.Warnf(ctx, "cache: memory delete %q failed: %v", key, err)
	}
	return c.file.Delete(ctx, key)
}

func (c *Cache) Clear(ctx context.Context) error {
	if err := c.mem.Clear(ctx); err != nil {
		c.log.Warnf(ctx, "cache: memory clear failed: %v", err)
	}
	return c.file.Clear(ctx)
}

func (c *Cache) Stats(ctx context.Context) domain.CacheStats {
	st := domain.CacheStats{
		Memory: c.mem.Stats(ctx),
		File:   c.file.Stats(ctx),
	}
	metrics.CacheSize.WithLabelValues("memory").Set(float64(st.Memory.Active))
	metrics.CacheSize.WithLabelValues("file").Set(float64(st.File.Active))
	return st
}

// Cleanup прогоняет уборщика по обоим уровням. Вызывается фоновой
// джобой из бутстрапа.
func (c *Cache) Cleanup(ctx context.Context) {
	memN := c.mem.Cleanup(ctx)
	fileN := c.file.Cleanup(ctx)
	if memN > 0 || fileN > 0 {
		c.log.Infof(ctx, "cache: janitor removed %d memory / %d file entries", memN, fileN)
	}
}
