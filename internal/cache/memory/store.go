package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mkoval24/printflow/internal/domain"
	"github.com/mkoval24/printflow/pkg/metrics"
)

const tierLabel = "memory"

type entry struct {
	value     *domain.ResolutionResult
	createdAt time.Time
	expiresAt time.Time
}

// Store — быстрый (tier-1) уровень кэша: карта в памяти под одним мьютексом.
// Вытеснение ленивое: протухшая запись удаляется при обращении к ней.
type Store struct {
	mu    sync.Mutex
	items map[string]entry
}

func NewStore() *Store {
	return &Store{items: make(map[string]entry)}
}

// Get — значение по ключу; протухшая запись удаляется и считается промахом.
// Возвращается копия: закэшированное значение не мутируется.
func (s *Store) Get(_ context.Context, key string) (*domain.ResolutionResult, bool) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.items[key]
	if !ok {
		metrics.CacheOps.WithLabelValues(tierLabel, "miss").Inc()
		return nil, false
	}
	if now.After(ent.expiresAt) {
		delete(s.items, key)
		metrics.CacheOps.WithLabelValues(tierLabel, "expired").Inc()
		metrics.CacheSize.WithLabelValues(tierLabel).Set(float64(len(s.items)))
		return nil, false
	}

	metrics.CacheOps.WithLabelValues(tierLabel, "hit").Inc()
	return ent.value.Clone(), true
}

// Set — перезапись значения с новым TTL. TTL должен быть > 0.
func (s *Store) Set(_ context.Context, key string, value *domain.ResolutionResult, ttl time.Duration) error {
	if key == "" || value == nil || ttl <= 0 {
		return nil
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = entry{
		value:     value.Clone(),
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	metrics.CacheSize.WithLabelValues(tierLabel).Set(float64(len(s.items)))
	return nil
}

// Delete удаляет ключ.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	metrics.CacheSize.WithLabelValues(tierLabel).Set(float64(len(s.items)))
	return nil
}

// Clear очищает уровень целиком.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]entry)
	metrics.CacheSize.WithLabelValues(tierLabel).Set(0)
	return nil
}

// Stats — счётчики записей. Только чтение: протухшие записи не удаляются,
// вытеснение — отдельная операция (Get/Cleanup).
func (s *Store) Stats(_ context.Context) domain.TierStats {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := domain.TierStats{Total: len(s.items)}
	for _, ent := range s.items {
		if now.After(ent.expiresAt) {
			st.Expired++
		} else {
			st.Active++
		}
	}
	return st
}

// Cleanup удаляет протухшие записи и возвращает их число.
// Вызывается фоновой уборкой; для корректности не обязателен.
func (s *Store) Cleanup(_ context.Context) int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, ent := range s.items {
		if now.After(ent.expiresAt) {
			delete(s.items, key)
			removed++
		}
	}
	if removed > 0 {
		metrics.CacheSize.WithLabelValues(tierLabel).Set(float64(len(s.items)))
	}
	return removed
}
