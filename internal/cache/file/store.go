package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkoval24/printflow/internal/domain"
	"github.com/mkoval24/printflow/pkg/metrics"
)

const tierLabel = "file"

// record — формат записи на диске: значение, отметки времени и исходный
// ключ (для диагностики руками в каталоге кэша).
type record struct {
	Key       string                   `json:"key"`
	Value     *domain.ResolutionResult `json:"value"`
	CreatedAt int64                    `json:"created_at"`
	ExpiresAt int64                    `json:"expires_at"`
}

// Store — медленный (tier-2) уровень кэша: один JSON-файл на ключ,
// имя файла — hex(sha256) ключа. Записи переживают рестарт процесса.
// Запись атомарная (временный файл + rename), поэтому конкурентные
// читатели никогда не видят неполный файл. Битая или нечитаемая запись —
// это промах: файл удаляется, ошибка наверх не поднимается.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}

func (s *Store) Get(_ context.Context, key string) (*domain.ResolutionResult, bool) {
	p := s.path(key)

	raw, err := os.ReadFile(p)
	if err != nil {
		if !os.IsNotExist(err) {
			metrics.CacheOps.WithLabelValues(tierLabel, "corrupt").Inc()
			_ = os.Remove(p)
		} else {
			metrics.CacheOps.WithLabelValues(tierLabel, "miss").Inc()
		}
		return nil, false
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil || rec.Value == nil {
		metrics.CacheOps.WithLabelValues(tierLabel, "corrupt").Inc()
		_ = os.Remove(p)
		return nil, false
	}
	if time.Now().Unix() > rec.ExpiresAt {
		metrics.CacheOps.WithLabelValues(tierLabel, "expired").Inc()
		_ = os.Remove(p)
		return nil, false
	}

	metrics.CacheOps.WithLabelValues(tierLabel, "hit").Inc()
	return rec.Value, true
}

func (s *Store) Set(_ context.Context, key string, value *domain.ResolutionResult, ttl time.Duration) error {
	if key == "" || value == nil || ttl <= 0 {
		return nil
	}
	now := time.Now()

	raw, err := json.Marshal(record{
		Key:       key,
		Value:     value,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal cache record: %w", err)
	}

	// Атомарная замена: пишем во временный файл в том же каталоге и
	// переименовываем поверх целевого.
	tmp, err := os.CreateTemp(s.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	names, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Cleanup удаляет с диска протухшие и нечитаемые записи.
// Возвращает число удалённых файлов.
func (s *Store) Cleanup(_ context.Context) int {
	now := time.Now().Unix()
	removed := 0

	names, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return 0
	}
	for _, name := range names {
		raw, err := os.ReadFile(name)
		if err == nil {
			var rec record
			if err := json.Unmarshal(raw, &rec); err == nil && now <= rec.ExpiresAt {
				continue
			}
		}
		if os.Remove(name) == nil {
			removed++
		}
	}
	return removed
}

// Stats обходит каталог и считает записи. Только чтение: протухшие и
// нечитаемые файлы не трогаются (нечитаемые считаются протухшими).
func (s *Store) Stats(_ context.Context) domain.TierStats {
	var st domain.TierStats
	now := time.Now().Unix()

	names, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return st
	}
	for _, name := range names {
		st.Total++
		raw, err := os.ReadFile(name)
		if err != nil {
			st.Expired++
			continue
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil || now > rec.ExpiresAt {
			st.Expired++
			continue
		}
		st.Active++
	}
	return st
}
