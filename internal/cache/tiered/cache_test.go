package tiered

import (
	"context"
	"testing"
	"time"

	"github.com/mkoval24/printflow/internal/cache/file"
	"github.com/mkoval24/printflow/internal/cache/memory"
	"github.com/mkoval24/printflow/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func newTestCache(t *testing.T) (*Cache, *file.Store) {
	t.Helper()
	fs, err := file.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("file.NewStore: %v", err)
	}
	return New(memory.NewStore(), fs, time.Minute, time.Hour, nopLogger{}), fs
}

func testResult(id string) *domain.ResolutionResult {
	r := domain.NewResolutionResult()
	r.Available["poster.pdf"] = domain.FileInfo{ID: id, Name: "poster.pdf"}
	return r
}

func TestCache_WriteThrough(t *testing.T) {
	c, fs := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k1", testResult("f1")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, ok := c.Get(ctx, "k1"); !ok {
		t.Fatal("ожидали попадание после Set")
	}
	// Запись должна лежать и на диске, не только в памяти.
	if _, ok := fs.Get(ctx, "k1"); !ok {
		t.Fatal("сквозная запись не дошла до дискового уровня")
	}
}

func TestCache_PromotionFromFileTier(t *testing.T) {
	c, fs := newTestCache(t)
	ctx := context.Background()

	// Кладём только на диск — как будто память остыла после рестарта.
	if err := fs.Set(ctx, "k1", testResult("f1"), time.Hour); err != nil {
		t.Fatalf("file Set: %v", err)
	}

	if _, ok := c.Get(ctx, "k1"); !ok {
		t.Fatal("ожидали попадание с дискового уровня")
	}

	// После подъёма запись обязана жить в памяти: убираем диск и читаем ещё раз.
	if err := fs.Clear(ctx); err != nil {
		t.Fatalf("file Clear: %v", err)
	}
	if _, ok := c.Get(ctx, "k1"); !ok {
		t.Fatal("после подъёма запись должна отдаваться из памяти")
	}
}

func TestCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)
	if _, ok := c.Get(context.Background(), "nope"); ok {
		t.Fatal("ожидали промах для неизвестного ключа")
	}
}

func TestCache_DeleteRemovesBothTiers(t *testing.T) {
	c, fs := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "k1", testResult("f1"))
	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok := c.Get(ctx, "k1"); ok {
		t.Error("Get после Delete должен дать промах")
	}
	if _, ok := fs.Get(ctx, "k1"); ok {
		t.Error("Delete должен затронуть и дисковый уровень")
	}
}

func TestCache_ClearAndStats(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "k1", testResult("f1"))
	_ = c.Set(ctx, "k2", testResult("f2"))

	st := c.Stats(ctx)
	if st.Memory.Active != 2 || st.File.Active != 2 {
		t.Fatalf("Stats = %+v, ожидали по 2 активных на уровень", st)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	st = c.Stats(ctx)
	if st.Memory.Total != 0 || st.File.Total != 0 {
		t.Errorf("после Clear Stats = %+v", st)
	}
}
