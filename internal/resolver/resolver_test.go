package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mkoval24/printflow/internal/cache/file"
	"github.com/mkoval24/printflow/internal/cache/memory"
	"github.com/mkoval24/printflow/internal/cache/tiered"
	"github.com/mkoval24/printflow/internal/domain"
	"github.com/mkoval24/printflow/internal/ports/mocks"
	"github.com/mkoval24/printflow/pkg/retry"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// fastPolicy — одна попытка без пауз, чтобы тесты не спали.
var fastPolicy = retry.Policy{MaxAttempts: 1, InitialDelay: time.Millisecond, Multiplier: 1}

func newTestResolver(t *testing.T, storage *mocks.MockFileStorage, policy retry.Policy) *Resolver {
	t.Helper()
	fs, err := file.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("file.NewStore: %v", err)
	}
	cache := tiered.New(memory.NewStore(), fs, time.Minute, time.Hour, nopLogger{})
	return New(storage, cache, nopLogger{}, "posters", policy)
}

func TestResolver_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := mocks.NewMockFileStorage(ctrl)
	// Никаких вызовов провайдера для пустого набора.
	r := newTestResolver(t, storage, fastPolicy)

	res, err := r.Resolve(context.Background(), nil, "print@example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.TotalFound() != 0 || len(res.Missing) != 0 {
		t.Fatalf("ожидали пустой результат, получили %+v", res)
	}
}

func TestResolver_SearchOncePerCacheWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := mocks.NewMockFileStorage(ctrl)
	storage.EXPECT().
		Search(gomock.Any(), []string{"Poster_B2.pdf", "card.pdf"}).
		Return([]domain.FileInfo{
			{ID: "f1", Name: "poster_b2.pdf", WebViewLink: "http://files/f1"},
		}, nil).
		Times(1)
	storage.EXPECT().GrantAccess(gomock.Any(), "f1", "print@example.com").Return(nil).Times(1)

	r := newTestResolver(t, storage, fastPolicy)
	ctx := context.Background()

	first, err := r.Resolve(ctx, []string{"Poster_B2.pdf", "card.pdf"}, "print@example.com")
	if err != nil {
		t.Fatalf("первый Resolve: %v", err)
	}
	if first.TotalFound() != 1 {
		t.Fatalf("TotalFound = %d, ожидали 1", first.TotalFound())
	}
	if len(first.Missing) != 1 || first.Missing[0] != "card.pdf" {
		t.Fatalf("Missing = %v", first.Missing)
	}
	if _, ok := first.Available["poster_b2.pdf"]; !ok {
		t.Fatal("ключи Available должны быть в нижнем регистре")
	}

	// Повторный вызов с тем же набором — из кэша, без Search и GrantAccess.
	second, err := r.Resolve(ctx, []string{"card.pdf", "poster_b2.PDF"}, "print@example.com")
	if err != nil {
		t.Fatalf("второй Resolve: %v", err)
	}
	if second.TotalFound() != 1 || len(second.Missing) != 1 {
		t.Fatalf("результат из кэша разошёлся: %+v", second)
	}
}

func TestResolver_ExtensionlessNameSatisfiesPDF(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := mocks.NewMockFileStorage(ctrl)
	storage.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		Return([]domain.FileInfo{
			{ID: "f1", Name: "poster"},     // без расширения — закрывает poster.pdf
			{ID: "f2", Name: "banner.pdf"}, // с расширением — НЕ закрывает banner
		}, nil)
	storage.EXPECT().GrantAccess(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	r := newTestResolver(t, storage, fastPolicy)

	res, err := r.Resolve(context.Background(), []string{"poster.pdf", "banner"}, "print@example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, ok := res.Available["poster.pdf"]; !ok {
		t.Error("имя без расширения должно закрывать запрос с .pdf")
	}
	if len(res.Missing) != 1 || res.Missing[0] != "banner" {
		t.Errorf("сверка должна быть односторонней, Missing = %v", res.Missing)
	}
}

func TestResolver_SearchErrorNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("storage down")
	storage := mocks.NewMockFileStorage(ctrl)
	gomock.InOrder(
		storage.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, boom),
		storage.EXPECT().Search(gomock.Any(), gomock.Any()).
			Return([]domain.FileInfo{{ID: "f1", Name: "poster.pdf"}}, nil),
	)
	storage.EXPECT().GrantAccess(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	r := newTestResolver(t, storage, fastPolicy)
	ctx := context.Background()

	if _, err := r.Resolve(ctx, []string{"poster.pdf"}, ""); !errors.Is(err, boom) {
		t.Fatalf("ожидали ошибку провайдера, получили %v", err)
	}

	// Ошибка не должна осесть в кэше: следующий вызов снова идёт в хранилище.
	res, err := r.Resolve(ctx, []string{"poster.pdf"}, "")
	if err != nil {
		t.Fatalf("повторный Resolve: %v", err)
	}
	if res.TotalFound() != 1 {
		t.Fatalf("TotalFound = %d", res.TotalFound())
	}
}

func TestResolver_SearchRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := mocks.NewMockFileStorage(ctrl)
	gomock.InOrder(
		storage.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, errors.New("flaky")),
		storage.EXPECT().Search(gomock.Any(), gomock.Any()).
			Return([]domain.FileInfo{{ID: "f1", Name: "poster.pdf"}}, nil),
	)

	policy := retry.Policy{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 1}
	r := newTestResolver(t, storage, policy)

	res, err := r.Resolve(context.Background(), []string{"poster.pdf"}, "")
	if err != nil {
		t.Fatalf("Resolve после повтора: %v", err)
	}
	if res.TotalFound() != 1 {
		t.Fatalf("TotalFound = %d", res.TotalFound())
	}
}

func TestResolver_GrantAccessFailureIsBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := mocks.NewMockFileStorage(ctrl)
	storage.EXPECT().Search(gomock.Any(), gomock.Any()).
		Return([]domain.FileInfo{
			{ID: "f1", Name: "a.pdf"},
			{ID: "f2", Name: "b.pdf"},
		}, nil)
	storage.EXPECT().GrantAccess(gomock.Any(), gomock.Any(), "print@example.com").
		Return(errors.New("no permission")).Times(2)

	r := newTestResolver(t, storage, fastPolicy)

	res, err := r.Resolve(context.Background(), []string{"a.pdf", "b.pdf"}, "print@example.com")
	if err != nil {
		t.Fatalf("ошибка выдачи доступа не должна валить сверку: %v", err)
	}
	if res.TotalFound() != 2 {
		t.Fatalf("TotalFound = %d", res.TotalFound())
	}
}
