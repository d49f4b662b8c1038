package resolver

import (
	"context"
	"strings"

	"github.com/mkoval24/printflow/internal/domain"
	"github.com/mkoval24/printflow/internal/ports"
	"github.com/mkoval24/printflow/pkg/metrics"
	"github.com/mkoval24/printflow/pkg/retry"
)

// Resolver — сверка требуемых файлов с хранилищем через двухуровневый кэш.
// Один запрос к провайдеру на весь набор имён; результат кэшируется, чтобы
// повторные прогоны конвейера в пределах TTL не дёргали хранилище.
type Resolver struct {
	storage ports.FileStorage
	cache   ports.ResolutionCache
	log     ports.Logger
	scope   string
	policy  retry.Policy
}

var _ ports.FileResolver = (*Resolver)(nil)

func New(storage ports.FileStorage, cache ports.ResolutionCache, log ports.Logger, scope string, policy retry.Policy) *Resolver {
	return &Resolver{
		storage: storage,
		cache:   cache,
		log:     log,
		scope:   scope,
		policy:  policy,
	}
}

func (r *Resolver) Resolve(ctx context.Context, required []string, shareRecipient string) (*domain.ResolutionResult, error) {
	if len(required) == 0 {
		return domain.NewResolutionResult(), nil
	}

	key := CacheKey(r.scope, required)
	if cached, ok := r.cache.Get(ctx, key); ok {
		r.log.Infof(ctx, "resolver: cache hit, %d available / %d missing", cached.TotalFound(), len(cached.Missing))
		return cached, nil
	}

	var found []domain.FileInfo
	err := retry.Do(ctx, r.policy, func() error {
		metrics.StorageSearches.Inc()
		var searchErr error
		found, searchErr = r.storage.Search(ctx, required)
		return searchErr
	})
	if err != nil {
		return nil, err
	}

	result := r.reconcile(required, found)

	r.share(ctx, result, shareRecipient)

	if err := r.cache.Set(ctx, key, result); err != nil {
		r.log.Warnf(ctx, "resolver: cache set failed: %v", err)
	}

	r.log.Infof(ctx, "resolver: storage search done, %d available / %d missing", result.TotalFound(), len(result.Missing))
	return result, nil
}

// reconcile сопоставляет запрошенные имена с найденными. Сравнение без
// учёта регистра; найденное имя без расширения закрывает запрошенное
// "имя.pdf", но не наоборот.
func (r *Resolver) reconcile(required []string, found []domain.FileInfo) *domain.ResolutionResult {
	byName := make(map[string]domain.FileInfo, len(found))
	for _, f := range found {
		byName[strings.ToLower(f.Name)] = f
	}

	result := domain.NewResolutionResult()
	for _, name := range required {
		want := strings.ToLower(name)

		if f, ok := byName[want]; ok {
			result.Available[want] = f
			continue
		}
		if base, ok := strings.CutSuffix(want, ".pdf"); ok {
			if f, found := byName[base]; found {
				result.Available[want] = f
				continue
			}
		}
		result.Missing = append(result.Missing, want)
	}
	return result
}

// share выдаёт получателю доступ на каждый найденный файл. Неудача по
// одному файлу логируется и не прерывает остальные.
func (r *Resolver) share(ctx context.Context, result *domain.ResolutionResult, recipient string) {
	if recipient == "" {
		return
	}
	for name, f := range result.Available {
		if err := r.storage.GrantAccess(ctx, f.ID, recipient); err != nil {
			r.log.Warnf(ctx, "resolver: grant access to %q (%s) failed: %v", name, f.ID, err)
		}
	}
}
