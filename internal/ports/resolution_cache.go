package ports

import (
	"context"

	"github.com/mkoval24/printflow/internal/domain"
)

// ResolutionCache — двухуровневый кэш результатов сверки файлов.
// Требования к реализации: потокобезопасность; ленивое вытеснение по TTL;
// возврат копий значения (результат после создания не мутируется).
type ResolutionCache interface {
	// Get — значение по ключу; (v, true) при попадании в любом уровне,
	// (nil, false) при промахе или истечении TTL.
	Get(ctx context.Context, key string) (*domain.ResolutionResult, bool)

	// Set — сквозная запись в оба уровня с их TTL.
	Set(ctx context.Context, key string, value *domain.ResolutionResult) error

	// Delete — удаление ключа из обоих уровней.
	Delete(ctx context.Context, key string) error

	// Clear — полная очистка обоих уровней.
	Clear(ctx context.Context) error

	// Stats — счётчики записей по уровням, без побочных эффектов.
	Stats(ctx context.Context) domain.CacheStats
}
