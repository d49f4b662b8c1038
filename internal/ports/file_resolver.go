package ports

import (
	"context"

	"github.com/mkoval24/printflow/internal/domain"
)

// FileResolver — сверка требуемых файлов с хранилищем через кэш.
type FileResolver interface {
	// Resolve возвращает доступные/отсутствующие файлы для набора имён.
	// Повторный вызов с тем же набором в пределах TTL кэша
	// не обращается к провайдеру.
	Resolve(ctx context.Context, required []string, shareRecipient string) (*domain.ResolutionResult, error)
}
