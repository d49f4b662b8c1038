package ports

import (
	"context"

	"github.com/mkoval24/printflow/internal/domain"
)

// FileStorage — контракт провайдера хранилища файлов.
type FileStorage interface {
	// Search выполняет один запрос к хранилищу по набору имён
	// (регистр не учитывается, расширение .pdf при поиске отбрасывается)
	// и возвращает найденные дескрипторы.
	Search(ctx context.Context, names []string) ([]domain.FileInfo, error)

	// GrantAccess выдаёт получателю доступ на чтение одного файла.
	// Best-effort: ошибка не прерывает обработку остальных файлов.
	GrantAccess(ctx context.Context, fileID, recipient string) error

	// Health — проба живости хранилища.
	Health(ctx context.Context) error
}
