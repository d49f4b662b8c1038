package ports

import "context"

// Logger — минимальный контракт логгера; конкретная реализация (zap)
// живёт в pkg/logger и не протекает в доменные слои.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
