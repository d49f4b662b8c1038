package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/mkoval24/printflow/pkg/ctxmeta"
)

// ZapLogger — реализация ports.Logger поверх zap.
// Если в контексте есть request_id/run_id, они добавляются к записи.
type ZapLogger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		zl  *zap.Logger
		err error
	)

	if isProd {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, nil, err
	}

	wrap := &ZapLogger{base: zl, sugar: zl.Sugar()}
	cleanup := func() error { return wrap.base.Sync() }
	return wrap, cleanup, nil
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger { return z.base }

// with обогащает запись метаданными из контекста.
func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	s := z.sugar
	if id, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		s = s.With("request_id", id)
	}
	if id, ok := ctxmeta.RunIDFromContext(ctx); ok {
		s = s.With("run_id", id)
	}
	if id, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		s = s.With("trace_id", id)
	}
	return s
}
