package usecase

import (
	"context"
	"sync"

	"github.com/mkoval24/printflow/internal/domain"
	"github.com/mkoval24/printflow/internal/ports"
)

// SerialRunner сериализует конкурентные запуски конвейера: в каждый
// момент идёт не больше одного прогона. HTTP-слой использует TryRun
// (занято — сразу 409), консьюмер Kafka — блокирующий Run.
type SerialRunner struct {
	mu     sync.Mutex
	runner ports.PipelineRunner
}

var _ ports.PipelineRunner = (*SerialRunner)(nil)

func NewSerialRunner(runner ports.PipelineRunner) *SerialRunner {
	return &SerialRunner{runner: runner}
}

// Run ждёт завершения текущего прогона и запускает свой.
func (s *SerialRunner) Run(ctx context.Context) domain.RunResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner.Run(ctx)
}

// TryRun запускает прогон, только если сейчас ничего не идёт.
// Иначе возвращает ok == false, не дожидаясь.
func (s *SerialRunner) TryRun(ctx context.Context) (domain.RunResult, bool) {
	if !s.mu.TryLock() {
		return domain.RunResult{}, false
	}
	defer s.mu.Unlock()
	return s.runner.Run(ctx), true
}
