package ports

import (
	"context"

	"github.com/mkoval24/printflow/internal/domain"
)

// PipelineRunner — запуск одного цикла оркестрации.
// Сериализация конкурентных запусков — обязанность вызывающего.
type PipelineRunner interface {
	Run(ctx context.Context) domain.RunResult
}
