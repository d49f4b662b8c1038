package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mkoval24/printflow/internal/domain"
	"github.com/mkoval24/printflow/pkg/metrics"
)

// handleMessage запускает один прогон конвейера и решает, коммитить ли оффсет.
// Недоступность внешних сервисов — единственный исход без побочных эффектов,
// поэтому только он откладывает сообщение. Любой другой исход (включая сбой
// посреди прогона) коммитится: повторный запуск после частичного прогона
// продублировал бы уведомления.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	ctxTimeout, cancel := context.WithTimeout(ctx, c.runTimeout)
	res := c.runner.Run(ctxTimeout)
	cancel()

	if res.Outcome == domain.OutcomeServicesUnavailable {
		metrics.TriggerMessages.WithLabelValues(topic, "deferred").Inc()
		c.log.Warnf(ctx, "trigger offset=%d deferred: %s (will retry without commit)", msg.Offset, res.Err)
		return false
	}

	metrics.TriggerMessages.WithLabelValues(topic, "processed").Inc()
	c.log.Infof(ctx, "trigger offset=%d processed, run=%s outcome=%s", msg.Offset, res.RunID, res.Outcome)
	return true
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// sleepWithBackoff ждёт или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учётом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — умеренная случайность: половина задержки фиксирована,
// вторая половина — случайная.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
