package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mkoval24/printflow/internal/ports"
	"github.com/mkoval24/printflow/pkg/metrics"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// Consumer — триггер конвейера по сообщениям из Kafka: любое сообщение
// топика запускает один прогон. Содержимое сообщения не разбирается —
// оно лишь сигнал «пора обработать заказы».
type Consumer struct {
	reader     reader
	runner     ports.PipelineRunner
	log        ports.Logger
	runTimeout time.Duration

	retryInitial time.Duration
	retryMax     time.Duration
	jitterRand   *rand.Rand
	closeOnce    sync.Once
}

// NewConsumer — конструктор. readerConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, runner ports.PipelineRunner, log ports.Logger) *Consumer {
	return newConsumer(kafka.NewReader(cfg.readerConfig()), cfg, runner, log)
}

func newConsumer(r reader, cfg *ConsumerConfig, runner ports.PipelineRunner, log ports.Logger) *Consumer {
	rt := cfg.RunTimeout
	if rt <= 0 {
		rt = 2 * time.Minute
	}
	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 1 * time.Second
	}
	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	return &Consumer{
		reader:       r,
		runner:       runner,
		log:          log,
		runTimeout:   rt,
		retryInitial: rInit,
		retryMax:     rMax,
		// jitterRand — источник случайности, чтобы рассинхронизировать экспоненциальный backoff.
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — основной цикл:
// 1) читаем сообщение без авто-коммита;
// 2) прогон конвейера завершился с побочными эффектами → CommitMessages;
// 3) внешние сервисы недоступны → без коммита (сообщение вернётся, at-least-once);
// 4) ошибка FetchMessage → экспоненциальный backoff с джиттером и повтор.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	retry := c.retryInitial

	for {
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			metrics.TriggerMessages.WithLabelValues(rc.Topic, "fetch_error").Inc()
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial

		if shouldCommit := c.handleMessage(ctx, rc.Topic, &msg); shouldCommit {
			c.commitSafely(ctx, &msg)
		} else {
			// Пауза перед повторной выборкой того же сообщения,
			// чтобы не молотить недоступные сервисы в цикле.
			_ = c.sleepWithBackoff(ctx, c.withJitterEqual(c.retryInitial))
		}
	}
}

// Close закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
