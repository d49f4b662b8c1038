package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkoval24/printflow/config"
	"github.com/mkoval24/printflow/internal/baselinker"
	filecache "github.com/mkoval24/printflow/internal/cache/file"
	memcache "github.com/mkoval24/printflow/internal/cache/memory"
	"github.com/mkoval24/printflow/internal/cache/tiered"
	"github.com/mkoval24/printflow/internal/kafka"
	"github.com/mkoval24/printflow/internal/ports"
	"github.com/mkoval24/printflow/internal/resolver"
	"github.com/mkoval24/printflow/internal/smtp"
	miniostore "github.com/mkoval24/printflow/internal/storage/minio"
	rest "github.com/mkoval24/printflow/internal/transport/http"
	"github.com/mkoval24/printflow/internal/usecase"
	"github.com/mkoval24/printflow/pkg/logger"
	"github.com/mkoval24/printflow/pkg/metrics"
	"github.com/mkoval24/printflow/pkg/retry"
	"github.com/mkoval24/printflow/pkg/telemetry"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	KafkaConsumer   ports.MessageConsumer // nil при выключенном триггере
	janitor         func(ctx context.Context)
	janitorInterval time.Duration
	gracefulTimeout time.Duration
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Двухуровневый кэш результатов сверки файлов.
	fileStore, err := filecache.NewStore(cfg.Cache.Dir)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}
	cache := tiered.New(memcache.NewStore(), fileStore, cfg.Cache.MemoryTTL, cfg.Cache.FileTTL, logg)

	// Внешние сервисы: платформа заказов, хранилище макетов, почта.
	orders := baselinker.NewClient(cfg.Baselinker, logg)

	storage, err := miniostore.New(cfg.Storage, logg)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	mailer := smtp.NewSender(cfg.Mail, logg)

	retryPolicy := retry.Policy{
		MaxAttempts:  cfg.Retry.MaxAttempts,
		InitialDelay: cfg.Retry.InitialDelay,
		Multiplier:   cfg.Retry.Multiplier,
	}

	// Резолвер и конвейер. Область кэша — бакет с префиксом, чтобы
	// смена каталога хранилища не отдавала чужие результаты.
	scope := strings.Trim(cfg.Storage.Bucket+"/"+cfg.Storage.Prefix, "/")
	fileResolver := resolver.New(storage, cache, logg, scope, retryPolicy)
	pipeline := usecase.NewPipeline(orders, storage, fileResolver, mailer, logg, usecase.PipelineConfig{
		LookbackDays:   cfg.Pipeline.LookbackDays,
		HealthTimeout:  cfg.Pipeline.HealthTimeout,
		PrintRecipient: cfg.Mail.PrintRecipient,
		AdminRecipient: cfg.Mail.AdminRecipient,
		ShareRecipient: cfg.Mail.ShareRecipient,
		Retry:          retryPolicy,
	})
	serialRunner := usecase.NewSerialRunner(pipeline)
	healthChecker := usecase.NewHealthChecker(pipeline, cfg.Pipeline.HealthTimeout)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(serialRunner, healthChecker, cache, logg)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	// Консьюмер Kafka — опциональный триггер конвейера.
	var consumer ports.MessageConsumer
	if cfg.Kafka.Enabled {
		kafkaCfg := kafka.ConsumerConfig{
			Brokers:      cfg.Kafka.Brokers,
			GroupID:      cfg.Kafka.GroupID,
			Topic:        cfg.Kafka.Topic,
			StartOffset:  cfg.Kafka.StartOffset,
			RunTimeout:   cfg.Kafka.RunTimeout,
			RetryInitial: cfg.Kafka.RetryInit,
			RetryMax:     cfg.Kafka.RetryMax,
		}
		consumer = kafka.NewConsumer(&kafkaCfg, serialRunner, logg)
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		KafkaConsumer:   consumer,
		janitor:         cache.Cleanup,
		janitorInterval: cfg.Cache.JanitorInterval,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if consumer != nil {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер, консьюмера и уборщика кэша;
// ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск консьюмера (если включён).
	if a.KafkaConsumer != nil {
		go func() {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// Фоновая уборка протухших записей кэша.
	if a.janitor != nil && a.janitorInterval > 0 {
		go func() {
			ticker := time.NewTicker(a.janitorInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					a.janitor(ctx)
				}
			}
		}()
	}

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка Kafka-консьюмера.
	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
