package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkoval24/printflow/internal/domain"
	"github.com/mkoval24/printflow/internal/mail"
	"github.com/mkoval24/printflow/internal/ports"
	"github.com/mkoval24/printflow/pkg/ctxmeta"
	"github.com/mkoval24/printflow/pkg/metrics"
	"github.com/mkoval24/printflow/pkg/retry"
)

// PipelineConfig — параметры одного прогона оркестрации.
type PipelineConfig struct {
	LookbackDays   int           // окно выборки заказов, дней назад
	HealthTimeout  time.Duration // таймаут одной пробы живости
	PrintRecipient string        // получатель письма в типографию
	AdminRecipient string        // получатель письма о недостающих файлах
	ShareRecipient string        // кому выдаётся доступ к найденным файлам
	Retry          retry.Policy
}

// Pipeline — оркестратор цикла обработки заказов: пробы живости,
// выборка заказов, сверка файлов, уведомления, перевод статусов.
type Pipeline struct {
	orders   ports.OrderPlatform
	storage  ports.FileStorage
	resolver ports.FileResolver
	mailer   ports.EmailSender
	log      ports.Logger
	cfg      PipelineConfig
}

var _ ports.PipelineRunner = (*Pipeline)(nil)

func NewPipeline(
	orders ports.OrderPlatform,
	storage ports.FileStorage,
	resolver ports.FileResolver,
	mailer ports.EmailSender,
	log ports.Logger,
	cfg PipelineConfig,
) *Pipeline {
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = 5 * time.Second
	}
	return &Pipeline{
		orders:   orders,
		storage:  storage,
		resolver: resolver,
		mailer:   mailer,
		log:      log,
		cfg:      cfg,
	}
}

// Run выполняет один цикл. Любой исход возвращается значением,
// паник и ошибок наружу нет; счётчик прогона пишется в метрики.
func (p *Pipeline) Run(ctx context.Context) domain.RunResult {
	runID := uuid.NewString()
	ctx = ctxmeta.WithRunID(ctx, runID)

	res := p.run(ctx, runID)
	metrics.PipelineRuns.WithLabelValues(string(res.Outcome)).Inc()

	if res.Success() {
		p.log.Infof(ctx, "pipeline: finished, outcome=%s orders=%d found=%d missing=%d emails=%d",
			res.Outcome, res.OrdersProcessed, res.FilesFound, res.FilesMissing, res.EmailsSent)
	} else {
		p.log.Errorf(ctx, "pipeline: finished, outcome=%s: %s", res.Outcome, res.Err)
	}
	return res
}

func (p *Pipeline) run(ctx context.Context, runID string) domain.RunResult {
	// Шлюз живости: все внешние сервисы должны ответить до начала
	// работы, иначе прогон откладывается без побочных эффектов.
	if unhealthy := p.checkServices(ctx); len(unhealthy) > 0 {
		return domain.RunResult{
			RunID:   runID,
			Outcome: domain.OutcomeServicesUnavailable,
			Err:     "services unavailable: " + strings.Join(unhealthy, ", "),
		}
	}

	var hasNew bool
	err := retry.Do(ctx, p.cfg.Retry, func() error {
		var e error
		hasNew, e = p.orders.HasNewOrders(ctx, p.cfg.LookbackDays)
		return e
	})
	if err != nil {
		return domain.RunResult{RunID: runID, Outcome: domain.OutcomeFailed, Err: "check new orders: " + err.Error()}
	}
	if !hasNew {
		return domain.RunResult{RunID: runID, Outcome: domain.OutcomeNoNewOrders}
	}

	var batch *domain.OrderBatch
	err = retry.Do(ctx, p.cfg.Retry, func() error {
		var e error
		batch, e = p.orders.OrderDetails(ctx, p.cfg.LookbackDays)
		return e
	})
	if err != nil {
		return domain.RunResult{RunID: runID, Outcome: domain.OutcomeFailed, Err: "fetch order details: " + err.Error()}
	}
	if batch == nil || batch.Empty() {
		return domain.RunResult{RunID: runID, Outcome: domain.OutcomeNoValidOrders}
	}

	resolution, err := p.resolver.Resolve(ctx, batch.Files, p.cfg.ShareRecipient)
	if err != nil {
		return domain.RunResult{RunID: runID, Outcome: domain.OutcomeFailed, Err: "resolve files: " + err.Error()}
	}

	emailsSent := p.notify(ctx, batch, resolution)

	if emailsSent == 0 && (resolution.TotalFound() > 0 || len(resolution.Missing) > 0) {
		p.log.Warnf(ctx, "pipeline: no notifications delivered, statuses will be updated anyway")
	}

	p.updateStatuses(ctx, batch.OrderIDs)

	return domain.RunResult{
		RunID:           runID,
		Outcome:         domain.OutcomeCompleted,
		OrdersProcessed: len(batch.OrderIDs),
		FilesFound:      resolution.TotalFound(),
		FilesMissing:    len(resolution.Missing),
		EmailsSent:      emailsSent,
	}
}

// notify шлёт независимые уведомления: в типографию о готовых к печати
// файлах и администратору о недостающих. Каждое обёрнуто повторами,
// сбой одного не блокирует другое.
func (p *Pipeline) notify(ctx context.Context, batch *domain.OrderBatch, res *domain.ResolutionResult) int {
	sent := 0

	if res.TotalFound() > 0 {
		body := mail.PrintOrderBody(batch, res.Available)
		err := retry.Do(ctx, p.cfg.Retry, func() error {
			return p.mailer.Send(ctx, p.cfg.PrintRecipient, mail.SubjectPrintOrder, body)
		})
		if err != nil {
			metrics.MailSent.WithLabelValues("print_order", "error").Inc()
			p.log.Errorf(ctx, "pipeline: print order notification failed: %v", err)
		} else {
			metrics.MailSent.WithLabelValues("print_order", "ok").Inc()
			sent++
		}
	}

	if len(res.Missing) > 0 {
		body := mail.MissingFilesBody(batch.OrderIDs, res.Missing, batch.Quantities)
		err := retry.Do(ctx, p.cfg.Retry, func() error {
			return p.mailer.Send(ctx, p.cfg.AdminRecipient, mail.SubjectMissingFiles, body)
		})
		if err != nil {
			metrics.MailSent.WithLabelValues("missing_files", "error").Inc()
			p.log.Errorf(ctx, "pipeline: missing files notification failed: %v", err)
		} else {
			metrics.MailSent.WithLabelValues("missing_files", "ok").Inc()
			sent++
		}
	}

	return sent
}

// updateStatuses переводит каждый заказ в «обработан». Перевод без
// повторов: сбой одного заказа логируется, остальные продолжаются.
func (p *Pipeline) updateStatuses(ctx context.Context, orderIDs []string) {
	for _, id := range orderIDs {
		if err := p.orders.UpdateStatus(ctx, id); err != nil {
			metrics.StatusUpdates.WithLabelValues("error").Inc()
			p.log.Errorf(ctx, "pipeline: update status for order %s failed: %v", id, err)
			continue
		}
		metrics.StatusUpdates.WithLabelValues("ok").Inc()
	}
}

// checkServices опрашивает пробы живости всех внешних сервисов,
// каждую со своим таймаутом. Пробы не ретраятся.
func (p *Pipeline) checkServices(ctx context.Context) []string {
	var unhealthy []string
	for _, svc := range p.serviceProbes() {
		probeCtx, cancel := context.WithTimeout(ctx, p.cfg.HealthTimeout)
		err := svc.probe(probeCtx)
		cancel()
		if err != nil {
			p.log.Warnf(ctx, "pipeline: %s health check failed: %v", svc.name, err)
			unhealthy = append(unhealthy, svc.name)
		}
	}
	return unhealthy
}

type serviceProbe struct {
	name  string
	probe func(ctx context.Context) error
}

func (p *Pipeline) serviceProbes() []serviceProbe {
	return []serviceProbe{
		{name: "orders", probe: p.orders.Health},
		{name: "storage", probe: p.storage.Health},
		{name: "mail", probe: p.mailer.Health},
	}
}
