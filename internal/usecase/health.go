package usecase

import (
	"context"
	"time"
)

// ServiceStatus — результат пробы одного внешнего сервиса.
type ServiceStatus struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// HealthChecker опрашивает внешние сервисы конвейера для эндпоинта
// диагностики. Использует те же пробы, что и шлюз живости прогона.
type HealthChecker struct {
	pipeline *Pipeline
	timeout  time.Duration
}

func NewHealthChecker(pipeline *Pipeline, timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthChecker{pipeline: pipeline, timeout: timeout}
}

func (h *HealthChecker) Check(ctx context.Context) []ServiceStatus {
	probes := h.pipeline.serviceProbes()
	out := make([]ServiceStatus, 0, len(probes))
	for _, svc := range probes {
		probeCtx, cancel := context.WithTimeout(ctx, h.timeout)
		err := svc.probe(probeCtx)
		cancel()

		st := ServiceStatus{Name: svc.name, Healthy: err == nil}
		if err != nil {
			st.Error = err.Error()
		}
		out = append(out, st)
	}
	return out
}

// AllHealthy — true, когда все пробы прошли.
func AllHealthy(statuses []ServiceStatus) bool {
	for _, s := range statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}
