package domain

// RunOutcome — исход одного прогона пайплайна.
type RunOutcome string

const (
	OutcomeCompleted           RunOutcome = "completed"
	OutcomeNoNewOrders         RunOutcome = "no_new_orders"
	OutcomeNoValidOrders       RunOutcome = "no_valid_orders"
	OutcomeServicesUnavailable RunOutcome = "services_unavailable"
	OutcomeFailed              RunOutcome = "failed"
)

// RunResult — сводка одного цикла оркестрации.
// Счётчики заполняются только при Outcome == OutcomeCompleted.
type RunResult struct {
	RunID           string     `json:"run_id"`
	Outcome         RunOutcome `json:"outcome"`
	OrdersProcessed int        `json:"orders_processed"`
	FilesFound      int        `json:"files_found"`
	FilesMissing    int        `json:"missing_files"`
	EmailsSent      int        `json:"emails_sent"`
	Err             string     `json:"error,omitempty"`
}

// Success — true для всех исходов, кроме сбоя и недоступности сервисов.
func (r RunResult) Success() bool {
	return r.Outcome != OutcomeFailed && r.Outcome != OutcomeServicesUnavailable
}
