package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy — параметры повторов для нестабильных вызовов.
// Нулевые/некорректные поля заменяются значениями по умолчанию.
type Policy struct {
	MaxAttempts  int           // всего попыток, включая первую (>= 1)
	InitialDelay time.Duration // пауза перед второй попыткой (> 0)
	Multiplier   float64       // множитель паузы после каждой неудачи (>= 1)
}

// DefaultPolicy — 3 попытки, старт с 1 секунды, удвоение.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, InitialDelay: time.Second, Multiplier: 2.0}
}

func (p Policy) normalized() Policy {
	def := DefaultPolicy()
	if p.MaxAttempts < 1 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = def.InitialDelay
	}
	if p.Multiplier < 1 {
		p.Multiplier = def.Multiplier
	}
	return p
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent помечает ошибку как неустранимую: Do прекращает повторы сразу.
// Используется для ошибок валидации — повтор такого вызова бессмыслен.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent — true, если где-то в цепочке есть пометка Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// Do выполняет fn с повторами по политике p.
// Пауза между попытками растёт геометрически (без джиттера; кто хочет
// джиттер — добавляет его поверх) и прерывается отменой контекста.
// Итоговая ошибка оборачивает последнюю с числом сделанных попыток.
func Do(ctx context.Context, p Policy, fn func() error) error {
	p = p.normalized()

	delay := p.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if IsPermanent(lastErr) {
			return fmt.Errorf("after %d attempt(s): %w", attempt, lastErr)
		}
		if attempt == p.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}

	return fmt.Errorf("after %d attempt(s): %w", p.MaxAttempts, lastErr)
}
