package ports

import "context"

// EmailSender — контракт отправителя уведомлений.
type EmailSender interface {
	// Send отправляет одно письмо. Ошибки валидации (пустой получатель,
	// пустая тема/тело) помечаются как неустранимые и не ретраятся.
	Send(ctx context.Context, to, subject, body string) error

	// Health — проба живости почтового транспорта.
	Health(ctx context.Context) error
}
