package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// ErrInvalidMail — базовая (sentinel error) ошибка валидации исходящего письма.
// Такие ошибки не ретраятся: повтор некорректного запроса не может пройти.
var ErrInvalidMail = errors.New("mail validation failed")

// Address проверяет синтаксис адреса получателя.
func Address(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return fmt.Errorf("%w: пустой адрес получателя", ErrInvalidMail)
	}
	if _, err := mail.ParseAddress(addr); err != nil {
		return fmt.Errorf("%w: некорректный адрес %q", ErrInvalidMail, addr)
	}
	return nil
}

// Message проверяет поля письма перед отправкой.
func Message(to, subject, body string) error {
	if err := Address(to); err != nil {
		return err
	}
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("%w: пустая тема", ErrInvalidMail)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: пустое тело", ErrInvalidMail)
	}
	return nil
}
