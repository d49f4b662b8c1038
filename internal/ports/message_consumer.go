package ports

import "context"

// MessageConsumer — фоновый потребитель триггерных сообщений.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
