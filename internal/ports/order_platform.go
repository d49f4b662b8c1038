package ports

import (
	"context"

	"github.com/mkoval24/printflow/internal/domain"
)

// OrderPlatform — контракт платформы заказов (Baselinker и совместимые).
// Окно просмотра задаётся в днях от текущего момента назад.
type OrderPlatform interface {
	// HasNewOrders — дешёвая проверка: есть ли в окне хотя бы один заказ,
	// прошедший правило валидности оплаты.
	HasNewOrders(ctx context.Context, lookbackDays int) (bool, error)

	// OrderDetails — полная выборка заказов за то же окно с тем же фильтром:
	// собирает батч (идентификаторы, файлы, количества).
	OrderDetails(ctx context.Context, lookbackDays int) (*domain.OrderBatch, error)

	// UpdateStatus переводит один заказ в статус «обработан».
	UpdateStatus(ctx context.Context, orderID string) error

	// Health — проба живости платформы.
	Health(ctx context.Context) error
}
