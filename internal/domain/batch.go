package domain

import "strings"

// OrderBatch — единица работы одного прогона пайплайна.
// Собирается из ответа платформы заказов и живёт до конца прогона.
type OrderBatch struct {
	OrderIDs   []string       `json:"order_ids"`  // порядок = порядок ответа платформы
	Files      []string       `json:"files"`      // имена файлов в нижнем регистре, без дублей
	Quantities map[string]int `json:"quantities"` // имя файла -> количество
}

// NewOrderBatch — пустой батч с инициализированной картой количеств.
func NewOrderBatch() *OrderBatch {
	return &OrderBatch{Quantities: make(map[string]int)}
}

// AddOrder добавляет идентификатор заказа (порядок вставки сохраняется).
func (b *OrderBatch) AddOrder(orderID string) {
	b.OrderIDs = append(b.OrderIDs, orderID)
}

// AddFile добавляет требуемый файл: имя нормализуется в нижний регистр,
// дубликаты в списке схлопываются, количество берётся из последнего вхождения.
func (b *OrderBatch) AddFile(name string, quantity int) {
	name = strings.ToLower(name)
	if name == "" {
		return
	}
	if _, seen := b.Quantities[name]; !seen {
		b.Files = append(b.Files, name)
	}
	b.Quantities[name] = quantity
}

// Empty — true, если нет ни одного заказа.
func (b *OrderBatch) Empty() bool { return len(b.OrderIDs) == 0 }
