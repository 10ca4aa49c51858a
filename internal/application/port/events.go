package port

import (
	"context"
	"time"
)

// 库存事件类型(同时作为RabbitMQ的routing key)
const (
	EventBookAdded    = "book.added"
	EventBookModified = "book.modified"
	EventBookDeleted  = "book.deleted"
	EventBookRacked   = "book.racked"
	EventBookLent     = "book.lent"
)

// InventoryEvent 库存变化事件
type InventoryEvent struct {
	Type            string    `json:"type"`
	Barcode         string    `json:"barcode"`
	LocationBarcode string    `json:"locationBarcode,omitempty"`
	Quantity        *int      `json:"quantity,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// NewInventoryEvent 创建事件
func NewInventoryEvent(eventType, barcode string) InventoryEvent {
	return InventoryEvent{
		Type:       eventType,
		Barcode:    barcode,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher 库存事件发布者
// 发布失败不影响库存操作本身
type EventPublisher interface {
	Publish(ctx context.Context, event InventoryEvent) error
}

// NoopEventPublisher 未启用消息队列时使用
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(context.Context, InventoryEvent) error { return nil }
