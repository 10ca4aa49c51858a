// Package messaging 库存事件的RabbitMQ适配
package messaging

import (
	"context"

	"github.com/xiebiao/library-inventory/internal/application/port"
	"github.com/xiebiao/library-inventory/internal/infrastructure/config"
	"github.com/xiebiao/library-inventory/pkg/logger"
	"github.com/xiebiao/library-inventory/pkg/mq"
)

// routingPublisher mq.Publisher的发布能力
type routingPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// EventPublisher 以事件类型作为routing key发布到Topic Exchange
type EventPublisher struct {
	publisher routingPublisher
}

// NewEventPublisher 包装已连接的发布者
func NewEventPublisher(publisher routingPublisher) *EventPublisher {
	return &EventPublisher{publisher: publisher}
}

// Publish 发布库存事件
func (p *EventPublisher) Publish(ctx context.Context, event port.InventoryEvent) error {
	return p.publisher.Publish(ctx, event.Type, event)
}

// NewFromConfig 按配置创建事件发布者
// mq.enabled=false时返回no-op实现;cleanup负责关闭连接
func NewFromConfig(cfg *config.Config, log *logger.Logger) (port.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return port.NoopEventPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Warn(context.Background(), "关闭消息发布者失败", err)
		}
	}
	return NewEventPublisher(publisher), cleanup, nil
}

// EventRoutingKeys 订阅全部库存事件的绑定键
var EventRoutingKeys = []string{"book.*"}
