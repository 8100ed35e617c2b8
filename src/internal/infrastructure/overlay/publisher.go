package overlay

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
)

// EventPublisher 把兌換事件推送給 overlay（實況主的待處理清單即時更新）
type EventPublisher struct {
	hub *Hub
}

// NewEventPublisher 建立事件發布器
func NewEventPublisher(hub *Hub) *EventPublisher {
	return &EventPublisher{hub: hub}
}

// Publish 只轉送兌換相關事件，其餘忽略
func (p *EventPublisher) Publish(event shared.DomainEvent) error {
	switch e := event.(type) {
	case *redemption.RedemptionCreatedEvent:
		return p.hub.Emit(context.Background(), e.EventType(), e.Redemption)
	case *redemption.RedemptionStatusChangedEvent:
		return p.hub.Emit(context.Background(), e.EventType(), map[string]any{
			"redemption": e.Redemption,
			"previous":   e.Previous,
		})
	}
	return nil
}

// PublishBatch 依序發布
func (p *EventPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}

var _ shared.EventPublisher = (*EventPublisher)(nil)
