package logging

import (
	"log/slog"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
)

// EventPublisher 將領域事件寫入結構化日誌
type EventPublisher struct {
	logger *slog.Logger
}

// NewEventPublisher 建立日誌事件發布器
func NewEventPublisher(logger *slog.Logger) *EventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{logger: logger.With("component", "events")}
}

func (p *EventPublisher) Publish(event shared.DomainEvent) error {
	attrs := []any{
		"event_id", event.EventID(),
		"event_type", event.EventType(),
		"aggregate_id", event.AggregateID(),
	}

	switch e := event.(type) {
	case *redemption.RedemptionCreatedEvent:
		attrs = append(attrs,
			"user_id", e.Redemption.UserID,
			"reward_id", e.Redemption.RewardID,
			"cost", e.Redemption.Cost,
		)
	case *redemption.RedemptionStatusChangedEvent:
		attrs = append(attrs,
			"user_id", e.Redemption.UserID,
			"from", string(e.Previous),
			"to", string(e.Redemption.Status),
		)
	case *points.BalanceChangedEvent:
		attrs = append(attrs,
			"user_id", e.UserID().String(),
			"delta", e.Delta(),
			"balance", e.Balance(),
			"type", string(e.Type()),
		)
	}

	p.logger.Info("domain event", attrs...)
	return nil
}

func (p *EventPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}

var _ shared.EventPublisher = (*EventPublisher)(nil)
