// Package events 組合多個事件發布器
package events

import (
	"errors"

	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
)

// MultiPublisher 依序交給每個發布器，一個失敗不影響其他發布器
type MultiPublisher struct {
	publishers []shared.EventPublisher
}

// NewMultiPublisher 建立組合發布器
func NewMultiPublisher(publishers ...shared.EventPublisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

func (m *MultiPublisher) Publish(event shared.DomainEvent) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiPublisher) PublishBatch(events []shared.DomainEvent) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.PublishBatch(events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ shared.EventPublisher = (*MultiPublisher)(nil)
