package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"houserental/infras/kafka"
	"houserental/infras/otel"
	"houserental/shared/constant"
	"houserental/shared/timezone"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
	TypePaymentCompleted     = "payment.completed"
	TypePaymentRefunded      = "payment.refunded"
)

type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key, eventType string, data any) error
}

type publisherImpl struct {
	client kafka.Client
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		otel:   otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, topic, key, eventType string, data any) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"event.type":  eventType,
		"event.topic": topic,
		"event.key":   key,
	})

	err = p.client.SendMessages(ctx, topic, kafka.Message{
		Key: key,
		Value: Event{
			Type:       eventType,
			OccurredAt: timezone.Now(),
			Data:       data,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	return nil
}
