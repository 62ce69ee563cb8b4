package event_test

import (
	"context"
	"errors"
	kafkaMocks "houserental/infras/kafka/mocks"
	"houserental/infras/kafka"
	"houserental/infras/otel/mocks"
	"houserental/shared/event"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKafka := kafkaMocks.NewMockClient(ctrl)
	publisher := event.NewPublisher(mockKafka, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "message is keyed and wrapped",
			setupMock: func() {
				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "booking-events", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						assert.Len(t, messages, 1)
						assert.Equal(t, "booking-1", messages[0].Key)

						evt, ok := messages[0].Value.(event.Event)
						assert.True(t, ok)
						assert.Equal(t, event.TypeBookingCreated, evt.Type)
						assert.False(t, evt.OccurredAt.IsZero())

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "broker error",
			setupMock: func() {
				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "booking-events", gomock.Any()).
					Return(errors.New("broker unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := publisher.Publish(context.Background(), "booking-events", "booking-1", event.TypeBookingCreated, map[string]string{"id": "booking-1"})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
