package kafka

import (
	"context"
	"testing"

	"houserental/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageEncode(t *testing.T) {
	msg, err := Message{Key: "b-1", Value: map[string]string{"status": "confirmed"}}.encode("booking-events")

	require.NoError(t, err)
	assert.Equal(t, "booking-events", msg.Topic)
	assert.Equal(t, []byte("b-1"), msg.Key)
	assert.JSONEq(t, `{"status":"confirmed"}`, string(msg.Value))

	_, err = Message{Key: "b-1", Value: make(chan int)}.encode("booking-events")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	cfg := &config.Config{}

	client := New(cfg)
	assert.IsType(t, disabledClient{}, client)
	assert.NoError(t, client.SendMessages(context.Background(), "booking-events", Message{Key: "b-1"}))
	assert.NoError(t, client.Close())

	cfg.Kafka.Enable = true
	assert.IsType(t, disabledClient{}, New(cfg), "no brokers")

	cfg.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Kafka.SASL.Username = "rental"

	enabled, ok := New(cfg).(*producer)
	require.True(t, ok)
	assert.NotNil(t, enabled.writer.Transport)
	assert.ErrorIs(t, enabled.SendMessages(context.Background(), "", Message{Key: "b-1"}), errEmptyTopic)
}
