package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"hotelbook/internal/notifications/service"
	"hotelbook/pkg/kafka"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"
	"hotelbook/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProcessor struct {
	err    error
	events []model.BookingEvent
}

func (m *mockProcessor) HandleBookingConfirmed(_ context.Context, event model.BookingEvent) error {
	m.events = append(m.events, event)
	return m.err
}

func payload(t *testing.T, event model.BookingEvent) []byte {
	t.Helper()
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	return raw
}

func confirmed() model.BookingEvent {
	return model.BookingEvent{EventID: "e1", EventType: model.EventBookingConfirmed, HotelID: "h1"}
}

func TestKafka_Classification(t *testing.T) {
	tests := []struct {
		name      string
		value     []byte
		procErr   error
		wantErr   bool
		wantRetry bool
	}{
		{"ok", payload(t, confirmed()), nil, false, false},
		{"malformed", []byte("{not json"), nil, true, false},
		{"unknown hotel", payload(t, confirmed()), fmt.Errorf("%w: h1", service.ErrUnknownHotel), true, false},
		{"store down", payload(t, confirmed()), errors.New("connection refused"), true, true},
		{"other event type", payload(t, model.BookingEvent{EventType: "booking.cancelled", HotelID: "h1"}), nil, false, false},
		{"missing hotel", payload(t, model.BookingEvent{EventType: model.EventBookingConfirmed}), nil, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewEventHandler(&mockProcessor{err: tt.procErr}, logger.Discard())
			err := h.Kafka()(context.Background(), kafka.Message{Value: tt.value, Headers: map[string]string{}})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantRetry, kafka.ShouldRetry(err, 0, 3))
		})
	}
}

func TestRabbitMQ_Classification(t *testing.T) {
	proc := &mockProcessor{}
	h := NewEventHandler(proc, logger.Discard()).RabbitMQ()

	require.NoError(t, h(context.Background(), payload(t, confirmed())))
	require.Len(t, proc.events, 1)
	assert.Equal(t, "e1", proc.events[0].EventID)

	assert.True(t, rabbitmq.IsPermanent(h(context.Background(), []byte("garbage"))))

	proc.err = fmt.Errorf("%w: h1", service.ErrUnknownHotel)
	assert.True(t, rabbitmq.IsPermanent(h(context.Background(), payload(t, confirmed()))))

	proc.err = errors.New("timeout")
	err := h(context.Background(), payload(t, confirmed()))
	require.Error(t, err)
	assert.False(t, rabbitmq.IsPermanent(err))
}
