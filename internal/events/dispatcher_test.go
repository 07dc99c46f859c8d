package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/travault/crm-service/internal/events"
)

func TestInMemoryDispatcherInvokesSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var got []events.Event
	dispatcher.Subscribe(events.EventTicketUpdated, func(ctx context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, e events.Event) error {
		t.Fatal("handler for a different event type must not fire")
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:       "e1",
		Type:     events.EventTicketUpdated,
		TicketID: "t1",
	})
	gt.NoError(t, err).Required()
	gt.Array(t, got).Length(1)
	gt.Value(t, got[0].TicketID).Equal("t1")
}

func TestInMemoryDispatcherSwallowsHandlerErrors(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, e events.Event) error {
		calls++
		return errors.New("boom")
	})
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, e events.Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketCreated})
	gt.NoError(t, err).Required()
	gt.Value(t, calls).Equal(2)
}

func TestDecodeEventRestoresTypedPayload(t *testing.T) {
	actor := "u1"
	original := events.Event{
		ID:        "e1",
		Type:      events.EventTicketActionAdded,
		TicketID:  "t1",
		AgencyID:  "a1",
		Actor:     &actor,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Payload: events.TicketActionAddedPayload{
			ActionID:   "act1",
			ActionType: "update",
			Details:    "Called the supplier",
		},
	}

	data, err := json.Marshal(original)
	gt.NoError(t, err).Required()

	decoded, err := events.DecodeEvent(data)
	gt.NoError(t, err).Required()
	gt.Value(t, decoded.ID).Equal(original.ID)
	gt.Value(t, decoded.AgencyID).Equal(original.AgencyID)

	payload, ok := decoded.Payload.(events.TicketActionAddedPayload)
	gt.Bool(t, ok).True()
	gt.Value(t, payload.ActionID).Equal("act1")
	gt.Value(t, payload.Details).Equal("Called the supplier")
}

func TestDecodeEventRejectsUnknownType(t *testing.T) {
	_, err := events.DecodeEvent([]byte(`{"id":"e1","type":"ticket_exploded","payload":{}}`))
	gt.Error(t, err)
}
