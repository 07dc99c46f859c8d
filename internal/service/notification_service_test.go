package service_test

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/m-mizutani/gt"

	"github.com/travault/crm-service/internal/config"
	"github.com/travault/crm-service/internal/events"
	"github.com/travault/crm-service/internal/notify"
	"github.com/travault/crm-service/internal/service"
)

type capturingSender struct {
	messages []notify.Message
}

func (s *capturingSender) Send(ctx context.Context, msg notify.Message) error {
	s.messages = append(s.messages, msg)
	return nil
}

func newNotifyEnv(t *testing.T) (*env, *capturingSender, events.Dispatcher) {
	t.Helper()
	e := newEnv(t)
	sender := &capturingSender{}
	dispatcher := events.NewInMemoryDispatcher()

	notifier := service.NewNotificationService(e.store, sender, zap.NewNop(), config.NotificationConfig{
		BaseURL:   "https://crm.example.com",
		EmailFrom: "noreply@example.com",
	})
	notifier.RegisterHandlers(dispatcher)
	return e, sender, dispatcher
}

func TestNotificationGoesToOwnerWhenUnassigned(t *testing.T) {
	e, sender, dispatcher := newNotifyEnv(t)
	ticket := e.createTicket(t, e.agent)

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		AgencyID: ticket.AgencyID,
		Payload: events.TicketCreatedPayload{
			Priority: "low",
			Subject:  "Booking problem",
		},
	})
	gt.NoError(t, err).Required()

	gt.Array(t, sender.messages).Length(1)
	msg := sender.messages[0]
	gt.Value(t, msg.To).Equal(e.agent.Email)
	gt.Value(t, msg.Subject).Equal("Ticket Created: Booking problem")
	gt.Bool(t, strings.Contains(msg.Body, "https://crm.example.com/tickets/"+ticket.ID)).True()
	gt.Bool(t, strings.Contains(msg.Body, "https://crm.example.com/emails/ticket_created")).True()
}

func TestNotificationPrefersAssignee(t *testing.T) {
	e, sender, dispatcher := newNotifyEnv(t)
	ticket := e.createTicket(t, e.agent)
	_, err := e.tickets.UpdateTicketField(context.Background(), e.agent, ticket.ID, "assigned_to", e.admin.ID)
	gt.NoError(t, err).Required()

	err = dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		AgencyID: ticket.AgencyID,
		Payload:  events.TicketUpdatedPayload{UpdateMessage: "Priority changed from 'Low' to 'High'"},
	})
	gt.NoError(t, err).Required()

	gt.Array(t, sender.messages).Length(1)
	gt.Value(t, sender.messages[0].To).Equal(e.admin.Email)
	gt.Bool(t, strings.Contains(sender.messages[0].Body, "Priority changed from 'Low' to 'High'")).True()
}

func TestPreviewComposesWithoutSending(t *testing.T) {
	e := newEnv(t)
	sender := &capturingSender{}
	notifier := service.NewNotificationService(e.store, sender, zap.NewNop(), config.NotificationConfig{
		BaseURL: "https://crm.example.com",
	})

	msg, err := notifier.Preview("ticket_updated")
	gt.NoError(t, err).Required()
	gt.Value(t, msg.Subject).Equal("Ticket Updated")
	gt.Bool(t, strings.Contains(msg.Body, "https://crm.example.com/tickets/")).True()
	gt.Bool(t, strings.Contains(msg.Body, "https://crm.example.com/emails/ticket_updated")).True()
	gt.Array(t, sender.messages).Length(0)

	_, err = notifier.Preview("ticket_exploded")
	gt.Value(t, errCode(err)).Equal("not_found")
}

func TestNotificationFailureIsSwallowed(t *testing.T) {
	e, _, dispatcher := newNotifyEnv(t)
	_ = e

	// A ticket that does not exist must not make publishing fail.
	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketCreated,
		TicketID: "missing",
		AgencyID: "missing",
		Payload:  events.TicketCreatedPayload{},
	})
	gt.NoError(t, err)
}
