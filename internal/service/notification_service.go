package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/travault/crm-service/internal/config"
	"github.com/travault/crm-service/internal/domain"
	"github.com/travault/crm-service/internal/events"
	"github.com/travault/crm-service/internal/notify"
	"github.com/travault/crm-service/internal/repository"
	"github.com/travault/crm-service/pkg/util"
)

// NotificationService turns domain events into email notifications.
// Delivery is strictly fire-and-forget: every failure is logged and
// swallowed, so a broken mail path never affects ticket mutations.
type NotificationService struct {
	store  repository.Store
	sender notify.Sender
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(store repository.Store, sender notify.Sender, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		store:  store,
		sender: sender,
		logger: logger,
		cfg:    cfg,
	}
}

// RegisterHandlers subscribes to the dispatcher's ticket events.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	dispatcher.Subscribe(events.EventTicketUpdated, n.handleTicketUpdated)
	dispatcher.Subscribe(events.EventTicketActionAdded, n.handleTicketActionAdded)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.TicketCreatedPayload)
	subject, body := n.composeTicketCreated(event.TicketID, payload)
	n.deliver(ctx, event, subject, body)
	return nil
}

func (n *NotificationService) handleTicketUpdated(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.TicketUpdatedPayload)
	subject, body := n.composeTicketUpdated(event.TicketID, payload)
	n.deliver(ctx, event, subject, body)
	return nil
}

func (n *NotificationService) handleTicketActionAdded(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.TicketActionAddedPayload)
	subject, body := n.composeTicketActionAdded(event.TicketID, payload)
	n.deliver(ctx, event, subject, body)
	return nil
}

func (n *NotificationService) composeTicketCreated(ticketID string, payload events.TicketCreatedPayload) (string, string) {
	body := fmt.Sprintf(
		"A new ticket has been created.\n\nSubject: %s\nPriority: %s\nCategory: %s\n\nView the ticket: %s\nEmail preview: %s\n",
		payload.Subject,
		domain.LabelFor(domain.PriorityChoices, payload.Priority),
		payload.Category,
		n.detailURL(ticketID),
		n.previewURL(string(events.EventTicketCreated)),
	)
	return fmt.Sprintf("Ticket Created: %s", payload.Subject), body
}

func (n *NotificationService) composeTicketUpdated(ticketID string, payload events.TicketUpdatedPayload) (string, string) {
	body := fmt.Sprintf(
		"A ticket has been updated.\n\n%s\n\nView the ticket: %s\nEmail preview: %s\n",
		payload.UpdateMessage,
		n.detailURL(ticketID),
		n.previewURL(string(events.EventTicketUpdated)),
	)
	return "Ticket Updated", body
}

func (n *NotificationService) composeTicketActionAdded(ticketID string, payload events.TicketActionAddedPayload) (string, string) {
	body := fmt.Sprintf(
		"A new action has been recorded.\n\nType: %s\nDetails: %s\n\nView the ticket: %s\nEmail preview: %s\n",
		domain.LabelFor(domain.ActionTypeChoices, payload.ActionType),
		payload.Details,
		n.detailURL(ticketID),
		n.previewURL(string(events.EventTicketActionAdded)),
	)
	return "Ticket Action Added", body
}

// Preview composes the notification for the given kind with sample
// values and returns it without sending. It backs the preview links
// embedded in every outgoing email.
func (n *NotificationService) Preview(kind string) (notify.Message, error) {
	var subject, body string
	switch events.EventType(kind) {
	case events.EventTicketCreated:
		subject, body = n.composeTicketCreated("sample-ticket", events.TicketCreatedPayload{
			Priority:     string(domain.TicketPriorityHigh),
			CategoryType: string(domain.CategoryTypeClient),
			Category:     "complaint",
			Subject:      "Sample ticket",
		})
	case events.EventTicketUpdated:
		subject, body = n.composeTicketUpdated("sample-ticket", events.TicketUpdatedPayload{
			UpdateMessage: "Priority changed from 'Low' to 'High'",
		})
	case events.EventTicketActionAdded:
		subject, body = n.composeTicketActionAdded("sample-ticket", events.TicketActionAddedPayload{
			ActionType: string(domain.ActionTypeUpdate),
			Details:    "Called the client with an update",
		})
	default:
		return notify.Message{}, util.NewNotFound("email template", map[string]any{"kind": kind})
	}
	return notify.Message{Subject: subject, Body: body}, nil
}

// deliver resolves the recipient and sends. The assignee receives the
// notification when set, otherwise the owner.
func (n *NotificationService) deliver(ctx context.Context, event events.Event, subject, body string) {
	ticket, err := n.store.Tickets().GetByID(ctx, event.AgencyID, event.TicketID)
	if err != nil {
		n.logger.Warn("notification skipped: ticket lookup failed",
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
		return
	}

	recipientID := ticket.OwnerID
	if ticket.AssignedToID != nil {
		recipientID = *ticket.AssignedToID
	}
	recipient, err := n.store.Users().GetByID(ctx, ticket.AgencyID, recipientID)
	if err != nil {
		n.logger.Warn("notification skipped: recipient lookup failed",
			zap.String("ticket_id", event.TicketID),
			zap.String("user_id", recipientID),
			zap.Error(err))
		return
	}

	sendCtx := ctx
	if n.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, n.cfg.SendTimeout)
		defer cancel()
	}
	err = n.sender.Send(sendCtx, notify.Message{
		To:      recipient.Email,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		n.logger.Warn("notification send failed",
			zap.String("ticket_id", event.TicketID),
			zap.String("to", recipient.Email),
			zap.Error(err))
	}
}

func (n *NotificationService) detailURL(ticketID string) string {
	return fmt.Sprintf("%s/tickets/%s", n.cfg.BaseURL, ticketID)
}

func (n *NotificationService) previewURL(kind string) string {
	return fmt.Sprintf("%s/emails/%s", n.cfg.BaseURL, kind)
}
