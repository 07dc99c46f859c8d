package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated     EventType = "ticket_created"
	EventTicketUpdated     EventType = "ticket_updated"
	EventTicketActionAdded EventType = "ticket_action_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	AgencyID  string      `json:"agency_id"`
	Actor     *string     `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Priority     string `json:"priority"`
	CategoryType string `json:"category_type"`
	Category     string `json:"category"`
	Subject      string `json:"subject"`
}

// TicketUpdatedPayload payload. UpdateMessage is the human-readable
// summary of what changed, one line per field.
type TicketUpdatedPayload struct {
	UpdateMessage string `json:"update_message"`
}

// TicketActionAddedPayload payload.
type TicketActionAddedPayload struct {
	ActionID   string  `json:"action_id"`
	ActionType string  `json:"action_type"`
	Details    string  `json:"details"`
	CreatedBy  *string `json:"created_by,omitempty"`
}

// DecodeEvent unmarshals a wire event and restores its typed payload.
// Events that cross the Redis queue lose their concrete payload type;
// this recovers it from the event type.
func DecodeEvent(data []byte) (Event, error) {
	var raw struct {
		ID        string          `json:"id"`
		Type      EventType       `json:"type"`
		TicketID  string          `json:"ticket_id"`
		AgencyID  string          `json:"agency_id"`
		Actor     *string         `json:"actor,omitempty"`
		Timestamp time.Time       `json:"timestamp"`
		Payload   json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}

	event := Event{
		ID:        raw.ID,
		Type:      raw.Type,
		TicketID:  raw.TicketID,
		AgencyID:  raw.AgencyID,
		Actor:     raw.Actor,
		Timestamp: raw.Timestamp,
	}

	switch raw.Type {
	case EventTicketCreated:
		var p TicketCreatedPayload
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return Event{}, fmt.Errorf("decode %s payload: %w", raw.Type, err)
		}
		event.Payload = p
	case EventTicketUpdated:
		var p TicketUpdatedPayload
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return Event{}, fmt.Errorf("decode %s payload: %w", raw.Type, err)
		}
		event.Payload = p
	case EventTicketActionAdded:
		var p TicketActionAddedPayload
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return Event{}, fmt.Errorf("decode %s payload: %w", raw.Type, err)
		}
		event.Payload = p
	default:
		return Event{}, fmt.Errorf("decode event: unknown type %q", raw.Type)
	}
	return event, nil
}
