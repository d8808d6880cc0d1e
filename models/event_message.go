package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventMessage is the wire format of entity mutation events, both on the
// NATS bus and on the websocket stream that relays them to SPA clients.
// Clients use it to invalidate or patch their local caches.
type EventMessage struct {
	ID        string                 `json:"id"`
	Event     string                 `json:"event"`
	Entity    string                 `json:"entity"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload"`
}

func NewEventMessage(event, entity string, payload map[string]interface{}) *EventMessage {
	return &EventMessage{
		ID:        uuid.New().String(),
		Event:     event,
		Entity:    entity,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func (m *EventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func (m *EventMessage) FromJSON(data []byte) error {
	return json.Unmarshal(data, m)
}
