package domain

import (
	"time"

	sharedEvents "github.com/davicafu/hexagreet/internal/shared/domain/events"
)

// GreetingCreatedEvent es el nombre del evento de dominio emitido al crear un saludo.
const GreetingCreatedEvent = "GreetingCreated"

// Claves del payload de GreetingCreated.
const (
	PayloadMessage   = "message"
	PayloadCreatedAt = "createdAt"
)

// NewGreetingCreated construye el evento GreetingCreated para un saludo.
func NewGreetingCreated(g *Greeting) *sharedEvents.DomainEvent {
	return sharedEvents.NewDomainEvent(GreetingCreatedEvent, g.ID().String(), map[string]any{
		PayloadMessage:   g.Message(),
		PayloadCreatedAt: g.CreatedAt(),
	})
}

// GreetingCreatedMessage lee el mensaje del payload.
func GreetingCreatedMessage(evt *sharedEvents.DomainEvent) string {
	v, _ := evt.PayloadValue(PayloadMessage)
	s, _ := v.(string)
	return s
}

// GreetingCreatedAt lee la fecha de creación del payload. Acepta time.Time o RFC3339
// (cuando el evento llega deserializado desde un broker).
func GreetingCreatedAt(evt *sharedEvents.DomainEvent) time.Time {
	v, _ := evt.PayloadValue(PayloadCreatedAt)
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err == nil {
			return parsed
		}
	}
	return time.Time{}
}
