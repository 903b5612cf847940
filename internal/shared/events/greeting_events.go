package events

import (
	"time"

	"github.com/google/uuid"
)

// Contratos de integración del contexto greeting. NO son entidades del dominio:
// se definen planos para intercambio entre contextos.
type GreetingCreated struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	EventID   string    `json:"event_id"`
}
