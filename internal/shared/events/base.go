package events

import (
	"encoding/json"
	"time"

	sharedUtils "github.com/davicafu/hexagreet/internal/shared/infra/utils"
)

// IntegrationEvent es el sobre de todos los eventos que viajan por el bus.
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"` // contenido específico del evento
	Key       string          `json:"-"`
}

// NewIntegrationEvent serializa data dentro del sobre. key es la clave de partición.
func NewIntegrationEvent(eventType, key string, data interface{}) (IntegrationEvent, error) {
	raw, err := sharedUtils.JSON.Marshal(data)
	if err != nil {
		return IntegrationEvent{}, err
	}
	return IntegrationEvent{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      raw,
		Key:       key,
	}, nil
}

// PartitionKey implementa bus.Keyer.
func (e IntegrationEvent) PartitionKey() string { return e.Key }
