package events

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DomainEvent es un hecho inmutable que ocurrió en el dominio.
// Todos los campos son privados; una vez construido no puede cambiar.
type DomainEvent struct {
	eventID     string
	eventName   string
	aggregateID string
	occurredOn  time.Time
	version     int
	payload     map[string]any
}

// Option modifica la construcción de un DomainEvent.
type Option func(*DomainEvent)

// WithVersion fija la versión del esquema del evento. Valores < 1 se ignoran.
func WithVersion(v int) Option {
	return func(e *DomainEvent) {
		if v >= 1 {
			e.version = v
		}
	}
}

// WithOccurredOn fija el instante del evento (útil al reconstruir desde un broker).
func WithOccurredOn(t time.Time) Option {
	return func(e *DomainEvent) {
		if !t.IsZero() {
			e.occurredOn = t
		}
	}
}

// WithEventID reutiliza un identificador existente.
func WithEventID(id string) Option {
	return func(e *DomainEvent) {
		if id != "" {
			e.eventID = id
		}
	}
}

// NewDomainEvent crea un evento con id generado, timestamp actual y versión 1.
// El payload se copia para que el llamador no pueda mutarlo después.
func NewDomainEvent(name, aggregateID string, payload map[string]any, opts ...Option) *DomainEvent {
	e := &DomainEvent{
		eventID:     uuid.NewString(),
		eventName:   name,
		aggregateID: aggregateID,
		occurredOn:  time.Now().UTC(),
		version:     1,
		payload:     copyPayload(payload),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *DomainEvent) EventID() string       { return e.eventID }
func (e *DomainEvent) EventName() string     { return e.eventName }
func (e *DomainEvent) AggregateID() string   { return e.aggregateID }
func (e *DomainEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *DomainEvent) Version() int          { return e.version }

// Payload devuelve una copia superficial del payload.
func (e *DomainEvent) Payload() map[string]any {
	return copyPayload(e.payload)
}

// PayloadValue devuelve un valor concreto del payload.
func (e *DomainEvent) PayloadValue(key string) (any, bool) {
	v, ok := e.payload[key]
	return v, ok
}

type eventJSON struct {
	EventID     string         `json:"eventId"`
	EventName   string         `json:"eventName"`
	AggregateID string         `json:"aggregateId"`
	OccurredOn  string         `json:"occurredOn"`
	Version     int            `json:"version"`
	Payload     map[string]any `json:"payload"`
}

// MarshalJSON serializa el evento para persistencia o mensajería.
func (e *DomainEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		EventID:     e.eventID,
		EventName:   e.eventName,
		AggregateID: e.aggregateID,
		OccurredOn:  e.occurredOn.Format(time.RFC3339Nano),
		Version:     e.version,
		Payload:     e.payload,
	})
}

// DecodeDomainEvent reconstruye un evento serializado con MarshalJSON.
func DecodeDomainEvent(data []byte) (*DomainEvent, error) {
	var raw eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	occurred, err := time.Parse(time.RFC3339Nano, raw.OccurredOn)
	if err != nil {
		return nil, err
	}
	return NewDomainEvent(raw.EventName, raw.AggregateID, raw.Payload,
		WithEventID(raw.EventID),
		WithOccurredOn(occurred),
		WithVersion(raw.Version),
	), nil
}

func copyPayload(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
