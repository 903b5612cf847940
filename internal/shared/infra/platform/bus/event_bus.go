package bus

import "context"

// Keyer lo implementan los eventos que tienen clave de partición.
type Keyer interface {
	PartitionKey() string
}

// EventBus transporta eventos de integración entre contextos (Kafka o canales en memoria).
// La semántica de topic/nombre y formato del payload la deciden los adapters.
type EventBus interface {
	Publish(ctx context.Context, event interface{}) error
}
