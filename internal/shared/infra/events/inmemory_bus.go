package events

import (
	"context"
	"sync"

	sharedBus "github.com/davicafu/hexagreet/internal/shared/infra/platform/bus"
	sharedUtils "github.com/davicafu/hexagreet/internal/shared/infra/utils"
)

// InMemoryEventBus implementa un bus de eventos para UN solo topic con canales.
// Cada suscriptor recibe el evento serializado ([]byte); si su buffer está lleno, se descarta.
type InMemoryEventBus struct {
	subscribers []chan interface{}
	mu          sync.RWMutex
	once        sync.Once
	closed      bool
	topic       string
}

// Verificación estática
var _ sharedBus.EventBus = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus crea un bus de eventos para un topic específico.
func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make([]chan interface{}, 0),
		topic:       topic,
	}
}

// Topic devuelve el topic que maneja este bus.
func (b *InMemoryEventBus) Topic() string { return b.topic }

// Publish envía un evento a todos los suscriptores de este bus sin bloquear.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	payloadBytes, err := sharedUtils.JSON.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for _, subChan := range b.subscribers {
		select {
		case subChan <- payloadBytes:
		default:
		}
	}
	return nil
}

// Subscribe añade un oyente con el buffer indicado.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	subChan := make(chan interface{}, bufferSize)
	b.subscribers = append(b.subscribers, subChan)
	return subChan
}

// Close cierra los canales de todos los suscriptores.
func (b *InMemoryEventBus) Close() {
	b.once.Do(func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.closed = true
		for _, ch := range b.subscribers {
			close(ch)
		}
	})
}
