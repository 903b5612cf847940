package events

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
)

// Handler consume un único tipo de evento.
// Las implementaciones deben ser comparables (punteros): Unsubscribe compara por identidad.
type Handler interface {
	EventName() string
	Handle(ctx context.Context, event *DomainEvent) error
}

// HandlerFunc adapta una función a Handler. Se usa siempre a través de *HandlerFunc
// porque las funciones no son comparables.
type HandlerFunc struct {
	name string
	fn   func(ctx context.Context, event *DomainEvent) error
}

// NewHandlerFunc crea un handler para eventName a partir de una función.
func NewHandlerFunc(eventName string, fn func(ctx context.Context, event *DomainEvent) error) *HandlerFunc {
	return &HandlerFunc{name: eventName, fn: fn}
}

func (h *HandlerFunc) EventName() string { return h.name }

func (h *HandlerFunc) Handle(ctx context.Context, event *DomainEvent) error {
	return h.fn(ctx, event)
}

// HandlerFailure describe el fallo de un handler concreto.
type HandlerFailure struct {
	Handler string
	EventID string
	Err     error
}

func (f HandlerFailure) Error() string {
	return fmt.Sprintf("handler %s failed on event %s: %v", f.Handler, f.EventID, f.Err)
}

func (f HandlerFailure) Unwrap() error { return f.Err }

// PublishReport es el resultado de publicar un evento.
// Publicar nunca falla: los errores de los handlers se recogen aquí.
type PublishReport struct {
	EventID          string
	EventName        string
	HandlersExecuted int
	Failures         []HandlerFailure
}

// Succeeded indica si todos los handlers terminaron sin error.
func (r PublishReport) Succeeded() bool { return len(r.Failures) == 0 }

// Err combina los fallos en un único error (nil si no hubo fallos).
func (r PublishReport) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f)
	}
	return err
}

// Publisher es el puerto de publicación de eventos de dominio.
type Publisher interface {
	Publish(ctx context.Context, event *DomainEvent) PublishReport
	PublishAll(ctx context.Context, events []*DomainEvent) []PublishReport
	Subscribe(handler Handler)
	Unsubscribe(handler Handler)
	ClearHandlers()
	HandlerCount(eventName string) int
}
