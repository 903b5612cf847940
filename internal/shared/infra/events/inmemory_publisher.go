package events

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	domainEvents "github.com/davicafu/hexagreet/internal/shared/domain/events"
)

// Recorder recibe las métricas del publisher. observability.Metrics lo implementa.
type Recorder interface {
	EventPublished(eventName string)
	HandlerFailed(eventName, handler string)
}

// InMemoryPublisher publica eventos de dominio dentro del proceso.
// Los handlers de un mismo evento se ejecutan en paralelo; los fallos se registran y nunca se propagan.
type InMemoryPublisher struct {
	mu       sync.RWMutex
	handlers map[string][]domainEvents.Handler
	log      *zap.Logger
	recorder Recorder
}

// Verificación estática
var _ domainEvents.Publisher = (*InMemoryPublisher)(nil)

// NewInMemoryPublisher crea un publisher vacío. recorder puede ser nil.
func NewInMemoryPublisher(log *zap.Logger, recorder Recorder) *InMemoryPublisher {
	return &InMemoryPublisher{
		handlers: make(map[string][]domainEvents.Handler),
		log:      log,
		recorder: recorder,
	}
}

// Publish entrega el evento a todos los handlers suscritos a su nombre y espera a que terminen.
func (p *InMemoryPublisher) Publish(ctx context.Context, event *domainEvents.DomainEvent) domainEvents.PublishReport {
	report := domainEvents.PublishReport{
		EventID:   event.EventID(),
		EventName: event.EventName(),
	}

	p.log.Debug("Publishing domain event",
		zap.String("event_name", event.EventName()),
		zap.String("event_id", event.EventID()),
		zap.String("aggregate_id", event.AggregateID()),
	)

	// Copia bajo lock: un Subscribe concurrente no afecta a esta publicación.
	p.mu.RLock()
	handlers := append([]domainEvents.Handler(nil), p.handlers[event.EventName()]...)
	p.mu.RUnlock()

	if len(handlers) == 0 {
		p.log.Warn("No handlers registered for event", zap.String("event_name", event.EventName()))
		return report
	}

	var (
		wg       sync.WaitGroup
		failMu   sync.Mutex
		failures []domainEvents.HandlerFailure
	)

	for _, h := range handlers {
		wg.Add(1)
		go func(h domainEvents.Handler) {
			defer wg.Done()
			if err := p.invoke(ctx, h, event); err != nil {
				failure := domainEvents.HandlerFailure{
					Handler: handlerName(h),
					EventID: event.EventID(),
					Err:     err,
				}
				p.log.Error("Error in event handler",
					zap.String("event_name", event.EventName()),
					zap.String("handler", failure.Handler),
					zap.String("event_id", failure.EventID),
					zap.Error(err),
				)
				if p.recorder != nil {
					p.recorder.HandlerFailed(event.EventName(), failure.Handler)
				}
				failMu.Lock()
				failures = append(failures, failure)
				failMu.Unlock()
				return
			}
			p.log.Debug("Handler executed for event",
				zap.String("event_name", event.EventName()),
				zap.String("handler", handlerName(h)),
			)
		}(h)
	}
	wg.Wait()

	report.HandlersExecuted = len(handlers)
	report.Failures = failures

	if p.recorder != nil {
		p.recorder.EventPublished(event.EventName())
	}
	p.log.Info("Domain event published",
		zap.String("event_name", event.EventName()),
		zap.String("event_id", event.EventID()),
		zap.Int("handlers_executed", report.HandlersExecuted),
		zap.Int("handlers_failed", len(failures)),
	)
	return report
}

// invoke convierte un panic del handler en error para que no tumbe el proceso.
func (p *InMemoryPublisher) invoke(ctx context.Context, h domainEvents.Handler, event *domainEvents.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, event)
}

// PublishAll publica los eventos en orden, uno detrás de otro.
func (p *InMemoryPublisher) PublishAll(ctx context.Context, events []*domainEvents.DomainEvent) []domainEvents.PublishReport {
	reports := make([]domainEvents.PublishReport, 0, len(events))
	for _, evt := range events {
		reports = append(reports, p.Publish(ctx, evt))
	}
	return reports
}

// Subscribe registra un handler bajo su EventName. Se admiten duplicados.
// Un handler de tipo no comparable se rechaza: Unsubscribe no podría localizarlo.
func (p *InMemoryPublisher) Subscribe(handler domainEvents.Handler) {
	if handler == nil {
		p.log.Error("Rejected nil event handler")
		return
	}
	if !reflect.TypeOf(handler).Comparable() {
		p.log.Error("Rejected non-comparable event handler, subscribe a pointer instead",
			zap.String("event_name", handler.EventName()),
			zap.String("handler", handlerName(handler)),
		)
		return
	}
	name := handler.EventName()

	p.mu.Lock()
	p.handlers[name] = append(p.handlers[name], handler)
	p.mu.Unlock()

	p.log.Info("Event handler registered",
		zap.String("event_name", name),
		zap.String("handler", handlerName(handler)),
	)
}

// Unsubscribe elimina la primera aparición del mismo handler (por identidad).
func (p *InMemoryPublisher) Unsubscribe(handler domainEvents.Handler) {
	if handler == nil {
		return
	}
	name := handler.EventName()

	p.mu.Lock()
	defer p.mu.Unlock()

	list, ok := p.handlers[name]
	if !ok {
		return
	}
	_, idx, found := lo.FindIndexOf(list, func(h domainEvents.Handler) bool { return sameHandler(h, handler) })
	if !found {
		return
	}
	p.handlers[name] = append(list[:idx:idx], list[idx+1:]...)

	p.log.Info("Event handler unregistered",
		zap.String("event_name", name),
		zap.String("handler", handlerName(handler)),
	)
}

// ClearHandlers elimina todas las suscripciones.
func (p *InMemoryPublisher) ClearHandlers() {
	p.mu.Lock()
	p.handlers = make(map[string][]domainEvents.Handler)
	p.mu.Unlock()

	p.log.Info("All event handlers cleared")
}

// HandlerCount devuelve cuántos handlers hay para un evento.
func (p *InMemoryPublisher) HandlerCount(eventName string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.handlers[eventName])
}

// sameHandler compara por identidad. Un valor con campos de interfaz puede seguir
// sin ser comparable en tiempo de ejecución; en ese caso no hay coincidencia.
func sameHandler(a, b domainEvents.Handler) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func handlerName(h domainEvents.Handler) string {
	return fmt.Sprintf("%T", h)
}
