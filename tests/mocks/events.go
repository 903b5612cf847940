package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	sharedEvents "github.com/davicafu/hexagreet/internal/shared/domain/events"
	sharedBus "github.com/davicafu/hexagreet/internal/shared/infra/platform/bus"
)

// DummyPublisher guarda los eventos de dominio publicados sin ejecutar handlers.
// Failures se copia en cada informe para simular handlers que fallan.
type DummyPublisher struct {
	Events   []*sharedEvents.DomainEvent
	Failures []sharedEvents.HandlerFailure
	mu       sync.Mutex
}

var _ sharedEvents.Publisher = (*DummyPublisher)(nil)

func (p *DummyPublisher) Publish(ctx context.Context, event *sharedEvents.DomainEvent) sharedEvents.PublishReport {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return sharedEvents.PublishReport{
		EventID:   event.EventID(),
		EventName: event.EventName(),
		Failures:  p.Failures,
	}
}

func (p *DummyPublisher) PublishAll(ctx context.Context, events []*sharedEvents.DomainEvent) []sharedEvents.PublishReport {
	reports := make([]sharedEvents.PublishReport, 0, len(events))
	for _, e := range events {
		reports = append(reports, p.Publish(ctx, e))
	}
	return reports
}

func (p *DummyPublisher) Subscribe(sharedEvents.Handler)   {}
func (p *DummyPublisher) Unsubscribe(sharedEvents.Handler) {}
func (p *DummyPublisher) ClearHandlers()                   {}
func (p *DummyPublisher) HandlerCount(string) int          { return 0 }

// Published devuelve una copia de los eventos recibidos.
func (p *DummyPublisher) Published() []*sharedEvents.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*sharedEvents.DomainEvent(nil), p.Events...)
}

// MockEventBus simula el bus de integración.
type MockEventBus struct {
	mock.Mock
}

var _ sharedBus.EventBus = (*MockEventBus)(nil)

func (m *MockEventBus) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
