package events

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
	sharedEvents "github.com/davicafu/hexagreet/internal/shared/domain/events"
	integration "github.com/davicafu/hexagreet/internal/shared/events"
	sharedBus "github.com/davicafu/hexagreet/internal/shared/infra/platform/bus"
)

// GreetingForwarder traduce GreetingCreated (dominio) a greeting.created (integración) y lo publica en el bus.
type GreetingForwarder struct {
	bus sharedBus.EventBus
	log *zap.Logger
}

// Verificación estática
var _ sharedEvents.Handler = (*GreetingForwarder)(nil)

func NewGreetingForwarder(bus sharedBus.EventBus, log *zap.Logger) *GreetingForwarder {
	return &GreetingForwarder{bus: bus, log: log}
}

func (f *GreetingForwarder) EventName() string { return domain.GreetingCreatedEvent }

func (f *GreetingForwarder) Handle(ctx context.Context, event *sharedEvents.DomainEvent) error {
	id, err := uuid.Parse(event.AggregateID())
	if err != nil {
		return fmt.Errorf("invalid greeting id %q: %w", event.AggregateID(), err)
	}

	contract := integration.GreetingCreated{
		ID:        id,
		Message:   domain.GreetingCreatedMessage(event),
		CreatedAt: domain.GreetingCreatedAt(event),
		EventID:   event.EventID(),
	}
	msg, err := integration.NewIntegrationEvent(domain.GreetingCreatedIntegration, id.String(), contract)
	if err != nil {
		return err
	}

	if err := f.bus.Publish(ctx, msg); err != nil {
		return fmt.Errorf("forwarding %s: %w", domain.GreetingCreatedIntegration, err)
	}
	f.log.Debug("Greeting forwarded to bus", zap.String("greeting_id", id.String()))
	return nil
}
