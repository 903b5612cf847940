package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
	sharedEvents "github.com/davicafu/hexagreet/internal/shared/domain/events"
)

// GreetingCreatedHandler reacciona a GreetingCreated dejando constancia en el log.
type GreetingCreatedHandler struct {
	log *zap.Logger
}

// Verificación estática
var _ sharedEvents.Handler = (*GreetingCreatedHandler)(nil)

func NewGreetingCreatedHandler(log *zap.Logger) *GreetingCreatedHandler {
	return &GreetingCreatedHandler{log: log}
}

func (h *GreetingCreatedHandler) EventName() string { return domain.GreetingCreatedEvent }

func (h *GreetingCreatedHandler) Handle(ctx context.Context, event *sharedEvents.DomainEvent) error {
	h.log.Info("New greeting created",
		zap.String("event_id", event.EventID()),
		zap.String("greeting_id", event.AggregateID()),
		zap.String("message", domain.GreetingCreatedMessage(event)),
		zap.Time("created_at", domain.GreetingCreatedAt(event)),
	)
	return nil
}
