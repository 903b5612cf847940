package v2

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/greeting/application"
	"github.com/davicafu/hexagreet/internal/greeting/domain"
	sharedDomain "github.com/davicafu/hexagreet/internal/shared/domain"
	sharedEvents "github.com/davicafu/hexagreet/internal/shared/domain/events"
)

// CreateGreeting es el puerto de entrada para crear saludos.
type CreateGreeting interface {
	Execute(ctx context.Context, message string) sharedDomain.Result[GreetingResponseDto]
}

// CreateGreetingUseCase valida, guarda y publica GreetingCreated.
type CreateGreetingUseCase struct {
	repo      domain.GreetingRepository
	publisher sharedEvents.Publisher
	log       *zap.Logger
	now       func() time.Time
}

var _ CreateGreeting = (*CreateGreetingUseCase)(nil)

func NewCreateGreetingUseCase(repo domain.GreetingRepository, publisher sharedEvents.Publisher, log *zap.Logger) *CreateGreetingUseCase {
	return &CreateGreetingUseCase{repo: repo, publisher: publisher, log: log, now: time.Now}
}

func (uc *CreateGreetingUseCase) Execute(ctx context.Context, message string) sharedDomain.Result[GreetingResponseDto] {
	g, err := domain.NewGreeting(message)
	if err != nil {
		uc.log.Info("Rejected invalid greeting", zap.Error(err))
		return sharedDomain.Fail[GreetingResponseDto](application.ToDomainError(err, domain.ErrInvalidGreeting))
	}

	if err := uc.repo.Save(ctx, g); err != nil {
		uc.log.Error("Failed to save greeting", zap.String("greeting_id", g.ID().String()), zap.Error(err))
		return sharedDomain.Fail[GreetingResponseDto](application.ToDomainError(err, domain.ErrGreetingSave))
	}

	// Los eventos son notificaciones: un handler que falla no deshace la creación.
	report := uc.publisher.Publish(ctx, domain.NewGreetingCreated(g))
	if !report.Succeeded() {
		uc.log.Warn("Some GreetingCreated handlers failed",
			zap.String("event_id", report.EventID),
			zap.Error(report.Err()),
		)
	}

	uc.log.Info("Greeting created", zap.String("greeting_id", g.ID().String()))
	return sharedDomain.Ok(GreetingToDto(g, uc.now()))
}
