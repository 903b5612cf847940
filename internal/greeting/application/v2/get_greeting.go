package v2

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/greeting/application"
	"github.com/davicafu/hexagreet/internal/greeting/domain"
	sharedDomain "github.com/davicafu/hexagreet/internal/shared/domain"
)

// GetGreeting es el puerto de entrada del caso de uso v2.
type GetGreeting interface {
	Execute(ctx context.Context) sharedDomain.Result[GreetingResponseDto]
}

// GetGreetingUseCase devuelve el saludo actual con timestamp y versión.
type GetGreetingUseCase struct {
	repo domain.GreetingRepository
	log  *zap.Logger
	now  func() time.Time
}

var _ GetGreeting = (*GetGreetingUseCase)(nil)

func NewGetGreetingUseCase(repo domain.GreetingRepository, log *zap.Logger) *GetGreetingUseCase {
	return &GetGreetingUseCase{repo: repo, log: log, now: time.Now}
}

func (uc *GetGreetingUseCase) Execute(ctx context.Context) sharedDomain.Result[GreetingResponseDto] {
	g, err := application.FetchGreeting(ctx, uc.repo, uc.log, "GetGreetingUseCase V2")
	if err != nil {
		return sharedDomain.Fail[GreetingResponseDto](err)
	}
	return sharedDomain.Ok(GreetingToDto(g, uc.now()))
}
