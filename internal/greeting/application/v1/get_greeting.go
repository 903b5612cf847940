package v1

import (
	"context"

	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/greeting/application"
	"github.com/davicafu/hexagreet/internal/greeting/domain"
	sharedDomain "github.com/davicafu/hexagreet/internal/shared/domain"
)

// GetGreeting es el puerto de entrada del caso de uso v1.
type GetGreeting interface {
	Execute(ctx context.Context) sharedDomain.Result[GreetingResponseDto]
}

// GetGreetingUseCase devuelve el saludo actual.
type GetGreetingUseCase struct {
	repo domain.GreetingRepository
	log  *zap.Logger
}

var _ GetGreeting = (*GetGreetingUseCase)(nil)

func NewGetGreetingUseCase(repo domain.GreetingRepository, log *zap.Logger) *GetGreetingUseCase {
	return &GetGreetingUseCase{repo: repo, log: log}
}

func (uc *GetGreetingUseCase) Execute(ctx context.Context) sharedDomain.Result[GreetingResponseDto] {
	g, err := application.FetchGreeting(ctx, uc.repo, uc.log, "GetGreetingUseCase")
	if err != nil {
		return sharedDomain.Fail[GreetingResponseDto](err)
	}
	return sharedDomain.Ok(GreetingToDto(g))
}
