package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
	sharedDomain "github.com/davicafu/hexagreet/internal/shared/domain"
	sharedUtils "github.com/davicafu/hexagreet/internal/shared/infra/utils"
)

const (
	fetchAttempts = 3
	fetchDelay    = 50 * time.Millisecond
)

// ToDomainError devuelve err si ya es un error de dominio; si no, fallback.
func ToDomainError(err error, fallback *sharedDomain.DomainError) *sharedDomain.DomainError {
	if de, ok := sharedDomain.AsDomainError(err); ok {
		return de
	}
	return fallback
}

// FetchGreeting lee el saludo del repositorio con reintentos.
// Los errores de dominio no se reintentan; el resto se envuelve en GREETING_FETCH_ERROR.
func FetchGreeting(ctx context.Context, repo domain.GreetingRepository, log *zap.Logger, useCase string) (*domain.Greeting, *sharedDomain.DomainError) {
	log.Debug("Fetching greeting", zap.String("use_case", useCase))

	var greeting *domain.Greeting
	err := sharedUtils.Retry(ctx, fetchAttempts, fetchDelay, func() error {
		g, err := repo.GetGreeting(ctx)
		if err != nil {
			if _, ok := sharedDomain.AsDomainError(err); ok {
				return sharedUtils.Permanent(err)
			}
			return err
		}
		greeting = g
		return nil
	})
	if err != nil {
		log.Error("Failed to fetch greeting", zap.String("use_case", useCase), zap.Error(err))
		return nil, ToDomainError(err, domain.ErrGreetingFetch)
	}

	log.Info("Greeting fetched successfully", zap.String("use_case", useCase))
	return greeting, nil
}
