package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
	"github.com/davicafu/hexagreet/tests/mocks"
)

func TestFetchGreeting_RetriesInfrastructureErrors(t *testing.T) {
	repo := new(mocks.MockGreetingRepository)
	g, _ := domain.NewGreeting("Hola")
	repo.On("GetGreeting", mock.Anything).Return(nil, errors.New("connection reset")).Once()
	repo.On("GetGreeting", mock.Anything).Return(g, nil).Once()

	got, derr := FetchGreeting(context.Background(), repo, zap.NewNop(), "test")

	require.Nil(t, derr)
	assert.Same(t, g, got)
	repo.AssertNumberOfCalls(t, "GetGreeting", 2)
}

func TestFetchGreeting_ExhaustsRetriesAndReturnsFetchError(t *testing.T) {
	repo := new(mocks.MockGreetingRepository)
	repo.On("GetGreeting", mock.Anything).Return(nil, errors.New("db down"))

	got, derr := FetchGreeting(context.Background(), repo, zap.NewNop(), "test")

	assert.Nil(t, got)
	require.NotNil(t, derr)
	assert.Equal(t, domain.ErrCodeGreetingFetch, derr.Code)
	assert.Equal(t, 500, derr.Status)
	repo.AssertNumberOfCalls(t, "GetGreeting", fetchAttempts)
}

func TestFetchGreeting_DomainErrorIsNotRetried(t *testing.T) {
	repo := new(mocks.MockGreetingRepository)
	repo.On("GetGreeting", mock.Anything).Return(nil, domain.ErrInvalidGreeting)

	_, derr := FetchGreeting(context.Background(), repo, zap.NewNop(), "test")

	require.NotNil(t, derr)
	assert.ErrorIs(t, derr, domain.ErrInvalidGreeting)
	repo.AssertNumberOfCalls(t, "GetGreeting", 1)
}

func TestToDomainError(t *testing.T) {
	assert.Same(t, domain.ErrGreetingSave, ToDomainError(errors.New("x"), domain.ErrGreetingSave))
	assert.Same(t, domain.ErrInvalidGreeting, ToDomainError(domain.ErrInvalidGreeting, domain.ErrGreetingSave))
}
