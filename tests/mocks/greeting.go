package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
)

// InMemoryGreetingRepo simula GreetingRepository guardando todo lo que recibe.
type InMemoryGreetingRepo struct {
	Saved []*domain.Greeting
	mu    sync.Mutex
}

var _ domain.GreetingRepository = (*InMemoryGreetingRepo)(nil)

func NewInMemoryGreetingRepo() *InMemoryGreetingRepo {
	return &InMemoryGreetingRepo{}
}

func (r *InMemoryGreetingRepo) GetGreeting(ctx context.Context) (*domain.Greeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Saved) == 0 {
		return domain.NewGreeting(domain.DefaultGreeting)
	}
	return r.Saved[len(r.Saved)-1], nil
}

func (r *InMemoryGreetingRepo) Save(ctx context.Context, g *domain.Greeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Saved = append(r.Saved, g)
	return nil
}

// MockGreetingRepository es el mock de testify del repositorio.
type MockGreetingRepository struct {
	mock.Mock
}

var _ domain.GreetingRepository = (*MockGreetingRepository)(nil)

func (m *MockGreetingRepository) GetGreeting(ctx context.Context) (*domain.Greeting, error) {
	args := m.Called(ctx)
	g, _ := args.Get(0).(*domain.Greeting)
	return g, args.Error(1)
}

func (m *MockGreetingRepository) Save(ctx context.Context, g *domain.Greeting) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGreetingRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
