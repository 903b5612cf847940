package memory

import (
	"context"
	"sync"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
)

// GreetingRepoMemory guarda el último saludo en memoria.
type GreetingRepoMemory struct {
	mu     sync.RWMutex
	latest *domain.Greeting
}

// Verificación estática
var (
	_ domain.GreetingRepository = (*GreetingRepoMemory)(nil)
	_ domain.Pinger             = (*GreetingRepoMemory)(nil)
)

func NewGreetingRepoMemory() *GreetingRepoMemory {
	return &GreetingRepoMemory{}
}

// GetGreeting devuelve el último saludo guardado o uno nuevo con DefaultGreeting.
func (r *GreetingRepoMemory) GetGreeting(ctx context.Context) (*domain.Greeting, error) {
	r.mu.RLock()
	latest := r.latest
	r.mu.RUnlock()

	if latest != nil {
		return latest, nil
	}
	return domain.NewGreeting(domain.DefaultGreeting)
}

func (r *GreetingRepoMemory) Save(ctx context.Context, g *domain.Greeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest = g
	return nil
}

func (r *GreetingRepoMemory) Ping(ctx context.Context) error { return ctx.Err() }
