package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
)

func TestGreetingRepoMemory_Default(t *testing.T) {
	r := NewGreetingRepoMemory()

	g, err := r.GetGreeting(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Hello World!", g.Message())
}

func TestGreetingRepoMemory_ReturnsLastSaved(t *testing.T) {
	r := NewGreetingRepoMemory()
	a, _ := domain.NewGreeting("a")
	b, _ := domain.NewGreeting("b")

	require.NoError(t, r.Save(context.Background(), a))
	require.NoError(t, r.Save(context.Background(), b))

	got, err := r.GetGreeting(context.Background())
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestGreetingRepoMemory_Concurrent(t *testing.T) {
	r := NewGreetingRepoMemory()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			g, _ := domain.NewGreeting("x")
			_ = r.Save(context.Background(), g)
		}()
		go func() {
			defer wg.Done()
			_, _ = r.GetGreeting(context.Background())
		}()
	}
	wg.Wait()

	g, err := r.GetGreeting(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x", g.Message())
	assert.NoError(t, r.Ping(context.Background()))
}
