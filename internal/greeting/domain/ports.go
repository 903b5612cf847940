package domain

import (
	"context"
)

// ---------- Interfaces (Ports) ----------

// GreetingRepository es el puerto de persistencia de saludos.
type GreetingRepository interface {
	// GetGreeting devuelve el último saludo guardado o, si no hay ninguno, DefaultGreeting.
	GetGreeting(ctx context.Context) (*Greeting, error)

	// Save guarda un saludo; pasa a ser el que devuelve GetGreeting.
	Save(ctx context.Context, g *Greeting) error
}

// Pinger lo implementan los repositorios con una conexión que se puede comprobar (readiness).
type Pinger interface {
	Ping(ctx context.Context) error
}

// ---------- Helpers comunes (cache keys, etc.) ----------

// CacheKeyLatest es la clave de caché del último saludo.
const CacheKeyLatest = "greeting:latest"

// GreetingTopic es el topic de integración de los eventos de saludo.
const GreetingTopic = "greeting"

// Tipos de evento de integración (los que viajan por el bus, no los de dominio).
const (
	GreetingCreatedIntegration = "greeting.created"
)
