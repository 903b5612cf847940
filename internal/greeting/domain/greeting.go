package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultGreeting es el saludo que se devuelve cuando no hay ninguno guardado.
const DefaultGreeting = "Hello World!"

// Greeting es la entidad saludo.
type Greeting struct {
	id        uuid.UUID
	message   Message
	createdAt time.Time
}

// NewGreeting crea un saludo nuevo validando el texto.
func NewGreeting(text string) (*Greeting, error) {
	msg, err := NewMessage(text)
	if err != nil {
		return nil, err
	}
	return &Greeting{id: uuid.New(), message: msg, createdAt: time.Now().UTC()}, nil
}

// Reconstitute reconstruye un saludo desde almacenamiento. El texto se vuelve a validar.
func Reconstitute(id uuid.UUID, text string, createdAt time.Time) (*Greeting, error) {
	msg, err := NewMessage(text)
	if err != nil {
		return nil, err
	}
	return &Greeting{id: id, message: msg, createdAt: createdAt}, nil
}

func (g *Greeting) ID() uuid.UUID { return g.id }

func (g *Greeting) Message() string { return g.message.Value() }

func (g *Greeting) CreatedAt() time.Time { return g.createdAt }

// PartitionKey implementa bus.Keyer: los eventos de un mismo saludo van a la misma partición.
func (g *Greeting) PartitionKey() string { return g.id.String() }
