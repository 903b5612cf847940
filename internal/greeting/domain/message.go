package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MessageMinLength = 1
	MessageMaxLength = 200
)

var validate = validator.New()

// Message es el value object del texto de un saludo.
// Invariante: no vacío (ignorando espacios) y como mucho MessageMaxLength caracteres.
type Message struct {
	value string
}

// NewMessage valida y construye un Message. Devuelve un error INVALID_GREETING si no es válido.
func NewMessage(value string) (Message, error) {
	if validate.Var(strings.TrimSpace(value), fmt.Sprintf("required,min=%d", MessageMinLength)) != nil {
		return Message{}, ErrInvalidGreeting.WithMessage("Message cannot be empty")
	}
	// max cuenta runas, no bytes.
	if validate.Var(value, fmt.Sprintf("max=%d", MessageMaxLength)) != nil {
		return Message{}, ErrInvalidGreeting.WithMessage(fmt.Sprintf("Message too long (max %d characters)", MessageMaxLength))
	}
	return Message{value: value}, nil
}

func (m Message) Value() string { return m.value }

func (m Message) String() string { return m.value }

func (m Message) Equals(other Message) bool { return m.value == other.value }
