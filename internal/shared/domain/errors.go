package domain

import (
	"errors"
	"net/http"
)

// ErrorCode es un código estable, legible por máquinas, que viaja hasta la respuesta HTTP.
type ErrorCode string

const (
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// DomainError es el error base de todos los contextos.
// Name identifica el tipo (ej. "InvalidGreetingException"), Status el código HTTP equivalente.
type DomainError struct {
	Name    string
	Code    ErrorCode
	Message string
	Status  int
}

// NewDomainError crea un error de dominio. Status 0 se interpreta como 500.
func NewDomainError(name string, code ErrorCode, message string, status int) *DomainError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &DomainError{Name: name, Code: code, Message: message, Status: status}
}

func (e *DomainError) Error() string {
	return e.Message
}

// WithMessage devuelve una copia con otro mensaje y el mismo código.
func (e *DomainError) WithMessage(message string) *DomainError {
	cp := *e
	cp.Message = message
	return &cp
}

// Is compara por código, así errors.Is funciona con copias creadas por WithMessage.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// AsDomainError extrae un *DomainError de la cadena de errores.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// ErrInternal es el error genérico para fallos inesperados.
var ErrInternal = NewDomainError("InternalServerError", ErrCodeInternal, "An unexpected error occurred", http.StatusInternalServerError)
