package domain

import (
	"net/http"

	sharedDomain "github.com/davicafu/hexagreet/internal/shared/domain"
)

// ---------- Códigos de error ----------
const (
	ErrCodeInvalidGreeting sharedDomain.ErrorCode = "INVALID_GREETING"
	ErrCodeGreetingFetch   sharedDomain.ErrorCode = "GREETING_FETCH_ERROR"
	ErrCodeGreetingSave    sharedDomain.ErrorCode = "GREETING_SAVE_ERROR"
)

// ---------- Errores de dominio ----------
var (
	// ErrInvalidGreeting: mensaje vacío o demasiado largo.
	ErrInvalidGreeting = sharedDomain.NewDomainError("InvalidGreetingException", ErrCodeInvalidGreeting, "Invalid greeting", http.StatusBadRequest)

	// ErrGreetingFetch envuelve cualquier fallo inesperado al leer el saludo.
	ErrGreetingFetch = sharedDomain.NewDomainError("GreetingFetchException", ErrCodeGreetingFetch, "Failed to fetch greeting", http.StatusInternalServerError)

	// ErrGreetingSave envuelve cualquier fallo inesperado al guardar el saludo.
	ErrGreetingSave = sharedDomain.NewDomainError("GreetingSaveException", ErrCodeGreetingSave, "Failed to save greeting", http.StatusInternalServerError)
)
