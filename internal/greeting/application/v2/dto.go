package v2

import (
	"time"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
)

// APIVersion es el valor del campo version de las respuestas v2.
const APIVersion = "2.0"

// GreetingResponseDto es la respuesta de la API v2: incluye timestamp y versión.
type GreetingResponseDto struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// GreetingRequestDto es el cuerpo de POST /api/v2/greetings.
type GreetingRequestDto struct {
	Message string `json:"message"`
}

// GreetingToDto convierte la entidad en el DTO v2. now es el instante de la respuesta.
func GreetingToDto(g *domain.Greeting, now time.Time) GreetingResponseDto {
	return GreetingResponseDto{
		Message:   g.Message(),
		Timestamp: now.UTC().Format(time.RFC3339Nano),
		Version:   APIVersion,
	}
}
