package v1

import "github.com/davicafu/hexagreet/internal/greeting/domain"

// GreetingResponseDto es la respuesta de la API v1.
type GreetingResponseDto struct {
	Message string `json:"message"`
}

// GreetingToDto convierte la entidad en el DTO v1.
func GreetingToDto(g *domain.Greeting) GreetingResponseDto {
	return GreetingResponseDto{Message: g.Message()}
}
