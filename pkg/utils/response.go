package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey es la clave del gin.Context donde el middleware guarda el id de petición.
const RequestIDKey = "requestId"

// GenericErrorMessage es el mensaje de los errores inesperados en producción.
const GenericErrorMessage = "An unexpected error occurred"

// ErrorResponse define la estructura estándar para las respuestas de error.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// RequestID devuelve el id de la petición en curso, si lo hay.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// SendSuccess envía una respuesta exitosa con el DTO tal cual.
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendError envía una respuesta de error con el formato estandarizado y aborta la cadena.
func SendError(c *gin.Context, statusCode int, name, message, code string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:     name,
		Message:   message,
		Code:      code,
		RequestID: RequestID(c),
	})
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, "ValidationError", message, "")
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, "NotFound", message, "")
}

// SendInternalServerError oculta el detalle del error en producción.
func SendInternalServerError(c *gin.Context, err error, production bool) {
	message := GenericErrorMessage
	if !production && err != nil {
		message = err.Error()
	}
	SendError(c, http.StatusInternalServerError, "InternalServerError", message, "")
}
