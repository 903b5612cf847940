package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/davicafu/hexagreet/internal/greeting/application/v1"
	v2 "github.com/davicafu/hexagreet/internal/greeting/application/v2"
	"github.com/davicafu/hexagreet/pkg/utils"
)

// GreetingHandler encapsula los endpoints HTTP de Greeting en sus dos versiones
type GreetingHandler struct {
	getV1    v1.GetGreeting
	getV2    v2.GetGreeting
	createV2 v2.CreateGreeting
}

// NewGreetingHandler crea un nuevo GreetingHandler
func NewGreetingHandler(getV1 v1.GetGreeting, getV2 v2.GetGreeting, createV2 v2.CreateGreeting) *GreetingHandler {
	return &GreetingHandler{getV1: getV1, getV2: getV2, createV2: createV2}
}

// ---------------- Handlers ----------------

// GetGreetingV1 godoc
// @Summary  Get greeting (v1)
// @Tags     Greetings v1
// @Produce  json
// @Success  200 {object} v1.GreetingResponseDto
// @Failure  500 {object} utils.ErrorResponse
// @Router   /api/v1/greetings [get]
func (h *GreetingHandler) GetGreetingV1(c *gin.Context) {
	res := h.getV1.Execute(c.Request.Context())
	if res.IsFailure() {
		_ = c.Error(res.Error())
		return
	}
	utils.SendSuccess(c, http.StatusOK, res.Value())
}

// GetGreetingV2 godoc
// @Summary  Get greeting (v2)
// @Tags     Greetings v2
// @Produce  json
// @Success  200 {object} v2.GreetingResponseDto
// @Failure  500 {object} utils.ErrorResponse
// @Router   /api/v2/greetings [get]
func (h *GreetingHandler) GetGreetingV2(c *gin.Context) {
	res := h.getV2.Execute(c.Request.Context())
	if res.IsFailure() {
		_ = c.Error(res.Error())
		return
	}
	utils.SendSuccess(c, http.StatusOK, res.Value())
}

// CreateGreetingV2 godoc
// @Summary  Create greeting
// @Tags     Greetings v2
// @Accept   json
// @Produce  json
// @Param    body body v2.GreetingRequestDto true "Greeting"
// @Success  201 {object} v2.GreetingResponseDto
// @Failure  400 {object} utils.ErrorResponse
// @Failure  500 {object} utils.ErrorResponse
// @Router   /api/v2/greetings [post]
func (h *GreetingHandler) CreateGreetingV2(c *gin.Context) {
	var req v2.GreetingRequestDto
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	res := h.createV2.Execute(c.Request.Context(), req.Message)
	if res.IsFailure() {
		_ = c.Error(res.Error())
		return
	}
	utils.SendSuccess(c, http.StatusCreated, res.Value())
}
