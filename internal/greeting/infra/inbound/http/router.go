package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexagreet/internal/shared/infra/platform/httpserver"
)

// RegisterGreetingRoutes monta /api/v1/greetings y /api/v2/greetings.
func RegisterGreetingRoutes(handler *GreetingHandler) httpserver.RouteRegistrar {
	return func(r gin.IRouter) {
		apiV1 := httpserver.VersionGroup(r, httpserver.V1)
		{
			apiV1.GET("/greetings", handler.GetGreetingV1)
		}

		apiV2 := httpserver.VersionGroup(r, httpserver.V2)
		{
			apiV2.GET("/greetings", handler.GetGreetingV2)
			apiV2.POST("/greetings", handler.CreateGreetingV2)
		}
	}
}
