package router

import (
	"booker-api/core/middleware"
	"booker-api/modules/eventtype/controller"

	"github.com/labstack/echo/v4"
)

type EventTypeRouter struct {
	controller *controller.EventTypeController
}

func NewEventTypeRouter(controller *controller.EventTypeController) *EventTypeRouter {
	return &EventTypeRouter{controller: controller}
}

func (r *EventTypeRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	group := e.Group("/api/v1/private/event-types", mw.AuthMiddleware())
	group.POST("", r.controller.CreateEventType)
	group.GET("/:id", r.controller.GetEventType)
}
