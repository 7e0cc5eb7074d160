package router

import (
	"booker-api/core/middleware"
	"booker-api/modules/overlay/controller"

	"github.com/labstack/echo/v4"
)

type OverlayRouter struct {
	controller *controller.OverlayController
}

func NewOverlayRouter(controller *controller.OverlayController) *OverlayRouter {
	return &OverlayRouter{controller: controller}
}

func (r *OverlayRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	public := e.Group("/api/v1/public/booker/overlay", mw.DeviceMiddleware(), mw.OptionalAuthMiddleware())
	public.POST("/render", r.controller.Render)
	public.POST("/toggle", r.controller.Toggle)
	public.POST("/continue/dismiss", r.controller.DismissPrompt)

	private := e.Group("/api/v1/private/booker/overlay", mw.DeviceMiddleware(), mw.AuthMiddleware())
	private.POST("/settings", r.controller.Settings)
	private.GET("/calendars", r.controller.ListCalendars)
	private.POST("/calendars", r.controller.AddCalendar)
	private.DELETE("/calendars", r.controller.RemoveCalendar)
	private.DELETE("/calendars/all", r.controller.ClearCalendars)
}
