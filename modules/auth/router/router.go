package router

import (
	"booker-api/core/middleware"
	"booker-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	v1.GET("/public/auth/continue", r.controller.ContinueWithProvider)
	v1.GET("/public/auth/continue/callback", r.controller.ContinueCallback)
	v1.POST("/private/auth/logout", r.controller.Logout, mw.AuthMiddleware())
}
