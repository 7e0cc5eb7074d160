package auth

import (
	"booker-api/core/cache"
	"booker-api/core/middleware"
	"booker-api/modules/auth/controller"
	"booker-api/modules/auth/router"
	"booker-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init builds the session service, the auth middleware on top of it and the auth routes.
func Init(e *echo.Echo, cache cache.Cache) (service.SessionService, *middleware.Middleware) {
	sessionSvc := service.NewSessionService(cache)
	mw := middleware.NewMiddleware(sessionSvc)
	ctrl := controller.NewAuthController(sessionSvc)

	router.NewAuthRouter(ctrl).Setup(e, mw)

	return sessionSvc, mw
}
