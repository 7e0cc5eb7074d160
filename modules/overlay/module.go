package overlay

import (
	"time"

	"booker-api/core/cache"
	"booker-api/core/constants"
	"booker-api/core/middleware"
	"booker-api/core/queue"
	"booker-api/modules/overlay/controller"
	"booker-api/modules/overlay/router"
	"booker-api/modules/overlay/service"

	"github.com/labstack/echo/v4"
)

// Init wires the overlay container. local is the zone busy intervals are re-based from.
func Init(e *echo.Echo, c cache.Cache, querier service.BusyTimesQuerier, publisher queue.Publisher, login service.LoginURLBuilder, local *time.Location, mw *middleware.Middleware) service.Container {
	sessions := service.ContextSessions{}
	busy := service.NewBusyState(c, constants.OverlayBusyStateTTL)
	reconciler := service.NewReconciler(sessions, querier, busy, publisher, time.Now, local)
	container := service.NewContainer(c, sessions, reconciler, busy, login)
	ctrl := controller.NewOverlayController(container)

	router.NewOverlayRouter(ctrl).Setup(e, mw)

	return container
}
