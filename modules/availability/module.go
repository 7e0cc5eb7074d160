package availability

import (
	"time"

	"booker-api/core/cache"
	"booker-api/core/database"
	"booker-api/core/middleware"
	"booker-api/core/queue"
	"booker-api/modules/availability/controller"
	"booker-api/modules/availability/repository"
	"booker-api/modules/availability/router"
	"booker-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

// Init wires the availability module. The returned querier is what the overlay reads busy times
// through; its cache is invalidated by the selection-invalidated task registered on worker.
func Init(e *echo.Echo, db database.IDatabase, c cache.Cache, ttl time.Duration, worker *queue.Worker, mw *middleware.Middleware) *service.CachedQuerier {
	repo := repository.NewAvailabilityRepository(db)
	svc := service.NewAvailabilityService(repo)
	querier := service.NewCachedQuerier(svc, c, ttl)
	ctrl := controller.NewAvailabilityController(svc)

	router.NewAvailabilityRouter(ctrl).Setup(e, mw)
	if worker != nil {
		worker.Handle(service.TaskSelectionInvalidated, service.SelectionInvalidatedHandler(querier))
	}

	return querier
}
