package eventtype

import (
	"booker-api/core/database"
	"booker-api/core/middleware"
	"booker-api/modules/eventtype/controller"
	"booker-api/modules/eventtype/repository"
	"booker-api/modules/eventtype/router"
	"booker-api/modules/eventtype/service"

	"github.com/labstack/echo/v4"
)

// Init wires the event-type module and returns the guard for other API handlers.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) service.MembershipGuard {
	eventTypeRepo := repository.NewEventTypeRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	guard := service.NewMembershipGuard(eventTypeRepo, membershipRepo)
	svc := service.NewEventTypeService(eventTypeRepo, guard)
	ctrl := controller.NewEventTypeController(svc)

	router.NewEventTypeRouter(ctrl).Setup(e, mw)

	return guard
}
