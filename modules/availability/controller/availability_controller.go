package controller

import (
	"booker-api/core/controller"
	"booker-api/core/errors"
	"booker-api/core/middleware"
	"booker-api/modules/availability/dto"
	"booker-api/modules/availability/service"

	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	service service.AvailabilityService
	controller.BaseController
}

func NewAvailabilityController(service service.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CalendarOverlay
// @Summary Busy times of the viewer's connected calendars
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CalendarOverlayRequest true "Calendars and range"
// @Success 200 {array} dto.BusyTime
// @Failure 401 {object} errors.AppError
// @Router /private/availability/calendar-overlay [post]
func (c *AvailabilityController) CalendarOverlay(ctx echo.Context) error {
	tokenData, ok := middleware.GetTokenData(ctx)
	if !ok {
		return c.Unauthorized(ctx, errors.ErrUnauthorized, "Unauthorized")
	}

	var req dto.CalendarOverlayRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}

	busy, appErr := c.service.CalendarOverlay(ctx.Request().Context(), tokenData.UserID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, busy, "Busy times retrieved successfully")
}
