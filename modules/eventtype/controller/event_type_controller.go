package controller

import (
	"strconv"

	"booker-api/core/controller"
	"booker-api/core/errors"
	"booker-api/core/middleware"
	"booker-api/modules/eventtype/dto"
	"booker-api/modules/eventtype/service"

	"github.com/labstack/echo/v4"
)

type EventTypeController struct {
	service service.EventTypeService
	controller.BaseController
}

func NewEventTypeController(service service.EventTypeService) *EventTypeController {
	return &EventTypeController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// CreateEventType creates an event type; with parent_id it becomes a child of a team event type.
// @Summary Create event type
// @Tags EventType
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventTypeRequest true "Event type"
// @Success 201 {object} dto.EventTypeResponse
// @Failure 400 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/event-types [post]
func (c *EventTypeController) CreateEventType(ctx echo.Context) error {
	tokenData, ok := middleware.GetTokenData(ctx)
	if !ok {
		return c.Unauthorized(ctx, errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CreateEventTypeRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}

	result, appErr := c.service.Create(ctx.Request().Context(), tokenData.UserID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "Event type created successfully")
}

// GetEventType
// @Summary Get event type
// @Tags EventType
// @Security BearerAuth
// @Produce json
// @Param id path int true "Event type id"
// @Success 200 {object} dto.EventTypeResponse
// @Failure 404 {object} errors.AppError
// @Router /private/event-types/{id} [get]
func (c *EventTypeController) GetEventType(ctx echo.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidInput, "Invalid event type id")
	}

	result, appErr := c.service.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Event type retrieved successfully")
}
