package controller

import (
	"booker-api/core/controller"
	"booker-api/core/errors"
	"booker-api/core/middleware"
	"booker-api/modules/overlay/dto"
	"booker-api/modules/overlay/service"

	"github.com/labstack/echo/v4"
)

type OverlayController struct {
	container service.Container
	controller.BaseController
}

func NewOverlayController(container service.Container) *OverlayController {
	return &OverlayController{
		container:      container,
		BaseController: controller.NewBaseController(),
	}
}

// Render
// @Summary Overlay calendar view for a booker page
// @Tags Overlay
// @Accept json
// @Produce json
// @Param X-Device-ID header string false "Device id"
// @Param request body dto.RenderRequest true "Booker page"
// @Success 200 {object} dto.ViewResponse
// @Router /public/booker/overlay/render [post]
func (c *OverlayController) Render(ctx echo.Context) error {
	var req dto.RenderRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}

	view, appErr := c.container.Render(ctx.Request().Context(), middleware.GetDeviceID(ctx), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, view, "Overlay rendered successfully")
}

// Toggle
// @Summary Flip the overlay switch
// @Tags Overlay
// @Accept json
// @Produce json
// @Param request body dto.ToggleRequest true "Booker page and switch state"
// @Success 200 {object} dto.ViewResponse
// @Router /public/booker/overlay/toggle [post]
func (c *OverlayController) Toggle(ctx echo.Context) error {
	var req dto.ToggleRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}

	view, appErr := c.container.Toggle(ctx.Request().Context(), middleware.GetDeviceID(ctx), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, view, "Overlay toggled successfully")
}

func (c *OverlayController) DismissPrompt(ctx echo.Context) error {
	if appErr := c.container.DismissPrompt(ctx.Request().Context(), middleware.GetDeviceID(ctx)); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Prompt dismissed")
}

func (c *OverlayController) Settings(ctx echo.Context) error {
	var req dto.SettingsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}

	view, appErr := c.container.SetSettingsOpen(ctx.Request().Context(), middleware.GetDeviceID(ctx), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, view, "Overlay settings updated")
}

func (c *OverlayController) ListCalendars(ctx echo.Context) error {
	items, appErr := c.container.ListSelection(ctx.Request().Context(), middleware.GetDeviceID(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, items, "Selected calendars retrieved successfully")
}

func (c *OverlayController) AddCalendar(ctx echo.Context) error {
	var req dto.SelectionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}

	items, appErr := c.container.AddSelection(ctx.Request().Context(), middleware.GetDeviceID(ctx), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, items, "Calendar added to overlay")
}

func (c *OverlayController) RemoveCalendar(ctx echo.Context) error {
	var req dto.SelectionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}

	items, appErr := c.container.RemoveSelection(ctx.Request().Context(), middleware.GetDeviceID(ctx), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, items, "Calendar removed from overlay")
}

func (c *OverlayController) ClearCalendars(ctx echo.Context) error {
	if appErr := c.container.ClearSelection(ctx.Request().Context(), middleware.GetDeviceID(ctx)); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Overlay calendars cleared")
}
