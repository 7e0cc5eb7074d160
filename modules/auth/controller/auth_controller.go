package controller

import (
	"net/http"

	"booker-api/core/controller"
	"booker-api/core/errors"
	"booker-api/core/middleware"
	"booker-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	service service.SessionService
	controller.BaseController
}

func NewAuthController(service service.SessionService) *AuthController {
	return &AuthController{
		service:        service,
		BaseController: controller.NewBaseController(),
	}
}

// ContinueWithProvider returns the provider login URL shown by the overlay continue prompt.
// @Summary Continue with Google
// @Tags Auth
// @Produce json
// @Param return_to query string false "Booker path to return to"
// @Success 200 {object} dto.ContinueURLResponse
// @Router /public/auth/continue [get]
func (c *AuthController) ContinueWithProvider(ctx echo.Context) error {
	result, appErr := c.service.ContinueWithProviderURL(ctx.Request().Context(), ctx.QueryParam("return_to"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Continue URL created")
}

// ContinueCallback is the provider redirect target. It sends the viewer back to the booker path
// saved under the OAuth state.
// @Summary Continue with Google callback
// @Tags Auth
// @Param state query string true "OAuth state"
// @Success 302
// @Router /public/auth/continue/callback [get]
func (c *AuthController) ContinueCallback(ctx echo.Context) error {
	state := ctx.QueryParam("state")
	if state == "" {
		return c.BadRequest(ctx, errors.ErrInvalidInput, "state is required")
	}
	returnTo, appErr := c.service.ResolveReturnTo(ctx.Request().Context(), state)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.Redirect(http.StatusFound, returnTo)
}

// @Summary Logout
// @Tags Auth
// @Security BearerAuth
// @Router /private/auth/logout [post]
func (c *AuthController) Logout(ctx echo.Context) error {
	tokenData, ok := middleware.GetTokenData(ctx)
	if !ok {
		return c.Unauthorized(ctx, errors.ErrUnauthorized, "Unauthorized")
	}
	if appErr := c.service.Revoke(ctx.Request().Context(), tokenData); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Logged out successfully")
}
