package middleware

import (
	"context"
	"net/http"

	"booker-api/core/constants"
	"booker-api/core/errors"
	"booker-api/core/logger"
	"booker-api/core/utils"

	"github.com/labstack/echo/v4"
)

type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*utils.TokenClaims, *errors.AppError)
}

type Middleware struct {
	validator TokenValidator
}

func NewMiddleware(validator TokenValidator) *Middleware {
	return &Middleware{validator: validator}
}

// AuthMiddleware rejects requests without a valid bearer token.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := utils.GetTokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing authorization header", nil))
			}
			claims, appErr := m.validator.ValidateToken(c.Request().Context(), token)
			if appErr != nil {
				logger.Warn("Middleware:AuthMiddleware:InvalidToken", "error", appErr)
				return c.JSON(appErr.HTTPStatus(), appErr)
			}
			setTokenData(c, claims)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware attaches the session when a valid token is sent and lets anonymous
// requests and requests with unusable tokens through without one.
func (m *Middleware) OptionalAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := utils.GetTokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return next(c)
			}
			claims, appErr := m.validator.ValidateToken(c.Request().Context(), token)
			if appErr != nil {
				logger.Debug("Middleware:OptionalAuthMiddleware:IgnoredToken", "error", appErr)
				return next(c)
			}
			setTokenData(c, claims)
			return next(c)
		}
	}
}

// DeviceMiddleware resolves the booker device id from the header or cookie, issuing one when absent.
func (m *Middleware) DeviceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			deviceID := c.Request().Header.Get(constants.DeviceHeader)
			if !utils.IsValidDeviceID(deviceID) {
				deviceID = ""
				if cookie, err := c.Cookie(constants.DeviceCookie); err == nil && utils.IsValidDeviceID(cookie.Value) {
					deviceID = cookie.Value
				}
			}
			if deviceID == "" {
				deviceID = utils.GenerateDeviceID()
				c.SetCookie(&http.Cookie{
					Name:     constants.DeviceCookie,
					Value:    deviceID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   365 * 24 * 60 * 60,
				})
			}
			c.Response().Header().Set(constants.DeviceHeader, deviceID)
			c.Set(constants.ContextDeviceID, deviceID)
			return next(c)
		}
	}
}

func setTokenData(c echo.Context, claims *utils.TokenClaims) {
	c.Set(constants.ContextTokenData, claims)
	c.SetRequest(c.Request().WithContext(utils.WithTokenData(c.Request().Context(), claims)))
}

func GetTokenData(c echo.Context) (*utils.TokenClaims, bool) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	return claims, ok && claims != nil
}

func GetDeviceID(c echo.Context) string {
	id, _ := c.Get(constants.ContextDeviceID).(string)
	return id
}
