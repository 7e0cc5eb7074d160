package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"booker-api/core/constants"
	"booker-api/core/errors"
	"booker-api/core/utils"
	"booker-api/modules/availability/dto"
	"booker-api/modules/availability/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type availabilityServiceStub struct {
	userID int64
	req    dto.CalendarOverlayRequest
}

func (s *availabilityServiceStub) CalendarOverlay(_ context.Context, userID int64, req dto.CalendarOverlayRequest) ([]dto.BusyTime, *errors.AppError) {
	s.userID = userID
	s.req = req
	if len(req.CalendarsToLoad) > 0 && req.CalendarsToLoad[0].CredentialID == 99 {
		return nil, errors.NewAppError(errors.ErrUnauthorized, service.MsgCredentialsNotOwned, nil)
	}
	return []dto.BusyTime{}, nil
}

func TestCalendarOverlay(t *testing.T) {
	run := func(body string) (*availabilityServiceStub, *httptest.ResponseRecorder) {
		stub := &availabilityServiceStub{}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.Set(constants.ContextTokenData, &utils.TokenClaims{UserID: 7})

		require.NoError(t, NewAvailabilityController(stub).CalendarOverlay(c))
		return stub, rec
	}

	stub, rec := run(`{"loggedInUsersTz":"Europe/Berlin","dateFrom":"2024-03-10","dateTo":"2024-03-10","calendarsToLoad":[{"credentialId":1,"externalId":"primary"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(7), stub.userID)
	require.Equal(t, "Europe/Berlin", stub.req.LoggedInUsersTz)
	require.Equal(t, []dto.CalendarToLoad{{CredentialID: 1, ExternalID: "primary"}}, stub.req.CalendarsToLoad)

	_, rec = run(`{"loggedInUsersTz":"UTC","dateFrom":"2024-03-10","dateTo":"2024-03-10","calendarsToLoad":[{"credentialId":99,"externalId":"x"}]}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), service.MsgCredentialsNotOwned)
}
