package service

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "booker-api/core/errors"
	"booker-api/modules/availability/dto"
	"booker-api/modules/availability/entity"

	"github.com/stretchr/testify/require"
)

type availabilityRepoStub struct {
	owned     map[int64]int64 // credential id -> owner
	busy      []entity.BusyTime
	err       error
	calls     int
	from, to  time.Time
	requested []int64
}

func (s *availabilityRepoStub) FindOwnedCredentials(_ context.Context, userID int64, ids []int64) ([]entity.Credential, error) {
	s.calls++
	s.requested = ids
	if s.err != nil {
		return nil, s.err
	}
	var out []entity.Credential
	for _, id := range ids {
		if owner, ok := s.owned[id]; ok && owner == userID {
			c := entity.Credential{UserID: owner}
			c.ID = id
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *availabilityRepoStub) FindBusyTimes(_ context.Context, _ []dto.CalendarToLoad, from, to time.Time) ([]entity.BusyTime, error) {
	s.calls++
	s.from, s.to = from, to
	return s.busy, nil
}

func overlayRequest(calendars ...dto.CalendarToLoad) dto.CalendarOverlayRequest {
	return dto.CalendarOverlayRequest{
		LoggedInUsersTz: "Asia/Kolkata",
		DateFrom:        "2024-03-10",
		DateTo:          "2024-03-10",
		CalendarsToLoad: calendars,
	}
}

func TestCalendarOverlay(t *testing.T) {
	ctx := context.Background()
	a := dto.CalendarToLoad{CredentialID: 1, ExternalID: "primary"}
	b := dto.CalendarToLoad{CredentialID: 1, ExternalID: "work"}
	foreign := dto.CalendarToLoad{CredentialID: 2, ExternalID: "other"}

	t.Run("empty selection touches nothing", func(t *testing.T) {
		repo := &availabilityRepoStub{}
		busy, appErr := NewAvailabilityService(repo).CalendarOverlay(ctx, 7, overlayRequest())
		require.Nil(t, appErr)
		require.Empty(t, busy)
		require.NotNil(t, busy)
		require.Zero(t, repo.calls)
	})

	t.Run("foreign credential", func(t *testing.T) {
		repo := &availabilityRepoStub{owned: map[int64]int64{1: 7, 2: 8}}
		_, appErr := NewAvailabilityService(repo).CalendarOverlay(ctx, 7, overlayRequest(a, foreign))
		require.NotNil(t, appErr)
		require.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
		require.Equal(t, 401, appErr.HTTPStatus())
		require.Equal(t, MsgCredentialsNotOwned, appErr.Message)
	})

	t.Run("range and rendering in viewer zone", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
		repo := &availabilityRepoStub{
			owned: map[int64]int64{1: 7},
			busy: []entity.BusyTime{
				{CredentialID: 1, ExternalID: "primary", StartTime: start, EndTime: start.Add(time.Hour), Source: "google"},
			},
		}

		busy, appErr := NewAvailabilityService(repo).CalendarOverlay(ctx, 7, overlayRequest(a, b))
		require.Nil(t, appErr)
		require.Equal(t, []int64{1}, repo.requested)

		kolkata, err := time.LoadLocation("Asia/Kolkata")
		require.NoError(t, err)
		require.True(t, time.Date(2024, 3, 10, 0, 0, 0, 0, kolkata).Equal(repo.from))
		require.True(t, time.Date(2024, 3, 11, 0, 0, 0, 0, kolkata).Equal(repo.to))

		require.Len(t, busy, 1)
		require.True(t, busy[0].Start.Equal(start))
		require.Equal(t, "Asia/Kolkata", busy[0].Start.Location().String())
		require.Equal(t, 14, busy[0].Start.Hour())
		require.Equal(t, 30, busy[0].Start.Minute())
		require.Equal(t, "google", busy[0].Source)
	})

	t.Run("invalid input", func(t *testing.T) {
		repo := &availabilityRepoStub{owned: map[int64]int64{1: 7}}
		svc := NewAvailabilityService(repo)

		req := overlayRequest(a)
		req.LoggedInUsersTz = "Mars/Olympus"
		_, appErr := svc.CalendarOverlay(ctx, 7, req)
		require.Equal(t, apperrors.ErrInvalidInput, appErr.Code)

		req = overlayRequest(a)
		req.DateFrom = "10/03/2024"
		_, appErr = svc.CalendarOverlay(ctx, 7, req)
		require.Equal(t, apperrors.ErrInvalidInput, appErr.Code)

		req = overlayRequest(a)
		req.DateTo = "2024-03-09"
		_, appErr = svc.CalendarOverlay(ctx, 7, req)
		require.Equal(t, apperrors.ErrInvalidInput, appErr.Code)
	})

	t.Run("timestamp dates are reduced to their day", func(t *testing.T) {
		repo := &availabilityRepoStub{owned: map[int64]int64{1: 7}}
		req := overlayRequest(a)
		req.DateFrom = "2024-03-10T20:00:00Z"
		req.DateTo = "2024-03-10T20:00:00Z"

		_, appErr := NewAvailabilityService(repo).CalendarOverlay(ctx, 7, req)
		require.Nil(t, appErr)

		kolkata, _ := time.LoadLocation("Asia/Kolkata")
		require.True(t, time.Date(2024, 3, 11, 0, 0, 0, 0, kolkata).Equal(repo.from))
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &availabilityRepoStub{err: errors.New("db down")}
		_, appErr := NewAvailabilityService(repo).CalendarOverlay(ctx, 7, overlayRequest(a))
		require.Equal(t, apperrors.ErrInternalServer, appErr.Code)
	})
}
