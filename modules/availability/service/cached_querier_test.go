package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"booker-api/core/cache"
	apperrors "booker-api/core/errors"
	"booker-api/modules/availability/dto"

	"github.com/stretchr/testify/require"
)

type availabilityServiceStub struct {
	calls     atomic.Int32
	cancelled atomic.Bool
	release   chan struct{}
	err       *apperrors.AppError
}

func (s *availabilityServiceStub) CalendarOverlay(ctx context.Context, _ int64, req dto.CalendarOverlayRequest) ([]dto.BusyTime, *apperrors.AppError) {
	s.calls.Add(1)
	if s.release != nil {
		<-s.release
	}
	if ctx.Err() != nil {
		s.cancelled.Store(true)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "request cancelled", ctx.Err())
	}
	if s.err != nil {
		return nil, s.err
	}
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	return []dto.BusyTime{{Start: start, End: start.Add(time.Hour), ExternalID: req.CalendarsToLoad[0].ExternalID}}, nil
}

func querierRequest(externalID string) dto.CalendarOverlayRequest {
	return dto.CalendarOverlayRequest{
		LoggedInUsersTz: "Europe/London",
		DateFrom:        "2024-03-10",
		DateTo:          "2024-03-10",
		CalendarsToLoad: []dto.CalendarToLoad{{CredentialID: 1, ExternalID: externalID}},
	}
}

func TestCachedQuerier(t *testing.T) {
	ctx := context.Background()

	t.Run("caches by input tuple", func(t *testing.T) {
		svc := &availabilityServiceStub{}
		q := NewCachedQuerier(svc, cache.NewMemoryCache(), time.Minute)

		first, err := q.CalendarOverlay(ctx, 7, querierRequest("a"))
		require.NoError(t, err)
		second, err := q.CalendarOverlay(ctx, 7, querierRequest("a"))
		require.NoError(t, err)
		require.Equal(t, int32(1), svc.calls.Load())
		require.True(t, first[0].Start.Equal(second[0].Start))

		_, err = q.CalendarOverlay(ctx, 7, querierRequest("b"))
		require.NoError(t, err)
		_, err = q.CalendarOverlay(ctx, 8, querierRequest("a"))
		require.NoError(t, err)
		require.Equal(t, int32(3), svc.calls.Load())
	})

	t.Run("concurrent identical requests share one call", func(t *testing.T) {
		svc := &availabilityServiceStub{release: make(chan struct{})}
		q := NewCachedQuerier(svc, cache.NewMemoryCache(), time.Minute)

		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = q.CalendarOverlay(ctx, 7, querierRequest("a"))
			}(i)
		}
		require.Eventually(t, func() bool { return svc.calls.Load() == 1 }, time.Second, time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		close(svc.release)
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}
		require.Equal(t, int32(1), svc.calls.Load())
	})

	t.Run("cancelled caller does not fail the shared call", func(t *testing.T) {
		svc := &availabilityServiceStub{release: make(chan struct{})}
		q := NewCachedQuerier(svc, cache.NewMemoryCache(), time.Minute)

		callerCtx, cancel := context.WithCancel(ctx)
		first := make(chan error, 1)
		go func() {
			_, err := q.CalendarOverlay(callerCtx, 7, querierRequest("a"))
			first <- err
		}()
		require.Eventually(t, func() bool { return svc.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

		second := make(chan error, 1)
		go func() {
			_, err := q.CalendarOverlay(ctx, 7, querierRequest("a"))
			second <- err
		}()
		time.Sleep(20 * time.Millisecond)
		cancel()
		close(svc.release)

		require.NoError(t, <-first)
		require.NoError(t, <-second)
		require.False(t, svc.cancelled.Load())
		require.Equal(t, int32(1), svc.calls.Load())
	})

	t.Run("failures are not cached", func(t *testing.T) {
		svc := &availabilityServiceStub{err: apperrors.NewAppError(apperrors.ErrUnauthorized, MsgCredentialsNotOwned, nil)}
		q := NewCachedQuerier(svc, cache.NewMemoryCache(), time.Minute)

		_, err := q.CalendarOverlay(ctx, 7, querierRequest("a"))
		require.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))
		_, err = q.CalendarOverlay(ctx, 7, querierRequest("a"))
		require.Error(t, err)
		require.Equal(t, int32(2), svc.calls.Load())
	})

	t.Run("invalidate user", func(t *testing.T) {
		svc := &availabilityServiceStub{}
		q := NewCachedQuerier(svc, cache.NewMemoryCache(), time.Minute)

		_, _ = q.CalendarOverlay(ctx, 7, querierRequest("a"))
		_, _ = q.CalendarOverlay(ctx, 8, querierRequest("a"))
		require.NoError(t, q.InvalidateUser(ctx, 7))

		_, _ = q.CalendarOverlay(ctx, 7, querierRequest("a"))
		_, _ = q.CalendarOverlay(ctx, 8, querierRequest("a"))
		require.Equal(t, int32(3), svc.calls.Load())
	})
}

func TestSelectionInvalidatedHandler(t *testing.T) {
	ctx := context.Background()
	svc := &availabilityServiceStub{}
	q := NewCachedQuerier(svc, cache.NewMemoryCache(), time.Minute)
	handler := SelectionInvalidatedHandler(q)

	_, _ = q.CalendarOverlay(ctx, 7, querierRequest("a"))

	payload, err := json.Marshal(dto.SelectionInvalidatedPayload{UserID: 7, DeviceID: "device-1"})
	require.NoError(t, err)
	require.NoError(t, handler(ctx, payload))

	_, _ = q.CalendarOverlay(ctx, 7, querierRequest("a"))
	require.Equal(t, int32(2), svc.calls.Load())

	require.Error(t, handler(ctx, []byte("{")))
	require.NoError(t, handler(ctx, []byte(`{"device_id":"x"}`)))
}
