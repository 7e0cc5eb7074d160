package service

import (
	"context"
	"strings"
	"time"

	"booker-api/core/constants"
	"booker-api/core/errors"
	"booker-api/core/logger"
	"booker-api/modules/availability/dto"
	"booker-api/modules/availability/repository"
)

const (
	dateLayout = "2006-01-02"

	MsgCredentialsNotOwned = "Unauthorized - These credentials do not belong to you"
)

type AvailabilityService interface {
	// CalendarOverlay returns the busy intervals of the requested calendars between the start of
	// dateFrom and the end of dateTo, both taken in loggedInUsersTz.
	CalendarOverlay(ctx context.Context, userID int64, req dto.CalendarOverlayRequest) ([]dto.BusyTime, *errors.AppError)
}

type availabilityService struct {
	repo repository.AvailabilityRepository
}

func NewAvailabilityService(repo repository.AvailabilityRepository) AvailabilityService {
	return &availabilityService{repo: repo}
}

func (s *availabilityService) CalendarOverlay(ctx context.Context, userID int64, req dto.CalendarOverlayRequest) ([]dto.BusyTime, *errors.AppError) {
	if len(req.CalendarsToLoad) == 0 {
		return []dto.BusyTime{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	loc, err := time.LoadLocation(strings.TrimSpace(req.LoggedInUsersTz))
	if err != nil || req.LoggedInUsersTz == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid loggedInUsersTz", err)
	}
	from, err := parseDay(req.DateFrom, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid dateFrom", err)
	}
	to, err := parseDay(req.DateTo, loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid dateTo", err)
	}
	if to.Before(from) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "dateTo is before dateFrom", nil)
	}
	// end of dateTo, exclusive
	to = to.AddDate(0, 0, 1)

	credentialIDs := distinctCredentialIDs(req.CalendarsToLoad)
	owned, err := s.repo.FindOwnedCredentials(ctx, userID, credentialIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "load credentials failed", err)
	}
	if len(owned) != len(credentialIDs) {
		logger.Warn("AvailabilityService:CalendarOverlay:CredentialsNotOwned",
			"user_id", userID,
			"requested", len(credentialIDs),
			"owned", len(owned),
		)
		return nil, errors.NewAppError(errors.ErrUnauthorized, MsgCredentialsNotOwned, nil)
	}

	rows, err := s.repo.FindBusyTimes(ctx, req.CalendarsToLoad, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "load busy times failed", err)
	}

	busy := make([]dto.BusyTime, 0, len(rows))
	for _, row := range rows {
		busy = append(busy, dto.BusyTime{
			Start:        row.StartTime.In(loc),
			End:          row.EndTime.In(loc),
			Title:        row.Title,
			Source:       row.Source,
			CredentialID: row.CredentialID,
			ExternalID:   row.ExternalID,
		})
	}

	logger.Info("AvailabilityService:CalendarOverlay:Success",
		"user_id", userID,
		"calendars", len(req.CalendarsToLoad),
		"busy", len(busy),
	)
	return busy, nil
}

// parseDay reads a calendar day. Full timestamps are accepted and reduced to their day in loc.
func parseDay(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

func distinctCredentialIDs(calendars []dto.CalendarToLoad) []int64 {
	seen := make(map[int64]struct{}, len(calendars))
	ids := make([]int64, 0, len(calendars))
	for _, cal := range calendars {
		if _, ok := seen[cal.CredentialID]; ok {
			continue
		}
		seen[cal.CredentialID] = struct{}{}
		ids = append(ids, cal.CredentialID)
	}
	return ids
}
