package service

import (
	"time"

	"booker-api/core/constants"
	"booker-api/core/logger"
	"booker-api/modules/availability/dto"
)

// LoadViewerLocation resolves the viewer's zone name, falling back to Europe/London and then UTC.
func LoadViewerLocation(name string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		logger.Warn("Overlay:LoadViewerLocation:UnknownZone", "timezone", name)
	}
	if loc, err := time.LoadLocation(constants.OverlayDefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// OffsetBetween is the viewer zone's UTC offset minus the local zone's, both taken at now.
// It changes across DST transitions, so callers compute it per use.
func OffsetBetween(now time.Time, viewer, local *time.Location) time.Duration {
	_, viewerOff := now.In(viewer).Zone()
	_, localOff := now.In(local).Zone()
	return time.Duration(viewerOff-localOff) * time.Second
}

// ShiftBusyTimes moves every interval by offset and keeps the rest of each record.
func ShiftBusyTimes(busy []dto.BusyTime, offset time.Duration) []dto.BusyTime {
	out := make([]dto.BusyTime, len(busy))
	for i, b := range busy {
		b.Start = b.Start.Add(offset)
		b.End = b.End.Add(offset)
		out[i] = b
	}
	return out
}
