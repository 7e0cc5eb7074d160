package constants

import "time"

const (
	DefaultTimeout        = 10 * time.Second
	DefaultRequestTimeout = 5 * time.Second

	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes

	ContextTokenData = "token_data"
	ContextDeviceID  = "device_id"

	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Overlay calendar
const (
	OverlayQueryParam      = "overlayCalendar"
	OverlayQueryValue      = "true"
	OverlayStorageKey      = "toggledConnectedCalendars"
	OverlayGateStorageKey  = "overlayCalendarGate"
	OverlayDefaultTimezone = "Europe/London"
	OverlayCacheTTL        = 60 * time.Second
	OverlayBusyStateTTL    = 30 * time.Minute

	DeviceHeader = "X-Device-ID"
	DeviceCookie = "booker_device"
)
