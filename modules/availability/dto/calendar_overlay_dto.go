package dto

import "time"

// CalendarToLoad identifies one external calendar of a credential.
type CalendarToLoad struct {
	CredentialID int64  `json:"credentialId"`
	ExternalID   string `json:"externalId"`
}

type CalendarOverlayRequest struct {
	LoggedInUsersTz string           `json:"loggedInUsersTz"`
	DateFrom        string           `json:"dateFrom"`
	DateTo          string           `json:"dateTo"`
	CalendarsToLoad []CalendarToLoad `json:"calendarsToLoad"`
}

// BusyTime is one busy interval plus whatever the source attached to it.
type BusyTime struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Title        *string   `json:"title,omitempty"`
	Source       string    `json:"source,omitempty"`
	CredentialID int64     `json:"credentialId,omitempty"`
	ExternalID   string    `json:"externalId,omitempty"`
}

// SelectionInvalidatedPayload is queued when a viewer's overlay selection was dropped.
type SelectionInvalidatedPayload struct {
	UserID   int64  `json:"user_id"`
	DeviceID string `json:"device_id"`
}
