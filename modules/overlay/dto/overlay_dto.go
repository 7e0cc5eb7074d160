package dto

import avdto "booker-api/modules/availability/dto"

// RenderRequest describes the booker page the overlay is shown on.
type RenderRequest struct {
	URL          string `json:"url"`
	SelectedDate string `json:"selected_date"`
	Timezone     string `json:"timezone"`
	Layout       string `json:"layout"`
}

type ToggleRequest struct {
	RenderRequest
	State bool `json:"state"`
}

type SettingsRequest struct {
	RenderRequest
	Open bool `json:"open"`
}

type SelectionRequest struct {
	CredentialID int64  `json:"credentialId"`
	ExternalID   string `json:"externalId"`
}

type ViewResponse struct {
	SwitchChecked      bool               `json:"switch_checked"`
	SwitchVisibleFrom  string             `json:"switch_visible_from"`
	ShowSettingsButton bool               `json:"show_settings_button"`
	ContinuePromptOpen bool               `json:"continue_prompt_open"`
	ContinueURL        string             `json:"continue_url,omitempty"`
	SettingsOpen       bool               `json:"settings_open"`
	ReplaceURL         string             `json:"replace_url,omitempty"`
	Selection          []SelectionRequest `json:"selection"`
	BusyDates          []avdto.BusyTime   `json:"busy_dates"`
}
