package dto

type ContinueURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}
