package models

// Preferences are the per-client display settings.
type Preferences struct {
	DarkMode bool   `json:"dark_mode"`
	Language string `json:"language"`
}
