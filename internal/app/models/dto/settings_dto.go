package dto

import "github.com/edusync/edusync/internal/app/models"

// UpdateSettingsRequest represents a settings update. Absent fields keep
// their stored values.
type UpdateSettingsRequest struct {
	Notifications *bool `json:"notifications,omitempty"`
	DarkMode      *bool `json:"darkMode,omitempty"`
	AutoSync      *bool `json:"autoSync,omitempty"`
	Biometrics    *bool `json:"biometrics,omitempty"`
	Analytics     *bool `json:"analytics,omitempty"`
}

// ApplyTo merges the request onto an existing settings value
func (r *UpdateSettingsRequest) ApplyTo(s *models.Settings) {
	if r.Notifications != nil {
		s.Notifications = *r.Notifications
	}
	if r.DarkMode != nil {
		s.DarkMode = *r.DarkMode
	}
	if r.AutoSync != nil {
		s.AutoSync = *r.AutoSync
	}
	if r.Biometrics != nil {
		s.Biometrics = *r.Biometrics
	}
	if r.Analytics != nil {
		s.Analytics = *r.Analytics
	}
}

// SettingsResponse represents per-account application settings
type SettingsResponse struct {
	Notifications bool `json:"notifications"`
	DarkMode      bool `json:"darkMode"`
	AutoSync      bool `json:"autoSync"`
	Biometrics    bool `json:"biometrics"`
	Analytics     bool `json:"analytics"`
}

// ToSettingsResponse converts the model into its response form
func ToSettingsResponse(s models.Settings) SettingsResponse {
	return SettingsResponse{
		Notifications: s.Notifications,
		DarkMode:      s.DarkMode,
		AutoSync:      s.AutoSync,
		Biometrics:    s.Biometrics,
		Analytics:     s.Analytics,
	}
}
