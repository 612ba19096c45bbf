package models

// Settings is the per-account flag set persisted as a single JSON
// document in the 'user_settings' table. Written whole on every toggle.
type Settings struct {
	Notifications bool `json:"notifications"`
	DarkMode      bool `json:"darkMode"`
	AutoSync      bool `json:"autoSync"`
	Biometrics    bool `json:"biometrics"`
	Analytics     bool `json:"analytics"`
}

// DefaultSettings returns the flag values used before a user has ever
// saved settings.
func DefaultSettings() Settings {
	return Settings{
		Notifications: true,
		DarkMode:      true,
		AutoSync:      true,
		Biometrics:    false,
		Analytics:     true,
	}
}
