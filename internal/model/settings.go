package model

import "time"

// Settings is the singleton application settings row. There is exactly one
// record, keyed by a fixed id, created lazily on first read.
type Settings struct {
	ID        string    // settings.id, always "settings"
	LogoURL   string    // settings.logo_url
	UserImage string    // settings.user_image
	UpdatedAt time.Time // settings.updated_at
}

// SettingsID is the fixed primary key of the singleton settings row.
const SettingsID = "settings"
