package dto

import "time"

// UpdateProfileRequest represents profile update data. The same values are
// written to the account record and the profiles table.
type UpdateProfileRequest struct {
	FullName string  `json:"fullName" binding:"required"`
	Phone    *string `json:"phone,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

// UploadAvatarRequest carries an avatar image as a base64 payload, the way
// the mobile clients send it. Data may include a data URL prefix.
type UploadAvatarRequest struct {
	Data string `json:"data" binding:"required"`
}

// ProfileResponse represents the merged profile view for the signed-in user
type ProfileResponse struct {
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     *string   `json:"phone,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AvatarResponse returns the stored avatar location
type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}
