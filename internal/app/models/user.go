package models

import (
	"time"
)

// User defines the account model based on the 'users' table. The profile
// fields on this struct (FullName, Phone, Bio, AvatarURL) are the
// account-metadata copy of the user profile; a second copy lives in the
// 'profiles' table and the two are reconciled on read with metadata
// taking precedence.
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"user@example.com"`
	Password    string     `json:"-" db:"password"` // Hashed, excluded from JSON
	FullName    string     `json:"fullName" db:"full_name" example:"Ana García"`
	Phone       *string    `json:"phone,omitempty" db:"phone"`
	Bio         *string    `json:"bio,omitempty" db:"bio"`
	AvatarURL   *string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// Profile defines the redundant profile record in the 'profiles' table,
// kept in sync with user metadata via upsert on every profile update.
type Profile struct {
	UserID    int64     `json:"userId" db:"user_id"`
	FullName  string    `json:"fullName" db:"full_name"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
