package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	ProfileRepository  *ProfileRepository
	StudentRepository  *StudentRepository
	ActivityRepository *ActivityRepository
	SettingsRepository *SettingsRepository
	TokenRepository    *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		ProfileRepository:  NewProfileRepository(db),
		StudentRepository:  NewStudentRepository(db),
		ActivityRepository: NewActivityRepository(db),
		SettingsRepository: NewSettingsRepository(db),
		TokenRepository:    NewTokenRepository(db),
	}
}
