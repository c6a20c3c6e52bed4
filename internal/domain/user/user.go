package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name  string    `gorm:"not null;column:name" json:"name"`

	// Nil for accounts that only sign in through an external identity provider.
	PasswordHash    *string    `gorm:"column:password_hash" json:"-"`
	EmailVerifiedAt *time.Time `gorm:"column:email_verified_at" json:"emailVerifiedAt"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "user" }

func (u *User) Verified() bool {
	return u != nil && u.EmailVerifiedAt != nil
}

// Summary is the public view of a user returned by the API.
type Summary struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
	}
}
