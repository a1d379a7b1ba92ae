package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Fullname     string    `json:"fullname" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	RefreshToken *string   `json:"-"`
	AvatarKey    *string   `json:"avatarKey"`
	CoverKey     *string   `json:"coverKey"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
