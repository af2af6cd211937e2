package models

import "time"

type Role string

const (
	RoleVolunteer Role = "volunteer"
	RoleNonProfit Role = "non-profit"
)

// UserProfile holds what a user tells others about themselves. ID is the identity provider's uid.
type UserProfile struct {
	ID           string    `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email        string    `json:"email,omitempty" db:"email" gorm:"type:text"`
	AvatarURL    string    `json:"avatarUrl,omitempty" db:"avatar_url" gorm:"type:text"`
	Role         Role      `json:"role" db:"role" gorm:"type:text;not null;default:'volunteer';index:idx_user_profile_role"`
	Tagline      string    `json:"tagline,omitempty" db:"tagline" gorm:"type:text"`
	Experience   string    `json:"experience,omitempty" db:"experience" gorm:"type:text"`
	Availability string    `json:"availability,omitempty" db:"availability" gorm:"type:text"`
	Skills       []string  `json:"skills" db:"skills" gorm:"type:jsonb;serializer:json"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}
