package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"

	// StatusAll is a filter sentinel, never stored on a project.
	StatusAll Status = "All"
)

// Valid reports whether s is a storable project status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Project represents a volunteer opportunity posted by a non-profit
type Project struct {
	ID               uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title            string         `json:"title" db:"title" gorm:"type:text;not null"`
	Description      string         `json:"description" db:"description" gorm:"type:text;not null"`
	TimeCommitment   string         `json:"timeCommitment" db:"time_commitment" gorm:"type:text;not null"`
	CreatorID        string         `json:"creatorId" db:"creator_id" gorm:"type:text;not null;index:idx_project_creator_id"`
	CreatorName      string         `json:"creatorName" db:"creator_name" gorm:"type:text;not null"`
	CreatorAvatarURL string         `json:"creatorAvatarUrl,omitempty" db:"creator_avatar_url" gorm:"type:text"`
	Status           Status         `json:"status" db:"status" gorm:"type:text;not null;default:'Open';index:idx_project_status"`
	CreatedAt        time.Time      `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	Skills           []ProjectSkill `json:"skills,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// SkillNames returns the project's required skills in display order.
func (p Project) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Value)
	}
	return names
}
