package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const ApplicationApplied ApplicationStatus = "applied"

// Application links one volunteer to one project they selected. Rows are only ever created.
type Application struct {
	ID          uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID   uuid.UUID         `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index:idx_application_project_id;uniqueIndex:idx_application_unique"`
	VolunteerID string            `json:"volunteerId" db:"volunteer_id" gorm:"type:text;not null;index:idx_application_volunteer_id;uniqueIndex:idx_application_unique"`
	Status      ApplicationStatus `json:"status" db:"status" gorm:"type:text;not null;default:'applied'"`
	AppliedAt   time.Time         `json:"appliedAt" db:"applied_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`

	Project *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
