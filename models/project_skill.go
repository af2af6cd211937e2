package models

import "github.com/google/uuid"

// ProjectSkill is one required skill of a project. Position keeps the creator's order for display.
type ProjectSkill struct {
	ID        uuid.UUID `json:"-" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID `json:"-" db:"project_id" gorm:"type:uuid;not null;index:idx_project_skill_project_id;uniqueIndex:idx_project_skill_unique"`
	Value     string    `json:"value" db:"value" gorm:"type:text;not null;uniqueIndex:idx_project_skill_unique"`
	Position  int       `json:"-" db:"position" gorm:"type:integer;not null;default:0"`
}
