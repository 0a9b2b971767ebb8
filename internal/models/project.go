package models

import (
	"time"

	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

type ProjectType string

const (
	ProjectTypeFixed  ProjectType = "fixed"
	ProjectTypeHourly ProjectType = "hourly"
)

type Project struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"type:varchar(200);not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	ProjectType ProjectType `gorm:"type:varchar(10);not null;index" json:"project_type"`

	Budget         float64        `gorm:"type:numeric(10,2);not null;index" json:"budget"`
	RequiredSkills datatypes.JSON `json:"required_skills,omitempty"`

	Status   ProjectStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Deadline *time.Time    `json:"deadline,omitempty"`

	ClientID     uint  `gorm:"not null;index" json:"client_id"`
	FreelancerID *uint `gorm:"index" json:"freelancer_id,omitempty"`

	// StartedAt is set once the project leaves open, CompletedAt only on completed.
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client     *User    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Freelancer *User    `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Bids       []Bid    `gorm:"foreignKey:ProjectID" json:"bids,omitempty"`
	Reviews    []Review `gorm:"foreignKey:ProjectID" json:"reviews,omitempty"`
}
