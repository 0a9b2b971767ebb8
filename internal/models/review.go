package models

import "time"

type Review struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProjectID  uint `gorm:"not null;index" json:"project_id"`
	ReviewerID uint `gorm:"not null;index" json:"reviewer_id"`
	ReviewedID uint `gorm:"not null;index" json:"reviewed_id"`

	Rating  float64 `gorm:"type:numeric(3,2);not null;index" json:"rating"`
	Comment string  `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Project  *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Reviewer *User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Reviewed *User    `gorm:"foreignKey:ReviewedID" json:"reviewed,omitempty"`
}
