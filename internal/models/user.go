package models

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBanned   UserStatus = "banned"
)

// User is the central entity of the platform. Rating and TotalProjects are
// derived fields: rating is recomputed from received reviews by the rating
// service, total_projects is maintained by the project-insert trigger.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	Email string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`

	Password string     `gorm:"not null" json:"-"`
	Role     Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	Status   UserStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	City    *string `gorm:"type:varchar(50)" json:"city,omitempty"`
	Country *string `gorm:"type:varchar(50)" json:"country,omitempty"`
	Bio     string  `gorm:"type:text" json:"bio"`

	HourlyRate float64        `gorm:"type:numeric(8,2);default:0" json:"hourly_rate"`
	Skills     datatypes.JSON `json:"skills,omitempty"`

	Rating        float64 `gorm:"type:numeric(3,2);default:0" json:"rating"`
	TotalProjects int     `gorm:"default:0" json:"total_projects"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientProjects     []Project `gorm:"foreignKey:ClientID" json:"client_projects,omitempty"`
	FreelancerProjects []Project `gorm:"foreignKey:FreelancerID" json:"freelancer_projects,omitempty"`
	Bids               []Bid     `gorm:"foreignKey:FreelancerID" json:"bids,omitempty"`
	ReceivedReviews    []Review  `gorm:"foreignKey:ReviewedID" json:"received_reviews,omitempty"`
}
