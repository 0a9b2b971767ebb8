package models

import "time"

type BidStatus string

const (
	BidStatusPending   BidStatus = "pending"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusRejected  BidStatus = "rejected"
	BidStatusWithdrawn BidStatus = "withdrawn"
)

// Bid is a freelancer's offer on a project. At most one bid per project is
// ever accepted; the accepted freelancer equals Project.FreelancerID.
type Bid struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	ProjectID    uint `gorm:"not null;index" json:"project_id"`
	FreelancerID uint `gorm:"not null;index" json:"freelancer_id"`

	Amount       float64 `gorm:"type:numeric(10,2);not null;index" json:"amount"`
	Proposal     string  `gorm:"type:text" json:"proposal"`
	DeliveryDays int     `gorm:"not null;default:7" json:"delivery_days"`

	Status BidStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Project    *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Freelancer *User    `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}
