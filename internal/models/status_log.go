package models

import "time"

// project_status_log and bid_status_log are append-only audit tables created
// by the schema provisioner; rows are inserted by database triggers whenever
// a status column actually changes value. The application only reads them.

type ProjectStatusLog struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ProjectID uint          `json:"project_id"`
	OldStatus ProjectStatus `json:"old_status"`
	NewStatus ProjectStatus `json:"new_status"`
	ChangedAt time.Time     `json:"changed_at"`
}

func (ProjectStatusLog) TableName() string { return "project_status_log" }

type BidStatusLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BidID     uint      `json:"bid_id"`
	OldStatus BidStatus `json:"old_status"`
	NewStatus BidStatus `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

func (BidStatusLog) TableName() string { return "bid_status_log" }
