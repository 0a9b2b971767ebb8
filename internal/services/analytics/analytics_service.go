// Package analytics holds the fixed set of reporting queries over the
// platform's entities. Every report is read-only and returns plain row
// structs; zero qualifying rows mean an empty slice, never an error.
package analytics

import "gorm.io/gorm"

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}
