package analytics

import (
	"fmt"
	"time"

	"github.com/okovalen/freelance-platform-api/internal/models"
)

type PerformanceComparison struct {
	WithoutIndex string `json:"withoutIndex"`
	WithIndex    string `json:"withIndex"`
	Improvement  string `json:"improvement"`
}

// ComparePerformance times the same style of read on an unindexed predicate
// (substring over bio) against an indexed one (equality on role) and reports
// both durations. Purely observational.
func (s *Service) ComparePerformance() (*PerformanceComparison, error) {
	var sink []models.User

	start := time.Now()
	if err := s.DB.Raw(`
		SELECT * FROM users WHERE bio ILIKE '%experience%' ORDER BY created_at DESC LIMIT 100
	`).Scan(&sink).Error; err != nil {
		return nil, err
	}
	withoutIndex := time.Since(start)

	sink = sink[:0]
	start = time.Now()
	if err := s.DB.Raw(`
		SELECT * FROM users WHERE role = 'freelancer' ORDER BY created_at DESC LIMIT 100
	`).Scan(&sink).Error; err != nil {
		return nil, err
	}
	withIndex := time.Since(start)

	improvement := "no improvement"
	if withoutIndex > withIndex && withIndex > 0 {
		improvement = fmt.Sprintf("%.2fx", float64(withoutIndex)/float64(withIndex))
	}

	return &PerformanceComparison{
		WithoutIndex: fmt.Sprintf("%dms", withoutIndex.Milliseconds()),
		WithIndex:    fmt.Sprintf("%dms", withIndex.Milliseconds()),
		Improvement:  improvement,
	}, nil
}
