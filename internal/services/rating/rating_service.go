// Package rating recomputes a user's aggregate rating from their received
// reviews. This is the only read-then-write path in the system, so the whole
// recompute runs in one transaction with the target row locked.
package rating

import (
	"errors"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/okovalen/freelance-platform-api/internal/apperrors"
	"github.com/okovalen/freelance-platform-api/internal/models"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

type Result struct {
	UserID      uint    `json:"userId"`
	Rating      float64 `json:"newRating"`
	ReviewCount int64   `json:"reviewCount"`
}

// Recompute reads the average and count of reviews received by the user and
// writes the average into users.rating, all in one transaction. The FOR
// UPDATE lock on the user row serializes concurrent recomputes for the same
// user; different users proceed independently. Any failure rolls the whole
// unit back and leaves the stored rating untouched.
func (s *Service) Recompute(userID uint) (*Result, error) {
	var res Result

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return err
		}

		var agg struct {
			AvgRating   float64
			ReviewCount int64
		}
		if err := tx.Raw(`
			SELECT COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS review_count
			FROM reviews
			WHERE reviewed_id = ?
		`, userID).Scan(&agg).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("rating", agg.AvgRating).Error; err != nil {
			return err
		}

		res = Result{
			UserID:      userID,
			Rating:      math.Round(agg.AvgRating*100) / 100,
			ReviewCount: agg.ReviewCount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &res, nil
}
