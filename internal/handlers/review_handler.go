package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/okovalen/freelance-platform-api/internal/models"
	"github.com/okovalen/freelance-platform-api/internal/queue"
	"github.com/okovalen/freelance-platform-api/internal/services/rating"
)

type ReviewHandler struct {
	DB        *gorm.DB
	Ratings   *rating.Service
	Publisher *queue.Publisher
}

func NewReviewHandler(db *gorm.DB, r *rating.Service, p *queue.Publisher) *ReviewHandler {
	return &ReviewHandler{DB: db, Ratings: r, Publisher: p}
}

type CreateReviewReq struct {
	ProjectID  uint    `json:"project_id"`
	ReviewerID uint    `json:"reviewer_id"`
	ReviewedID uint    `json:"reviewed_id"`
	Rating     float64 `json:"rating"`
	Comment    string  `json:"comment"`
}

// Create stores a review and emits a review-created event so the reviewed
// user's aggregate rating gets recomputed. Without a broker the recompute
// runs inline instead.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req CreateReviewReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}
	if req.ProjectID == 0 || req.ReviewerID == 0 || req.ReviewedID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "project_id, reviewer_id and reviewed_id are required",
		})
	}
	if req.Rating < 0 || req.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Rating must be between 0 and 5",
		})
	}

	var project models.Project
	if err := h.DB.First(&project, "id = ?", req.ProjectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Project not found",
		})
	}

	r := models.Review{
		ProjectID:  req.ProjectID,
		ReviewerID: req.ReviewerID,
		ReviewedID: req.ReviewedID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := h.DB.Create(&r).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create review",
		})
	}

	if h.Publisher != nil {
		ev := queue.ReviewCreatedEvent{
			ReviewID:   r.ID,
			ProjectID:  r.ProjectID,
			ReviewerID: r.ReviewerID,
			ReviewedID: r.ReviewedID,
			Rating:     r.Rating,
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		}
		if err := h.Publisher.PublishReviewCreated(c.UserContext(), ev); err != nil {
			log.Printf("[reviews] publish failed, recomputing inline: %v", err)
			h.recomputeInline(r.ReviewedID)
		}
	} else {
		h.recomputeInline(r.ReviewedID)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": r})
}

func (h *ReviewHandler) recomputeInline(userID uint) {
	if _, err := h.Ratings.Recompute(userID); err != nil {
		log.Printf("[reviews] rating recompute for user %d failed: %v", userID, err)
	}
}

// ForUser lists reviews received by a user, newest first.
func (h *ReviewHandler) ForUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}

	reviews := make([]models.Review, 0)
	if err := h.DB.
		Where("reviewed_id = ?", id).
		Order("created_at DESC").
		Limit(50).
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch reviews",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": reviews})
}
