package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/okovalen/freelance-platform-api/internal/models"
)

type BidHandler struct {
	DB *gorm.DB
}

func NewBidHandler(db *gorm.DB) *BidHandler {
	return &BidHandler{DB: db}
}

type CreateBidReq struct {
	ProjectID    uint    `json:"project_id"`
	FreelancerID uint    `json:"freelancer_id"`
	Amount       float64 `json:"amount"`
	Proposal     string  `json:"proposal"`
	DeliveryDays int     `json:"delivery_days"`
}

func (h *BidHandler) Create(c *fiber.Ctx) error {
	var req CreateBidReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}
	if req.ProjectID == 0 || req.FreelancerID == 0 || req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "project_id, freelancer_id and a positive amount are required",
		})
	}

	var project models.Project
	if err := h.DB.First(&project, "id = ?", req.ProjectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Project not found",
		})
	}
	if project.Status != models.ProjectStatusOpen {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Project is not open for bids",
		})
	}

	b := models.Bid{
		ProjectID:    req.ProjectID,
		FreelancerID: req.FreelancerID,
		Amount:       req.Amount,
		Proposal:     req.Proposal,
		DeliveryDays: req.DeliveryDays,
		Status:       models.BidStatusPending,
	}
	if b.DeliveryDays <= 0 {
		b.DeliveryDays = 7
	}

	if err := h.DB.Create(&b).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create bid",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": b})
}

type UpdateBidStatusReq struct {
	Status string `json:"status"`
}

var validBidStatus = map[models.BidStatus]bool{
	models.BidStatusPending:   true,
	models.BidStatusAccepted:  true,
	models.BidStatusRejected:  true,
	models.BidStatusWithdrawn: true,
}

// UpdateStatus transitions a bid. Accepting a bid is the read-then-write
// case: in one transaction the project row is locked, the bid becomes
// accepted, every other pending bid on the project is rejected, and the
// project is assigned to the bidder and moved to in_progress. This keeps the
// one-accepted-bid-per-project invariant.
func (h *BidHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}

	var req UpdateBidStatusReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	status := models.BidStatus(req.Status)
	if !validBidStatus[status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unknown bid status",
		})
	}

	var bid models.Bid
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bid, "id = ?", id).Error; err != nil {
			return err
		}

		if status != models.BidStatusAccepted {
			return tx.Model(&bid).Update("status", status).Error
		}

		var project models.Project
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&project, "id = ?", bid.ProjectID).Error; err != nil {
			return err
		}
		if project.FreelancerID != nil && *project.FreelancerID != bid.FreelancerID {
			return errors.New("project already has an accepted freelancer")
		}

		if err := tx.Model(&bid).Update("status", models.BidStatusAccepted).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Bid{}).
			Where("project_id = ? AND id <> ? AND status = ?", bid.ProjectID, bid.ID, models.BidStatusPending).
			Update("status", models.BidStatusRejected).Error; err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(&project).Updates(map[string]interface{}{
			"freelancer_id": bid.FreelancerID,
			"status":        models.ProjectStatusInProgress,
			"started_at":    now,
		}).Error
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Bid not found",
			})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": txErr.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": bid})
}
