package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/okovalen/freelance-platform-api/internal/apperrors"
	"github.com/okovalen/freelance-platform-api/internal/models"
	"github.com/okovalen/freelance-platform-api/internal/services/listing"
	"github.com/okovalen/freelance-platform-api/internal/services/rating"
)

type UserHandler struct {
	DB      *gorm.DB
	Listing *listing.Service
	Ratings *rating.Service
}

func NewUserHandler(db *gorm.DB, l *listing.Service, r *rating.Service) *UserHandler {
	return &UserHandler{DB: db, Listing: l, Ratings: r}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, apperrors.ErrInvalidInput
	}
	return uint(id), nil
}

// List handles GET /users with the full filter/sort/pagination surface.
func (h *UserHandler) List(c *fiber.Ctx) error {
	var q listing.UserQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid query parameters",
		})
	}

	res, err := h.Listing.ListUsers(q)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidSort) || errors.Is(err, apperrors.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to list users",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       res.Data,
		"pagination": res.Pagination,
	})
}

type CreateUserReq struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Role       string   `json:"role"`
	City       *string  `json:"city"`
	Country    *string  `json:"country"`
	Bio        string   `json:"bio"`
	HourlyRate float64  `json:"hourly_rate"`
	Skills     []string `json:"skills"`
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req CreateUserReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}
	if req.Name == "" || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Name and email are required",
		})
	}

	u := models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       models.Role(req.Role),
		Status:     models.UserStatusActive,
		City:       req.City,
		Country:    req.Country,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
	}
	if u.Role == "" {
		u.Role = models.RoleClient
	}
	if len(req.Skills) > 0 {
		if err := setJSON(&u.Skills, req.Skills); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid skills payload",
			})
		}
	}

	if err := h.DB.Create(&u).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    u,
	})
}

func (h *UserHandler) GetOne(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}

	var u models.User
	if err := h.DB.
		Preload("ClientProjects").
		Preload("FreelancerProjects").
		Preload("Bids").
		Preload("ReceivedReviews").
		First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch user",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": u})
}

type UpdateUserReq struct {
	Name       *string  `json:"name"`
	City       *string  `json:"city"`
	Country    *string  `json:"country"`
	Bio        *string  `json:"bio"`
	HourlyRate *float64 `json:"hourly_rate"`
	Status     *string  `json:"status"`
	Skills     []string `json:"skills"`
}

// Update patches profile fields. Rating and total_projects are derived and
// deliberately not updatable here.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}

	var req UpdateUserReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	var u models.User
	if err := h.DB.First(&u, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.City != nil {
		u.City = req.City
	}
	if req.Country != nil {
		u.Country = req.Country
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.HourlyRate != nil {
		u.HourlyRate = *req.HourlyRate
	}
	if req.Status != nil {
		u.Status = models.UserStatus(*req.Status)
	}
	if req.Skills != nil {
		if err := setJSON(&u.Skills, req.Skills); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid skills payload",
			})
		}
	}

	if err := h.DB.Save(&u).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update user",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": u})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}

	res := h.DB.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete user",
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "User deleted"})
}

// RecomputeRating runs the transactional rating recompute for one user.
func (h *UserHandler) RecomputeRating(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}

	res, err := h.Ratings.Recompute(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Rating update failed",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": res})
}
