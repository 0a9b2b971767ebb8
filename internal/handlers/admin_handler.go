package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/okovalen/freelance-platform-api/internal/cache"
	"github.com/okovalen/freelance-platform-api/internal/models"
	"github.com/okovalen/freelance-platform-api/internal/services/analytics"
	"github.com/okovalen/freelance-platform-api/internal/services/schema"
	"github.com/okovalen/freelance-platform-api/internal/services/seeder"
)

// AdminHandler groups the administrative surface: provisioning the derived
// database objects, the index performance probe, seeding and the audit logs.
type AdminHandler struct {
	DB        *gorm.DB
	Schema    *schema.Service
	Analytics *analytics.Service
	Seeder    *seeder.Service
	Cache     *cache.ReportCache
}

func NewAdminHandler(db *gorm.DB, s *schema.Service, a *analytics.Service, sd *seeder.Service, c *cache.ReportCache) *AdminHandler {
	return &AdminHandler{DB: db, Schema: s, Analytics: a, Seeder: sd, Cache: c}
}

// DatabaseSetup reconciles views, routines, audit tables and triggers.
// Safe to call repeatedly; not safe to call concurrently.
func (h *AdminHandler) DatabaseSetup(c *fiber.Ctx) error {
	report := h.Schema.Setup()
	h.Cache.Invalidate(c.UserContext())

	if !report.OK() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Some database objects failed to install",
			"data":    report,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "All database objects installed",
		"data":    report,
	})
}

func (h *AdminHandler) PerformanceCompare(c *fiber.Ctx) error {
	res, err := h.Analytics.ComparePerformance()
	if err != nil {
		log.Printf("[admin] performance compare failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Performance comparison failed",
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": res})
}

func (h *AdminHandler) Seed(c *fiber.Ctx) error {
	if err := h.Seeder.SeedAll(); err != nil {
		log.Printf("[admin] seed failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Seeding failed",
		})
	}
	h.Cache.Invalidate(c.UserContext())
	return c.JSON(fiber.Map{"success": true, "message": "Database seeded"})
}

func (h *AdminHandler) ProjectAuditLog(c *fiber.Ctx) error {
	logs := make([]models.ProjectStatusLog, 0)
	if err := h.DB.Order("changed_at DESC").Limit(100).Find(&logs).Error; err != nil {
		return auditError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": logs})
}

func (h *AdminHandler) BidAuditLog(c *fiber.Ctx) error {
	logs := make([]models.BidStatusLog, 0)
	if err := h.DB.Order("changed_at DESC").Limit(100).Find(&logs).Error; err != nil {
		return auditError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": logs})
}

func auditError(c *fiber.Ctx, err error) error {
	log.Printf("[admin] audit log read failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Audit log not available; run database setup first",
	})
}

// Stored-routine pass-throughs, for exercising the server-side mirrors of
// the application logic.

func (h *AdminHandler) RecomputeRatingRoutine(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}
	row, err := h.Schema.CallRecomputeUserRating(id)
	if err != nil {
		return routineError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": row})
}

func (h *AdminHandler) ClientAvgBudget(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}
	row, err := h.Schema.CallClientAvgBudget(id)
	if err != nil {
		return routineError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": row})
}

func (h *AdminHandler) FreelancerSuccessRate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}
	rate, err := h.Schema.CallFreelancerSuccessRate(id)
	if err != nil {
		return routineError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"success_rate": rate}})
}

func routineError(c *fiber.Ctx, err error) error {
	log.Printf("[admin] routine call failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Routine not available; run database setup first",
	})
}
