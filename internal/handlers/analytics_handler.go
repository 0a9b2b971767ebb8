package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/okovalen/freelance-platform-api/internal/cache"
	"github.com/okovalen/freelance-platform-api/internal/services/analytics"
)

type AnalyticsHandler struct {
	Analytics *analytics.Service
	Cache     *cache.ReportCache
}

func NewAnalyticsHandler(a *analytics.Service, c *cache.ReportCache) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: a, Cache: c}
}

// report serves a parameterless report through the cache. On a miss the
// query runs and the payload is stored for the configured TTL.
func report[T any](h *AnalyticsHandler, c *fiber.Ctx, name string, run func() ([]T, error)) error {
	key := h.Cache.Key(name)

	cached := make([]T, 0)
	if h.Cache.Get(c.UserContext(), key, &cached) {
		return c.JSON(fiber.Map{"success": true, "data": cached, "cached": true})
	}

	rows, err := run()
	if err != nil {
		log.Printf("[analytics] %s failed: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Report failed",
		})
	}

	h.Cache.Set(c.UserContext(), key, rows)
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

// Aggregate reports.

func (h *AnalyticsHandler) RoleStats(c *fiber.Ctx) error {
	return report(h, c, "role-stats", h.Analytics.RoleStats)
}

func (h *AnalyticsHandler) TopCities(c *fiber.Ctx) error {
	return report(h, c, "top-cities", h.Analytics.TopCities)
}

func (h *AnalyticsHandler) RegistrationTrend(c *fiber.Ctx) error {
	return report(h, c, "registration-trend", h.Analytics.RegistrationTrend)
}

func (h *AnalyticsHandler) RatingDistribution(c *fiber.Ctx) error {
	return report(h, c, "rating-distribution", h.Analytics.RatingDistribution)
}

// Subquery reports.

func (h *AnalyticsHandler) AboveAverageProducers(c *fiber.Ctx) error {
	return report(h, c, "above-average-producers", h.Analytics.AboveAverageProducers)
}

func (h *AnalyticsHandler) CityBestFreelancers(c *fiber.Ctx) error {
	return report(h, c, "city-best-freelancers", h.Analytics.CityBestFreelancers)
}

func (h *AnalyticsHandler) HighBudgetClients(c *fiber.Ctx) error {
	return report(h, c, "high-budget-clients", h.Analytics.HighBudgetClients)
}

// FreelancersWhoBidForClient takes the client id as a path parameter. An
// unknown client yields an empty list, not an error.
func (h *AnalyticsHandler) FreelancersWhoBidForClient(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}

	rows, err := h.Analytics.FreelancersWhoBidForClient(id)
	if err != nil {
		log.Printf("[analytics] freelancers-for-client %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Report failed",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": rows})
}

// Join reports.

func (h *AnalyticsHandler) UsersWithActiveProjects(c *fiber.Ctx) error {
	return report(h, c, "users-active-projects", h.Analytics.UsersWithActiveProjects)
}

func (h *AnalyticsHandler) FreelancersWithReviewRatings(c *fiber.Ctx) error {
	return report(h, c, "freelancer-review-ratings", h.Analytics.FreelancersWithReviewRatings)
}

func (h *AnalyticsHandler) ClientsWithProjectStats(c *fiber.Ctx) error {
	return report(h, c, "client-project-stats", h.Analytics.ClientsWithProjectStats)
}

func (h *AnalyticsHandler) FreelancersWithBidStats(c *fiber.Ctx) error {
	return report(h, c, "freelancer-bid-stats", h.Analytics.FreelancersWithBidStats)
}

// View readers (require the provisioner to have run).

func viewLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return limit
}

func (h *AnalyticsHandler) ActiveProjectsView(c *fiber.Ctx) error {
	rows, err := h.Analytics.ActiveProjectsView(viewLimit(c))
	if err != nil {
		return viewError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func (h *AnalyticsHandler) TopFreelancersView(c *fiber.Ctx) error {
	rows, err := h.Analytics.TopFreelancersView(viewLimit(c))
	if err != nil {
		return viewError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func (h *AnalyticsHandler) ClientStatsView(c *fiber.Ctx) error {
	rows, err := h.Analytics.ClientStatsView(viewLimit(c))
	if err != nil {
		return viewError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

func viewError(c *fiber.Ctx, err error) error {
	log.Printf("[analytics] view read failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "View not available; run database setup first",
	})
}
