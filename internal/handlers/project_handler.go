package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/okovalen/freelance-platform-api/internal/models"
	"github.com/okovalen/freelance-platform-api/internal/services/schema"
)

type ProjectHandler struct {
	DB     *gorm.DB
	Schema *schema.Service
}

func NewProjectHandler(db *gorm.DB, s *schema.Service) *ProjectHandler {
	return &ProjectHandler{DB: db, Schema: s}
}

type CreateProjectReq struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ProjectType    string     `json:"project_type"`
	Budget         float64    `json:"budget"`
	RequiredSkills []string   `json:"required_skills"`
	Deadline       *time.Time `json:"deadline"`
	ClientID       uint       `json:"client_id"`
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req CreateProjectReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}
	if req.Title == "" || req.Budget <= 0 || req.ClientID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Title, positive budget and client_id are required",
		})
	}

	var client models.User
	if err := h.DB.First(&client, "id = ? AND role = ?", req.ClientID, models.RoleClient).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Client not found",
		})
	}

	p := models.Project{
		Title:       req.Title,
		Description: req.Description,
		ProjectType: models.ProjectType(req.ProjectType),
		Budget:      req.Budget,
		Status:      models.ProjectStatusOpen,
		Deadline:    req.Deadline,
		ClientID:    client.ID,
	}
	if p.ProjectType == "" {
		p.ProjectType = models.ProjectTypeFixed
	}
	if len(req.RequiredSkills) > 0 {
		if err := setJSON(&p.RequiredSkills, req.RequiredSkills); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid skills payload",
			})
		}
	}

	// total_projects on the client is bumped by the insert trigger, not here.
	if err := h.DB.Create(&p).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create project",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": p})
}

func (h *ProjectHandler) GetOne(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}

	var p models.Project
	if err := h.DB.
		Preload("Client").
		Preload("Freelancer").
		Preload("Bids").
		Preload("Reviews").
		First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch project",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": p})
}

type UpdateProjectStatusReq struct {
	Status string `json:"status"`
}

var validProjectStatus = map[models.ProjectStatus]bool{
	models.ProjectStatusOpen:       true,
	models.ProjectStatusInProgress: true,
	models.ProjectStatusCompleted:  true,
	models.ProjectStatusCancelled:  true,
}

// UpdateStatus transitions a project and keeps started_at/completed_at
// consistent with the new status. The status-change audit row is written by
// the database trigger.
func (h *ProjectHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}

	var req UpdateProjectStatusReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid body",
		})
	}

	status := models.ProjectStatus(req.Status)
	if !validProjectStatus[status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Unknown project status",
		})
	}

	var p models.Project
	if err := h.DB.First(&p, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Project not found",
		})
	}

	now := time.Now()
	p.Status = status
	if status == models.ProjectStatusOpen {
		p.StartedAt = nil
	} else if p.StartedAt == nil {
		p.StartedAt = &now
	}
	if status == models.ProjectStatusCompleted {
		p.CompletedAt = &now
	} else {
		p.CompletedAt = nil
	}

	if err := h.DB.Save(&p).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update status",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": p})
}

// Statistics returns the stored routine's joined project summary.
func (h *ProjectHandler) Statistics(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid id",
		})
	}

	row, err := h.Schema.CallProjectStatistics(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Statistics not available; run database setup first",
		})
	}
	if len(row) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Project not found",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": row})
}
