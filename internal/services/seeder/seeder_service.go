// Package seeder fills the database with plausible demo data so the reports
// have something to chew on. Intended for development environments only.
package seeder

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/okovalen/freelance-platform-api/internal/models"
	"github.com/okovalen/freelance-platform-api/internal/utils"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

var skillSets = [][]string{
	{"JavaScript", "React", "Node.js"},
	{"Python", "Django", "PostgreSQL"},
	{"PHP", "Laravel", "MySQL"},
	{"Java", "Spring", "Hibernate"},
	{"Go", "gRPC", "Kubernetes"},
	{"Vue.js", "TypeScript", "Express"},
	{"Angular", "RxJS", "MongoDB"},
	{"Flutter", "Dart", "Firebase"},
	{"React Native", "Redux", "API"},
	{"WordPress", "CSS", "HTML"},
}

var cities = []string{"Kyiv", "Lviv", "Kharkiv", "Odesa", "Dnipro", "Zaporizhzhia"}
var countries = []string{"Ukraine", "Poland", "Germany", "USA", "Canada"}

var projectTitles = []string{
	"E-commerce web application",
	"Food delivery mobile app",
	"Corporate website redesign",
	"Payment gateway integration",
	"CRM system development",
	"Company blog on WordPress",
	"Telegram chat bot",
	"Mobile app UI/UX design",
	"Warehouse management system",
	"Online course platform",
}

// SeedAll populates users, projects, bids and reviews in that order.
func (s *Service) SeedAll() error {
	log.Println("[seeder] seeding database...")

	users, err := s.seedUsers()
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	projects, err := s.seedProjects(users)
	if err != nil {
		return fmt.Errorf("seed projects: %w", err)
	}
	if err := s.seedBids(users, projects); err != nil {
		return fmt.Errorf("seed bids: %w", err)
	}
	if err := s.seedReviews(users, projects); err != nil {
		return fmt.Errorf("seed reviews: %w", err)
	}

	log.Println("[seeder] done")
	return nil
}

func (s *Service) seedUsers() ([]models.User, error) {
	hash, err := utils.HashPassword("password123")
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, 50)

	for i := 1; i <= 20; i++ {
		status := models.UserStatusActive
		if rand.Float64() < 0.1 {
			status = models.UserStatusInactive
		}
		city := cities[rand.Intn(len(cities))]
		country := countries[rand.Intn(len(countries))]
		users = append(users, models.User{
			Name:          fmt.Sprintf("Client %d", i),
			Email:         fmt.Sprintf("client%d@example.com", i),
			Password:      hash,
			Role:          models.RoleClient,
			Status:        status,
			City:          &city,
			Country:       &country,
			Bio:           fmt.Sprintf("Experienced client, %d years on the platform", rand.Intn(5)+1),
			Rating:        round2(rand.Float64()*2 + 3),
			TotalProjects: rand.Intn(20),
		})
	}

	for i := 1; i <= 30; i++ {
		status := models.UserStatusActive
		if rand.Float64() < 0.05 {
			status = models.UserStatusBanned
		}
		city := cities[rand.Intn(len(cities))]
		country := countries[rand.Intn(len(countries))]
		skills, _ := json.Marshal(skillSets[rand.Intn(len(skillSets))])
		users = append(users, models.User{
			Name:          fmt.Sprintf("Freelancer %d", i),
			Email:         fmt.Sprintf("freelancer%d@example.com", i),
			Password:      hash,
			Role:          models.RoleFreelancer,
			Status:        status,
			City:          &city,
			Country:       &country,
			Bio:           fmt.Sprintf("Professional developer with %d years of experience", rand.Intn(8)+1),
			HourlyRate:    float64(rand.Intn(80) + 20),
			Skills:        datatypes.JSON(skills),
			Rating:        round2(rand.Float64()*2 + 3),
			TotalProjects: rand.Intn(50),
		})
	}

	if err := s.DB.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) seedProjects(users []models.User) ([]models.Project, error) {
	clients := byRole(users, models.RoleClient)
	freelancers := byRole(users, models.RoleFreelancer)

	statuses := []models.ProjectStatus{
		models.ProjectStatusOpen,
		models.ProjectStatusInProgress,
		models.ProjectStatusCompleted,
		models.ProjectStatusCancelled,
	}

	projects := make([]models.Project, 0, 40)
	for i := 0; i < 40; i++ {
		client := clients[rand.Intn(len(clients))]
		status := statuses[rand.Intn(len(statuses))]
		ptype := models.ProjectTypeFixed
		if rand.Intn(2) == 0 {
			ptype = models.ProjectTypeHourly
		}
		skills, _ := json.Marshal(skillSets[rand.Intn(len(skillSets))])

		p := models.Project{
			Title:          projectTitles[rand.Intn(len(projectTitles))],
			Description:    "Seeded demo project",
			ProjectType:    ptype,
			Budget:         round2(rand.Float64()*4500 + 500),
			RequiredSkills: datatypes.JSON(skills),
			Status:         status,
			ClientID:       client.ID,
		}

		if status != models.ProjectStatusOpen {
			f := freelancers[rand.Intn(len(freelancers))]
			p.FreelancerID = &f.ID
			started := time.Now().AddDate(0, 0, -rand.Intn(60)-7)
			p.StartedAt = &started
			if status == models.ProjectStatusCompleted {
				completed := started.AddDate(0, 0, rand.Intn(30)+1)
				p.CompletedAt = &completed
			}
		}
		if rand.Intn(2) == 0 {
			deadline := time.Now().AddDate(0, 0, rand.Intn(90)+7)
			p.Deadline = &deadline
		}

		projects = append(projects, p)
	}

	if err := s.DB.Create(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Service) seedBids(users []models.User, projects []models.Project) error {
	freelancers := byRole(users, models.RoleFreelancer)

	bids := make([]models.Bid, 0, len(projects)*3)
	for _, p := range projects {
		for i := 0; i < rand.Intn(4)+1; i++ {
			f := freelancers[rand.Intn(len(freelancers))]
			status := models.BidStatusPending
			switch {
			case p.FreelancerID != nil && *p.FreelancerID == f.ID:
				status = models.BidStatusAccepted
			case rand.Float64() < 0.3:
				status = models.BidStatusRejected
			case rand.Float64() < 0.1:
				status = models.BidStatusWithdrawn
			}
			bids = append(bids, models.Bid{
				ProjectID:    p.ID,
				FreelancerID: f.ID,
				Amount:       round2(p.Budget * (0.7 + rand.Float64()*0.6)),
				Proposal:     "I can deliver this on time and on budget.",
				DeliveryDays: rand.Intn(28) + 3,
				Status:       status,
			})
		}
	}

	return s.DB.Create(&bids).Error
}

func (s *Service) seedReviews(users []models.User, projects []models.Project) error {
	reviews := make([]models.Review, 0)
	for _, p := range projects {
		if p.Status != models.ProjectStatusCompleted || p.FreelancerID == nil {
			continue
		}
		// client reviews freelancer and vice versa
		reviews = append(reviews,
			models.Review{
				ProjectID:  p.ID,
				ReviewerID: p.ClientID,
				ReviewedID: *p.FreelancerID,
				Rating:     round2(rand.Float64()*2 + 3),
				Comment:    "Great work, delivered as promised.",
			},
			models.Review{
				ProjectID:  p.ID,
				ReviewerID: *p.FreelancerID,
				ReviewedID: p.ClientID,
				Rating:     round2(rand.Float64()*2 + 3),
				Comment:    "Clear requirements, prompt payment.",
			},
		)
	}
	if len(reviews) == 0 {
		return nil
	}
	return s.DB.Create(&reviews).Error
}

func byRole(users []models.User, role models.Role) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
