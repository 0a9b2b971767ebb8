package analytics

import (
	"time"

	"gorm.io/datatypes"
)

// Readers over the database views installed by the schema provisioner. They
// are plain selects; provisioning must have run before these return rows.

type ActiveProjectViewRow struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Budget        float64    `json:"budget"`
	ProjectType   string     `json:"project_type"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	ClientName    string     `json:"client_name"`
	ClientEmail   string     `json:"client_email"`
	ClientCity    *string    `json:"client_city,omitempty"`
	ClientCountry *string    `json:"client_country,omitempty"`
	BidCount      int64      `json:"bid_count"`
	PendingBids   int64      `json:"pending_bids"`
}

type TopFreelancerViewRow struct {
	ID                uint           `json:"id"`
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	City              *string        `json:"city,omitempty"`
	Country           *string        `json:"country,omitempty"`
	HourlyRate        float64        `json:"hourly_rate"`
	Rating            float64        `json:"rating"`
	Skills            datatypes.JSON `json:"skills,omitempty"`
	CompletedProjects int64          `json:"completed_projects"`
	AvgReviewRating   float64        `json:"avg_review_rating"`
	ReviewCount       int64          `json:"review_count"`
	TotalBids         int64          `json:"total_bids"`
	AcceptedBids      int64          `json:"accepted_bids"`
}

type ClientStatsViewRow struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	City              *string `json:"city,omitempty"`
	Country           *string `json:"country,omitempty"`
	Rating            float64 `json:"rating"`
	TotalProjects     int64   `json:"total_projects"`
	TotalBudget       float64 `json:"total_budget"`
	AvgProjectBudget  float64 `json:"avg_project_budget"`
	CompletedProjects int64   `json:"completed_projects"`
	ReviewsGiven      int64   `json:"reviews_given"`
}

func (s *Service) ActiveProjectsView(limit int) ([]ActiveProjectViewRow, error) {
	rows := make([]ActiveProjectViewRow, 0)
	err := s.DB.Raw(`SELECT * FROM v_active_projects LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}

func (s *Service) TopFreelancersView(limit int) ([]TopFreelancerViewRow, error) {
	rows := make([]TopFreelancerViewRow, 0)
	err := s.DB.Raw(`SELECT * FROM v_top_freelancers LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}

func (s *Service) ClientStatsView(limit int) ([]ClientStatsViewRow, error) {
	rows := make([]ClientStatsViewRow, 0)
	err := s.DB.Raw(`SELECT * FROM v_client_stats LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}
