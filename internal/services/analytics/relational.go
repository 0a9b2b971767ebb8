package analytics

import "github.com/okovalen/freelance-platform-api/internal/models"

type ActiveProjectsRow struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Role               string  `json:"role"`
	City               *string `json:"city,omitempty"`
	Country            *string `json:"country,omitempty"`
	Rating             float64 `json:"rating"`
	ClientProjects     string  `json:"client_projects"`
	FreelancerProjects string  `json:"freelancer_projects"`
}

type ReviewRatingsRow struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
	Rating          float64 `json:"rating"`
	AvgReviewRating float64 `json:"avg_review_rating"`
	ReviewCount     int64   `json:"review_count"`
}

type ClientProjectStatsRow struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	City             *string `json:"city,omitempty"`
	Country          *string `json:"country,omitempty"`
	Rating           float64 `json:"rating"`
	ProjectCount     int64   `json:"project_count"`
	TotalBudget      float64 `json:"total_budget"`
	AvgProjectBudget float64 `json:"avg_project_budget"`
}

type FreelancerBidStatsRow struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	City         *string `json:"city,omitempty"`
	Country      *string `json:"country,omitempty"`
	Rating       float64 `json:"rating"`
	TotalBids    int64   `json:"total_bids"`
	AcceptedBids int64   `json:"accepted_bids"`
	AvgBidAmount float64 `json:"avg_bid_amount"`
}

// AboveAverageProducers returns users whose total_projects is strictly above
// the global average, busiest first.
func (s *Service) AboveAverageProducers() ([]models.User, error) {
	users := make([]models.User, 0)
	err := s.DB.Raw(`
		SELECT * FROM users
		WHERE total_projects > (SELECT AVG(total_projects) FROM users)
		ORDER BY total_projects DESC
	`).Scan(&users).Error
	return users, err
}

// CityBestFreelancers returns, per city, the freelancer(s) whose rating
// equals the city maximum. Ties are all included.
func (s *Service) CityBestFreelancers() ([]models.User, error) {
	users := make([]models.User, 0)
	err := s.DB.Raw(`
		SELECT u1.* FROM users u1
		WHERE u1.rating = (
		    SELECT MAX(u2.rating)
		    FROM users u2
		    WHERE u2.city = u1.city AND u2.role = 'freelancer'
		)
		AND u1.role = 'freelancer'
		AND u1.city IS NOT NULL
		ORDER BY u1.rating DESC
	`).Scan(&users).Error
	return users, err
}

// HighBudgetClients returns clients owning at least one project whose budget
// exceeds the global average project budget.
func (s *Service) HighBudgetClients() ([]models.User, error) {
	users := make([]models.User, 0)
	err := s.DB.Raw(`
		SELECT DISTINCT u.* FROM users u
		WHERE u.id IN (
		    SELECT p.client_id FROM projects p
		    WHERE p.budget > (SELECT AVG(budget) FROM projects)
		)
		ORDER BY u.total_projects DESC
	`).Scan(&users).Error
	return users, err
}

// FreelancersWhoBidForClient returns the distinct freelancers who placed at
// least one bid on any project owned by the given client. An unknown client
// id simply yields an empty result.
func (s *Service) FreelancersWhoBidForClient(clientID uint) ([]models.User, error) {
	users := make([]models.User, 0)
	err := s.DB.Raw(`
		SELECT DISTINCT u.* FROM users u
		WHERE u.id IN (
		    SELECT b.freelancer_id FROM bids b
		    JOIN projects p ON b.project_id = p.id
		    WHERE p.client_id = ?
		)
		ORDER BY u.rating DESC
	`, clientID).Scan(&users).Error
	return users, err
}

// UsersWithActiveProjects lists users attached to at least one in-progress
// project on either side, with the active titles collected per side.
func (s *Service) UsersWithActiveProjects() ([]ActiveProjectsRow, error) {
	rows := make([]ActiveProjectsRow, 0)
	err := s.DB.Raw(`
		SELECT u.id, u.name, u.email, u.role, u.city, u.country, u.rating,
		       COALESCE(string_agg(DISTINCT cp.title, ', '), '') AS client_projects,
		       COALESCE(string_agg(DISTINCT fp.title, ', '), '') AS freelancer_projects
		FROM users u
		LEFT JOIN projects cp ON u.id = cp.client_id AND cp.status = 'in_progress'
		LEFT JOIN projects fp ON u.id = fp.freelancer_id AND fp.status = 'in_progress'
		WHERE cp.id IS NOT NULL OR fp.id IS NOT NULL
		GROUP BY u.id
	`).Scan(&rows).Error
	return rows, err
}

// FreelancersWithReviewRatings reports every freelancer with the average and
// count of reviews received; freelancers without reviews come back as 0/0.
func (s *Service) FreelancersWithReviewRatings() ([]ReviewRatingsRow, error) {
	rows := make([]ReviewRatingsRow, 0)
	err := s.DB.Raw(`
		SELECT u.id, u.name, u.email, u.city, u.country, u.rating,
		       COALESCE(AVG(r.rating), 0) AS avg_review_rating,
		       COUNT(r.id) AS review_count
		FROM users u
		LEFT JOIN reviews r ON u.id = r.reviewed_id
		WHERE u.role = 'freelancer'
		GROUP BY u.id
		ORDER BY avg_review_rating DESC
	`).Scan(&rows).Error
	return rows, err
}

// ClientsWithProjectStats reports every client with count, sum and average
// of owned project budgets; clients without projects come back as zeroes.
func (s *Service) ClientsWithProjectStats() ([]ClientProjectStatsRow, error) {
	rows := make([]ClientProjectStatsRow, 0)
	err := s.DB.Raw(`
		SELECT u.id, u.name, u.email, u.city, u.country, u.rating,
		       COUNT(p.id) AS project_count,
		       COALESCE(SUM(p.budget), 0) AS total_budget,
		       COALESCE(AVG(p.budget), 0) AS avg_project_budget
		FROM users u
		LEFT JOIN projects p ON u.id = p.client_id
		WHERE u.role = 'client'
		GROUP BY u.id
		ORDER BY total_budget DESC
	`).Scan(&rows).Error
	return rows, err
}

// FreelancersWithBidStats reports bid totals, accepted count and average bid
// amount per freelancer, most successful first.
func (s *Service) FreelancersWithBidStats() ([]FreelancerBidStatsRow, error) {
	rows := make([]FreelancerBidStatsRow, 0)
	err := s.DB.Raw(`
		SELECT u.id, u.name, u.email, u.city, u.country, u.rating,
		       COUNT(b.id) AS total_bids,
		       COALESCE(SUM(CASE WHEN b.status = 'accepted' THEN 1 ELSE 0 END), 0) AS accepted_bids,
		       COALESCE(AVG(b.amount), 0) AS avg_bid_amount
		FROM users u
		LEFT JOIN bids b ON u.id = b.freelancer_id
		WHERE u.role = 'freelancer'
		GROUP BY u.id
		ORDER BY accepted_bids DESC, total_bids DESC
	`).Scan(&rows).Error
	return rows, err
}
