package analytics

type RoleStatsRow struct {
	Role        string  `json:"role"`
	Count       int64   `json:"count"`
	AvgRating   float64 `json:"avg_rating"`
	AvgProjects float64 `json:"avg_projects"`
}

type CityStatsRow struct {
	City      string  `json:"city"`
	Country   string  `json:"country"`
	UserCount int64   `json:"user_count"`
	AvgRating float64 `json:"avg_rating"`
}

type RegistrationTrendRow struct {
	Month         string `json:"month"`
	Registrations int64  `json:"registrations"`
	Clients       int64  `json:"clients"`
	Freelancers   int64  `json:"freelancers"`
}

type RatingDistributionRow struct {
	RatingRange string `json:"rating_range"`
	UserCount   int64  `json:"user_count"`
	Role        string `json:"role"`
}

// RoleStats reports per-role user count and average rating / project totals.
func (s *Service) RoleStats() ([]RoleStatsRow, error) {
	rows := make([]RoleStatsRow, 0)
	err := s.DB.Raw(`
		SELECT role,
		       COUNT(*) AS count,
		       COALESCE(AVG(rating), 0) AS avg_rating,
		       COALESCE(AVG(total_projects), 0) AS avg_projects
		FROM users
		GROUP BY role
	`).Scan(&rows).Error
	return rows, err
}

// TopCities returns the ten largest (city, country) groups by user count.
func (s *Service) TopCities() ([]CityStatsRow, error) {
	rows := make([]CityStatsRow, 0)
	err := s.DB.Raw(`
		SELECT city,
		       country,
		       COUNT(*) AS user_count,
		       COALESCE(AVG(rating), 0) AS avg_rating
		FROM users
		WHERE city IS NOT NULL
		GROUP BY city, country
		ORDER BY user_count DESC
		LIMIT 10
	`).Scan(&rows).Error
	return rows, err
}

// RegistrationTrend buckets registrations per calendar month, split by role,
// most recent twelve months first. Months with no registrations do not
// appear.
func (s *Service) RegistrationTrend() ([]RegistrationTrendRow, error) {
	rows := make([]RegistrationTrendRow, 0)
	err := s.DB.Raw(`
		SELECT to_char(created_at, 'YYYY-MM') AS month,
		       COUNT(*) AS registrations,
		       SUM(CASE WHEN role = 'client' THEN 1 ELSE 0 END) AS clients,
		       SUM(CASE WHEN role = 'freelancer' THEN 1 ELSE 0 END) AS freelancers
		FROM users
		GROUP BY to_char(created_at, 'YYYY-MM')
		ORDER BY month DESC
		LIMIT 12
	`).Scan(&rows).Error
	return rows, err
}

// RatingDistribution counts users per (band, role) over five fixed rating
// bands, ordered by role then band descending.
func (s *Service) RatingDistribution() ([]RatingDistributionRow, error) {
	rows := make([]RatingDistributionRow, 0)
	err := s.DB.Raw(`
		SELECT
		    CASE
		        WHEN rating >= 4.5 THEN '4.5-5.0'
		        WHEN rating >= 4.0 THEN '4.0-4.5'
		        WHEN rating >= 3.5 THEN '3.5-4.0'
		        WHEN rating >= 3.0 THEN '3.0-3.5'
		        ELSE 'Below 3.0'
		    END AS rating_range,
		    COUNT(*) AS user_count,
		    role
		FROM users
		GROUP BY rating_range, role
		ORDER BY role, rating_range DESC
	`).Scan(&rows).Error
	return rows, err
}
