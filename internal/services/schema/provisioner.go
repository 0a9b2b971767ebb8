// Package schema installs the database-side derived objects (views, routines,
// audit tables, triggers) that mirror the analytics logic for server-side
// reuse. Reconciliation is drop-if-exists then create, so running it again
// leaves exactly one instance of each object.
package schema

import (
	"log"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

type ObjectFailure struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

type Report struct {
	Created []string        `json:"created"`
	Failed  []ObjectFailure `json:"failed,omitempty"`
}

func (r *Report) OK() bool { return len(r.Failed) == 0 }

// Setup reconciles every object in the catalog. A failure on one object is
// recorded and the run continues; objects already created in the same run
// stay in place, each drop/create pair is independently idempotent and safe
// to retry. Not safe to run concurrently with itself.
func (s *Service) Setup() *Report {
	report := &Report{Created: make([]string, 0)}

	for _, obj := range Objects() {
		if err := s.reconcile(obj); err != nil {
			log.Printf("[schema] %s %s failed: %v", obj.Kind, obj.Name, err)
			report.Failed = append(report.Failed, ObjectFailure{
				Kind:  string(obj.Kind),
				Name:  obj.Name,
				Error: err.Error(),
			})
			continue
		}
		report.Created = append(report.Created, obj.Name)
	}

	return report
}

func (s *Service) reconcile(obj DerivedObject) error {
	for _, stmt := range obj.Drop {
		if err := s.DB.Exec(stmt).Error; err != nil {
			return err
		}
	}
	for _, stmt := range obj.Create {
		if err := s.DB.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// CallRecomputeUserRating exercises the stored routine instead of the
// application-side rating service.
func (s *Service) CallRecomputeUserRating(userID uint) (map[string]interface{}, error) {
	row := map[string]interface{}{}
	err := s.DB.Raw(`SELECT * FROM recompute_user_rating(?)`, int(userID)).Scan(&row).Error
	return row, err
}

// CallProjectStatistics returns the joined project/client/freelancer/bids/
// reviews summary computed by the stored routine.
func (s *Service) CallProjectStatistics(projectID uint) (map[string]interface{}, error) {
	row := map[string]interface{}{}
	err := s.DB.Raw(`SELECT * FROM project_statistics(?)`, int(projectID)).Scan(&row).Error
	return row, err
}

func (s *Service) CallClientAvgBudget(clientID uint) (map[string]interface{}, error) {
	row := map[string]interface{}{}
	err := s.DB.Raw(`SELECT * FROM client_avg_budget(?)`, int(clientID)).Scan(&row).Error
	return row, err
}

func (s *Service) CallFreelancerSuccessRate(freelancerID uint) (float64, error) {
	var rate float64
	err := s.DB.Raw(`SELECT freelancer_success_rate(?)`, int(freelancerID)).Scan(&rate).Error
	return rate, err
}
