package listing

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/okovalen/freelance-platform-api/internal/apperrors"
	"github.com/okovalen/freelance-platform-api/internal/models"
)

// UserQuery is the structured listing request. Blank strings count as an
// absent filter; absent filters impose no constraint.
type UserQuery struct {
	Page      int      `query:"page" validate:"omitempty,min=1"`
	Limit     int      `query:"limit" validate:"omitempty,min=1,max=100"`
	Search    string   `query:"search"`
	Role      string   `query:"role" validate:"omitempty,oneof=client freelancer admin"`
	Status    string   `query:"status" validate:"omitempty,oneof=active inactive banned"`
	City      string   `query:"city"`
	Country   string   `query:"country"`
	MinRating *float64 `query:"minRating" validate:"omitempty,gte=0,lte=5"`
	MaxRating *float64 `query:"maxRating" validate:"omitempty,gte=0,lte=5"`
	SortBy    string   `query:"sortBy"`
	SortOrder string   `query:"sortOrder" validate:"omitempty,oneof=ASC DESC asc desc"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type Result struct {
	Data       []models.User `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// sortable is the allow-list for ORDER BY columns. Anything else is rejected
// before a query is built.
var sortable = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"email":          true,
	"rating":         true,
	"total_projects": true,
	"hourly_rate":    true,
	"city":           true,
	"country":        true,
}

type predicate struct {
	expr string
	args []interface{}
}

type Service struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, validate: validator.New()}
}

func (q *UserQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 12
	}
	if strings.TrimSpace(q.SortBy) == "" {
		q.SortBy = "created_at"
	}
	q.SortOrder = strings.ToUpper(strings.TrimSpace(q.SortOrder))
	if q.SortOrder != "ASC" {
		q.SortOrder = "DESC"
	}
}

// predicates maps each present filter to one parameterized clause. The
// clauses are ANDed together by gorm.
func (q *UserQuery) predicates() []predicate {
	var preds []predicate

	if s := strings.TrimSpace(q.Search); s != "" {
		pat := "%" + s + "%"
		preds = append(preds, predicate{
			expr: "(name ILIKE ? OR email ILIKE ? OR bio ILIKE ?)",
			args: []interface{}{pat, pat, pat},
		})
	}
	if q.Role != "" {
		preds = append(preds, predicate{expr: "role = ?", args: []interface{}{q.Role}})
	}
	if q.Status != "" {
		preds = append(preds, predicate{expr: "status = ?", args: []interface{}{q.Status}})
	}
	if c := strings.TrimSpace(q.City); c != "" {
		preds = append(preds, predicate{expr: "city = ?", args: []interface{}{c}})
	}
	if c := strings.TrimSpace(q.Country); c != "" {
		preds = append(preds, predicate{expr: "country = ?", args: []interface{}{c}})
	}
	if q.MinRating != nil {
		preds = append(preds, predicate{expr: "rating >= ?", args: []interface{}{*q.MinRating}})
	}
	if q.MaxRating != nil {
		preds = append(preds, predicate{expr: "rating <= ?", args: []interface{}{*q.MaxRating}})
	}

	return preds
}

// ListUsers runs the composed listing query: count matching rows first, then
// fetch one page ordered by the validated sort column.
func (s *Service) ListUsers(q UserQuery) (*Result, error) {
	if err := s.validate.Struct(&q); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	q.normalize()

	if !sortable[q.SortBy] {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidSort, q.SortBy)
	}

	tx := s.DB.Model(&models.User{})
	for _, p := range q.predicates() {
		tx = tx.Where(p.expr, p.args...)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	users := make([]models.User, 0, q.Limit)
	offset := (q.Page - 1) * q.Limit
	if err := tx.
		Order(q.SortBy + " " + q.SortOrder).
		Limit(q.Limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))

	return &Result{
		Data: users,
		Pagination: Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    int64(q.Page)*int64(q.Limit) < total,
			HasPrev:    q.Page > 1,
		},
	}, nil
}
