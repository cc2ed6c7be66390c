package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tnpcell/placement-office-api/internal/models"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
)

type placementRepository interface {
	List(ctx context.Context, filter models.PlacementFilter) ([]models.PlacementRecord, int, error)
	GetByID(ctx context.Context, id string) (*models.PlacementRecord, error)
	Create(ctx context.Context, record *models.PlacementRecord) error
	Update(ctx context.Context, record *models.PlacementRecord) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	Activate(ctx context.Context, id string, at time.Time) error
}

type ledgerInvalidator interface {
	InvalidateLedger(ctx context.Context)
}

// PlacementService handles ledger record workflows. Deletion is always soft:
// records leave the active set but stay in the store and can be reactivated.
type PlacementService struct {
	repo      placementRepository
	analytics ledgerInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPlacementService constructs the service. Analytics may be nil.
func NewPlacementService(repo placementRepository, analytics ledgerInvalidator, validate *validator.Validate, logger *zap.Logger) *PlacementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlacementService{repo: repo, analytics: analytics, validator: validate, logger: logger, now: time.Now}
}

// CreatePlacementRequest describes the create payload.
type CreatePlacementRequest struct {
	Company                  string                 `json:"company" validate:"required"`
	Year                     int                    `json:"year" validate:"required,gte=2000,lte=2100"`
	Role                     *string                `json:"role"`
	PackageLPA               *float64               `json:"package_lpa" validate:"omitempty,gte=0"`
	StipendPerMonth          *float64               `json:"stipend_per_month" validate:"omitempty,gte=0"`
	InternshipDurationMonths *int                   `json:"internship_duration_months" validate:"omitempty,gte=0"`
	InternshipPeriod         *string                `json:"internship_period"`
	VisitedOn                *string                `json:"visited_on"`
	HiredCount               *int                   `json:"hired_count" validate:"omitempty,gte=0"`
	Students                 []models.PlacedStudent `json:"students"`
}

// UpdatePlacementRequest mirrors the create payload; updates replace every
// mutable field.
type UpdatePlacementRequest = CreatePlacementRequest

// List returns ledger records with pagination for admin views.
func (s *PlacementService) List(ctx context.Context, filter models.PlacementFilter) ([]models.PlacementRecord, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list placements")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return records, pagination, nil
}

// Get returns a ledger record by id.
func (s *PlacementService) Get(ctx context.Context, id string) (*models.PlacementRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "placement record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get placement record")
	}
	return record, nil
}

// Create registers a new ledger record.
func (s *PlacementService) Create(ctx context.Context, req CreatePlacementRequest) (*models.PlacementRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	record := &models.PlacementRecord{
		Company:                  req.Company,
		Year:                     req.Year,
		Role:                     req.Role,
		PackageLPA:               req.PackageLPA,
		StipendPerMonth:          req.StipendPerMonth,
		InternshipDurationMonths: req.InternshipDurationMonths,
		InternshipPeriod:         req.InternshipPeriod,
		VisitedOn:                req.VisitedOn,
		HiredCount:               req.HiredCount,
		Students:                 req.Students,
	}
	if record.Students == nil {
		record.Students = models.StudentList{}
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create placement record")
	}
	s.invalidate(ctx)
	return record, nil
}

// Update replaces the mutable fields of an existing record.
func (s *PlacementService) Update(ctx context.Context, id string, req UpdatePlacementRequest) (*models.PlacementRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Company = req.Company
	existing.Year = req.Year
	existing.Role = req.Role
	existing.PackageLPA = req.PackageLPA
	existing.StipendPerMonth = req.StipendPerMonth
	existing.InternshipDurationMonths = req.InternshipDurationMonths
	existing.InternshipPeriod = req.InternshipPeriod
	existing.VisitedOn = req.VisitedOn
	existing.HiredCount = req.HiredCount
	if req.Students != nil {
		existing.Students = req.Students
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update placement record")
	}
	s.invalidate(ctx)
	return existing, nil
}

// Delete soft-deletes a record: it leaves the active set immediately but
// stays in the store for reactivation.
func (s *PlacementService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id, s.now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete placement record")
	}
	s.invalidate(ctx)
	return nil
}

// Activate restores a soft-deleted record into the active set.
func (s *PlacementService) Activate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Activate(ctx, id, s.now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate placement record")
	}
	s.invalidate(ctx)
	return nil
}

func (s *PlacementService) invalidate(ctx context.Context) {
	if s.analytics != nil {
		s.analytics.InvalidateLedger(ctx)
	}
}
