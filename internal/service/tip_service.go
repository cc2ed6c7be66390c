package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tnpcell/placement-office-api/internal/models"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
)

type tipRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.Tip, error)
	GetByID(ctx context.Context, id string) (*models.Tip, error)
	Create(ctx context.Context, tip *models.Tip) error
	Update(ctx context.Context, tip *models.Tip) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

// TipService handles interview preparation tip workflows.
type TipService struct {
	repo      tipRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTipService constructs the service.
func NewTipService(repo tipRepository, validate *validator.Validate, logger *zap.Logger) *TipService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TipService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// CreateTipRequest describes the create payload.
type CreateTipRequest struct {
	Title       string  `json:"title" validate:"required"`
	Content     *string `json:"content"`
	StudentName *string `json:"student_name"`
	Company     *string `json:"company"`
	Year        *int    `json:"year" validate:"omitempty,gte=2000,lte=2100"`
}

// UpdateTipRequest mirrors the create payload plus the active flag.
type UpdateTipRequest struct {
	Title       string  `json:"title" validate:"required"`
	Content     *string `json:"content"`
	StudentName *string `json:"student_name"`
	Company     *string `json:"company"`
	Year        *int    `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	IsActive    bool    `json:"is_active"`
}

// List returns tips. Admin callers may include inactive tips.
func (s *TipService) List(ctx context.Context, includeInactive bool) ([]models.Tip, error) {
	tips, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tips")
	}
	return tips, nil
}

// ListActive returns active tips, optionally filtered to one graduation year.
// No ordering beyond store order is promised; presentation may re-sort.
func (s *TipService) ListActive(ctx context.Context, year *int) ([]models.Tip, error) {
	tips, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tips")
	}
	if year == nil {
		return tips, nil
	}
	out := make([]models.Tip, 0, len(tips))
	for _, tip := range tips {
		if tip.Year != nil && *tip.Year == *year {
			out = append(out, tip)
		}
	}
	return out, nil
}

// Get returns a tip by id.
func (s *TipService) Get(ctx context.Context, id string) (*models.Tip, error) {
	tip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "tip not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get tip")
	}
	return tip, nil
}

// Create registers a new tip stamped with the creating actor. Titles are
// trimmed first so whitespace-only input fails the required check.
func (s *TipService) Create(ctx context.Context, req CreateTipRequest, actor models.Actor) (*models.Tip, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	actor = actor.OrDefaults()
	tip := &models.Tip{
		Title:         req.Title,
		Content:       req.Content,
		StudentName:   req.StudentName,
		Company:       req.Company,
		Year:          req.Year,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
	if err := s.repo.Create(ctx, tip); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create tip")
	}
	return tip, nil
}

// Update replaces the mutable fields of a tip and stamps the actor.
func (s *TipService) Update(ctx context.Context, id string, req UpdateTipRequest, actor models.Actor) (*models.Tip, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	actor = actor.OrDefaults()
	existing.Title = req.Title
	existing.Content = req.Content
	existing.StudentName = req.StudentName
	existing.Company = req.Company
	existing.Year = req.Year
	existing.IsActive = req.IsActive
	existing.LastUpdatedBy = &actor.ID
	existing.LastUpdatedByName = &actor.Name
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update tip")
	}
	return existing, nil
}

// Delete soft-deletes a tip.
func (s *TipService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id, s.now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete tip")
	}
	return nil
}
