package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tnpcell/placement-office-api/internal/models"
	"github.com/tnpcell/placement-office-api/pkg/dates"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
)

type publicInfoRepository interface {
	List(ctx context.Context, filter models.PublicInfoFilter) ([]models.PublicInfoItem, error)
	GetByID(ctx context.Context, id string) (*models.PublicInfoItem, error)
	Create(ctx context.Context, item *models.PublicInfoItem) error
	Update(ctx context.Context, item *models.PublicInfoItem) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

// PublicInfoService handles public info item workflows. The store only filters
// by equality; visibility windows are evaluated here after fetch.
type PublicInfoService struct {
	repo      publicInfoRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPublicInfoService constructs the service.
func NewPublicInfoService(repo publicInfoRepository, validate *validator.Validate, logger *zap.Logger) *PublicInfoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &PublicInfoService{repo: repo, validator: validate, logger: logger, now: time.Now}
	svc.validator.RegisterValidation("infotype", func(fl validator.FieldLevel) bool {
		switch models.PublicInfoType(strings.ToLower(fl.Field().String())) {
		case models.PublicInfoAnnouncement, models.PublicInfoLink, models.PublicInfoResource, models.PublicInfoFAQ:
			return true
		default:
			return false
		}
	})
	return svc
}

// CreatePublicInfoRequest describes the create payload. Window dates accept
// any input form the normalizer understands and are stored canonical.
type CreatePublicInfoRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Type        string  `json:"type" validate:"required,infotype"`
	URL         *string `json:"url" validate:"omitempty,url"`
	Category    *string `json:"category"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// UpdatePublicInfoRequest mirrors the create payload plus the active flag.
type UpdatePublicInfoRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Type        string  `json:"type" validate:"required,infotype"`
	URL         *string `json:"url" validate:"omitempty,url"`
	Category    *string `json:"category"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	IsActive    bool    `json:"is_active"`
}

// List returns items for admin views.
func (s *PublicInfoService) List(ctx context.Context, filter models.PublicInfoFilter) ([]models.PublicInfoItem, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list public info")
	}
	return items, nil
}

// ListVisible returns the items the public feed should show today: active
// items whose visibility window, when set, covers the current UTC day.
func (s *PublicInfoService) ListVisible(ctx context.Context, infoType *models.PublicInfoType) ([]models.PublicInfoItem, error) {
	items, err := s.repo.List(ctx, models.PublicInfoFilter{Type: infoType})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list public info")
	}
	today := dates.FromTime(s.now())
	visible := make([]models.PublicInfoItem, 0, len(items))
	for _, item := range items {
		if item.VisibleOn(today) {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

// Get returns an item by id.
func (s *PublicInfoService) Get(ctx context.Context, id string) (*models.PublicInfoItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "public info item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get public info item")
	}
	return item, nil
}

// Create registers a new item stamped with the creating actor. Titles are
// trimmed first so whitespace-only input fails the required check.
func (s *PublicInfoService) Create(ctx context.Context, req CreatePublicInfoRequest, actor models.Actor) (*models.PublicInfoItem, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	start, end, err := s.normalizeWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	actor = actor.OrDefaults()
	item := &models.PublicInfoItem{
		Title:         req.Title,
		Description:   req.Description,
		Type:          models.PublicInfoType(strings.ToLower(req.Type)),
		URL:           req.URL,
		Category:      req.Category,
		StartDate:     start,
		EndDate:       end,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create public info item")
	}
	return item, nil
}

// Update replaces the mutable fields of an item and stamps the actor.
func (s *PublicInfoService) Update(ctx context.Context, id string, req UpdatePublicInfoRequest, actor models.Actor) (*models.PublicInfoItem, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	start, end, err := s.normalizeWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	actor = actor.OrDefaults()
	existing.Title = req.Title
	existing.Description = req.Description
	existing.Type = models.PublicInfoType(strings.ToLower(req.Type))
	existing.URL = req.URL
	existing.Category = req.Category
	existing.StartDate = start
	existing.EndDate = end
	existing.IsActive = req.IsActive
	existing.LastUpdatedBy = &actor.ID
	existing.LastUpdatedByName = &actor.Name
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update public info item")
	}
	return existing, nil
}

// Delete soft-deletes an item.
func (s *PublicInfoService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id, s.now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete public info item")
	}
	return nil
}

func (s *PublicInfoService) normalizeWindow(start, end *string) (*string, *string, error) {
	out := make([]*string, 2)
	for i, raw := range []*string{start, end} {
		if raw == nil || strings.TrimSpace(*raw) == "" {
			continue
		}
		day, ok := dates.Normalize(*raw)
		if !ok {
			return nil, nil, appErrors.Clone(appErrors.ErrInvalidDate, "visibility dates must be parseable calendar dates")
		}
		out[i] = &day
	}
	if out[0] != nil && out[1] != nil && *out[0] > *out[1] {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "start_date must not be after end_date")
	}
	return out[0], out[1], nil
}
