package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tnpcell/placement-office-api/internal/models"
	"github.com/tnpcell/placement-office-api/pkg/dates"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
)

type placementReader interface {
	ListActive(ctx context.Context, year *int) ([]models.PlacementRecord, error)
}

type analyticsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// AnalyticsService derives placement statistics from the active ledger. All
// computations are pure over the fetched record set: grouping, ranking, and
// ordering happen in memory, never in the store.
type AnalyticsService struct {
	placements placementReader
	cache      analyticsCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewAnalyticsService constructs the service. The cache may be nil, in which
// case every call recomputes from the store.
func NewAnalyticsService(placements placementReader, cache analyticsCache, cacheTTL time.Duration, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AnalyticsService{placements: placements, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Summary computes the headline ledger statistics, optionally for one year.
// Companies are counted by distinct trimmed name; records with a blank
// company still contribute hires but not a company.
func (s *AnalyticsService) Summary(ctx context.Context, year *int) (*models.PlacementSummary, error) {
	key := cacheKey("analytics:summary", year)
	var cached models.PlacementSummary
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	records, err := s.fetch(ctx, year)
	if err != nil {
		return nil, err
	}

	companies := map[string]struct{}{}
	summary := &models.PlacementSummary{}
	for _, record := range records {
		if name := strings.TrimSpace(record.Company); name != "" {
			companies[name] = struct{}{}
		}
		summary.TotalHired += record.Hires()
		if record.PackageLPA != nil && *record.PackageLPA > summary.TopPackage {
			summary.TopPackage = *record.PackageLPA
		}
	}
	summary.TotalCompanies = len(companies)

	s.cacheSet(ctx, key, summary)
	return summary, nil
}

// TopCompanies ranks companies by total hires, descending. Ties sort by
// ascending company name so the leaderboard is deterministic regardless of
// ledger insertion order.
func (s *AnalyticsService) TopCompanies(ctx context.Context, year *int, limit int) ([]models.CompanyHires, error) {
	if limit <= 0 {
		limit = 5
	}
	key := fmt.Sprintf("%s:limit:%d", cacheKey("analytics:top-companies", year), limit)
	var cached []models.CompanyHires
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	records, err := s.fetch(ctx, year)
	if err != nil {
		return nil, err
	}

	totals := map[string]int{}
	order := []string{}
	for _, record := range records {
		name := strings.TrimSpace(record.Company)
		if name == "" {
			continue
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += record.Hires()
	}

	ranked := make([]models.CompanyHires, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, models.CompanyHires{Company: name, Hires: totals[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Hires != ranked[j].Hires {
			return ranked[i].Hires > ranked[j].Hires
		}
		return ranked[i].Company < ranked[j].Company
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	s.cacheSet(ctx, key, ranked)
	return ranked, nil
}

// Offers returns the active ledger sorted by visit date, most recent first.
// A record without a usable visit date sorts as the earliest possible date,
// so it lands at the end; equal dates keep their ledger order.
func (s *AnalyticsService) Offers(ctx context.Context, year *int) ([]models.PlacementRecord, error) {
	records, err := s.fetch(ctx, year)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(records))
	for i, record := range records {
		if record.VisitedOn != nil {
			if day, ok := dates.Normalize(*record.VisitedOn); ok {
				keys[i] = day
			}
		}
	}
	indices := make([]int, len(records))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return keys[indices[a]] > keys[indices[b]]
	})
	sorted := make([]models.PlacementRecord, len(records))
	for i, idx := range indices {
		sorted[i] = records[idx]
	}
	return sorted, nil
}

// InvalidateLedger drops every cached analytics payload. Called after any
// ledger mutation.
func (s *AnalyticsService) InvalidateLedger(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "analytics:*"); err != nil {
		s.logger.Warn("analytics cache invalidation failed", zap.Error(err))
	}
}

func (s *AnalyticsService) fetch(ctx context.Context, year *int) ([]models.PlacementRecord, error) {
	records, err := s.placements.ListActive(ctx, year)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load placement ledger")
	}
	return records, nil
}

func (s *AnalyticsService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("analytics cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (s *AnalyticsService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(prefix string, year *int) string {
	if year == nil {
		return prefix + ":all"
	}
	return fmt.Sprintf("%s:%d", prefix, *year)
}
