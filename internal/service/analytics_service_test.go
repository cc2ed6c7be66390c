package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnpcell/placement-office-api/internal/models"
)

type placementReaderStub struct {
	records []models.PlacementRecord
	err     error
}

func (s placementReaderStub) ListActive(ctx context.Context, year *int) ([]models.PlacementRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if year == nil {
		return s.records, nil
	}
	var out []models.PlacementRecord
	for _, record := range s.records {
		if record.Year == *year {
			out = append(out, record)
		}
	}
	return out, nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestAnalyticsServiceSummary(t *testing.T) {
	records := []models.PlacementRecord{
		{Company: "A", HiredCount: intPtr(2), PackageLPA: floatPtr(10)},
		{Company: "A", Students: models.StudentList{{Name: "x"}, {Name: "y"}}, PackageLPA: floatPtr(15)},
		{Company: "B", HiredCount: intPtr(1)},
	}
	svc := NewAnalyticsService(placementReaderStub{records: records}, nil, 0, nil)

	summary, err := svc.Summary(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalCompanies)
	assert.Equal(t, 5, summary.TotalHired)
	assert.Equal(t, 15.0, summary.TopPackage)
}

func TestAnalyticsServiceSummaryEmptyLedger(t *testing.T) {
	svc := NewAnalyticsService(placementReaderStub{}, nil, 0, nil)

	summary, err := svc.Summary(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalCompanies)
	assert.Equal(t, 0, summary.TotalHired)
	assert.Equal(t, 0.0, summary.TopPackage)
}

func TestAnalyticsServiceSummaryIgnoresBlankCompanies(t *testing.T) {
	records := []models.PlacementRecord{
		{Company: "  Acme  ", HiredCount: intPtr(3)},
		{Company: "Acme", HiredCount: intPtr(2)},
		{Company: "   ", HiredCount: intPtr(7)},
	}
	svc := NewAnalyticsService(placementReaderStub{records: records}, nil, 0, nil)

	summary, err := svc.Summary(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalCompanies, "trimmed duplicates collapse, blank names excluded")
	assert.Equal(t, 12, summary.TotalHired, "blank-company hires still count")
}

func TestAnalyticsServiceTopCompanies(t *testing.T) {
	records := []models.PlacementRecord{
		{Company: "A", HiredCount: intPtr(2)},
		{Company: "A", Students: models.StudentList{{Name: "x"}, {Name: "y"}}},
		{Company: "B", HiredCount: intPtr(1)},
	}
	svc := NewAnalyticsService(placementReaderStub{records: records}, nil, 0, nil)

	ranked, err := svc.TopCompanies(context.Background(), nil, 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, models.CompanyHires{Company: "A", Hires: 4}, ranked[0])
}

func TestAnalyticsServiceTopCompaniesTieBreaksByName(t *testing.T) {
	records := []models.PlacementRecord{
		{Company: "Zeta", HiredCount: intPtr(3)},
		{Company: "Alpha", HiredCount: intPtr(3)},
		{Company: "Mid", HiredCount: intPtr(5)},
	}
	svc := NewAnalyticsService(placementReaderStub{records: records}, nil, 0, nil)

	ranked, err := svc.TopCompanies(context.Background(), nil, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Mid", ranked[0].Company)
	assert.Equal(t, "Alpha", ranked[1].Company)
	assert.Equal(t, "Zeta", ranked[2].Company)
}

func TestAnalyticsServiceOffersOrdering(t *testing.T) {
	records := []models.PlacementRecord{
		{ID: "r-jan", Company: "A", VisitedOn: strPtr("2025-01-01")},
		{ID: "r-jun", Company: "B", VisitedOn: strPtr("2025-06-01")},
		{ID: "r-none", Company: "C"},
	}
	svc := NewAnalyticsService(placementReaderStub{records: records}, nil, 0, nil)

	offers, err := svc.Offers(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, offers, 3)
	assert.Equal(t, "r-jun", offers[0].ID)
	assert.Equal(t, "r-jan", offers[1].ID)
	assert.Equal(t, "r-none", offers[2].ID, "missing visit dates sort last")
}

func TestAnalyticsServiceOffersStableOnEqualDates(t *testing.T) {
	records := []models.PlacementRecord{
		{ID: "r-1", Company: "A", VisitedOn: strPtr("2025-03-02")},
		{ID: "r-2", Company: "B", VisitedOn: strPtr("02/03/2025")},
		{ID: "r-3", Company: "C"},
		{ID: "r-4", Company: "D"},
	}
	svc := NewAnalyticsService(placementReaderStub{records: records}, nil, 0, nil)

	offers, err := svc.Offers(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, offers, 4)
	// Day-first "02/03/2025" normalizes to the same day as "2025-03-02".
	assert.Equal(t, "r-1", offers[0].ID)
	assert.Equal(t, "r-2", offers[1].ID)
	assert.Equal(t, "r-3", offers[2].ID)
	assert.Equal(t, "r-4", offers[3].ID)
}

func TestAnalyticsServiceYearFilter(t *testing.T) {
	records := []models.PlacementRecord{
		{Company: "A", Year: 2024, HiredCount: intPtr(2)},
		{Company: "B", Year: 2025, HiredCount: intPtr(3)},
	}
	svc := NewAnalyticsService(placementReaderStub{records: records}, nil, 0, nil)

	summary, err := svc.Summary(context.Background(), intPtr(2025))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalCompanies)
	assert.Equal(t, 3, summary.TotalHired)
}
