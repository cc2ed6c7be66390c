package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tnpcell/placement-office-api/internal/models"
	appErrors "github.com/tnpcell/placement-office-api/pkg/errors"
	"github.com/tnpcell/placement-office-api/pkg/export"
	"github.com/tnpcell/placement-office-api/pkg/jobs"
	"github.com/tnpcell/placement-office-api/pkg/storage"
)

type exportAnalytics interface {
	Offers(ctx context.Context, year *int) ([]models.PlacementRecord, error)
	TopCompanies(ctx context.Context, year *int, limit int) ([]models.CompanyHires, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix  string
	ResultTTL  time.Duration
	Workers    int
	MaxRetries int
}

// ExportService builds report datasets, renders them in the background, and
// hands out signed download links. Jobs live in memory only: a restart
// forgets pending work and the admin simply re-requests the export.
type ExportService struct {
	analytics exportAnalytics
	storage   fileStorage
	csv       csvRenderer
	pdf       pdfRenderer
	signer    *storage.SignedURLSigner
	queue     *jobs.Queue
	logger    *zap.Logger
	cfg       ExportConfig

	mu      sync.RWMutex
	jobsLog map[string]*models.ReportJob
}

// NewExportService constructs an ExportService.
func NewExportService(analytics exportAnalytics, fileStore fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	s := &ExportService{
		analytics: analytics,
		storage:   fileStore,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		signer:    signer,
		logger:    logger,
		cfg:       cfg,
		jobsLog:   map[string]*models.ReportJob{},
	}
	s.queue = jobs.NewQueue("exports", s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the background workers.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Request registers a new export job and queues it for generation.
func (s *ExportService) Request(ctx context.Context, reportType models.ReportType, params models.ReportJobParams, actor models.Actor) (*models.ReportJob, error) {
	switch reportType {
	case models.ReportTypeLedger, models.ReportTypeLeaderboard:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report type %q", reportType))
	}
	switch params.Format {
	case models.ReportFormatCSV, models.ReportFormatPDF:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", params.Format))
	}

	actor = actor.OrDefaults()
	job := &models.ReportJob{
		ID:          uuid.NewString(),
		Type:        reportType,
		Params:      params,
		Status:      models.ReportStatusPending,
		RequestedBy: actor.ID,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobsLog[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(reportType)}); err != nil {
		s.fail(job.ID, err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
	}
	return s.snapshotJob(job.ID), nil
}

// Job returns the current state of an export job.
func (s *ExportService) Job(id string) (*models.ReportJob, error) {
	job := s.snapshotJob(id)
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return job, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Cleanup removes rendered files older than ttl (configured ResultTTL when
// ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) process(ctx context.Context, queued jobs.Job) error {
	job := s.snapshotJob(queued.ID)
	if job == nil {
		return fmt.Errorf("export job %s disappeared", queued.ID)
	}

	dataset, title, err := s.buildDataset(ctx, job)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}

	var payload []byte
	switch job.Params.Format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ReportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", job.Params.Format)
	}
	if err != nil {
		s.fail(job.ID, err)
		return err
	}

	relPath, err := s.storage.Save(s.buildFilename(job), payload)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}

	token, _, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	downloadURL := fmt.Sprintf("%s/exports/download/%s", prefix, token)

	now := time.Now().UTC()
	s.mu.Lock()
	if stored, ok := s.jobsLog[job.ID]; ok {
		stored.Status = models.ReportStatusReady
		stored.DownloadURL = downloadURL
		stored.CompletedAt = &now
	}
	s.mu.Unlock()

	s.logger.Info("export ready",
		zap.String("job_id", job.ID),
		zap.String("type", string(job.Type)),
		zap.String("path", relPath))
	return nil
}

func (s *ExportService) buildDataset(ctx context.Context, job *models.ReportJob) (export.Dataset, string, error) {
	switch job.Type {
	case models.ReportTypeLedger:
		return s.buildLedgerDataset(ctx, job.Params)
	case models.ReportTypeLeaderboard:
		return s.buildLeaderboardDataset(ctx, job.Params)
	default:
		return export.Dataset{}, "", fmt.Errorf("unsupported report type %s", job.Type)
	}
}

func (s *ExportService) buildLedgerDataset(ctx context.Context, params models.ReportJobParams) (export.Dataset, string, error) {
	records, err := s.analytics.Offers(ctx, params.Year)
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, map[string]string{
			"Company":       record.Company,
			"Year":          fmt.Sprintf("%d", record.Year),
			"Role":          derefString(record.Role),
			"Package (LPA)": formatFloat(record.PackageLPA),
			"Visited On":    derefString(record.VisitedOn),
			"Hired":         fmt.Sprintf("%d", record.Hires()),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Company", "Year", "Role", "Package (LPA)", "Visited On", "Hired"},
		Rows:    rows,
	}
	return dataset, fmt.Sprintf("Placement Ledger %s", yearLabel(params.Year)), nil
}

func (s *ExportService) buildLeaderboardDataset(ctx context.Context, params models.ReportJobParams) (export.Dataset, string, error) {
	ranked, err := s.analytics.TopCompanies(ctx, params.Year, 100)
	if err != nil {
		return export.Dataset{}, "", err
	}
	rows := make([]map[string]string, 0, len(ranked))
	for i, entry := range ranked {
		rows = append(rows, map[string]string{
			"Rank":    fmt.Sprintf("%d", i+1),
			"Company": entry.Company,
			"Hires":   fmt.Sprintf("%d", entry.Hires),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Rank", "Company", "Hires"},
		Rows:    rows,
	}
	return dataset, fmt.Sprintf("Company Leaderboard %s", yearLabel(params.Year)), nil
}

func (s *ExportService) buildFilename(job *models.ReportJob) string {
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", strings.ToLower(string(job.Type)), yearLabel(job.Params.Year), timestamp, job.Params.Format)
}

func (s *ExportService) fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobsLog[id]; ok {
		job.Status = models.ReportStatusFailed
		job.Error = err.Error()
	}
}

func (s *ExportService) snapshotJob(id string) *models.ReportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobsLog[id]
	if !ok {
		return nil
	}
	cp := *job
	return &cp
}

func yearLabel(year *int) string {
	if year == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *year)
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func formatFloat(ptr *float64) string {
	if ptr == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *ptr)
}
