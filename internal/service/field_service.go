package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vbonduro/fieldlog/internal/archive"
	"github.com/vbonduro/fieldlog/internal/domain"
	"github.com/vbonduro/fieldlog/internal/ids"
	"github.com/vbonduro/fieldlog/internal/metrics"
	"github.com/vbonduro/fieldlog/internal/report"
	"github.com/vbonduro/fieldlog/internal/vision"
)

// RecentActivityLimit is the length of the dashboard's activity feed.
const RecentActivityLimit = 5

// Caption fallbacks stored in place of a description when captioning fails.
const (
	CaptionNotConfigured = "AI captioning not configured (API key missing)."
	CaptionUnreachable   = "Could not reach the AI service."
	CaptionEmpty         = "Could not analyze the image."
)

var ErrArchiveNotConfigured = errors.New("report archive not configured")

// categoryRepository is the subset of store.CategoryStore that FieldService requires.
type categoryRepository interface {
	List(ctx context.Context) ([]domain.ServiceCategory, error)
	Upsert(ctx context.Context, c domain.ServiceCategory) (domain.ServiceCategory, error)
	Delete(ctx context.Context, id domain.ID) error
	Seed(ctx context.Context) (bool, error)
}

// crewRepository is the subset of store.CrewStore that FieldService requires.
type crewRepository interface {
	List(ctx context.Context) ([]domain.Crew, error)
	Upsert(ctx context.Context, c domain.Crew) (domain.Crew, error)
	Delete(ctx context.Context, id domain.ID) error
	Seed(ctx context.Context) (bool, error)
}

// recordRepository is the subset of store.RecordStore that FieldService requires.
type recordRepository interface {
	List(ctx context.Context) ([]domain.ServiceRecord, error)
	Create(ctx context.Context, r domain.ServiceRecord) error
	Delete(ctx context.Context, id domain.ID) error
	Get(ctx context.Context, id domain.ID) (*domain.ServiceRecord, error)
	Count(ctx context.Context) (int, error)
}

type FieldService struct {
	categories categoryRepository
	crews      crewRepository
	records    recordRepository
	captioner  vision.Captioner
	archive    archive.Archive
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time

	// mu serializes writes; the process is the only writer.
	mu sync.Mutex
}

type Option func(*FieldService)

// WithCaptioner enables photo captioning. Without it CaptionPhoto returns
// CaptionNotConfigured.
func WithCaptioner(c vision.Captioner) Option {
	return func(s *FieldService) { s.captioner = c }
}

func WithArchive(a archive.Archive) Option {
	return func(s *FieldService) { s.archive = a }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *FieldService) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *FieldService) { s.now = now }
}

func NewFieldService(
	categories categoryRepository,
	crews crewRepository,
	records recordRepository,
	logger *slog.Logger,
	opts ...Option,
) *FieldService {
	s := &FieldService{
		categories: categories,
		crews:      crews,
		records:    records,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewMetrics(prometheus.NewRegistry())
	}
	return s
}

// InitResult reports which collections were seeded by Initialize.
type InitResult struct {
	CategoriesSeeded bool `json:"categoriesSeeded"`
	CrewsSeeded      bool `json:"crewsSeeded"`
}

// Initialize seeds the default categories and crews. Each collection is
// seeded at most once per database, so calling it again is a no-op.
func (s *FieldService) Initialize(ctx context.Context) (InitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res InitResult
	var err error
	if res.CategoriesSeeded, err = s.categories.Seed(ctx); err != nil {
		return res, fmt.Errorf("failed to seed categories: %w", err)
	}
	if res.CrewsSeeded, err = s.crews.Seed(ctx); err != nil {
		return res, fmt.Errorf("failed to seed crews: %w", err)
	}
	s.logger.Info("store initialized", "categories_seeded", res.CategoriesSeeded, "crews_seeded", res.CrewsSeeded)
	return res, nil
}

// Bootstrap creates two sample records when the record collection is empty
// and at least one category and one crew exist. It returns the number of
// records created.
func (s *FieldService) Bootstrap(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.records.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return 0, err
	}
	crews, err := s.crews.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(categories) == 0 || len(crews) == 0 {
		s.logger.Debug("bootstrap skipped", "categories", len(categories), "crews", len(crews))
		return 0, nil
	}

	pick := func(n, i int) int {
		if i < n {
			return i
		}
		return 0
	}
	now := s.now()
	samples := []domain.ServiceRecord{
		{
			CategoryID: categories[pick(len(categories), 1)].ID.Ref(),
			OccurredAt: isoTimestamp(now.AddDate(0, 0, -1)),
			Location:   "Rua das Flores, 123 - Centro",
			Notes:      "Large amount of construction debris.",
			CrewName:   crews[0].Name,
		},
		{
			CategoryID: categories[0].ID.Ref(),
			OccurredAt: isoTimestamp(now.AddDate(0, 0, -2)),
			Location:   "Av. Principal, near the market",
			Notes:      "Full unclogging completed.",
			CrewName:   crews[pick(len(crews), 1)].Name,
		},
	}
	// Written oldest first so the newest-first listing starts with the
	// sample from yesterday.
	created := 0
	for i := len(samples) - 1; i >= 0; i-- {
		samples[i].ID = ids.Make(now)
		samples[i].Photos = []string{}
		samples[i].CreatedAt = now.UnixMilli()
		if err := s.records.Create(ctx, samples[i]); err != nil {
			return created, fmt.Errorf("failed to create sample record: %w", err)
		}
		created++
		s.metrics.RecordsCreated.Inc()
	}
	s.logger.Info("sample records created", "count", len(samples))
	return len(samples), nil
}

// isoTimestamp formats t in its own zone, so the date prefix is the local
// calendar day the dashboard and filters compare against.
func isoTimestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000Z07:00")
}

func (s *FieldService) ListCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return s.categories.List(ctx)
}

// CreateCategory stores c, generating an id when it has none. A category
// with an existing id replaces the stored one in place.
func (s *FieldService) CreateCategory(ctx context.Context, c domain.ServiceCategory) (domain.ServiceCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID.IsZero() {
		c.ID = ids.New()
	}
	saved, err := s.categories.Upsert(ctx, c)
	if err != nil {
		return domain.ServiceCategory{}, err
	}
	s.logger.Info("category saved", "id", saved.ID, "name", saved.Name)
	return saved, nil
}

// DeleteCategory removes the category. Records referencing it are left
// untouched and render as uncategorized.
func (s *FieldService) DeleteCategory(ctx context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", "id", id)
	return nil
}

// DeletionImpact returns how many records reference the category, for the
// warning shown before deletion.
func (s *FieldService) DeletionImpact(ctx context.Context, id domain.ID) (int, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return 0, err
	}
	return report.CountReferencingRecords(id, records), nil
}

// ReferenceCounts returns the record count of every category, zero
// included, for the category list.
func (s *FieldService) ReferenceCounts(ctx context.Context) (map[domain.ID]int, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.ReferenceCounts(categories, records), nil
}

// CrewImpact returns how many records were logged under the crew's current
// name. Records keep their copy of the name when the crew is deleted.
func (s *FieldService) CrewImpact(ctx context.Context, id domain.ID) (int, error) {
	crews, err := s.crews.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, c := range crews {
		if c.ID != id {
			continue
		}
		records, err := s.records.List(ctx)
		if err != nil {
			return 0, err
		}
		return report.CountCrewRecords(c.Name, records), nil
	}
	return 0, fmt.Errorf("crew %s: %w", id, domain.ErrNotFound)
}

func (s *FieldService) ListCrews(ctx context.Context) ([]domain.Crew, error) {
	return s.crews.List(ctx)
}

// SaveCrew stores c, generating an id when it has none.
func (s *FieldService) SaveCrew(ctx context.Context, c domain.Crew) (domain.Crew, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID.IsZero() {
		c.ID = ids.New()
	}
	saved, err := s.crews.Upsert(ctx, c)
	if err != nil {
		return domain.Crew{}, err
	}
	s.logger.Info("crew saved", "id", saved.ID, "name", saved.Name)
	return saved, nil
}

func (s *FieldService) DeleteCrew(ctx context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.crews.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("crew deleted", "id", id)
	return nil
}

// ListRecords returns every record, most recently created first.
func (s *FieldService) ListRecords(ctx context.Context) ([]domain.ServiceRecord, error) {
	return s.records.List(ctx)
}

// GetRecord returns the record with id or domain.ErrNotFound.
func (s *FieldService) GetRecord(ctx context.Context, id domain.ID) (domain.ServiceRecord, error) {
	r, err := s.records.Get(ctx, id)
	if err != nil {
		return domain.ServiceRecord{}, err
	}
	if r == nil {
		return domain.ServiceRecord{}, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	return *r, nil
}

// ListRecordsByCategory returns the category's records, latest occurrence
// first.
func (s *FieldService) ListRecordsByCategory(ctx context.Context, id domain.ID) ([]domain.ServiceRecord, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := report.Apply(records, report.Filter{CategoryID: id.Ref()})
	return report.SortByOccurredDesc(matched), nil
}

// RecordInput carries the operator-entered fields of a new record.
type RecordInput struct {
	CategoryID *domain.ID `json:"categoryId"`
	OccurredAt string     `json:"occurredAt"`
	Location   string     `json:"location"`
	Notes      string     `json:"notes"`
	CrewName   string     `json:"crewName"`
	Photos     []string   `json:"photos"`
}

// CreateRecord assigns an id and creation time and stores the record.
func (s *FieldService) CreateRecord(ctx context.Context, in RecordInput) (domain.ServiceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	r := domain.ServiceRecord{
		ID:         ids.Make(now),
		CategoryID: in.CategoryID,
		OccurredAt: strings.TrimSpace(in.OccurredAt),
		Location:   strings.TrimSpace(in.Location),
		Notes:      in.Notes,
		CrewName:   strings.TrimSpace(in.CrewName),
		Photos:     in.Photos,
		CreatedAt:  now.UnixMilli(),
	}
	if r.CategoryID != nil && r.CategoryID.IsZero() {
		r.CategoryID = nil
	}
	if r.CrewName == "" {
		r.CrewName = domain.UnassignedCrew
	}
	if r.Photos == nil {
		r.Photos = []string{}
	}

	if err := s.records.Create(ctx, r); err != nil {
		return domain.ServiceRecord{}, err
	}
	s.metrics.RecordsCreated.Inc()
	s.logger.Info("record created", "id", r.ID, "location", r.Location, "photos", len(r.Photos))
	return r, nil
}

func (s *FieldService) DeleteRecord(ctx context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	s.metrics.RecordsDeleted.Inc()
	s.logger.Info("record deleted", "id", id)
	return nil
}

func (s *FieldService) Dashboard(ctx context.Context) (report.Dashboard, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return report.Dashboard{}, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return report.Dashboard{}, err
	}
	return report.Summarize(records, categories, s.now(), RecentActivityLimit), nil
}

// Report filters the records and projects them into export rows.
func (s *FieldService) Report(ctx context.Context, f report.Filter) (report.Report, error) {
	start := time.Now()
	defer func() { s.metrics.ReportDuration.Observe(time.Since(start).Seconds()) }()

	records, err := s.records.List(ctx)
	if err != nil {
		return report.Report{}, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(records, categories, f), nil
}

// WriteReportCSV writes the filtered report as CSV to w.
func (s *FieldService) WriteReportCSV(ctx context.Context, f report.Filter, w io.Writer) error {
	rep, err := s.Report(ctx, f)
	if err != nil {
		return err
	}
	return report.WriteCSV(w, rep.Rows)
}

// ExportReport renders the filtered report as CSV and saves it to the
// archive. It returns the archive key.
func (s *FieldService) ExportReport(ctx context.Context, f report.Filter) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveNotConfigured
	}
	var buf bytes.Buffer
	if err := s.WriteReportCSV(ctx, f, &buf); err != nil {
		return "", err
	}
	name := report.FileName(f, "csv")
	key, err := s.archive.Save(ctx, name, "text/csv; charset=utf-8", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to archive report: %w", err)
	}
	s.metrics.ReportsArchived.Inc()
	s.logger.Info("report archived", "key", key, "name", name)
	return key, nil
}

// ListArchivedReports lists previously exported reports.
func (s *FieldService) ListArchivedReports(ctx context.Context) ([]archive.Entry, error) {
	if s.archive == nil {
		return nil, ErrArchiveNotConfigured
	}
	return s.archive.List(ctx)
}

// OpenArchivedReport returns a reader for a previously exported report and
// its content type. The caller must close the reader.
func (s *FieldService) OpenArchivedReport(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if s.archive == nil {
		return nil, "", ErrArchiveNotConfigured
	}
	return s.archive.Get(ctx, key)
}

// DeleteArchivedReport removes an exported report from the archive.
func (s *FieldService) DeleteArchivedReport(ctx context.Context, key string) error {
	if s.archive == nil {
		return ErrArchiveNotConfigured
	}
	if err := s.archive.Delete(ctx, key); err != nil {
		return err
	}
	s.logger.Info("archived report deleted", "key", key)
	return nil
}

// CaptionPhoto describes a photo given as a data URI. It never fails: when
// no description can be produced a fallback message is returned instead.
func (s *FieldService) CaptionPhoto(ctx context.Context, dataURI string) string {
	mimeType, data, err := vision.DecodeDataURI(dataURI)
	if err != nil {
		s.logger.Warn("caption input is not a valid image", "error", err)
		s.metrics.CaptionOutcome(metrics.CaptionEmpty)
		return CaptionEmpty
	}
	return s.CaptionImage(ctx, data, mimeType)
}

// CaptionImage describes raw image bytes, with the same fallbacks as
// CaptionPhoto.
func (s *FieldService) CaptionImage(ctx context.Context, data []byte, mimeType string) string {
	if s.captioner == nil {
		s.metrics.CaptionOutcome(metrics.CaptionNotConfigured)
		return CaptionNotConfigured
	}

	s.logger.Info("caption started", "mime_type", mimeType, "bytes", len(data))
	raw, err := s.captioner.Describe(ctx, bytes.NewReader(data), mimeType)
	if err != nil {
		s.logger.Error("caption failed", "error", err)
		s.metrics.CaptionOutcome(metrics.CaptionFailed)
		return CaptionUnreachable
	}
	caption := vision.CleanCaption(raw)
	if caption == "" {
		s.metrics.CaptionOutcome(metrics.CaptionEmpty)
		return CaptionEmpty
	}
	s.metrics.CaptionOutcome(metrics.CaptionOK)
	s.logger.Info("caption complete", "chars", len(caption))
	return caption
}
