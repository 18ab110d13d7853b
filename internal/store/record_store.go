package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/vbonduro/fieldlog/internal/domain"
)

const collectionRecords = "service_records"

type RecordStore struct {
	db          *sql.DB
	onMalformed func(collection string)
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db, onMalformed: func(string) {}}
}

// OnMalformed registers fn to be called whenever List recovers from
// undecodable stored data.
func (s *RecordStore) OnMalformed(fn func(collection string)) {
	if fn != nil {
		s.onMalformed = fn
	}
}

const recordColumns = `id, category_id, occurred_at, location, notes, crew_name, photos, created_at`

// List returns every record, most recently written first.
//
// If any stored record cannot be decoded the whole collection is reported
// as empty and the failure is logged; database errors are returned.
func (s *RecordStore) List(ctx context.Context) ([]domain.ServiceRecord, error) {
	records, err := s.list(ctx)
	if err != nil {
		if isMalformed(err) {
			slog.Warn("stored records are malformed, treating collection as empty",
				"collection", collectionRecords, "error", err)
			s.onMalformed(collectionRecords)
			return []domain.ServiceRecord{}, nil
		}
		return nil, err
	}
	return records, nil
}

func (s *RecordStore) list(ctx context.Context) ([]domain.ServiceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM service_records ORDER BY seq DESC
	`)
	if err != nil {
		return nil, unavailable("list records", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	records := make([]domain.ServiceRecord, 0)
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate records", err)
	}

	return records, nil
}

// Get returns the record with id, or nil if there is none.
func (s *RecordStore) Get(ctx context.Context, id domain.ID) (*domain.ServiceRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM service_records WHERE id = ?
	`, id)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create stores r at the head of the collection. Records are never updated;
// a second Create with the same id fails with domain.ErrConflict.
func (s *RecordStore) Create(ctx context.Context, r domain.ServiceRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}

	photos := r.Photos
	if photos == nil {
		photos = []string{}
	}
	encoded, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("failed to encode photos: %w", err)
	}

	var categoryID sql.NullString
	if r.CategoryID != nil {
		categoryID = sql.NullString{String: r.CategoryID.String(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO service_records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, categoryID, r.OccurredAt, r.Location, r.Notes, r.CrewName, string(encoded), r.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("record %s: %w", r.ID, domain.ErrConflict)
		}
		return unavailable("create record", err)
	}
	return nil
}

func (s *RecordStore) Delete(ctx context.Context, id domain.ID) error {
	return deleteByID(ctx, s.db, collectionRecords, id)
}

func (s *RecordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_records`).Scan(&n); err != nil {
		return 0, unavailable("count records", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (domain.ServiceRecord, error) {
	var (
		r          domain.ServiceRecord
		categoryID sql.NullString
		photos     string
	)
	err := sc.Scan(&r.ID, &categoryID, &r.OccurredAt, &r.Location, &r.Notes, &r.CrewName, &photos, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return r, err
	}
	if err != nil {
		return r, unavailable("scan record", err)
	}

	if categoryID.Valid {
		r.CategoryID = domain.ID(categoryID.String).Ref()
	}
	if err := json.Unmarshal([]byte(photos), &r.Photos); err != nil {
		return r, fmt.Errorf("record %s photos: %w: %w", r.ID, domain.ErrMalformedData, err)
	}
	if r.Photos == nil {
		r.Photos = []string{}
	}
	return r, nil
}
