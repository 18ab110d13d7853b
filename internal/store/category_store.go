package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/fieldlog/internal/domain"
)

const collectionCategories = "service_types"

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns every category in insertion order.
func (s *CategoryStore) List(ctx context.Context) ([]domain.ServiceCategory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, icon, color_theme FROM service_types ORDER BY seq ASC
	`)
	if err != nil {
		return nil, unavailable("list categories", err)
	}
	defer rows.Close()

	categories := make([]domain.ServiceCategory, 0)
	for rows.Next() {
		var c domain.ServiceCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.ColorTheme); err != nil {
			return nil, unavailable("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate categories", err)
	}

	return categories, nil
}

// Upsert replaces the category with the same id in place, or appends it.
func (s *CategoryStore) Upsert(ctx context.Context, c domain.ServiceCategory) (domain.ServiceCategory, error) {
	if err := c.Normalize(); err != nil {
		return domain.ServiceCategory{}, err
	}
	if err := upsertCategory(ctx, s.db, c); err != nil {
		return domain.ServiceCategory{}, err
	}
	return c, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id domain.ID) error {
	return deleteByID(ctx, s.db, collectionCategories, id)
}

// Seed writes the default categories the first time it is called against a
// database. Later calls, including after every category has been deleted,
// do nothing.
func (s *CategoryStore) Seed(ctx context.Context) (bool, error) {
	return seedOnce(ctx, s.db, collectionCategories, func(tx *sql.Tx) error {
		for _, c := range DefaultCategories() {
			if err := upsertCategory(ctx, tx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertCategory(ctx context.Context, db execer, c domain.ServiceCategory) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO service_types (id, name, icon, color_theme) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			color_theme = excluded.color_theme
	`, c.ID, c.Name, c.Icon, c.ColorTheme)
	if err != nil {
		return unavailable(fmt.Sprintf("upsert category %s", c.ID), err)
	}
	return nil
}
