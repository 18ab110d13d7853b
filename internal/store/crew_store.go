package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/fieldlog/internal/domain"
)

const collectionCrews = "service_teams"

type CrewStore struct {
	db *sql.DB
}

func NewCrewStore(db *sql.DB) *CrewStore {
	return &CrewStore{db: db}
}

func (s *CrewStore) List(ctx context.Context) ([]domain.Crew, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name FROM service_teams ORDER BY seq ASC
	`)
	if err != nil {
		return nil, unavailable("list crews", err)
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, unavailable("scan crew", err)
		}
		crews = append(crews, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate crews", err)
	}

	return crews, nil
}

func (s *CrewStore) Upsert(ctx context.Context, c domain.Crew) (domain.Crew, error) {
	if err := c.Normalize(); err != nil {
		return domain.Crew{}, err
	}
	if err := upsertCrew(ctx, s.db, c); err != nil {
		return domain.Crew{}, err
	}
	return c, nil
}

func (s *CrewStore) Delete(ctx context.Context, id domain.ID) error {
	return deleteByID(ctx, s.db, collectionCrews, id)
}

func (s *CrewStore) Seed(ctx context.Context) (bool, error) {
	return seedOnce(ctx, s.db, collectionCrews, func(tx *sql.Tx) error {
		for _, c := range DefaultCrews() {
			if err := upsertCrew(ctx, tx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertCrew(ctx context.Context, db execer, c domain.Crew) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO service_teams (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, c.ID, c.Name)
	if err != nil {
		return unavailable(fmt.Sprintf("upsert crew %s", c.ID), err)
	}
	return nil
}
