package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vbonduro/fieldlog/internal/domain"
)

// deleteByID removes one row by id from table. table is always one of the
// package's collection constants, never caller input.
func deleteByID(ctx context.Context, db *sql.DB, table string, id domain.ID) error {
	result, err := db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return unavailable(fmt.Sprintf("delete %s from %s", id, table), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return unavailable("get rows affected", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", table, id, domain.ErrNotFound)
	}

	return nil
}

// seedOnce runs fill and records a marker for collection in one
// transaction, unless the marker already exists.
func seedOnce(ctx context.Context, db *sql.DB, collection string, fill func(tx *sql.Tx) error) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, unavailable("begin seed transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	var seeded int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM seed_markers WHERE collection = ?
	`, collection).Scan(&seeded)
	if err != nil {
		return false, unavailable("check seed marker", err)
	}
	if seeded > 0 {
		return false, nil
	}

	if err := fill(tx); err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO seed_markers (collection, seeded_at) VALUES (?, ?)
	`, collection, time.Now().UnixMilli())
	if err != nil {
		return false, unavailable("record seed marker", err)
	}

	if err := tx.Commit(); err != nil {
		return false, unavailable("commit seed", err)
	}
	return true, nil
}
