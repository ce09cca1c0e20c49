package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.KeyValueStore = (*SnapshotsRepository)(nil)

// A SnapshotsRepository keeps key-value snapshots in the
// snapshots table of a postgres database.
type SnapshotsRepository struct {
	sqldb sqldb
}

func NewSnapshotsRepository(sqldb sqldb) SnapshotsRepository {
	return SnapshotsRepository{sqldb}
}

func (r SnapshotsRepository) Get(
	ctx context.Context, key string,
) ([]byte, error) {
	const op = "SnapshotsRepository.Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT value FROM snapshots WHERE key = $1;`

	var v []byte
	err := r.sqldb.QueryRowContext(ctx, query, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r SnapshotsRepository) Set(
	ctx context.Context, key string, value []byte,
) error {
	const op = "SnapshotsRepository.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`

	_, err := r.sqldb.ExecContext(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (r SnapshotsRepository) Delete(ctx context.Context, key string) error {
	const op = "SnapshotsRepository.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `DELETE FROM snapshots WHERE key = $1;`

	_, err := r.sqldb.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (r SnapshotsRepository) Close() {
	r.sqldb.Close()
}
