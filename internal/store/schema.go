package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion tracks schema.sql. There are no migrations: a database
// written under another version is rejected with ErrSchemaMismatch.
const schemaVersion = 1

// schemaTables are the tables every version-1 database holds besides
// schema_version.
var schemaTables = []string{"documents", "scenes", "format_marks"}

// initSchema creates the tables of an empty database, or checks that an
// existing one carries the current version and every document table.
func (s *Store) initSchema(ctx context.Context) error {
	version, err := s.storedVersion(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
				return fmt.Errorf("create tables: %w", err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
				return fmt.Errorf("record schema version: %w", err)
			}
			return nil
		})
	}
	if err != nil {
		return err
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: %s has version %d, want %d (delete the database to start over)",
			ErrSchemaMismatch, s.path, version, schemaVersion)
	}

	missing, err := s.missingTables(ctx)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks tables %s", ErrSchemaMismatch, s.path, strings.Join(missing, ", "))
	}
	return nil
}

// storedVersion returns sql.ErrNoRows for a database that was never
// initialized.
func (s *Store) storedVersion(ctx context.Context) (int, error) {
	var present int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'",
	).Scan(&present); err != nil {
		return 0, fmt.Errorf("look up schema_version: %w", err)
	}
	if present == 0 {
		return 0, sql.ErrNoRows
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s has an empty schema_version table", ErrSchemaMismatch, s.path)
		}
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func (s *Store) missingTables(ctx context.Context) ([]string, error) {
	var missing []string
	for _, name := range schemaTables {
		var n int
		if err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
		).Scan(&n); err != nil {
			return nil, fmt.Errorf("look up table %s: %w", name, err)
		}
		if n == 0 {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
