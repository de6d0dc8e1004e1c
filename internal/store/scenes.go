package store

import (
	"context"
	"database/sql"
	"fmt"

	"scenetrack/internal/scene"
)

const sceneColumns = `id, start_offset, end_offset, color, content_hash, description, location_type,
	time_of_day, location_name, exterior, day, duration_seconds, notes`

// ListScenes returns the scenes of a document in creation order.
func (s *Store) ListScenes(ctx context.Context, docID string) ([]scene.Scene, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sceneColumns+` FROM scenes WHERE document_id = ? ORDER BY position, id`, docID)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer rows.Close()

	var scenes []scene.Scene
	for rows.Next() {
		sc, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		scenes = append(scenes, sc)
	}
	return scenes, rows.Err()
}

// InsertScene appends a scene to a document.
func (s *Store) InsertScene(ctx context.Context, docID string, sc scene.Scene) error {
	ctx = ensureContext(ctx)
	now := timestamp()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var position int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(position) + 1, 0) FROM scenes WHERE document_id = ?`, docID,
		).Scan(&position); err != nil {
			return fmt.Errorf("next scene position: %w", err)
		}
		return insertScene(ctx, tx, docID, position, sc, now)
	})
}

// UpdateScene rewrites every stored field of sc.
func (s *Store) UpdateScene(ctx context.Context, docID string, sc scene.Scene) error {
	res, err := s.execWithRetry(ctx,
		`UPDATE scenes SET start_offset = ?, end_offset = ?, color = ?, content_hash = ?, description = ?,
			location_type = ?, time_of_day = ?, location_name = ?, exterior = ?, day = ?,
			duration_seconds = ?, notes = ?, updated_at = ?
		 WHERE id = ? AND document_id = ?`,
		sc.Start, sc.End, sc.Color, nullableString(sc.ContentHash), sc.Description,
		sc.LocationType, nullableString(sc.TimeOfDay), nullableString(sc.LocationName),
		boolToInt(sc.Exterior), boolToInt(sc.Day), sc.DurationSeconds, nullableString(sc.Notes),
		timestamp(), sc.ID, docID,
	)
	if err != nil {
		return fmt.Errorf("update scene: %w", err)
	}
	return requireAffected(res, "scene "+sc.ID)
}

// DeleteScene removes one scene.
func (s *Store) DeleteScene(ctx context.Context, docID, sceneID string) error {
	res, err := s.execWithRetry(ctx, `DELETE FROM scenes WHERE id = ? AND document_id = ?`, sceneID, docID)
	if err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	return requireAffected(res, "scene "+sceneID)
}

// ClearScenes removes every scene of a document and returns how many were removed.
func (s *Store) ClearScenes(ctx context.Context, docID string) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM scenes WHERE document_id = ?`, docID)
	if err != nil {
		return 0, fmt.Errorf("clear scenes: %w", err)
	}
	return res.RowsAffected()
}

func insertScene(ctx context.Context, tx *sql.Tx, docID string, position int, sc scene.Scene, now string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO scenes (`+sceneColumns+`, document_id, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.Start, sc.End, sc.Color, nullableString(sc.ContentHash), sc.Description,
		sc.LocationType, nullableString(sc.TimeOfDay), nullableString(sc.LocationName),
		boolToInt(sc.Exterior), boolToInt(sc.Day), sc.DurationSeconds, nullableString(sc.Notes),
		docID, position, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert scene %s: %w", sc.ID, err)
	}
	return nil
}

func scanScene(scanner rowScanner) (scene.Scene, error) {
	var (
		sc           scene.Scene
		contentHash  sql.NullString
		timeOfDay    sql.NullString
		locationName sql.NullString
		notes        sql.NullString
		exterior     int
		day          int
	)
	if err := scanner.Scan(
		&sc.ID,
		&sc.Start,
		&sc.End,
		&sc.Color,
		&contentHash,
		&sc.Description,
		&sc.LocationType,
		&timeOfDay,
		&locationName,
		&exterior,
		&day,
		&sc.DurationSeconds,
		&notes,
	); err != nil {
		return scene.Scene{}, err
	}
	sc.ContentHash = contentHash.String
	sc.TimeOfDay = timeOfDay.String
	sc.LocationName = locationName.String
	sc.Notes = notes.String
	sc.Exterior = exterior != 0
	sc.Day = day != 0
	return sc, nil
}
