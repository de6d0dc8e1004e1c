package store

import (
	"context"
	"database/sql"
	"fmt"

	"scenetrack/internal/decoration"
)

// SaveMarks replaces the stored format marks of a document.
func (s *Store) SaveMarks(ctx context.Context, docID string, marks decoration.Marks) error {
	ctx = ensureContext(ctx)
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM format_marks WHERE document_id = ?`, docID); err != nil {
			return fmt.Errorf("clear marks: %w", err)
		}
		for _, family := range decoration.Families {
			for _, run := range marks.Family(family).Runs() {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO format_marks (document_id, family, start_offset, end_offset, value) VALUES (?, ?, ?, ?, ?)`,
					docID, string(family), run.Start, run.End, run.Value,
				); err != nil {
					return fmt.Errorf("insert %s mark: %w", family, err)
				}
			}
		}
		return nil
	})
}

// LoadMarks reads the format marks of a document. Rows with an unknown
// family are skipped.
func (s *Store) LoadMarks(ctx context.Context, docID string) (decoration.Marks, error) {
	ctx = ensureContext(ctx)
	var marks decoration.Marks
	rows, err := s.db.QueryContext(ctx,
		`SELECT family, start_offset, end_offset, value FROM format_marks
		 WHERE document_id = ? ORDER BY family, start_offset`, docID)
	if err != nil {
		return marks, fmt.Errorf("load marks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			family     string
			start, end int
			value      string
		)
		if err := rows.Scan(&family, &start, &end, &value); err != nil {
			return marks, fmt.Errorf("scan mark: %w", err)
		}
		if target := marks.Family(decoration.Family(family)); target != nil {
			target.Set(start, end, value)
		}
	}
	return marks, rows.Err()
}
