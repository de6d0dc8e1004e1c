package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"scenetrack/internal/scene"
)

// Document is a persisted document row.
type Document struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Text         string    `json:"-"`
	OriginalText string    `json:"-"`
	Digest       string    `json:"digest"`
	SceneCount   int       `json:"scene_count"`
	Runes        int       `json:"runes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Digest returns the hex BLAKE3 digest of text. Sessions compare digests to
// skip re-anchoring when an edit leaves the text unchanged.
func Digest(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

const documentColumns = "id, title, text, original_text, digest, created_at, updated_at"

// CreateDocument stores a new document together with its initial scenes.
func (s *Store) CreateDocument(ctx context.Context, title, text string, scenes []scene.Scene) (*Document, error) {
	ctx = ensureContext(ctx)
	now := timestamp()
	doc := &Document{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(title),
		Text:         text,
		OriginalText: text,
		Digest:       Digest(text),
		SceneCount:   len(scenes),
		Runes:        len([]rune(text)),
		CreatedAt:    parseTimeString(now),
		UpdatedAt:    parseTimeString(now),
	}
	if doc.Title == "" {
		doc.Title = "Untitled"
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			doc.ID, doc.Title, text, text, doc.Digest, now, now,
		); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		for i, sc := range scenes {
			if err := insertScene(ctx, tx, doc.ID, i, sc, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument fetches a document by its full ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+`, (SELECT COUNT(1) FROM scenes WHERE document_id = documents.id)
		 FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// ResolveDocument returns the document whose ID equals or starts with ref.
func (s *Store) ResolveDocument(ctx context.Context, ref string) (*Document, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty document id: %w", ErrNotFound)
	}
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM documents WHERE substr(id, 1, ?) = ? ORDER BY id = ? DESC, id LIMIT 2`,
		utf8.RuneCountInString(ref), ref, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve document: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan document id: %w", err)
		}
		if id == ref {
			return s.GetDocument(ctx, id)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolve document: %w", err)
	}
	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("document %s: %w", ref, ErrNotFound)
	case 1:
		return s.GetDocument(ctx, ids[0])
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
	}
}

// ListDocuments returns all documents, most recently updated first.
func (s *Store) ListDocuments(ctx context.Context) ([]*Document, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+documentColumns+`, (SELECT COUNT(1) FROM scenes WHERE document_id = documents.id)
		 FROM documents ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateDocumentText replaces the document text and applies the offset
// updates of the re-anchoring pass in the same transaction.
func (s *Store) UpdateDocumentText(ctx context.Context, id, text string, updates []scene.OffsetUpdate) error {
	ctx = ensureContext(ctx)
	now := timestamp()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE documents SET text = ?, digest = ?, updated_at = ? WHERE id = ?`,
			text, Digest(text), now, id)
		if err != nil {
			return fmt.Errorf("update document text: %w", err)
		}
		if err := requireAffected(res, "document "+id); err != nil {
			return err
		}
		return applyOffsets(ctx, tx, id, updates, now)
	})
}

// DeleteDocument removes a document with its scenes and marks.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.execWithRetry(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return requireAffected(res, "document "+id)
}

func applyOffsets(ctx context.Context, tx *sql.Tx, docID string, updates []scene.OffsetUpdate, now string) error {
	for _, u := range updates {
		if _, err := tx.ExecContext(ctx,
			`UPDATE scenes SET start_offset = ?, end_offset = ?, updated_at = ? WHERE id = ? AND document_id = ?`,
			u.Start, u.End, now, u.ID, docID,
		); err != nil {
			return fmt.Errorf("update scene %s offsets: %w", u.ID, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(scanner rowScanner) (*Document, error) {
	var (
		doc       Document
		createdAt string
		updatedAt string
	)
	if err := scanner.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Text,
		&doc.OriginalText,
		&doc.Digest,
		&createdAt,
		&updatedAt,
		&doc.SceneCount,
	); err != nil {
		return nil, err
	}
	doc.Runes = len([]rune(doc.Text))
	doc.CreatedAt = parseTimeString(createdAt)
	doc.UpdatedAt = parseTimeString(updatedAt)
	return &doc, nil
}
