package session

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"scenetrack/internal/anchor"
	"scenetrack/internal/config"
	"scenetrack/internal/decoration"
	"scenetrack/internal/logging"
	"scenetrack/internal/scene"
	"scenetrack/internal/store"
)

// Session is an open document. Methods are safe for concurrent use; every
// mutation is serialized and committed to the store before it becomes
// visible.
type Session struct {
	mu sync.Mutex

	store      *store.Store
	engine     *anchor.Engine
	logger     *slog.Logger
	lock       *flock.Flock
	lockPath   string
	policy     scene.OverlapPolicy
	createOpts scene.CreateOptions

	doc    *store.Document
	text   string
	digest string
	scenes scene.Set
	marks  decoration.Marks
	closed bool
}

// Open acquires the document lock and loads text, scenes and marks.
func Open(ctx context.Context, cfg *config.Config, st *store.Store, docID string, logger *slog.Logger) (*Session, error) {
	opts, err := EngineOptions(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := scene.ParseOverlapPolicy(cfg.Scenes.Overlap)
	if err != nil {
		return nil, fmt.Errorf("scenes.overlap: %w", err)
	}

	doc, err := st.ResolveDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	lockPath := filepath.Join(cfg.LockDir(), doc.ID+".lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, doc.ID)
	}

	scenes, err := st.ListScenes(ctx, doc.ID)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	marks, err := st.LoadMarks(ctx, doc.ID)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	sessionLogger := logging.NewComponentLogger(logger, "session").With(logging.Args(logging.DocumentID(doc.ID))...)
	s := &Session{
		store:      st,
		engine:     anchor.NewEngine(opts, logger),
		logger:     sessionLogger,
		lock:       lock,
		lockPath:   lockPath,
		policy:     policy,
		createOpts: createOptions(cfg),
		doc:        doc,
		text:       doc.Text,
		digest:     doc.Digest,
		scenes:     scene.NewSet(scenes...),
		marks:      marks,
	}
	sessionLogger.Debug("session opened",
		logging.Args(
			logging.Int("scenes", len(scenes)),
			logging.String("mode", string(opts.Mode)),
			logging.String("lock", lockPath),
		)...,
	)
	return s, nil
}

// Close releases the document lock. Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release document lock", logging.Args(logging.Error(err))...)
		return fmt.Errorf("release lock: %w", err)
	}
	s.logger.Debug("session closed")
	return nil
}

// Document returns the document row as loaded at open.
func (s *Session) Document() store.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.doc
}

// Text returns the committed text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Scenes returns the committed scene set.
func (s *Session) Scenes() scene.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenes
}

// Marks returns the committed format marks.
func (s *Session) Marks() decoration.Marks {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marks
}

// Decorations computes the decorations of the committed state, one list per
// line of text.
func (s *Session) Decorations() [][]decoration.Decoration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decoration.GenerateText(s.text, s.scenes.All(), s.marks)
}

// Outline lists the scenes in document order.
func (s *Session) Outline() []scene.OutlineEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenes.Outline(s.text)
}

// ApplyEdit replaces the document text. Scenes are re-anchored against the
// new text, and the text is committed together with the moved offsets. An
// edit that leaves the text unchanged returns an empty pass.
func (s *Session) ApplyEdit(ctx context.Context, text string) (anchor.Pass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return anchor.Pass{}, ErrClosed
	}

	digest := store.Digest(text)
	if digest == s.digest {
		s.logger.Debug("edit leaves text unchanged")
		return anchor.Pass{}, nil
	}

	pass := s.engine.ReanchorEdit(s.text, text, s.scenes.All())
	if err := s.store.UpdateDocumentText(ctx, s.doc.ID, text, pass.Updates); err != nil {
		return anchor.Pass{}, fmt.Errorf("commit edit: %w", err)
	}
	s.commitText(text, digest, pass)
	return pass, nil
}

// Reset restores the text captured at import and re-anchors the scenes
// against it. The restored text and the moved offsets commit together.
func (s *Session) Reset(ctx context.Context) (anchor.Pass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return anchor.Pass{}, ErrClosed
	}

	original := s.doc.OriginalText
	digest := store.Digest(original)
	if digest == s.digest {
		s.logger.Debug("text already matches original")
		return anchor.Pass{}, nil
	}

	pass := s.engine.ReanchorEdit(s.text, original, s.scenes.All())
	if err := s.store.UpdateDocumentText(ctx, s.doc.ID, original, pass.Updates); err != nil {
		return anchor.Pass{}, fmt.Errorf("reset document: %w", err)
	}
	s.commitText(original, digest, pass)
	return pass, nil
}

func (s *Session) commitText(text, digest string, pass anchor.Pass) {
	s.text = text
	s.digest = digest
	s.scenes = s.scenes.ApplyOffsets(pass.Updates)

	attrs := []logging.Attr{
		logging.Int("runes", len([]rune(text))),
		logging.Int("moved", pass.Count(anchor.StatusMoved)),
		logging.Int("stable", pass.Count(anchor.StatusStable)),
		logging.Int("unanchored", pass.Count(anchor.StatusUnanchored)),
		logging.Int("frozen", pass.Count(anchor.StatusFrozen)),
	}
	s.logger.Info("edit committed", logging.Args(attrs...)...)
}

// CreateScene adds a scene over [start, end) of the committed text. The
// configured overlap policy decides whether a selection that overlaps an
// existing scene is kept, rejected or clipped.
func (s *Session) CreateScene(ctx context.Context, start, end int) (scene.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return scene.Scene{}, ErrClosed
	}

	placedStart, placedEnd, err := s.scenes.Place(start, end, s.policy)
	if err != nil {
		return scene.Scene{}, err
	}
	sc, err := scene.NewFromSelection(s.text, placedStart, placedEnd, s.scenes.Len(), s.createOpts)
	if err != nil {
		return scene.Scene{}, err
	}
	next, err := s.scenes.Add(sc)
	if err != nil {
		return scene.Scene{}, err
	}
	if err := s.store.InsertScene(ctx, s.doc.ID, sc); err != nil {
		return scene.Scene{}, fmt.Errorf("persist scene: %w", err)
	}
	s.scenes = next
	s.logger.Info("scene created",
		logging.Args(
			logging.SceneID(sc.ID),
			logging.Int("start_offset", sc.Start),
			logging.Int("end_offset", sc.End),
			logging.String("description", sc.Description),
		)...,
	)
	return sc, nil
}

// SetBounds moves a scene to [start, end) of the committed text.
func (s *Session) SetBounds(ctx context.Context, id string, start, end int) (scene.Scene, error) {
	return s.mutateScene(ctx, id, func(set scene.Set) (scene.Set, error) {
		return set.SetBounds(id, start, end, len([]rune(s.text)))
	})
}

// UpdateLabels applies the non-nil labels to a scene.
func (s *Session) UpdateLabels(ctx context.Context, id string, labels scene.Labels) (scene.Scene, error) {
	return s.mutateScene(ctx, id, func(set scene.Set) (scene.Set, error) {
		return set.Update(id, labels)
	})
}

func (s *Session) mutateScene(ctx context.Context, id string, fn func(scene.Set) (scene.Set, error)) (scene.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return scene.Scene{}, ErrClosed
	}

	next, err := fn(s.scenes)
	if err != nil {
		return scene.Scene{}, err
	}
	sc, _ := next.Get(id)
	if err := s.store.UpdateScene(ctx, s.doc.ID, sc); err != nil {
		return scene.Scene{}, fmt.Errorf("persist scene: %w", err)
	}
	s.scenes = next
	logging.WithContext(logging.WithSceneID(ctx, id), s.logger).Debug("scene updated")
	return sc, nil
}

// DeleteScene removes a scene.
func (s *Session) DeleteScene(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	next, err := s.scenes.Remove(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteScene(ctx, s.doc.ID, id); err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	s.scenes = next
	logging.WithContext(logging.WithSceneID(ctx, id), s.logger).Info("scene deleted")
	return nil
}

// ClearScenes removes every scene and returns how many were removed.
func (s *Session) ClearScenes(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	if _, err := s.store.ClearScenes(ctx, s.doc.ID); err != nil {
		return 0, err
	}
	removed := s.scenes.Len()
	s.scenes = s.scenes.Clear()
	s.logger.Info("scenes cleared", logging.Args(logging.Int("removed", removed))...)
	return removed, nil
}

// ApplyFormat sets a format mark on [start, end) of the committed text. An
// empty value clears the range.
func (s *Session) ApplyFormat(ctx context.Context, family decoration.Family, start, end int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if total := len([]rune(s.text)); end > total {
		return fmt.Errorf("%w: range [%d, %d) past end of %d runes", decoration.ErrInvalidMark, start, end, total)
	}
	next := s.marks
	if err := next.Apply(family, start, end, value); err != nil {
		return err
	}
	if err := s.store.SaveMarks(ctx, s.doc.ID, next); err != nil {
		return fmt.Errorf("persist marks: %w", err)
	}
	s.marks = next
	s.logger.Debug("format applied",
		logging.Args(
			logging.String("family", string(family)),
			logging.Int("start_offset", start),
			logging.Int("end_offset", end),
			logging.String("value", value),
		)...,
	)
	return nil
}
