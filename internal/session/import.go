package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"scenetrack/internal/config"
	"scenetrack/internal/logging"
	"scenetrack/internal/scene"
	"scenetrack/internal/segment"
	"scenetrack/internal/store"
)

// InitialScenes builds the scenes a freshly imported text starts with. With
// auto segmentation every detected heading opens a scene; otherwise, or when
// no heading is found, one scene covers the whole text. Blank text gets none.
func InitialScenes(cfg *config.Config, text string) ([]scene.Scene, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	opts := createOptions(cfg)
	if cfg.Scenes.AutoSegment {
		var scenes []scene.Scene
		for _, b := range segment.Detect(text) {
			sc, err := scene.NewFromSelection(text, b.Start, b.End, len(scenes), opts)
			if errors.Is(err, scene.ErrInvalidRange) {
				continue
			}
			if err != nil {
				return nil, err
			}
			scenes = append(scenes, sc)
		}
		if len(scenes) > 0 {
			return scenes, nil
		}
	}
	return []scene.Scene{scene.NewWholeDocument(text, cfg.Scenes.FallbackLabel, opts)}, nil
}

// Import stores text as a new document with its initial scenes.
func Import(ctx context.Context, cfg *config.Config, st *store.Store, title, text string, logger *slog.Logger) (*store.Document, error) {
	scenes, err := InitialScenes(cfg, text)
	if err != nil {
		return nil, fmt.Errorf("build initial scenes: %w", err)
	}
	doc, err := st.CreateDocument(ctx, title, text, scenes)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	logging.NewComponentLogger(logger, "session").Info("document imported",
		logging.Args(
			logging.DocumentID(doc.ID),
			logging.String("title", doc.Title),
			logging.Int("runes", doc.Runes),
			logging.Int("scenes", len(scenes)),
			logging.Bool("auto_segment", cfg.Scenes.AutoSegment),
		)...,
	)
	return doc, nil
}
