// Package sceneutil holds the deterministic helpers used when a scene is
// created: its highlight colour, a speaking-rate duration estimate and a short
// content hash.
//
// All functions are pure. Color is keyed by the scene's creation index, so the
// same index always yields the same colour, but nothing keeps a scene's colour
// stable if indices are reassigned after deletions.
package sceneutil
