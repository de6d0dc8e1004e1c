// Package main hosts the scenetrack CLI entrypoint and command graph.
//
// Each invocation resolves configuration once, opens the SQLite store, and
// for document commands holds a session (and its document lock) for the
// duration of the command. Read commands accept --json for machine-readable
// output; everything else renders tables for the terminal.
//
// Keep this package lean: behaviour lives in internal/session and the
// packages below it, and commands here only parse arguments and render
// results.
package main
