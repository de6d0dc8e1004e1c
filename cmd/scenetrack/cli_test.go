package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"scenetrack/internal/scene"
	"scenetrack/internal/testsupport"
)

const script = "INT. KITCHEN - DAY\nMaria pours coffee and stares at the window.\n\nEXT. STREET - NIGHT\nRain falls on the empty road.\n"

type docJSON struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	SceneCount int    `json:"scene_count"`
	Runes      int    `json:"runes"`
}

func importScript(t *testing.T, env *cliTestEnv) docJSON {
	t.Helper()
	path := testsupport.WriteText(t, filepath.Join(env.baseDir, "pilot.txt"), script)
	out, _, err := runCLI(t, []string{"import", "--segment", "--json", path}, env.configPath, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	doc := decodeJSON[docJSON](t, out)
	if doc.Title != "pilot" || doc.SceneCount != 2 || doc.Runes != 115 {
		t.Fatalf("unexpected import result: %+v", doc)
	}
	return doc
}

func TestImportAndListDocuments(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := importScript(t, env)

	out, _, err := runCLI(t, []string{"docs", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("docs: %v", err)
	}
	docs := decodeJSON[[]docJSON](t, out)
	if len(docs) != 1 || docs[0].ID != doc.ID {
		t.Fatalf("unexpected docs: %+v", docs)
	}

	out, _, err = runCLI(t, []string{"docs"}, env.configPath, "")
	if err != nil {
		t.Fatalf("docs table: %v", err)
	}
	requireContains(t, out, doc.ID[:8])
	requireContains(t, out, "pilot")
}

func TestImportFromStdinWithoutSegmentation(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"import", "--title", "Draft", "-"}, env.configPath, script)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, `"Draft" (115 runes, 1 scenes)`)
}

func TestEditReanchorsScenes(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := importScript(t, env)

	edited := testsupport.WriteText(t, filepath.Join(env.baseDir, "edited.txt"), "COLD OPEN\n\n"+script)
	out, _, err := runCLI(t, []string{"edit", doc.ID[:8], edited}, env.configPath, "")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	requireContains(t, out, "2 scenes: 2 moved")

	out, _, err = runCLI(t, []string{"scenes", "--json", doc.ID}, env.configPath, "")
	if err != nil {
		t.Fatalf("scenes: %v", err)
	}
	scenes := decodeJSON[[]scene.Scene](t, out)
	if len(scenes) != 2 || scenes[0].Start != 11 || scenes[1].Start != 76 {
		t.Fatalf("unexpected scenes after edit: %+v", scenes)
	}

	out, _, err = runCLI(t, []string{"edit", doc.ID, "-"}, env.configPath, "COLD OPEN\n\n"+script)
	if err != nil {
		t.Fatalf("repeat edit: %v", err)
	}
	requireContains(t, out, "Text unchanged")

	out, _, err = runCLI(t, []string{"reset", doc.ID}, env.configPath, "")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	requireContains(t, out, "2 moved")
}

func TestSceneCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := importScript(t, env)

	out, _, err := runCLI(t, []string{"scene", "add", "--json", doc.ID, "19", "40"}, env.configPath, "")
	if err != nil {
		t.Fatalf("scene add: %v", err)
	}
	added := decodeJSON[scene.Scene](t, out)
	if added.Start != 19 || added.End != 40 {
		t.Fatalf("unexpected scene: %+v", added)
	}

	out, _, err = runCLI(t, []string{"scene", "set", doc.ID, added.ID[:8], "--type", "ext", "--notes", "insert shot"}, env.configPath, "")
	if err != nil {
		t.Fatalf("scene set: %v", err)
	}
	requireContains(t, out, "Updated scene "+added.ID)

	if _, _, err := runCLI(t, []string{"scene", "set", doc.ID, added.ID}, env.configPath, ""); err == nil {
		t.Fatal("expected error when no change is requested")
	}

	out, _, err = runCLI(t, []string{"outline", doc.ID}, env.configPath, "")
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	requireContains(t, out, "KITCHEN")

	out, _, err = runCLI(t, []string{"scene", "rm", doc.ID, added.ID}, env.configPath, "")
	if err != nil {
		t.Fatalf("scene rm: %v", err)
	}
	requireContains(t, out, "Deleted scene")

	_, _, err = runCLI(t, []string{"scene", "rm", doc.ID, added.ID}, env.configPath, "")
	if !errors.Is(err, scene.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	out, _, err = runCLI(t, []string{"scene", "clear", doc.ID}, env.configPath, "")
	if err != nil {
		t.Fatalf("scene clear: %v", err)
	}
	requireContains(t, out, "Deleted 2 scenes")
}

func TestFormatAndDecorate(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := importScript(t, env)

	out, _, err := runCLI(t, []string{"format", doc.ID, "bold", "0", "4"}, env.configPath, "")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	requireContains(t, out, "Set bold on [0, 4)")

	if _, _, err := runCLI(t, []string{"format", doc.ID, "underline", "0", "4"}, env.configPath, ""); err == nil {
		t.Fatal("expected unknown family to fail")
	}

	out, _, err = runCLI(t, []string{"decorate", "--json", doc.ID}, env.configPath, "")
	if err != nil {
		t.Fatalf("decorate: %v", err)
	}
	lines := decodeJSON[[]lineDecorations](t, out)
	if len(lines) == 0 || lines[0].Line != 0 {
		t.Fatalf("unexpected decorations: %+v", lines)
	}
	bold := 0
	for _, d := range lines[0].Decorations {
		if d.Attr.Kind == "bold" {
			bold++
		}
	}
	if bold != 4 {
		t.Fatalf("expected 4 bold decorations on line 0, got %d", bold)
	}
}

func TestHeadingCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"heading", "EXT. BEACH - NIGHT\nWaves."}, "", "")
	if err != nil {
		t.Fatalf("heading: %v", err)
	}
	requireContains(t, out, "Exterior:     yes")
	requireContains(t, out, "Day:          no")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.cfg.Paths.DataDir)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists error, got %v", err)
	}
}
