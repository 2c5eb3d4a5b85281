package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cellsketch/internal/doc"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	saveDir := filepath.Join(t.TempDir(), "sketches")
	path := writeConfig(t, fmt.Sprintf(`
save_directory = %q
default_file = "board.json"
log_level = "debug"
blink_ms = 200
palette = ["#000000", "#ff0000"]
`, saveDir))

	config, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.SaveDirectory != saveDir {
		t.Errorf("SaveDirectory = %q", config.SaveDirectory)
	}
	if config.DefaultFile != "board.json" {
		t.Errorf("DefaultFile = %q", config.DefaultFile)
	}
	if config.BlinkInterval() != 200*time.Millisecond {
		t.Errorf("BlinkInterval = %v", config.BlinkInterval())
	}
	if config.Level() != slog.LevelDebug {
		t.Errorf("Level = %v", config.Level())
	}

	paints, err := config.Paints()
	if err != nil {
		t.Fatal(err)
	}
	if len(paints) != numColors {
		t.Fatalf("got %d paints", len(paints))
	}
	if want := doc.Solid(color.RGBA{A: 255}); paints[0] != want {
		t.Errorf("paints[0] = %v", paints[0])
	}
	if want := doc.Solid(color.RGBA{R: 255, A: 255}); paints[1] != want {
		t.Errorf("paints[1] = %v", paints[1])
	}
	if paints[2].Hex() != defaultPalette[2] {
		t.Errorf("paints[2] = %v, want default %s", paints[2], defaultPalette[2])
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatal(err)
	}
	if config.DefaultFile != defaultFile || config.BlinkInterval() != defaultBlink {
		t.Errorf("got %+v, want defaults", config)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(writeConfig(t, "blink_ms = ")); err == nil {
		t.Error("broken TOML should fail")
	}

	config, err := loadConfig(writeConfig(t, `palette = ["#zzzzzz"]`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := config.Paints(); err == nil {
		t.Error("bad palette entry should fail")
	}
}

func TestConfigFallbacks(t *testing.T) {
	config, err := loadConfig(writeConfig(t, "blink_ms = -5\nlog_level = \"loud\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if config.BlinkInterval() != defaultBlink {
		t.Errorf("BlinkInterval = %v", config.BlinkInterval())
	}
	if config.Level() != slog.LevelInfo {
		t.Errorf("Level = %v", config.Level())
	}
}

func TestGetSavePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	config := &Config{SaveDirectory: dir}

	if got := config.GetSavePath("a.json"); got != filepath.Join(dir, "a.json") {
		t.Errorf("GetSavePath = %q", got)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("save directory not created: %v", err)
	}
	if got := config.GetSavePath("sub/a.json"); got != "sub/a.json" {
		t.Errorf("paths with a directory should pass through, got %q", got)
	}
	if got := (&Config{}).GetSavePath("a.json"); got != "a.json" {
		t.Errorf("no save directory: got %q", got)
	}
}
