package main

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"cellsketch/internal/doc"
)

type Config struct {
	SaveDirectory string   `toml:"save_directory"`
	DefaultFile   string   `toml:"default_file"`
	LogFile       string   `toml:"log_file"`
	LogLevel      string   `toml:"log_level"`
	BlinkMS       int      `toml:"blink_ms"`
	Palette       []string `toml:"palette"`
}

func defaultConfig() *Config {
	return &Config{
		DefaultFile: defaultFile,
		LogLevel:    "info",
		BlinkMS:     int(defaultBlink / time.Millisecond),
		Palette:     append([]string(nil), defaultPalette...),
	}
}

// loadConfig reads the TOML config at path, or ~/.cellsketchrc when path is
// empty. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if path == "" {
		if err != nil {
			return config, nil
		}
		path = filepath.Join(homeDir, configName)
	}

	md, err := toml.DecodeFile(path, config)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("unknown config key", "key", key.String(), "file", path)
	}

	config.SaveDirectory = expandPath(config.SaveDirectory, homeDir)
	config.LogFile = expandPath(config.LogFile, homeDir)
	if config.DefaultFile == "" {
		config.DefaultFile = defaultFile
	}
	if config.BlinkMS <= 0 {
		config.BlinkMS = int(defaultBlink / time.Millisecond)
	}
	if len(config.Palette) == 0 {
		config.Palette = append([]string(nil), defaultPalette...)
	}
	return config, nil
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetSavePath places a bare file name in the save directory, creating the
// directory on demand. Paths with a directory part are returned unchanged.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.Base(filename) != filename {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

func (c *Config) BlinkInterval() time.Duration {
	return time.Duration(c.BlinkMS) * time.Millisecond
}

func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Paints parses the palette. Only the first numColors entries are bound to
// keys; missing slots fall back to the default palette.
func (c *Config) Paints() ([]doc.Paint, error) {
	out := make([]doc.Paint, numColors)
	for i := range out {
		hex := defaultPalette[i]
		if i < len(c.Palette) {
			hex = c.Palette[i]
		}
		col, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d %q: %w", i+1, hex, err)
		}
		r, g, b := col.RGB255()
		out[i] = doc.Solid(color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return out, nil
}
