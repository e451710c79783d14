// Package config reads and writes the viewer settings file. The file has
// exactly four lines: output name, display mode, distance and whether the
// preview window is shown.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oliverbestmann/vrdesk/anchor"
)

var ErrMalformed = errors.New("malformed config")

const (
	windowEnabled  = "enabled"
	windowDisabled = "disabled"
)

type Config struct {
	// Output names the display to capture, empty selects the first one.
	Output string

	Mode     anchor.Mode
	Distance float32

	ShowWindow bool
}

func Default() Config {
	return Config{
		Mode:       anchor.Flat,
		Distance:   anchor.DefaultDistance,
		ShowWindow: true,
	}
}

// DefaultPath returns the location of the config file in the users home
// directory. The parent directory is created if missing.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("lookup home directory: %w", err)
	}

	dir := filepath.Join(home, ".config", "vrdesktop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(dir, "vrdesktop.cfg"), nil
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	buf, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Default(), nil

	case err != nil:
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg, err := Parse(buf)
	if err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}

	return cfg, nil
}

func Parse(buf []byte) (Config, error) {
	var lines []string

	scanner := bufio.NewScanner(bytes.NewReader(buf))
	for scanner.Scan() && len(lines) < 4 {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return Config{}, err
	}

	if len(lines) < 4 {
		return Config{}, fmt.Errorf("%w: expected 4 lines, got %d", ErrMalformed, len(lines))
	}

	cfg := Config{Output: lines[0]}

	mode, err := anchor.ParseMode(lines[1])
	if err != nil {
		return Config{}, fmt.Errorf("%w: line 2: %w", ErrMalformed, err)
	}

	cfg.Mode = mode

	distance, err := strconv.ParseFloat(strings.TrimSpace(lines[2]), 32)
	if err != nil || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return Config{}, fmt.Errorf("%w: line 3: invalid distance %q", ErrMalformed, lines[2])
	}

	cfg.Distance = float32(distance)

	switch lines[3] {
	case windowEnabled:
		cfg.ShowWindow = true
	case windowDisabled:
		cfg.ShowWindow = false
	default:
		return Config{}, fmt.Errorf("%w: line 4: invalid window state %q", ErrMalformed, lines[3])
	}

	return cfg, nil
}

func (cfg Config) Format() []byte {
	window := windowDisabled
	if cfg.ShowWindow {
		window = windowEnabled
	}

	var buf bytes.Buffer
	buf.WriteString(cfg.Output + "\n")
	buf.WriteString(cfg.Mode.String() + "\n")
	buf.WriteString(strconv.FormatFloat(float64(cfg.Distance), 'g', -1, 32) + "\n")
	buf.WriteString(window + "\n")

	return buf.Bytes()
}

// Save writes the config to path. The file is replaced atomically.
func Save(path string, cfg Config) error {
	if strings.ContainsAny(cfg.Output, "\r\n") {
		return fmt.Errorf("output name %q contains a line break", cfg.Output)
	}

	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, cfg.Format(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return errors.Join(fmt.Errorf("replace config: %w", err), os.Remove(tmp))
	}

	return nil
}
