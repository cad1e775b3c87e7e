package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const presetsFileName = "extensions.yml"

// ErrUnknownPreset is returned when --preset names a preset that is not defined.
var ErrUnknownPreset = errors.New("unknown extension preset")

// ExtensionPreset is a named allow-list, e.g. "shaders" or "scripts".
type ExtensionPreset struct {
	Description string   `yaml:"description"`
	Extensions  []string `yaml:"extensions"`
}

// PresetMap maps preset names to their allow-lists.
type PresetMap map[string]ExtensionPreset

// presetSearchPaths lists directories checked for extensions.yml, in order.
func presetSearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "stsync"))
	}
	return append(paths, ".")
}

// findPresetsFile returns the first extensions.yml found in dirs, or "".
func findPresetsFile(dirs []string) string {
	for _, dir := range dirs {
		candidate := filepath.Join(dir, presetsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// loadPresets parses an extensions.yml file.
func loadPresets(path string) (PresetMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading preset file %s: %w", path, err)
	}

	var presets PresetMap
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("error parsing preset file %s: %w", path, err)
	}
	log.Debug().Str("file", path).Int("presets", len(presets)).Msg("loaded extension presets")
	return presets, nil
}

// Lookup returns the cleaned allow-list of the named preset.
func (m PresetMap) Lookup(name string) ([]string, error) {
	preset, ok := m[name]
	if !ok {
		names := make([]string, 0, len(m))
		for n := range m {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownPreset, name, strings.Join(names, ", "))
	}
	return cleanExtensions(preset.Extensions), nil
}

// resolvePreset loads presets from the standard locations and looks up name.
func resolvePreset(name string) ([]string, error) {
	path := findPresetsFile(presetSearchPaths())
	if path == "" {
		return nil, fmt.Errorf("%w %q: %s not found", ErrUnknownPreset, name, presetsFileName)
	}
	presets, err := loadPresets(path)
	if err != nil {
		return nil, err
	}
	return presets.Lookup(name)
}

// cleanExtensions trims blanks and a leading dot, dropping empty entries.
// Order is kept; the allow-list order decides the include pattern order.
func cleanExtensions(exts []string) []string {
	cleaned := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}
		cleaned = append(cleaned, ext)
	}
	return cleaned
}
