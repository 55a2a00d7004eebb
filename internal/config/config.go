// Package config loads folding preferences from .jfold.toml files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"jfold/internal/fold"
)

// FileName is the name of the preferences file looked up by Find.
const FileName = ".jfold.toml"

// Environment overrides applied on top of the file.
const (
	EnvBegin      = "JFOLD_CUSTOM_REGION_BEGIN"
	EnvEnd        = "JFOLD_CUSTOM_REGION_END"
	EnvStructural = "JFOLD_STRUCTURAL"
)

var (
	ErrUnknownKey   = errors.New("unknown configuration key")
	ErrInvalidValue = errors.New("invalid configuration value")
)

type document struct {
	Folding fold.Preferences `toml:"folding"`
}

// Find walks up from startDir to locate .jfold.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadFile reads preferences from path. Keys the file does not set keep
// their defaults; keys that map to no preference are an error.
func LoadFile(path string) (fold.Preferences, error) {
	doc := document{Folding: fold.DefaultPreferences()}
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return fold.Preferences{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fold.Preferences{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	return doc.Folding, nil
}

// Load resolves the preferences for files under dir: the nearest
// .jfold.toml (or the defaults when there is none), then the environment.
// It returns the path of the file used, if any.
func Load(dir string) (fold.Preferences, string, error) {
	prefs := fold.DefaultPreferences()
	path, ok, err := Find(dir)
	if err != nil {
		return prefs, "", err
	}
	if ok {
		if prefs, err = LoadFile(path); err != nil {
			return prefs, path, err
		}
	}
	prefs, err = ApplyEnv(prefs, os.LookupEnv)
	return prefs, path, err
}

// ApplyEnv applies the JFOLD_* overrides found through lookup.
func ApplyEnv(prefs fold.Preferences, lookup func(string) (string, bool)) (fold.Preferences, error) {
	if v, ok := lookup(EnvBegin); ok {
		prefs.CustomRegionBegin = v
	}
	if v, ok := lookup(EnvEnd); ok {
		prefs.CustomRegionEnd = v
	}
	if v, ok := lookup(EnvStructural); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return prefs, fmt.Errorf("%s=%q: %w", EnvStructural, v, ErrInvalidValue)
		}
		prefs.UseStructuralExtraction = b
	}
	return prefs, nil
}

// Encode renders prefs as a .jfold.toml document.
func Encode(prefs fold.Preferences) ([]byte, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(document{Folding: prefs}); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
