// Package config discovers and loads donk config files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/donk/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.ConfigLoader for YAML and TOML files.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new configuration loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{
		Logger: log,
	}
}

// Discover resolves the config file. An explicit path is taken relative to
// cwd and must exist; otherwise the first of domain.ConfigFileNames found in
// cwd wins.
func (l *Loader) Discover(cwd, explicit string) (string, error) {
	if explicit != "" {
		path := explicit
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if !isFile(path) {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "config file does not exist"), "path", path)
		}
		return path, nil
	}

	var found []string
	for _, name := range domain.ConfigFileNames {
		if path := filepath.Join(cwd, name); isFile(path) {
			found = append(found, path)
		}
	}
	if len(found) == 0 {
		return "", zerr.With(
			zerr.Wrap(domain.ErrConfigNotFound, "none of "+strings.Join(domain.ConfigFileNames, ", ")+" exists"),
			"dir", cwd,
		)
	}
	if len(found) > 1 {
		l.Logger.Warn(fmt.Sprintf("using %s, ignoring %s",
			filepath.Base(found[0]), strings.Join(baseNames(found[1:]), ", ")))
	}
	return found[0], nil
}

// Load reads the config file at path. Files ending in .toml are decoded as
// TOML, everything else as YAML.
func (l *Loader) Load(path string) (*domain.Commands, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "config file does not exist"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	decode := decodeYAML
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		decode = decodeTOML
	}

	cmds, s, err := decode(path, data)
	if err != nil {
		return nil, err
	}
	return finish(path, cmds, s)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
