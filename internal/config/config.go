// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the layered JSON configuration: the embedded defaults,
// then the user file in the home directory, then the project file in the working directory.
// Later layers override earlier ones key by key.
package config

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/matt-FFFFFF/arcli/internal/ctxlog"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

//go:embed defaults.json
var defaultsJSON []byte

// FS is the filesystem configuration files are read from and written to. Replaced in tests.
var FS afero.Fs = afero.NewOsFs()

// Configuration keys.
const (
	KeyCommands       = "commands"
	KeyTemplates      = "templates"
	KeyPackageManager = "packageManager"
	KeyUpdated        = "updated"
)

const (
	// UserDir is the directory below the home directory holding the user file.
	UserDir = ".arcli"
	// ProjectDir is the directory below the working directory holding the project file.
	ProjectDir = ".cli"
	// FileName is the name of every configuration file.
	FileName = "config.json"
)

// Layers lists the command search layers in precedence order, lowest first.
var Layers = []string{"root", "core", "project", "home"}

var (
	// ErrReadDefaults is returned when the embedded defaults cannot be parsed.
	ErrReadDefaults = errors.New("failed to read default configuration")
	// ErrMergeFile is returned when a configuration file exists but cannot be merged.
	ErrMergeFile = errors.New("failed to merge configuration file")
	// ErrWriteUserFile is returned when the user file cannot be written.
	ErrWriteUserFile = errors.New("failed to write user configuration")
	// ErrWriteProjectFile is returned when a project file cannot be written.
	ErrWriteProjectFile = errors.New("failed to write project configuration")
)

// Config is the merged configuration.
type Config struct {
	v        *viper.Viper
	home     string
	cwd      string
	files    []string
	userFile string
}

// UserFile returns the path of the user configuration file below home.
func UserFile(home string) string {
	return filepath.Join(home, UserDir, FileName)
}

// ProjectFile returns the path of the project configuration file below cwd.
func ProjectFile(cwd string) string {
	return filepath.Join(cwd, ProjectDir, FileName)
}

// Load merges the defaults with the user and project files. Missing files are skipped.
func Load(ctx context.Context, home, cwd string) (*Config, error) {
	v := viper.New()
	v.SetFs(FS)
	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(defaultsJSON)); err != nil {
		return nil, errors.Join(ErrReadDefaults, err)
	}

	cfg := &Config{
		v:        v,
		home:     home,
		cwd:      cwd,
		userFile: UserFile(home),
	}

	for _, f := range []string{cfg.userFile, ProjectFile(cwd)} {
		ok, err := afero.Exists(FS, f)
		if err != nil || !ok {
			continue
		}

		v.SetConfigFile(f)

		if err := v.MergeInConfig(); err != nil {
			return nil, errors.Join(ErrMergeFile, fmt.Errorf("%s: %w", f, err))
		}

		ctxlog.Debug(ctx, "merged configuration file", "path", f)
		cfg.files = append(cfg.files, f)
	}

	return cfg, nil
}

// Default returns the embedded defaults only.
func Default() *Config {
	v := viper.New()
	v.SetConfigType("json")
	_ = v.ReadConfig(bytes.NewReader(defaultsJSON))

	return &Config{v: v}
}

// Files returns the configuration files merged on top of the defaults.
func (c *Config) Files() []string {
	return slices.Clone(c.files)
}

// Get returns a value by dotted key, or nil.
func (c *Config) Get(key string) any {
	return c.v.Get(key)
}

// IsSet reports whether key has a value in any layer.
func (c *Config) IsSet(key string) bool {
	return c.v.IsSet(key)
}

// String returns a string value by dotted key.
func (c *Config) String(key string) string {
	return c.v.GetString(key)
}

// Keys returns every leaf key, sorted.
func (c *Config) Keys() []string {
	keys := c.v.AllKeys()
	slices.Sort(keys)

	return keys
}

// All returns the merged settings as a nested map.
func (c *Config) All() map[string]any {
	return c.v.AllSettings()
}

// SearchPaths returns the command search path templates for one layer.
func (c *Config) SearchPaths(layer string) []string {
	return c.v.GetStringSlice(KeyCommands + "." + layer)
}

// Template returns the archive URL for a project template.
func (c *Config) Template(name string) string {
	return c.v.GetString(KeyTemplates + "." + name)
}

// PackageManager returns the package manager executable.
func (c *Config) PackageManager() string {
	return c.v.GetString(KeyPackageManager)
}

// Updated returns the last update check time, zero if never set.
func (c *Config) Updated() time.Time {
	return c.v.GetTime(KeyUpdated)
}

// SetUserValue writes key into the user file and into the merged view.
// The updated timestamp is refreshed on every write.
func (c *Config) SetUserValue(key string, value any) error {
	now := time.Now().UTC().Format(time.RFC3339)

	if err := mergeWrite(FS, c.userFile, map[string]any{key: value, KeyUpdated: now}); err != nil {
		return errors.Join(ErrWriteUserFile, err)
	}

	c.v.Set(key, value)
	c.v.Set(KeyUpdated, now)

	return nil
}

// WriteProjectFile merges values into the project file below dir on fs, creating it if needed.
func WriteProjectFile(fs afero.Fs, dir string, values map[string]any) error {
	if err := mergeWrite(fs, ProjectFile(dir), values); err != nil {
		return errors.Join(ErrWriteProjectFile, err)
	}

	return nil
}

// mergeWrite reads file if it exists, sets values on top and writes it back.
func mergeWrite(fs afero.Fs, file string, values map[string]any) error {
	fv := viper.New()
	fv.SetFs(fs)
	fv.SetConfigType("json")

	if ok, _ := afero.Exists(fs, file); ok {
		fv.SetConfigFile(file)

		if err := fv.ReadInConfig(); err != nil {
			return errors.Join(ErrMergeFile, err)
		}
	}

	for k, v := range values {
		fv.Set(k, v)
	}

	if err := fs.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}

	return fv.WriteConfigAs(file)
}
