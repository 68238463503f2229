// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package config loads the one piece of real user-facing configuration
// left once the out-of-scope rename-rule dialog and file browser are
// replaced by a CLI: game root, selected profile, and the rename-list
// path. It follows holocm/holo-build's whole-file BurntSushi/toml.Decode
// convention (PackageDefinition in src/holo-build/parser.go) rather than
// building a flag-by-flag config struct.
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"github.com/saferwall/seresave/profile"
)

// Config is the decoded seresave.toml document.
type Config struct {
	GameRoot       string `toml:"game_root"`
	Profile        string `toml:"profile"`
	RenameListPath string `toml:"rename_list"`
	Workers        int    `toml:"workers"`
}

// Load reads and validates a config file at path.
func Load(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, xerrors.Errorf("decode %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every required field is present and that Profile
// names one of the five selectable presets.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GameRoot) == "" {
		return xerrors.New("config: game_root is required")
	}
	if strings.TrimSpace(c.RenameListPath) == "" {
		return xerrors.New("config: rename_list is required")
	}
	if _, err := profile.Get(profile.Name(c.Profile)); err != nil {
		return xerrors.Errorf("config: %w", err)
	}
	return nil
}

// ResolveProfile looks up the profile.Profile named by c.Profile.
func (c *Config) ResolveProfile() (profile.Profile, error) {
	return profile.Get(profile.Name(c.Profile))
}
