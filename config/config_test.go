// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "seresave.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
game_root = "/games/ss2"
profile = "SSHD"
rename_list = "rename.toml"
workers = 4
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.GameRoot != "/games/ss2" || c.Profile != "SSHD" || c.Workers != 4 {
		t.Fatalf("unexpected config: %+v", c)
	}
	if _, err := c.ResolveProfile(); err != nil {
		t.Fatalf("ResolveProfile: %v", err)
	}
}

func TestLoadRejectsUnknownProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
game_root = "/games/ss2"
profile = "NotAProfile"
rename_list = "rename.toml"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestLoadRejectsMissingGameRoot(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
profile = "SS2"
rename_list = "rename.toml"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing game_root")
	}
}

func TestLoadRenameList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rename.toml")
	content := `
[[resave]]
old_path = "assets/a.bin"
new_path = "assets/b.bin"
delete_old = true

[[auxiliary]]
path = "scripts/main.lua"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rename list: %v", err)
	}

	files, auxiliary, err := LoadRenameList(path)
	if err != nil {
		t.Fatalf("LoadRenameList: %v", err)
	}
	if len(files) != 1 || files[0].OldPath != "assets/a.bin" || files[0].NewPath != "assets/b.bin" || !files[0].DeleteOld {
		t.Fatalf("unexpected files: %+v", files)
	}
	if len(auxiliary) != 1 || auxiliary[0] != "scripts/main.lua" {
		t.Fatalf("unexpected auxiliary: %+v", auxiliary)
	}
}
