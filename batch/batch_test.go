// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/saferwall/seresave/profile"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestDriverRunResaveAndReferenceUpdate(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "assets/weapon.bin"), "opaque payload bytes")
	mustWrite(t, filepath.Join(root, "scripts/main.lua"), `LoadResource("assets/weapon.bin")`+"\n")

	prof, err := profile.Get(profile.SS2)
	if err != nil {
		t.Fatalf("profile.Get: %v", err)
	}

	var ticks int
	d := &Driver{
		GameRoot:   root,
		Profile:    prof,
		Workers:    2,
		OnProgress: func() { ticks++ },
	}

	files := []ResaveFile{
		{OldPath: "assets/weapon.bin", NewPath: "assets/weapon2.bin", DeleteOld: true},
	}
	auxiliary := []string{"scripts/main.lua"}

	result, err := d.Run(context.Background(), files, auxiliary)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.ResaveErrors) != 0 {
		t.Fatalf("unexpected resave errors: %v", result.ResaveErrors)
	}
	if len(result.ReferenceErrors) != 0 {
		t.Fatalf("unexpected reference errors: %v", result.ReferenceErrors)
	}
	if ticks != 2 {
		t.Fatalf("ticks = %d, want 2", ticks)
	}

	got := mustRead(t, filepath.Join(root, "assets/weapon2.bin"))
	if got != "opaque payload bytes" {
		t.Fatalf("resaved content = %q", got)
	}
	if _, err := os.Stat(filepath.Join(root, "assets/weapon.bin")); !os.IsNotExist(err) {
		t.Fatalf("expected old path deleted, stat err = %v", err)
	}

	gotLua := mustRead(t, filepath.Join(root, "scripts/main.lua"))
	want := `LoadResource("assets/weapon2.bin")` + "\n"
	if gotLua != want {
		t.Fatalf("reference-updated lua = %q, want %q", gotLua, want)
	}
}

func TestDriverKeepsOldPathWhenDeleteOldFalse(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "a.bin"), "hello")

	prof, _ := profile.Get(profile.SS2)
	d := &Driver{GameRoot: root, Profile: prof}

	files := []ResaveFile{{OldPath: "a.bin", NewPath: "b.bin", DeleteOld: false}}
	if _, err := d.Run(context.Background(), files, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "a.bin")); err != nil {
		t.Fatalf("expected old path kept: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "b.bin")); err != nil {
		t.Fatalf("expected new path created: %v", err)
	}
}

func TestDriverIsolatesPerFileFailures(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "good.bin"), "ok")
	// "missing.bin" is never created, so its resave fails.

	prof, _ := profile.Get(profile.SS2)
	d := &Driver{GameRoot: root, Profile: prof}

	files := []ResaveFile{
		{OldPath: "missing.bin", NewPath: "missing2.bin"},
		{OldPath: "good.bin", NewPath: "good2.bin"},
	}
	result, err := d.Run(context.Background(), files, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.ResaveErrors) != 1 {
		t.Fatalf("expected exactly one resave error, got %d", len(result.ResaveErrors))
	}
	if _, err := os.Stat(filepath.Join(root, "good2.bin")); err != nil {
		t.Fatalf("expected good2.bin to be created despite sibling failure: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "missing2.bin")); !os.IsNotExist(err) {
		t.Fatalf("expected partial output deleted for failed file, stat err = %v", err)
	}
}

func TestDriverCancellationStopsPhase(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		mustWrite(t, filepath.Join(root, "f"+string(rune('0'+i))+".bin"), "x")
	}

	prof, _ := profile.Get(profile.SS2)
	d := &Driver{GameRoot: root, Profile: prof, Workers: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := []ResaveFile{
		{OldPath: "f0.bin", NewPath: "g0.bin"},
	}
	if _, err := d.Run(ctx, files, nil); err == nil {
		t.Fatal("expected cancellation error")
	}
}
