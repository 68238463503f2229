// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package resave

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlainCopy(t *testing.T) {
	in := []byte("random bytes, not a recognized format\x00\x01\x02")
	var out bytes.Buffer
	if err := PlainCopy(bytes.NewReader(in), &out); err != nil {
		t.Fatalf("PlainCopy: %v", err)
	}
	if !bytes.Equal(in, out.Bytes()) {
		t.Fatalf("PlainCopy changed bytes")
	}
}

func TestLuaRewrite(t *testing.T) {
	in := `LoadResource("Content/Old.tex") -- comment
other_line()
`
	renameMap := RenameMap{"Content/Old.tex": "Content/New.tex"}
	var out bytes.Buffer
	if err := Lua(strings.NewReader(in), &out, renameMap); err != nil {
		t.Fatalf("Lua: %v", err)
	}
	want := `LoadResource("Content/New.tex") -- comment
other_line()
`
	if out.String() != want {
		t.Fatalf("Lua() = %q, want %q", out.String(), want)
	}
}

func TestLuaRewritePreservesBOM(t *testing.T) {
	in := "\xEF\xBB\xBFLoadResource(\"Content/Old.tex\")\n"
	renameMap := RenameMap{"Content/Old.tex": "Content/New.tex"}
	var out bytes.Buffer
	if err := Lua(strings.NewReader(in), &out, renameMap); err != nil {
		t.Fatalf("Lua: %v", err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("expected BOM preserved")
	}
	if !strings.Contains(out.String(), "Content/New.tex") {
		t.Fatalf("expected rewritten path, got %q", out.String())
	}
}

func TestNfoRewritesOnlyRecognizedKey(t *testing.T) {
	in := `LOADING_SCREEN="Content/A.tex"
COMMENT="Content/A.tex"
`
	renameMap := RenameMap{"Content/A.tex": "Content/B.tex"}
	var out bytes.Buffer
	if err := Nfo(strings.NewReader(in), &out, renameMap); err != nil {
		t.Fatalf("Nfo: %v", err)
	}
	want := `LOADING_SCREEN="Content/B.tex"
COMMENT="Content/A.tex"
`
	if out.String() != want {
		t.Fatalf("Nfo() = %q, want %q", out.String(), want)
	}
}

func TestResaveDispatchesPlainForUnknown(t *testing.T) {
	in := []byte("just some bytes")
	var out bytes.Buffer
	if err := Resave(bytes.NewReader(in), &out, "foo.bin", RenameMap{}, nil); err != nil {
		t.Fatalf("Resave: %v", err)
	}
	if !bytes.Equal(in, out.Bytes()) {
		t.Fatalf("Resave() changed bytes for plain file")
	}
}

func TestResaveDispatchesLuaByExtension(t *testing.T) {
	in := []byte(`LoadResource("Content/Old.tex")` + "\n")
	renameMap := RenameMap{"Content/Old.tex": "Content/New.tex"}
	var out bytes.Buffer
	if err := Resave(bytes.NewReader(in), &out, "script.lua", renameMap, nil); err != nil {
		t.Fatalf("Resave: %v", err)
	}
	if !strings.Contains(out.String(), "Content/New.tex") {
		t.Fatalf("expected rewritten path, got %q", out.String())
	}
}
