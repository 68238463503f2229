// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package sniff is the content-sniffing dispatch table shared by scan and
// resave (spec §4.6, §4.7): both packages route on the exact same first
// bytes of the unwrapped stream plus the file's path extension, so the
// logic lives in one place instead of being duplicated per consumer.
package sniff

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/saferwall/seresave/metabin"
)

// Format identifies which resaver/scanner a file routes to.
type Format int

const (
	BinaryMeta Format = iota
	TextMeta
	Nfo
	Lua
	Plain
)

func (f Format) String() string {
	switch f {
	case BinaryMeta:
		return "BinaryMeta"
	case TextMeta:
		return "TextMeta"
	case Nfo:
		return "Nfo"
	case Lua:
		return "Lua"
	default:
		return "Plain"
	}
}

// BOM is the UTF-8 byte order mark NFO and Lua files may lead with.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	textMetaMagic = []byte("MetaText")
	nfoMagic      = []byte("LEVEL")
)

// Detect classifies a file given its path and the first 8+ bytes of its
// unwrapped content. head may be shorter than 8 bytes for tiny files; the
// relevant prefix checks simply fail to match in that case.
func Detect(path string, head []byte) Format {
	if len(head) >= 8 && binary.LittleEndian.Uint64(head[:8]) == metabin.Magic {
		return BinaryMeta
	}
	if bytes.HasPrefix(head, textMetaMagic) {
		return TextMeta
	}
	if bytes.HasPrefix(StripBOM(head), nfoMagic) {
		return Nfo
	}
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		return Lua
	}
	return Plain
}

// StripBOM returns b with a leading UTF-8 byte order mark removed, if
// present.
func StripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, BOM) {
		return b[len(BOM):]
	}
	return b
}

// LuaReference matches a LoadResource/dofile call and its path argument,
// shared verbatim by scan.scanLua and resave.Lua so both packages
// agree on exactly what counts as a reference.
var LuaReference = regexp.MustCompile(`(LoadResource|dofile)\s*\(\s*["']?([^"')]+)["']?\s*\)`)

// TextMetaPathLiteral matches a `@'path'` literal inside a text-meta
// value.
var TextMetaPathLiteral = regexp.MustCompile(`@'([^']*)'`)

// NfoKeys are the NFO keys whose value may carry a renameable path.
var NfoKeys = map[string]bool{
	"LOADING_SCREEN":       true,
	"THUMBNAIL":            true,
	"INTRO_CUTSCENE_WORLD": true,
	"NETRICSA":             true,
}
