// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package resave implements the format-specific resavers of spec §4.6:
// each rewrites cross-references to renamed assets and, for a file being
// renamed itself, updates its own asset filename and regenerates its
// asset UID.
package resave

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/saferwall/seresave/bytestream"
	"github.com/saferwall/seresave/internal/sniff"
	"github.com/saferwall/seresave/internal/xrand"
)

// RenameMap is the authoritative OldPath -> NewPath substitution set for
// one batch run.
type RenameMap map[string]string

// Resave sniffs in's format from path and its leading bytes, then
// dispatches to the matching resaver. newAssetFN is non-nil only when the
// file being resaved is itself the renamed asset.
func Resave(in io.ReadSeeker, out io.Writer, path string, renameMap RenameMap, newAssetFN *string) error {
	head, err := bytestream.Peek(in, 8)
	if err != nil && len(head) == 0 {
		return err
	}
	switch sniff.Detect(path, head) {
	case sniff.BinaryMeta:
		return BinaryMeta(in, out, renameMap, newAssetFN)
	case sniff.TextMeta:
		return TextMeta(in, out, renameMap, newAssetFN)
	case sniff.Nfo:
		return Nfo(in, out, renameMap)
	case sniff.Lua:
		return Lua(in, out, renameMap)
	default:
		return PlainCopy(in, out)
	}
}

// PlainCopy is the byte-for-byte passthrough fallback.
func PlainCopy(in io.Reader, out io.Writer) error {
	_, err := io.Copy(out, in)
	return err
}

// Lua rewrites LoadResource/dofile(...) calls whose path argument is a
// rename-map key, preserving a leading UTF-8 BOM and every other line
// unchanged.
func Lua(in io.Reader, out io.Writer, renameMap RenameMap) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			if bomLine, had := cutBOM(line); had {
				if _, err := out.Write(sniff.BOM); err != nil {
					return err
				}
				line = bomLine
			}
			first = false
		}
		rewritten := sniff.LuaReference.ReplaceAllStringFunc(line, func(m string) string {
			sub := sniff.LuaReference.FindStringSubmatch(m)
			fn, oldPath := sub[1], sub[2]
			newPath, ok := renameMap[oldPath]
			if !ok {
				return m
			}
			return fn + `("` + newPath + `")`
		})
		if _, err := io.WriteString(out, rewritten+"\n"); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Nfo rewrites the first double-quoted path in a recognized key's value,
// preserving a leading BOM and every other line unchanged.
func Nfo(in io.Reader, out io.Writer, renameMap RenameMap) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			if bomLine, had := cutBOM(line); had {
				if _, err := out.Write(sniff.BOM); err != nil {
					return err
				}
				line = bomLine
			}
			first = false
		}
		if _, err := io.WriteString(out, rewriteNfoLine(line, renameMap)+"\n"); err != nil {
			return err
		}
	}
	return sc.Err()
}

func rewriteNfoLine(line string, renameMap RenameMap) string {
	key, value, ok := splitKeyValue(line)
	if !ok || !sniff.NfoKeys[strings.TrimSpace(key)] {
		return line
	}
	start := strings.IndexByte(value, '"')
	if start < 0 {
		return line
	}
	end := strings.IndexByte(value[start+1:], '"')
	if end < 0 {
		return line
	}
	oldPath := value[start+1 : start+1+end]
	newPath, ok := renameMap[oldPath]
	if !ok {
		return line
	}
	return key + "=" + value[:start+1] + newPath + value[start+1+end:]
}

// TextMeta rewrites `@'path'` literals that hit the rename map and, when
// newAssetFN is supplied, the asset filename and asset UID lines.
func TextMeta(in io.Reader, out io.Writer, renameMap RenameMap, newAssetFN *string) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := rewriteTextMetaLine(sc.Text(), renameMap, newAssetFN)
		if _, err := io.WriteString(out, line+"\n"); err != nil {
			return err
		}
	}
	return sc.Err()
}

func rewriteTextMetaLine(line string, renameMap RenameMap, newAssetFN *string) string {
	key, _, ok := splitKeyValue(line)
	if ok && newAssetFN != nil {
		trimmedKey := strings.TrimSpace(key)
		switch {
		case strings.Contains(trimmedKey, "rf_strAssetFN"):
			return trimmedKey + `= @"` + *newAssetFN + `";`
		case strings.Contains(trimmedKey, "rf_ulAssetUID"):
			return trimmedKey + "= " + strconv.FormatUint(uint64(xrand.Uint32()), 10) + ";"
		}
	}
	return sniff.TextMetaPathLiteral.ReplaceAllStringFunc(line, func(m string) string {
		sub := sniff.TextMetaPathLiteral.FindStringSubmatch(m)
		newPath, ok := renameMap[sub[1]]
		if !ok {
			return m
		}
		return "@'" + newPath + "'"
	})
}

func splitKeyValue(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", false
	}
	return line[:idx], line[idx+1:], true
}

func cutBOM(line string) (string, bool) {
	stripped := sniff.StripBOM([]byte(line))
	if len(stripped) == len(line) {
		return line, false
	}
	return string(stripped), true
}
