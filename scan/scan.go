// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package scan implements the reference scanners of spec §4.7: one per
// recognized format, each answering whether a stream contains at least
// one reference to any path in a caller-supplied set. Scanners mirror
// their resaver counterparts' discovery logic but never write.
package scan

import (
	"bufio"
	"io"
	"strings"

	"github.com/saferwall/seresave/bytestream"
	"github.com/saferwall/seresave/internal/sniff"
	"github.com/saferwall/seresave/metabin"
)

// Targets is the set of paths a scan is looking for.
type Targets map[string]bool

// Scan sniffs r's format from path and its first bytes, then checks
// whether it references any path in targets. r must support seeking so
// the sniff peek can be un-consumed before the real scan begins.
func Scan(r io.ReadSeeker, path string, targets Targets) (bool, error) {
	head, err := bytestream.Peek(r, 8)
	if err != nil && len(head) == 0 {
		return false, err
	}
	switch sniff.Detect(path, head) {
	case sniff.BinaryMeta:
		return scanBinaryMeta(r, targets)
	case sniff.TextMeta:
		return scanTextMeta(r, targets)
	case sniff.Nfo:
		return scanNfo(r, targets)
	case sniff.Lua:
		return scanLua(r, targets)
	default:
		return false, nil
	}
}

func scanBinaryMeta(r io.Reader, targets Targets) (bool, error) {
	mr, err := metabin.NewReader(r)
	if err != nil {
		return false, err
	}
	if mr.Version() > 9 {
		if err := mr.AssertBlock(metabin.TagMessages); err != nil {
			return false, err
		}
		if _, err := mr.ReadString(); err != nil {
			return false, err
		}
	}
	if err := mr.AssertBlock(metabin.TagInfo); err != nil {
		return false, err
	}
	infoLen := int64(16)
	if mr.Version() > 7 {
		infoLen = 20
	}
	if err := mr.Skip(infoLen); err != nil {
		return false, err
	}
	if err := mr.AssertBlock(metabin.TagExternalFiles); err != nil {
		return false, err
	}
	count, err := mr.ReadInt32()
	if err != nil {
		return false, err
	}
	for i := int32(0); i < count; i++ {
		if err := mr.Skip(8); err != nil {
			return false, err
		}
		p, err := mr.ReadString()
		if err != nil {
			return false, err
		}
		if targets[p] {
			return true, nil
		}
	}
	return false, nil
}

func scanTextMeta(r io.Reader, targets Targets) (bool, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		for _, m := range sniff.TextMetaPathLiteral.FindAllStringSubmatch(sc.Text(), -1) {
			if targets[m[1]] {
				return true, nil
			}
		}
	}
	return false, sc.Err()
}

func scanNfo(r io.Reader, targets Targets) (bool, error) {
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = string(sniff.StripBOM([]byte(line)))
			first = false
		}
		key, value, ok := splitKeyValue(line)
		if !ok || !sniff.NfoKeys[key] {
			continue
		}
		if p, ok := firstQuoted(value); ok && targets[p] {
			return true, nil
		}
	}
	return false, sc.Err()
}

func scanLua(r io.Reader, targets Targets) (bool, error) {
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			line = string(sniff.StripBOM([]byte(line)))
			first = false
		}
		for _, m := range sniff.LuaReference.FindAllStringSubmatch(line, -1) {
			if targets[m[2]] {
				return true, nil
			}
		}
	}
	return false, sc.Err()
}

func splitKeyValue(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), line[idx+1:], true
}

func firstQuoted(s string) (string, bool) {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(s[start+1:], '"')
	if end < 0 {
		return "", false
	}
	return s[start+1 : start+1+end], true
}
