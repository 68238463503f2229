// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package stream

import (
	"bytes"
	"os"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/xerrors"
)

// mappedFile is a ReadSeekCloser backed by a read-only memory mapping of an
// *os.File, the same "map once, seek freely over the mapping" shape
// saferwall/pe's file.go uses to open a PE image before handing readers
// over it to the rest of the package.
type mappedFile struct {
	*bytes.Reader
	mapping mmap.MMap
	file    *os.File
}

func (m *mappedFile) Close() error {
	unmapErr := m.mapping.Unmap()
	closeErr := m.file.Close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}

// plainFile is the fallback ReadSeekCloser for files mmap.Map refuses
// (empty files, pipes, and other non-regular handles).
type plainFile struct {
	*os.File
}

// OpenReadFile opens path and returns a ReadSeekCloser over its contents,
// preferring a memory mapping so the magic-sniffing chain OpenRead builds
// on top (repeated small Peek/Seek calls per wrapper layer) never pages in
// more of a large asset than it touches. mmap.Map rejects empty files and
// some non-regular files; OpenReadFile falls back to plain buffered file
// I/O in that case rather than failing the caller outright.
func OpenReadFile(path string) (ReadSeekCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("open %s: %w", path, err)
	}

	m, mapErr := mmap.Map(f, mmap.RDONLY, 0)
	if mapErr != nil {
		return plainFile{f}, nil
	}
	return &mappedFile{Reader: bytes.NewReader(m), mapping: m, file: f}, nil
}
