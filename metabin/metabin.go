// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package metabin is the positional reader over an unwrapped binary meta
// payload (spec §4.4): magic, endianness cookie, version, then a sequence
// of named blocks. It plays the role for seresave that saferwall/pe's
// ntheader/section readers play for a PE image - a thin, order-aware
// cursor that the higher-level walker (package datatype) and resavers
// drive field by field.
//
// Reader also captures every byte it consumes so that a copying stream
// editor (resave.BinaryMeta) can replay unchanged spans verbatim
// without re-reading the source, per the streaming-rewrite design in
// spec §9.
package metabin

import (
	"encoding/binary"
	"io"

	"github.com/saferwall/seresave/bytestream"
	xerr "github.com/saferwall/seresave/internal/xerrors"
	"golang.org/x/xerrors"
)

// Magic is CTSESMETA's header magic, the little-endian 64-bit value the
// spec names; read and compared independent of the file's own endianness,
// since the cookie that establishes endianness hasn't been read yet.
const Magic uint64 = 0x4154454d45535443

const (
	cookieLittleEndian uint32 = 0x1234ABCD
	cookieBigEndian    uint32 = 0xCDAB3412
)

// Block tags, always compared as the little-endian interpretation of their
// 4 ASCII bytes regardless of the file's own declared endianness - a
// ReadUint32 in the file's order recovers the same numeric value either
// way.
const (
	TagMessages            = "MSGS"
	TagInfo                = "INFO"
	TagExternalFiles       = "RFIL"
	TagIDs                 = "IDNT"
	TagExternalTypes       = "EXTY"
	TagInternalTypes       = "INTY"
	TagDataType            = "DTTY"
	TagStructMembers       = "STMB"
	TagExternalObjects     = "EXOB"
	TagInternalObjectTypes = "OBTY"
	TagEditObjectTypes     = "EDTY"
	TagInternalObjects     = "OBJS"
	TagEditObjects         = "EDOB"
)

func tagValue(tag string) uint32 {
	return binary.LittleEndian.Uint32([]byte(tag))
}

// Reader is a forward-only cursor over a binary meta payload. It
// implements io.Reader itself so that bytestream helpers and datatype
// walkers can read through it directly, while transparently capturing
// consumed bytes for the copying editor.
type Reader struct {
	src      io.Reader
	order    binary.ByteOrder
	version  int32
	pos      int64
	captured []byte
}

// Read implements io.Reader, capturing every byte it returns.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	if n > 0 {
		r.captured = append(r.captured, p[:n]...)
		r.pos += int64(n)
	}
	return n, err
}

// NewReader parses the CTSESMETA header (magic, endianness cookie,
// version, and the version-gated annotation string) from src.
func NewReader(src io.Reader) (*Reader, error) {
	r := &Reader{src: src, order: binary.LittleEndian}

	var magicBuf [8]byte
	if _, err := io.ReadFull(r, magicBuf[:]); err != nil {
		return nil, err
	}
	if binary.LittleEndian.Uint64(magicBuf[:]) != Magic {
		return nil, xerrors.Errorf("binary meta magic mismatch: %w", xerr.ErrMalformedHeader)
	}

	cookie, err := bytestream.ReadUint32(r, binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	switch cookie {
	case cookieLittleEndian:
		r.order = binary.LittleEndian
	case cookieBigEndian:
		r.order = binary.BigEndian
	default:
		return nil, xerrors.Errorf("endianness cookie %#x: %w", cookie, xerr.ErrUnexpectedEndiannessCookie)
	}

	version, err := bytestream.ReadInt32(r, r.order)
	if err != nil {
		return nil, err
	}
	r.version = version

	if version > 1 {
		if _, err := bytestream.ReadString(r, r.order); err != nil {
			return nil, err
		}
	}

	// Header bytes are never subject to replacement but still need a
	// byte-exact passthrough, so they stay queued in the pending buffer -
	// a resaver's first Flush call writes them out untouched.
	return r, nil
}

// Order reports the byte order every subsequent int32/string read uses.
func (r *Reader) Order() binary.ByteOrder { return r.order }

// Version is the binary meta format version read from the header.
func (r *Reader) Version() int32 { return r.version }

// Pos is the number of bytes consumed from src so far.
func (r *Reader) Pos() int64 { return r.pos }

// ReadInt32 reads one int32 in the reader's established byte order.
func (r *Reader) ReadInt32() (int32, error) {
	return bytestream.ReadInt32(r, r.order)
}

// ReadUint32 reads one uint32 in the reader's established byte order.
func (r *Reader) ReadUint32() (uint32, error) {
	return bytestream.ReadUint32(r, r.order)
}

// ReadString reads one length-prefixed string per spec §4.4: negative or
// zero lengths denote the empty string.
func (r *Reader) ReadString() (string, error) {
	return bytestream.ReadString(r, r.order)
}

// Skip discards n bytes.
func (r *Reader) Skip(n int64) error {
	return bytestream.Skip(r, n)
}

// AssertBlock reads a 4-byte block tag and fails with ErrUnexpectedObtainType
// unless it matches tag.
func (r *Reader) AssertBlock(tag string) error {
	got, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if got != tagValue(tag) {
		return xerrors.Errorf("block tag %#x, want %q: %w", got, tag, xerr.ErrUnexpectedObtainType)
	}
	return nil
}

// Pending returns the bytes consumed since the last Flush/Discard call,
// for the copying stream editor.
func (r *Reader) Pending() []byte {
	return r.captured
}

// FlushExceptTail writes every pending byte except the last tail bytes to
// w, then retains only that tail in the pending buffer. Used immediately
// after reading a value that might be replaced: flush what preceded it,
// then either Discard the tail (a replacement is being written instead)
// or leave it queued for a later Flush.
func (r *Reader) FlushExceptTail(w io.Writer, tail int64) error {
	n := int64(len(r.captured)) - tail
	if n < 0 {
		n = 0
	}
	if n > 0 {
		if _, err := w.Write(r.captured[:n]); err != nil {
			return err
		}
	}
	r.captured = r.captured[n:]
	return nil
}

// Discard drops the entire pending buffer without writing it, used after
// FlushExceptTail isolated bytes that a replacement supersedes.
func (r *Reader) Discard() {
	r.captured = nil
}

// Flush writes the entire pending buffer to w and clears it.
func (r *Reader) Flush(w io.Writer) error {
	if len(r.captured) == 0 {
		return nil
	}
	_, err := w.Write(r.captured)
	r.captured = nil
	return err
}
