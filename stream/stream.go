// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package stream is the factory (spec §4.3) that sniffs magic numbers at
// the head of a file and chains stream/signed, stream/wrecked and
// stream/infostrip until the inner payload is exposed, or, on write,
// builds the equivalent chain from a selected game profile. It is the
// thing resave/scan actually open files through; nothing downstream talks
// to the individual wrapper packages directly.
package stream

import (
	"crypto"
	"encoding/binary"
	"io"

	"github.com/saferwall/seresave/bytestream"
	"github.com/saferwall/seresave/profile"
	"github.com/saferwall/seresave/sign"
	"github.com/saferwall/seresave/stream/infostrip"
	"github.com/saferwall/seresave/stream/signed"
	"github.com/saferwall/seresave/stream/wrecked"
	"golang.org/x/xerrors"
)

// ReadSeekCloser is the type every layer of the read chain, and the chain
// as a whole, satisfies.
type ReadSeekCloser interface {
	io.ReadSeeker
	io.Closer
}

type nopCloseReadSeeker struct {
	io.ReadSeeker
}

func (nopCloseReadSeeker) Close() error { return nil }

var leOrder = binary.LittleEndian

// OpenRead wraps base, peeking its head repeatedly and layering in
// stream/signed, stream/wrecked and stream/infostrip decoders until the
// first unrecognized magic is seen. verifier is optional and, when
// supplied, is used to check signed-stream header signatures; a nil
// verifier skips verification, per spec §4.1.
func OpenRead(base ReadSeekCloser, verifier *sign.Signer) (ReadSeekCloser, error) {
	var cur ReadSeekCloser = base
	for {
		head, err := bytestream.Peek(cur, 8)
		if err != nil && len(head) < 4 {
			break
		}
		switch {
		case len(head) >= 4 && leOrder.Uint32(head[:4]) == signed.Magic:
			r, err := signed.NewReader(cur, verifier)
			if err != nil {
				return nil, xerrors.Errorf("layer signed stream: %w", err)
			}
			cur = r
		case len(head) >= 4 && leOrder.Uint32(head[:4]) == wrecked.Magic:
			r, err := wrecked.NewReader(cur)
			if err != nil {
				return nil, xerrors.Errorf("layer wrecked stream: %w", err)
			}
			cur = r
		case len(head) == 8 && string(head) == infostrip.Magic:
			if _, err := infostrip.Strip(cur); err != nil {
				return nil, xerrors.Errorf("strip info stream: %w", err)
			}
			// infostrip.Strip advances cur in place; no new wrapper type.
		default:
			return cur, nil
		}
	}
	return cur, nil
}

// chainWriter composes a stack of wrapper Write()s with a Close() that
// flushes each layer outer-to-inner, without ever closing the caller-owned
// destination writer.
type chainWriter struct {
	io.Writer
	closers []io.Closer
}

func (c *chainWriter) Close() error {
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			return err
		}
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// OpenWrite builds the write-side wrapper chain a game profile declares for
// path (spec §4.3, §6): a signed-stream wrapper unless the profile doesn't
// sign or path is a signing-bypass extension, then a wrecked-stream wrapper
// for .wld files under wrecker-enabled profiles. dst is never closed by the
// returned WriteCloser; its lifecycle belongs to the caller (the batch
// driver, which deletes partial outputs on failure).
func OpenWrite(dst io.Writer, prof profile.Profile, path string) (io.WriteCloser, error) {
	signStream, wreck := prof.WrapsFor(path)

	var cur io.Writer = dst
	var closers []io.Closer

	if signStream {
		signer, err := sign.NewSigner(prof.Signed.PrivateKeyDER, crypto.SHA1)
		if err != nil {
			return nil, xerrors.Errorf("build signer for profile %s: %w", prof.Name, err)
		}
		sw, err := signed.NewWriter(cur, prof.Signed.Version, signer)
		if err != nil {
			return nil, xerrors.Errorf("open signed stream: %w", err)
		}
		cur = sw
		closers = append(closers, sw)
	}

	if wreck {
		ww, err := wrecked.NewWriter(cur)
		if err != nil {
			return nil, xerrors.Errorf("open wrecked stream: %w", err)
		}
		cur = ww
		closers = append([]io.Closer{ww}, closers...)
	}

	if len(closers) == 0 {
		return nopWriteCloser{cur}, nil
	}
	return &chainWriter{Writer: cur, closers: closers}, nil
}
