// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrecked

import (
	"io"

	"github.com/saferwall/seresave/bytestream"
	"golang.org/x/xerrors"
)

// Writer wraps base in a WRKSTRM1 wrecked stream. Unlike stream/signed's
// writer, no in-memory buffering is needed: each block's header declares a
// generator-chosen target size and payload bytes are forwarded to base as
// they arrive, so the final (possibly short) block simply ends when the
// caller stops writing.
type Writer struct {
	base io.Writer
	gen  *generator

	blockWritten int64
	blockTarget  int64
}

// NewWriter emits the WRKSTRM1 magic and the first block's header to base.
func NewWriter(base io.Writer) (*Writer, error) {
	if err := bytestream.WriteUint32(base, order, Magic); err != nil {
		return nil, xerrors.Errorf("write wrecked stream magic: %w", err)
	}
	w := &Writer{base: base, gen: newGenerator()}
	if err := w.startBlock(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) startBlock() error {
	mix := w.gen.tick()
	target := blockSizeFromMix(mix)
	packed := packSize(target)
	if err := bytestream.WriteUint32(w.base, order, mix); err != nil {
		return err
	}
	if err := bytestream.WriteUint32(w.base, order, packed); err != nil {
		return err
	}
	// The reader only ever sees packed on disk and recovers the block
	// boundary as unpackSize(packed). packSize's multiply overflows
	// uint32 at these block sizes, so unpackSize(packSize(target)) !=
	// target in general; the writer must place exactly as many payload
	// bytes as the reader will independently derive, not the
	// generator's original target.
	w.blockTarget = int64(unpackSize(packed))
	w.blockWritten = 0
	return nil
}

func (w *Writer) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if w.blockWritten >= w.blockTarget {
			if err := w.startBlock(); err != nil {
				return total, err
			}
		}
		avail := w.blockTarget - w.blockWritten
		take := int64(len(p))
		if take > avail {
			take = avail
		}
		n, err := w.base.Write(p[:take])
		total += n
		w.blockWritten += int64(n)
		p = p[take:]
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Close is a no-op: the wrecked format has no trailer, and a short final
// block needs nothing further written.
func (w *Writer) Close() error { return nil }
