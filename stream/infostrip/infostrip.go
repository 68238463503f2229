// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package infostrip implements the INFSTRM1 wrapper (spec §4.3, §6): an
// 8-byte magic followed by a single length-prefixed string, after which the
// inner payload begins. It is the thinnest of the three stream wrappers and
// carries no block structure of its own. No game profile's write chain
// prepends this wrapper; it only ever appears on legacy assets that a read
// chain strips past, so the package exposes a reader and nothing else.
package infostrip

import (
	"encoding/binary"
	"io"

	"github.com/saferwall/seresave/bytestream"
	"golang.org/x/xerrors"
)

// Magic is the 8 ASCII bytes that open an info-stream wrapper.
const Magic = "INFSTRM1"

var order = binary.LittleEndian

// Strip reads the INFSTRM1 magic and its trailing string from r, returning
// the string (ignored by every known resaver, but exposed for scanners that
// might want it) and leaving r positioned at the start of the inner
// payload.
func Strip(r io.Reader) (info string, err error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return "", err
	}
	if string(magic) != Magic {
		return "", xerrors.Errorf("info strip magic %q, want %q", magic, Magic)
	}
	return bytestream.ReadString(r, order)
}
