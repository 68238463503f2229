// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package signed

import (
	"bytes"
	"encoding/binary"

	"github.com/saferwall/seresave/sign"
	"golang.org/x/xerrors"
)

// blockNonceXOR is the constant the writer mixes into the nonce to derive
// each block's signing-input prefix (spec §4.1).
const blockNonceXOR = 0x0B1B

// Writer wraps base in a SIG2 signed stream. Writer always emits the fixed
// write-path parameters: block size 0x10000, signature size 0x100, digest
// size 0, SHA-1 digest, and the hard-coded key identifier string.
type Writer struct {
	base    writerCloser
	signer  *sign.Signer
	nonce   int32
	curBlock int64
	buf     bytes.Buffer
	closed  bool
}

type writerCloser interface {
	Write(p []byte) (int, error)
}

// NewWriter emits a SIG2 header to base (version selects the profile's
// declared signed-stream version, 4 or 5) and returns a Writer ready to
// accept payload bytes.
func NewWriter(base writerCloser, version int32, signer *sign.Signer) (*Writer, error) {
	nonce := randomNonce()
	header := Header{
		Version:       version,
		BlockSize:     WriteBlockSize,
		HashMethod:    sign.MethodSHA1,
		DigestSize:    0,
		Nonce:         nonce,
		SignatureSize: WriteSignatureSize,
		KeyIdentifier: WriteKeyIdentifier,
	}

	headerBytes, err := writeHeaderFields(base, header)
	if err != nil {
		return nil, xerrors.Errorf("write signed stream header: %w", err)
	}

	sig, err := signer.Sign(headerBytes)
	if err != nil {
		return nil, xerrors.Errorf("sign header: %w", err)
	}
	if _, err := base.Write(sig); err != nil {
		return nil, err
	}

	w := &Writer{base: base, signer: signer, nonce: nonce}
	w.buf.Grow(WriteBlockSize)
	return w, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		space := WriteBlockSize - w.buf.Len()
		take := len(p)
		if take > space {
			take = space
		}
		n, err := w.buf.Write(p[:take])
		total += n
		p = p[take:]
		if err != nil {
			return total, err
		}
		if w.buf.Len() == WriteBlockSize {
			if err := w.flushBlock(); err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

func (w *Writer) flushBlock() error {
	payload := append([]byte(nil), w.buf.Bytes()...)

	var mixBuf [4]byte
	mix := uint32(w.nonce) ^ uint32(w.curBlock+blockNonceXOR)
	binary.LittleEndian.PutUint32(mixBuf[:], mix)

	signInput := make([]byte, 0, 4+len(payload))
	signInput = append(signInput, mixBuf[:]...)
	signInput = append(signInput, payload...)

	sig, err := w.signer.Sign(signInput)
	if err != nil {
		return xerrors.Errorf("sign block %d: %w", w.curBlock, err)
	}

	if _, err := w.base.Write(payload); err != nil {
		return err
	}
	if _, err := w.base.Write(sig); err != nil {
		return err
	}

	w.curBlock++
	w.buf.Reset()
	return nil
}

// Close flushes any partial final block. It does not close the underlying
// base writer; callers own that lifecycle, matching the stream factory's
// layered-wrapper ownership.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.buf.Len() > 0 {
		return w.flushBlock()
	}
	return nil
}
