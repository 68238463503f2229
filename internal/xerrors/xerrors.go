// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package xerrors declares the error taxonomy shared by every seresave
// component: stream codecs, the binary meta parser, the data-type walker,
// resavers/scanners and the batch driver all report failures as one of these
// sentinels, wrapped with additional context via golang.org/x/xerrors.
package xerrors

import "errors"

var (
	// ErrMalformedHeader is returned when a stream or container header does
	// not match the magic/field layout it declares.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrUnexpectedEndiannessCookie is returned when a binary meta file's
	// endianness cookie is neither the little- nor big-endian magic value.
	ErrUnexpectedEndiannessCookie = errors.New("unexpected endianness cookie")

	// ErrUnexpectedObtainType is returned when a named block magic does not
	// match what the parser expected to read next.
	ErrUnexpectedObtainType = errors.New("unexpected block type")

	// ErrUnexpectedDataTypeKind is returned when a DataType's Kind does not
	// support the walker operation being attempted on it.
	ErrUnexpectedDataTypeKind = errors.New("unexpected data type kind")

	// ErrTruncated is returned when fewer bytes remain than a block or
	// record declares it needs.
	ErrTruncated = errors.New("truncated stream")

	// ErrNotSupportedOperation is returned for seek/length queries against a
	// non-seekable wrapper, or writes against a read-only stream and vice
	// versa.
	ErrNotSupportedOperation = errors.New("operation not supported on this stream")

	// ErrCancelled is returned when a batch phase observes a cancellation
	// signal at a task boundary.
	ErrCancelled = errors.New("operation cancelled")

	// ErrIOFailure tags an underlying OS/file-system error surfaced through
	// the task boundary when the original error carries no more specific
	// taxonomy entry.
	ErrIOFailure = errors.New("i/o failure")
)
