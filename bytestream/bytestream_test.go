// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bytestream

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

func TestPeekLeavesPositionUnchanged(t *testing.T) {
	r := bytes.NewReader([]byte("CTSESMETA rest"))
	head, err := Peek(r, 4)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if string(head) != "CTSE" {
		t.Fatalf("head = %q", head)
	}
	rest := make([]byte, 4)
	if _, err := r.Read(rest); err != nil {
		t.Fatalf("Read after Peek: %v", err)
	}
	if string(rest) != "CTSE" {
		t.Fatalf("Peek moved the cursor, got %q", rest)
	}
}

func TestPeekShortInput(t *testing.T) {
	r := bytes.NewReader([]byte("ab"))
	head, err := Peek(r, 8)
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("Peek err = %v, want %v", err, io.ErrUnexpectedEOF)
	}
	if string(head) != "ab" {
		t.Fatalf("head = %q, want %q", head, "ab")
	}
}

func TestAssertMagicU32(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteUint32(&buf, binary.LittleEndian, 0xdeadbeef); err != nil {
		t.Fatalf("WriteUint32: %v", err)
	}
	if err := AssertMagicU32(&buf, binary.LittleEndian, 0xdeadbeef); err != nil {
		t.Fatalf("AssertMagicU32: %v", err)
	}

	var bad bytes.Buffer
	WriteUint32(&bad, binary.LittleEndian, 0x12345678)
	if err := AssertMagicU32(&bad, binary.LittleEndian, 0xdeadbeef); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, binary.LittleEndian, "Content/Old.bin"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if int64(buf.Len()) != StringByteLen("Content/Old.bin") {
		t.Fatalf("StringByteLen mismatch: buf=%d computed=%d", buf.Len(), StringByteLen("Content/Old.bin"))
	}
	got, err := ReadString(&buf, binary.LittleEndian)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "Content/Old.bin" {
		t.Fatalf("got %q", got)
	}
}

func TestEmptyStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, binary.LittleEndian, ""); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	got, err := ReadString(&buf, binary.LittleEndian)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestSkip(t *testing.T) {
	r := bytes.NewReader([]byte("0123456789"))
	if err := Skip(r, 5); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	rest := make([]byte, 5)
	if _, err := r.Read(rest); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(rest) != "56789" {
		t.Fatalf("rest = %q", rest)
	}
}

func TestSkipTruncated(t *testing.T) {
	r := bytes.NewReader([]byte("ab"))
	if err := Skip(r, 10); err == nil {
		t.Fatal("expected truncation error")
	}
}
