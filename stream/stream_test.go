// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package stream

import (
	"bytes"
	"io/ioutil"
	"testing"

	"github.com/saferwall/seresave/profile"
)

type readSeekCloserBuf struct {
	*bytes.Reader
}

func (readSeekCloserBuf) Close() error { return nil }

func TestOpenWriteOpenReadRoundTripUnwrapped(t *testing.T) {
	prof, err := profile.Get(profile.SS2)
	if err != nil {
		t.Fatalf("profile.Get: %v", err)
	}

	var dst bytes.Buffer
	out, err := OpenWrite(&dst, prof, "Content/Foo.nfo")
	if err != nil {
		t.Fatalf("OpenWrite: %v", err)
	}
	payload := []byte("plain unwrapped payload")
	if _, err := out.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	in, err := OpenRead(readSeekCloserBuf{bytes.NewReader(dst.Bytes())}, nil)
	if err != nil {
		t.Fatalf("OpenRead: %v", err)
	}
	defer in.Close()
	got, err := ioutil.ReadAll(in)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}
}

func TestOpenWriteOpenReadRoundTripSignedAndWrecked(t *testing.T) {
	prof, err := profile.Get(profile.SS3)
	if err != nil {
		t.Fatalf("profile.Get: %v", err)
	}

	var dst bytes.Buffer
	out, err := OpenWrite(&dst, prof, "Content/Levels/Level1.wld")
	if err != nil {
		t.Fatalf("OpenWrite: %v", err)
	}
	payload := bytes.Repeat([]byte("level data "), 4000)
	if _, err := out.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	in, err := OpenRead(readSeekCloserBuf{bytes.NewReader(dst.Bytes())}, nil)
	if err != nil {
		t.Fatalf("OpenRead: %v", err)
	}
	defer in.Close()
	got, err := ioutil.ReadAll(in)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
	}
}
