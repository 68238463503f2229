// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package resave

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/saferwall/seresave/metabin"
)

// buildSelfRenameMeta assembles a version-10 binary meta file whose single
// INTERNAL_OBJECTS entry is a CResourceFile: a filename member (id "14")
// and a UID member (id "7"), mirroring spec §8 scenario 5 (the renamed
// asset rewriting its own embedded filename and UID).
func buildSelfRenameMeta(t *testing.T, fileName string, uid uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	order := binary.LittleEndian

	var magicBuf [8]byte
	order.PutUint64(magicBuf[:], metabin.Magic)
	buf.Write(magicBuf[:])
	buf.Write([]byte{0xCD, 0xAB, 0x34, 0x12})
	writeInt32(t, &buf, order, 10)
	writeString(t, &buf, order, "")

	buf.WriteString(metabin.TagMessages)
	writeString(t, &buf, order, "")

	buf.WriteString(metabin.TagInfo)
	buf.Write(make([]byte, 20))

	// EXTERNAL_FILES: none.
	buf.WriteString(metabin.TagExternalFiles)
	writeInt32(t, &buf, order, 0)

	buf.WriteString(metabin.TagIDs)
	writeInt32(t, &buf, order, 0)

	buf.WriteString(metabin.TagExternalTypes)
	writeInt32(t, &buf, order, 0)

	// INTERNAL_TYPES: CResourceFile{FileName CString; UID ULONG}.
	buf.WriteString(metabin.TagInternalTypes)
	writeInt32(t, &buf, order, 3)

	buf.WriteString(metabin.TagDataType)
	writeInt32(t, &buf, order, 0)
	writeString(t, &buf, order, "CResourceFile")
	writeInt32(t, &buf, order, 5) // Kind = Struct
	writeInt32(t, &buf, order, 0)
	writeInt32(t, &buf, order, -1)
	writeInt32(t, &buf, order, 0)
	writeString(t, &buf, order, "")
	buf.WriteString(metabin.TagStructMembers)
	writeInt32(t, &buf, order, 2)
	writeString(t, &buf, order, "14")
	writeString(t, &buf, order, "")
	writeInt32(t, &buf, order, 1)
	writeString(t, &buf, order, "7")
	writeString(t, &buf, order, "")
	writeInt32(t, &buf, order, 2)

	buf.WriteString(metabin.TagDataType)
	writeInt32(t, &buf, order, 1)
	writeString(t, &buf, order, "CString")
	writeInt32(t, &buf, order, 0) // Kind = Simple
	writeInt32(t, &buf, order, 0)
	writeInt32(t, &buf, order, -1)
	writeInt32(t, &buf, order, 0)
	writeString(t, &buf, order, "")

	buf.WriteString(metabin.TagDataType)
	writeInt32(t, &buf, order, 2)
	writeString(t, &buf, order, "ULONG")
	writeInt32(t, &buf, order, 0) // Kind = Simple
	writeInt32(t, &buf, order, 0)
	writeInt32(t, &buf, order, -1)
	writeInt32(t, &buf, order, 0)
	writeString(t, &buf, order, "")

	buf.WriteString(metabin.TagExternalObjects)
	writeInt32(t, &buf, order, 0)

	buf.WriteString(metabin.TagInternalObjectTypes)
	writeInt32(t, &buf, order, 1)
	writeInt32(t, &buf, order, 0) // CResourceFile

	buf.WriteString(metabin.TagEditObjectTypes)
	writeInt32(t, &buf, order, 0)

	buf.WriteString(metabin.TagInternalObjects)
	writeString(t, &buf, order, fileName)
	var uidBuf [4]byte
	order.PutUint32(uidBuf[:], uid)
	buf.Write(uidBuf[:])

	buf.WriteString(metabin.TagEditObjects)
	buf.WriteString("TAIL-BYTES-UNCHANGED")

	return buf.Bytes()
}

func TestBinaryMetaSelfRenameRewritesFileNameAndUID(t *testing.T) {
	input := buildSelfRenameMeta(t, "Content/Old.mdl", 0x11223344)
	newPath := "Content/New.mdl"

	var out bytes.Buffer
	if err := BinaryMeta(bytes.NewReader(input), &out, RenameMap{}, &newPath); err != nil {
		t.Fatalf("BinaryMeta: %v", err)
	}

	order := binary.LittleEndian
	want := buildSelfRenameMeta(t, newPath, 0) // placeholder UID, checked separately below
	got := out.Bytes()

	// Everything up to and including the rewritten filename must match
	// exactly; the UID is freshly randomized so only its presence and
	// length are checked, and the tail after it (EDOB + marker) must be
	// byte-identical again.
	prefixLen := len(want) - 4 - len("EDOB") - len("TAIL-BYTES-UNCHANGED")
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	if !bytes.Equal(got[:prefixLen], want[:prefixLen]) {
		t.Fatalf("prefix (header..rewritten filename) mismatch:\ngot:  %x\nwant: %x", got[:prefixLen], want[:prefixLen])
	}
	tail := got[prefixLen+4:]
	wantTail := want[prefixLen+4:]
	if !bytes.Equal(tail, wantTail) {
		t.Fatalf("tail (EDOB+marker) mismatch:\ngot:  %x\nwant: %x", tail, wantTail)
	}

	gotUID := order.Uint32(got[prefixLen : prefixLen+4])
	if gotUID == 0x11223344 {
		t.Fatal("UID was not regenerated")
	}
}
