// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package resave

import (
	"io"

	"github.com/saferwall/seresave/bytestream"
	"github.com/saferwall/seresave/datatype"
	"github.com/saferwall/seresave/internal/xrand"
	"github.com/saferwall/seresave/metabin"
)

// BinaryMeta is the copying stream editor of spec §4.6: it streams bytes
// from in to out unchanged except at sites that need a replacement,
// tracked entirely through metabin.Reader's pending-byte buffer rather
// than by buffering the whole file.
func BinaryMeta(in io.Reader, out io.Writer, renameMap RenameMap, newAssetFN *string) error {
	mr, err := metabin.NewReader(in)
	if err != nil {
		return err
	}
	version := mr.Version()

	if version > 9 {
		if err := mr.AssertBlock(metabin.TagMessages); err != nil {
			return err
		}
		if _, err := mr.ReadString(); err != nil {
			return err
		}
	}

	if err := mr.AssertBlock(metabin.TagInfo); err != nil {
		return err
	}
	infoLen := int64(16)
	if version > 7 {
		infoLen = 20
	}
	if err := mr.Skip(infoLen); err != nil {
		return err
	}

	anyExternalRenamed, err := rewriteExternalFiles(mr, out, renameMap)
	if err != nil {
		return err
	}

	if err := mr.AssertBlock(metabin.TagIDs); err != nil {
		return err
	}
	if err := skipStringList(mr); err != nil {
		return err
	}

	if err := mr.AssertBlock(metabin.TagExternalTypes); err != nil {
		return err
	}
	if err := skipStringList(mr); err != nil {
		return err
	}

	types, err := datatype.ParseTypes(mr)
	if err != nil {
		return err
	}
	datatype.PropagateSizes(types)

	anyTypeHasResourceLink := false
	for _, t := range types {
		if t.HasResourceLink() {
			anyTypeHasResourceLink = true
			break
		}
	}

	if err := mr.AssertBlock(metabin.TagExternalObjects); err != nil {
		return err
	}
	if err := skipExternalObjects(mr); err != nil {
		return err
	}

	if err := mr.AssertBlock(metabin.TagInternalObjectTypes); err != nil {
		return err
	}
	internalObjTypes, err := readTypeIndexList(mr, types)
	if err != nil {
		return err
	}

	if err := mr.AssertBlock(metabin.TagEditObjectTypes); err != nil {
		return err
	}
	editObjTypes, err := readTypeIndexList(mr, types)
	if err != nil {
		return err
	}

	selfRenamesObj0 := newAssetFN != nil && len(internalObjTypes) > 0 && internalObjTypes[0].Name == "CResourceFile"

	if !anyExternalRenamed && !anyTypeHasResourceLink && !selfRenamesObj0 {
		if err := mr.Flush(out); err != nil {
			return err
		}
		_, err := io.Copy(out, mr)
		return err
	}

	if err := mr.AssertBlock(metabin.TagInternalObjects); err != nil {
		return err
	}
	for i, t := range internalObjTypes {
		rewriteSelf := newAssetFN != nil && i == 0
		if err := walkObject(mr, out, t, renameMap, rewriteSelf, newAssetFN); err != nil {
			return err
		}
		if err := mr.Flush(out); err != nil {
			return err
		}
	}

	if !anyTypeHasResourceLink {
		if err := mr.Flush(out); err != nil {
			return err
		}
		_, err := io.Copy(out, mr)
		return err
	}

	if err := mr.AssertBlock(metabin.TagEditObjects); err != nil {
		return err
	}
	for _, t := range editObjTypes {
		if err := walkObject(mr, out, t, renameMap, false, nil); err != nil {
			return err
		}
		if err := mr.Flush(out); err != nil {
			return err
		}
	}

	return mr.Flush(out)
}

// rewriteExternalFiles implements replacement site 1: each entry is 8
// bytes of metadata then a length-prefixed path, rewritten in place when
// it is a rename-map key.
func rewriteExternalFiles(mr *metabin.Reader, out io.Writer, renameMap RenameMap) (bool, error) {
	if err := mr.AssertBlock(metabin.TagExternalFiles); err != nil {
		return false, err
	}
	count, err := mr.ReadInt32()
	if err != nil {
		return false, err
	}
	anyRenamed := false
	for i := int32(0); i < count; i++ {
		if err := mr.Skip(8); err != nil {
			return false, err
		}
		oldPath, err := mr.ReadString()
		if err != nil {
			return false, err
		}
		newPath, ok := renameMap[oldPath]
		if !ok {
			continue
		}
		anyRenamed = true
		if err := mr.FlushExceptTail(out, bytestream.StringByteLen(oldPath)); err != nil {
			return false, err
		}
		mr.Discard()
		if err := bytestream.WriteString(out, mr.Order(), newPath); err != nil {
			return false, err
		}
	}
	return anyRenamed, nil
}

// walkObject dispatches one internal/edit object: the renamed-self
// CResourceFile state machine (replacement site 2), or a resource-link
// walk/skip (replacement sites 3 and 4).
func walkObject(mr *metabin.Reader, out io.Writer, t *datatype.DataType, renameMap RenameMap, rewriteSelf bool, newAssetFN *string) error {
	if rewriteSelf && t.Name == "CResourceFile" {
		targets := map[*datatype.StructMember]datatype.OnResourceLink{}
		if fn := t.FindMember("14"); fn != nil {
			targets[fn] = func(r *metabin.Reader) error {
				old, err := r.ReadString()
				if err != nil {
					return err
				}
				if err := r.FlushExceptTail(out, bytestream.StringByteLen(old)); err != nil {
					return err
				}
				r.Discard()
				return bytestream.WriteString(out, r.Order(), *newAssetFN)
			}
		}
		if uid := t.FindMember("7"); uid != nil {
			targets[uid] = func(r *metabin.Reader) error {
				if _, err := r.ReadUint32(); err != nil {
					return err
				}
				if err := r.FlushExceptTail(out, 4); err != nil {
					return err
				}
				r.Discard()
				return bytestream.WriteUint32(out, r.Order(), xrand.Uint32())
			}
		}
		return datatype.WalkMembersWithTargets(mr, t, targets)
	}

	if !t.HasResourceLink() {
		return datatype.Skip(mr, t)
	}
	return datatype.SkipToResourceLink(mr, t, func(r *metabin.Reader) error {
		old, err := r.ReadString()
		if err != nil {
			return err
		}
		newPath, ok := renameMap[old]
		if !ok {
			return nil
		}
		if err := r.FlushExceptTail(out, bytestream.StringByteLen(old)); err != nil {
			return err
		}
		r.Discard()
		return bytestream.WriteString(out, r.Order(), newPath)
	})
}

func skipStringList(mr *metabin.Reader) error {
	count, err := mr.ReadInt32()
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		if _, err := mr.ReadString(); err != nil {
			return err
		}
	}
	return nil
}

func skipExternalObjects(mr *metabin.Reader) error {
	count, err := mr.ReadInt32()
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		if _, err := mr.ReadString(); err != nil {
			return err
		}
		if _, err := mr.ReadInt32(); err != nil {
			return err
		}
	}
	return nil
}

func readTypeIndexList(mr *metabin.Reader, types []*datatype.DataType) ([]*datatype.DataType, error) {
	count, err := mr.ReadInt32()
	if err != nil {
		return nil, err
	}
	out := make([]*datatype.DataType, count)
	for i := int32(0); i < count; i++ {
		idx, err := mr.ReadInt32()
		if err != nil {
			return nil, err
		}
		if idx < 0 || int(idx) >= len(types) {
			out[i] = &datatype.DataType{Kind: datatype.Unknown, Name: "<invalid>"}
			continue
		}
		out[i] = types[idx]
	}
	return out, nil
}
