// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package datatype

import (
	"github.com/saferwall/seresave/metabin"
	xerr "github.com/saferwall/seresave/internal/xerrors"
	"golang.org/x/xerrors"
)

// OnResourceLink is called with the reader positioned exactly at a
// resource-link string's length prefix; the string itself has not been
// consumed. The callback reads it (and writes a replacement, if any) and
// returns control to the walker, which resumes from wherever the callback
// left the reader.
type OnResourceLink func(r *metabin.Reader) error

// Skip advances r past one instance of t without emitting anything,
// per spec §4.5.
func Skip(r *metabin.Reader, t *DataType) error {
	switch t.Name {
	case "CString":
		_, err := r.ReadString()
		return err
	case "CMetaPointer", "CMetaHandle", "CSyncedSLONG":
		return r.Skip(4)
	case "CTransString":
		if err := r.Skip(4); err != nil {
			return err
		}
		if _, err := r.ReadString(); err != nil {
			return err
		}
		_, err := r.ReadString()
		return err
	case "CBaseTexture":
		if err := skipStruct(r, t); err != nil {
			return err
		}
		if t.Format > 26 {
			if err := r.Skip(2); err != nil {
				return err
			}
			size, err := r.ReadInt32()
			if err != nil {
				return err
			}
			return r.Skip(int64(size))
		}
		return nil
	}

	if t.Size != nil {
		return r.Skip(*t.Size)
	}

	switch t.Kind {
	case Array:
		if t.Pointer != nil && t.Pointer.Size != nil {
			return r.Skip(int64(t.ArraySize) * (*t.Pointer.Size))
		}
		for i := int32(0); i < t.ArraySize; i++ {
			if err := Skip(r, t.Pointer); err != nil {
				return err
			}
		}
		return nil
	case CStaticArray, CStaticStackArray:
		return skipStaticArray(r, t)
	case CDynamicContainer:
		if err := r.Skip(4); err != nil {
			return err
		}
		count, err := r.ReadInt32()
		if err != nil {
			return err
		}
		return r.Skip(int64(count) * 4)
	case Struct:
		return skipStruct(r, t)
	case Typedef:
		return Skip(r, t.Pointer)
	case UniquePointer:
		switch t.Template {
		case "ResourceLink":
			_, err := r.ReadString()
			return err
		case "Synced":
			return Skip(r, t.Pointer)
		case "CStaticArray2D":
			if err := r.Skip(8); err != nil {
				return err
			}
			return skipStaticArray(r, t)
		}
	}
	return xerrors.Errorf("cannot skip %s (kind %v) with unknown size: %w", t.Name, t.Kind, xerr.ErrUnexpectedDataTypeKind)
}

func skipStruct(r *metabin.Reader, t *DataType) error {
	if t.Pointer != nil {
		if err := Skip(r, t.Pointer); err != nil {
			return err
		}
	}
	for _, m := range t.Members {
		if err := Skip(r, m.DataType); err != nil {
			return err
		}
	}
	return nil
}

func skipStaticArray(r *metabin.Reader, t *DataType) error {
	if err := r.Skip(4); err != nil {
		return err
	}
	count, err := r.ReadInt32()
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		if err := Skip(r, t.Pointer); err != nil {
			return err
		}
	}
	return nil
}

// SkipToResourceLink walks one instance of t, suspending into onLink at
// every reachable ResourceLink string, per spec §4.5. Callers must only
// invoke this when t.HasResourceLink() is true; Skip is the right call
// otherwise, and SkipToResourceLink falls back to it on any branch that
// structurally cannot reach a resource link.
func SkipToResourceLink(r *metabin.Reader, t *DataType, onLink OnResourceLink) error {
	if !t.HasResourceLink() {
		return Skip(r, t)
	}

	switch t.Kind {
	case UniquePointer:
		switch t.Template {
		case "ResourceLink":
			return onLink(r)
		case "Synced":
			return SkipToResourceLink(r, t.Pointer, onLink)
		case "CStaticArray2D":
			if err := r.Skip(8); err != nil {
				return err
			}
			return skipToResourceLinkStaticArray(r, t, onLink)
		}
		return Skip(r, t)
	case Array:
		for i := int32(0); i < t.ArraySize; i++ {
			if err := SkipToResourceLink(r, t.Pointer, onLink); err != nil {
				return err
			}
		}
		return nil
	case CStaticArray, CStaticStackArray:
		return skipToResourceLinkStaticArray(r, t, onLink)
	case Struct:
		if t.Pointer != nil {
			if err := SkipToResourceLink(r, t.Pointer, onLink); err != nil {
				return err
			}
		}
		for i := range t.Members {
			if err := SkipToResourceLink(r, t.Members[i].DataType, onLink); err != nil {
				return err
			}
		}
		return nil
	case Typedef:
		return SkipToResourceLink(r, t.Pointer, onLink)
	}
	return Skip(r, t)
}

func skipToResourceLinkStaticArray(r *metabin.Reader, t *DataType, onLink OnResourceLink) error {
	if err := r.Skip(4); err != nil {
		return err
	}
	count, err := r.ReadInt32()
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		if err := SkipToResourceLink(r, t.Pointer, onLink); err != nil {
			return err
		}
	}
	return nil
}

// WalkMembersWithTargets iterates t's members in order; a member present
// in targets (keyed by its address, so callers look it up via
// t.FindMember) is handed to its callback without being consumed first,
// any other member is simply skipped. This is the renamed-self state
// machine of spec §4.5: the caller supplies rewrite callbacks for the
// asset-filename and asset-UID members of a CResourceFile and lets every
// other member pass through untouched.
func WalkMembersWithTargets(r *metabin.Reader, t *DataType, targets map[*StructMember]OnResourceLink) error {
	for i := range t.Members {
		m := &t.Members[i]
		if cb, ok := targets[m]; ok {
			if err := cb(r); err != nil {
				return err
			}
			continue
		}
		if err := Skip(r, m.DataType); err != nil {
			return err
		}
	}
	return nil
}
