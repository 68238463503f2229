// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package datatype is the self-describing type model discovered from a
// binary meta file's INTERNAL_TYPES block (spec §3, §4.5). A DataType
// knows, once fully populated, its own static size (if any), whether it
// can ever carry a resource-link string, and how to skip or walk an
// instance of itself in the object stream that follows.
//
// Types are allocated by index first into a flat arena, then cross-type
// Pointer/Members references are resolved against that arena - the same
// shape saferwall/pe uses for RVA-to-section resolution, just one level
// of indirection earlier (index instead of address).
package datatype

import (
	"github.com/saferwall/seresave/metabin"
	xerr "github.com/saferwall/seresave/internal/xerrors"
	"golang.org/x/xerrors"
)

// Kind is the tag discriminating how a DataType's instances are laid out.
type Kind int32

const (
	Simple Kind = iota
	ValueField
	Pointer
	Reference
	Array
	Struct
	CStaticArray
	CStaticStackArray
	CDynamicContainer
	Function
	Void
	SmartPointer
	Handle
	Typedef
	UniquePointer
	ScriptState
	ScriptLatent
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "Simple"
	case ValueField:
		return "ValueField"
	case Pointer:
		return "Pointer"
	case Reference:
		return "Reference"
	case Array:
		return "Array"
	case Struct:
		return "Struct"
	case CStaticArray:
		return "CStaticArray"
	case CStaticStackArray:
		return "CStaticStackArray"
	case CDynamicContainer:
		return "CDynamicContainer"
	case Function:
		return "Function"
	case Void:
		return "Void"
	case SmartPointer:
		return "SmartPointer"
	case Handle:
		return "Handle"
	case Typedef:
		return "Typedef"
	case UniquePointer:
		return "UniquePointer"
	case ScriptState:
		return "ScriptState"
	case ScriptLatent:
		return "ScriptLatent"
	default:
		return "Unknown"
	}
}

// StructMember is one field of a Struct DataType. Either Id (a decimal
// integer string, newer meta versions) or Name (older versions)
// identifies the field; both may be populated or either may be empty.
type StructMember struct {
	Name     string
	Id       string
	DataType *DataType
}

type linkState int8

const (
	linkUnknown linkState = iota
	linkVisiting
	linkFalse
	linkTrue
)

// DataType is one entry of a file's INTERNAL_TYPES block, fully populated
// before any object is walked and discarded with the parser.
type DataType struct {
	Index     int32
	Name      string
	Kind      Kind
	Format    int32
	Size      *int64
	Pointer   *DataType
	ArraySize int32
	Template  string
	Members   []StructMember

	link linkState
}

// primitiveSizes are the fixed byte sizes of recognized Simple/Unknown
// primitive type names, per spec §4.5.
var primitiveSizes = map[string]int64{
	"SBYTE": 1, "UBYTE": 1,
	"SWORD": 2, "UWORD": 2,
	"SLONG": 4, "ULONG": 4, "FLOAT": 4, "IDENT": 4,
	"SQUAD": 8, "DOUBLE": 8,
}

// PropagateSizes runs the size-propagation pass over types until no type
// gains a newly-known size, per spec §4.5 step 1. It is idempotent:
// calling it again after all sizes are resolved (or stuck unresolved) is
// a no-op.
func PropagateSizes(types []*DataType) {
	for pass, changed := 0, true; changed && pass <= len(types); pass++ {
		changed = false
		for _, t := range types {
			if t.Size != nil {
				continue
			}
			if sz, ok := computeSize(t); ok {
				v := sz
				t.Size = &v
				changed = true
			}
		}
	}
}

func computeSize(t *DataType) (int64, bool) {
	switch t.Kind {
	case Simple, Unknown, ValueField:
		sz, ok := primitiveSizes[t.Name]
		return sz, ok
	case Pointer, Reference, SmartPointer, Handle:
		return 4, true
	case Array:
		if t.Pointer != nil && t.Pointer.Size != nil {
			return int64(t.ArraySize) * (*t.Pointer.Size), true
		}
		return 0, false
	case Struct:
		var total int64
		if t.Pointer != nil {
			if t.Pointer.Size == nil {
				return 0, false
			}
			total += *t.Pointer.Size
		}
		for _, m := range t.Members {
			if m.DataType.Size == nil {
				return 0, false
			}
			total += *m.DataType.Size
		}
		return total, true
	case Typedef:
		if t.Pointer != nil && t.Pointer.Size != nil {
			return *t.Pointer.Size, true
		}
		return 0, false
	case UniquePointer:
		switch t.Template {
		case "UniquePtr":
			return 4, true
		case "Synced":
			if t.Pointer != nil && t.Pointer.Size != nil {
				return *t.Pointer.Size, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// HasResourceLink reports whether any constituent reachable from t is a
// UniquePointer of template ResourceLink, memoized with a tri-state guard
// against cycles through Struct bases and pointees.
func (t *DataType) HasResourceLink() bool {
	switch t.link {
	case linkTrue:
		return true
	case linkFalse, linkVisiting:
		return false
	}
	t.link = linkVisiting
	result := t.resolveHasResourceLink()
	if result {
		t.link = linkTrue
	} else {
		t.link = linkFalse
	}
	return result
}

func (t *DataType) resolveHasResourceLink() bool {
	if t.Kind == UniquePointer && t.Template == "ResourceLink" {
		return true
	}
	if t.Pointer != nil && t.Pointer.HasResourceLink() {
		return true
	}
	for _, m := range t.Members {
		if m.DataType.HasResourceLink() {
			return true
		}
	}
	return false
}

// FindMember returns the member whose Id or Name equals idOrName, or nil.
func (t *DataType) FindMember(idOrName string) *StructMember {
	for i := range t.Members {
		if t.Members[i].Id == idOrName || t.Members[i].Name == idOrName {
			return &t.Members[i]
		}
	}
	return nil
}

// ParseTypes reads the INTERNAL_TYPES block from r: a DATA_TYPE entry per
// type (with a nested STRUCT_MEMBERS block for Struct kinds), allocating
// every DataType by index before resolving Pointer and member type
// references against the resulting arena.
func ParseTypes(r *metabin.Reader) ([]*DataType, error) {
	if err := r.AssertBlock(metabin.TagInternalTypes); err != nil {
		return nil, err
	}
	count, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	types := make([]*DataType, count)
	for i := range types {
		types[i] = &DataType{}
	}

	type rawMember struct {
		id, name string
		typeIdx  int32
	}
	pointerIdx := make([]int32, count)
	memberRefs := make([][]rawMember, count)

	for n := int32(0); n < count; n++ {
		if err := r.AssertBlock(metabin.TagDataType); err != nil {
			return nil, err
		}
		idx, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= count {
			return nil, xerrors.Errorf("data type index %d out of [0,%d): %w", idx, count, xerr.ErrMalformedHeader)
		}
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		kindRaw, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		format, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		ptrIdx, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		arrSize, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		template, err := r.ReadString()
		if err != nil {
			return nil, err
		}

		t := types[idx]
		t.Index = idx
		t.Name = name
		t.Kind = Kind(kindRaw)
		t.Format = format
		t.ArraySize = arrSize
		t.Template = template
		pointerIdx[idx] = ptrIdx

		if t.Kind == Struct {
			if err := r.AssertBlock(metabin.TagStructMembers); err != nil {
				return nil, err
			}
			mcount, err := r.ReadInt32()
			if err != nil {
				return nil, err
			}
			members := make([]rawMember, mcount)
			for j := range members {
				id, err := r.ReadString()
				if err != nil {
					return nil, err
				}
				mname, err := r.ReadString()
				if err != nil {
					return nil, err
				}
				mtIdx, err := r.ReadInt32()
				if err != nil {
					return nil, err
				}
				members[j] = rawMember{id: id, name: mname, typeIdx: mtIdx}
			}
			memberRefs[idx] = members
		}
	}

	for i, t := range types {
		if pointerIdx[i] >= 0 {
			if int(pointerIdx[i]) >= len(types) {
				return nil, xerrors.Errorf("data type %d pointer index %d out of range: %w", i, pointerIdx[i], xerr.ErrMalformedHeader)
			}
			t.Pointer = types[pointerIdx[i]]
		}
		if memberRefs[i] != nil {
			t.Members = make([]StructMember, len(memberRefs[i]))
			for j, rm := range memberRefs[i] {
				if int(rm.typeIdx) >= len(types) {
					return nil, xerrors.Errorf("struct member %d type index %d out of range: %w", j, rm.typeIdx, xerr.ErrMalformedHeader)
				}
				t.Members[j] = StructMember{Id: rm.id, Name: rm.name, DataType: types[rm.typeIdx]}
			}
		}
	}

	return types, nil
}
