// Package encoder serializes a decoded NRBF graph back to wire bytes,
// replaying each record's original kind exactly as decoded.
package encoder

import (
	"fmt"

	"github.com/binrec/nrbf-go/internal/wire"
	"github.com/binrec/nrbf-go/record"
)

type encoder struct {
	w                *wire.Writer
	libraries        map[int32]*record.BinaryLibraryRecord
	emitted          map[int32]bool
	emittedLibraries map[int32]bool
}

// Encode serializes root (and everything reachable from it) into a
// complete NRBF stream. rootId overrides the header's rootId; if nil,
// root.ObjectID() is used, falling back to 1 (spec.md §4.4). libraries
// supplies the names for any library-bearing class records encountered.
func Encode(root record.Record, rootId *int32, libraries map[int32]*record.BinaryLibraryRecord) ([]byte, error) {
	e := &encoder{
		w:                wire.NewWriter(),
		libraries:        libraries,
		emitted:          make(map[int32]bool),
		emittedLibraries: make(map[int32]bool),
	}

	id := int32(1)
	if rootId != nil {
		id = *rootId
	} else if rid, ok := root.ObjectID(); ok {
		id = rid
	}

	e.w.U8(byte(record.KindHeader))
	e.w.I32(id)
	e.w.I32(-1)
	e.w.I32(1)
	e.w.I32(0)

	if err := e.emitRecord(root); err != nil {
		return nil, err
	}

	e.w.U8(byte(record.KindMessageEnd))
	return e.w.Bytes(), nil
}

// emitRecord writes rec if it hasn't already been emitted under its
// objectId; an already-emitted ID-bearing record is skipped entirely,
// since the original encoding referenced it by ID via a MemberReference
// and re-emitting it would duplicate that ID (spec.md §4.4).
func (e *encoder) emitRecord(rec record.Record) error {
	id, hasId := rec.ObjectID()
	if hasId && e.emitted[id] {
		return nil
	}

	if err := e.emitBody(rec); err != nil {
		return err
	}

	if hasId {
		e.emitted[id] = true
	}
	return nil
}

func (e *encoder) emitBody(rec record.Record) error {
	switch v := rec.(type) {
	case *record.ClassRecord:
		return e.emitClass(v)
	case *record.BinaryArrayRecord:
		return e.emitBinaryArray(v)
	case *record.ArraySinglePrimitiveRecord:
		return e.emitArraySinglePrimitive(v)
	case *record.ArraySingleObjectRecord:
		return e.emitArraySingleObject(v)
	case *record.ArraySingleStringRecord:
		return e.emitArraySingleString(v)
	case *record.BinaryObjectStringRecord:
		e.w.U8(byte(record.KindBinaryObjectString))
		e.w.I32(v.ObjectId)
		return e.w.String(v.Value)
	case *record.MemberPrimitiveTypedRecord:
		return e.emitMemberPrimitiveTyped(v)
	case *record.MemberReferenceRecord:
		e.w.U8(byte(record.KindMemberReference))
		e.w.I32(v.IdRef)
		return nil
	case *record.ObjectNullRecord:
		e.w.U8(byte(record.KindObjectNull))
		return nil
	case *record.ObjectNullMultipleRecord:
		e.w.U8(byte(record.KindObjectNullMultiple))
		e.w.I32(v.Count)
		return nil
	case *record.ObjectNullMultiple256Record:
		e.w.U8(byte(record.KindObjectNullMultiple256))
		e.w.U8(v.Count)
		return nil
	case *record.BinaryLibraryRecord:
		return e.emitLibrary(v)
	case *record.MessageEndRecord:
		e.w.U8(byte(record.KindMessageEnd))
		return nil
	default:
		return fmt.Errorf("encoder: unsupported record type %T", rec)
	}
}

func (e *encoder) emitLibrary(lib *record.BinaryLibraryRecord) error {
	if e.emittedLibraries[lib.LibraryId] {
		return nil
	}
	e.w.U8(byte(record.KindBinaryLibrary))
	e.w.I32(lib.LibraryId)
	if err := e.w.String(lib.LibraryName); err != nil {
		return err
	}
	e.emittedLibraries[lib.LibraryId] = true
	return nil
}

// ensureLibrary emits libraryId's BinaryLibrary record the first time it is
// needed, tracked in a set separate from the record-table emitted set
// (spec.md §4.4's "emit a library record the first time a library-
// referencing class is about to be emitted").
func (e *encoder) ensureLibrary(libraryId int32) error {
	if e.emittedLibraries[libraryId] {
		return nil
	}
	lib, ok := e.libraries[libraryId]
	if !ok {
		return nil // caller-constructed graph with no matching library entry
	}
	return e.emitLibrary(lib)
}

func (e *encoder) emitClass(v *record.ClassRecord) error {
	if v.OriginalKind == record.KindClassWithMembers || v.OriginalKind == record.KindClassWithMembersAndTypes {
		if v.LibraryId != nil {
			if err := e.ensureLibrary(*v.LibraryId); err != nil {
				return err
			}
		}
	}

	e.w.U8(byte(v.OriginalKind))

	if v.OriginalKind == record.KindClassWithId {
		e.w.I32(v.Info.ObjectId)
		metadataId := v.Info.ObjectId
		if v.MetadataId != nil {
			metadataId = *v.MetadataId
		}
		e.w.I32(metadataId)
	} else {
		e.w.I32(v.Info.ObjectId)
		if err := e.w.String(v.Info.Name); err != nil {
			return err
		}
		e.w.I32(int32(len(v.Info.MemberNames)))
		for _, name := range v.Info.MemberNames {
			if err := e.w.String(name); err != nil {
				return err
			}
		}

		if v.OriginalKind == record.KindSystemClassWithMembersAndTypes || v.OriginalKind == record.KindClassWithMembersAndTypes {
			if err := e.emitMemberTypeInfo(v.TypeInfo); err != nil {
				return err
			}
		}

		if v.OriginalKind == record.KindClassWithMembers || v.OriginalKind == record.KindClassWithMembersAndTypes {
			e.w.I32(*v.LibraryId)
		}
	}

	for i, name := range v.Info.MemberNames {
		val := v.Values[name]
		if v.TypeInfo != nil && v.TypeInfo.BinaryTypes[i] == record.BinaryTypePrimitive {
			if err := e.writePrimitive(v.TypeInfo.AdditionalInfos[i].PrimitiveType, val.Primitive); err != nil {
				return err
			}
			continue
		}
		if err := e.emitValue(val); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) emitMemberTypeInfo(ti *record.MemberTypeInfo) error {
	for _, bt := range ti.BinaryTypes {
		e.w.U8(byte(bt))
	}
	for i, bt := range ti.BinaryTypes {
		if err := e.emitAdditionalTypeInfo(bt, ti.AdditionalInfos[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) emitAdditionalTypeInfo(bt record.BinaryType, info record.AdditionalTypeInfo) error {
	switch bt {
	case record.BinaryTypePrimitive, record.BinaryTypePrimitiveArray:
		e.w.U8(byte(info.PrimitiveType))
		return nil
	case record.BinaryTypeSystemClass:
		return e.w.String(info.Name)
	case record.BinaryTypeClass:
		if err := e.w.String(info.Name); err != nil {
			return err
		}
		e.w.I32(info.LibraryId)
		return nil
	default:
		return nil
	}
}

// emitValue writes a member/array slot's value in an untyped context: null
// as a single ObjectNull, a nested record via recursion, or — for a bare
// primitive a caller set directly without wrapping it in a
// MemberPrimitiveTypedRecord — EncodeTypeAmbiguous, since the wire type
// cannot be inferred outside a typed context (spec.md §4.4, §9).
func (e *encoder) emitValue(v record.Value) error {
	if v.IsNull() {
		e.w.U8(byte(record.KindObjectNull))
		return nil
	}
	if v.IsRecord {
		return e.emitRecord(v.Record)
	}
	return &record.EncodeTypeAmbiguous{Value: v.Primitive}
}

func (e *encoder) emitMemberPrimitiveTyped(v *record.MemberPrimitiveTypedRecord) error {
	e.w.U8(byte(record.KindMemberPrimitiveTyped))
	e.w.U8(byte(v.PrimitiveType))
	return e.writePrimitive(v.PrimitiveType, v.Value.Primitive)
}

func (e *encoder) emitArraySinglePrimitive(v *record.ArraySinglePrimitiveRecord) error {
	e.w.U8(byte(record.KindArraySinglePrimitive))
	e.w.I32(v.ObjectId)
	e.w.I32(int32(len(v.Elements)))
	e.w.U8(byte(v.ElementType))
	for _, el := range v.Elements {
		if err := e.writePrimitive(v.ElementType, el.Primitive); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) emitArraySingleObject(v *record.ArraySingleObjectRecord) error {
	e.w.U8(byte(record.KindArraySingleObject))
	e.w.I32(v.ObjectId)
	e.w.I32(int32(record.LogicalLength(v.Elements)))
	return e.emitSlots(v.Elements)
}

func (e *encoder) emitArraySingleString(v *record.ArraySingleStringRecord) error {
	e.w.U8(byte(record.KindArraySingleString))
	e.w.I32(v.ObjectId)
	e.w.I32(int32(record.LogicalLength(v.Elements)))
	return e.emitSlots(v.Elements)
}

func (e *encoder) emitBinaryArray(v *record.BinaryArrayRecord) error {
	if v.ElementType == record.BinaryTypeClass {
		if err := e.ensureLibrary(v.ElementInfo.LibraryId); err != nil {
			return err
		}
	}

	e.w.U8(byte(record.KindBinaryArray))
	e.w.I32(v.ObjectId)
	e.w.U8(byte(v.ArrayKind))
	e.w.I32(v.Rank)
	for _, l := range v.Lengths {
		e.w.I32(l)
	}
	if v.ArrayKind.HasOffsets() {
		for _, lb := range v.LowerBounds {
			e.w.I32(lb)
		}
	}
	e.w.U8(byte(v.ElementType))
	if err := e.emitAdditionalTypeInfo(v.ElementType, v.ElementInfo); err != nil {
		return err
	}

	if v.ElementType == record.BinaryTypePrimitive {
		for _, el := range v.Elements {
			if err := e.writePrimitive(v.ElementInfo.PrimitiveType, el.Value.Primitive); err != nil {
				return err
			}
		}
		return nil
	}
	return e.emitSlots(v.Elements)
}

// emitSlots replays a wire-shaped element sequence exactly: concrete
// values recurse through emitRecord/emitValue, null-run tokens are written
// back out with their original kind and count untouched.
func (e *encoder) emitSlots(slots []record.ElementSlot) error {
	for _, s := range slots {
		if s.Kind == record.SlotNullRun {
			e.w.U8(byte(s.RunKind))
			switch s.RunKind {
			case record.KindObjectNullMultiple:
				e.w.I32(s.RunCount)
			case record.KindObjectNullMultiple256:
				e.w.U8(uint8(s.RunCount))
			default:
				return fmt.Errorf("encoder: element run has unexpected kind %v", s.RunKind)
			}
			continue
		}
		if err := e.emitValue(s.Value); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writePrimitive(pt record.PrimitiveType, v any) error {
	switch pt {
	case record.PrimitiveBoolean:
		e.w.Bool(asBool(v))
	case record.PrimitiveByte:
		e.w.U8(asUint8(v))
	case record.PrimitiveSByte:
		e.w.I8(asInt8(v))
	case record.PrimitiveChar:
		e.w.Char(asUint8(v))
	case record.PrimitiveDecimal:
		return e.w.Decimal16(asString(v))
	case record.PrimitiveDouble:
		e.w.F64(asFloat64(v))
	case record.PrimitiveInt16:
		e.w.I16(asInt16(v))
	case record.PrimitiveInt32:
		e.w.I32(asInt32(v))
	case record.PrimitiveInt64:
		e.w.I64(asInt64(v))
	case record.PrimitiveSingle:
		e.w.F32(asFloat32(v))
	case record.PrimitiveTimeSpan:
		e.w.I64(asInt64(v))
	case record.PrimitiveDateTime:
		e.w.I64(asInt64(v))
	case record.PrimitiveUInt16:
		e.w.U16(asUint16(v))
	case record.PrimitiveUInt32:
		e.w.U32(asUint32(v))
	case record.PrimitiveUInt64:
		e.w.U64(asUint64(v))
	case record.PrimitiveNull:
		// no payload
	case record.PrimitiveString:
		return e.w.String(asString(v))
	default:
		return &record.EncodeTypeAmbiguous{Value: v}
	}
	return nil
}
