// Package decoder implements the NRBF stream parser: header validation,
// record-kind dispatch, the metadata table that lets ClassWithId reuse an
// earlier class's member layout, and null-run expansion inside arrays.
package decoder

import (
	"github.com/binrec/nrbf-go/internal/wire"
	"github.com/binrec/nrbf-go/record"
)

// maxRecords is the hard safety cap on records read from a single stream
// (spec.md §4.3), guarding against pathological or adversarial input.
const maxRecords = 100_000

// Result is everything a successful decode produces.
type Result struct {
	Header    *record.HeaderRecord
	Root      record.Record
	Records   map[int32]record.Record
	Libraries map[int32]*record.BinaryLibraryRecord
}

type classMetadata struct {
	info      record.ClassInfo
	typeInfo  *record.MemberTypeInfo
	libraryId *int32
}

type decoder struct {
	r         *wire.Reader
	records   map[int32]record.Record
	metadata  map[int32]*classMetadata
	libraries map[int32]*record.BinaryLibraryRecord
	count     int
}

// Decode parses a complete NRBF byte stream.
func Decode(data []byte) (*Result, error) {
	d := &decoder{
		r:         wire.NewReader(data),
		records:   make(map[int32]record.Record),
		metadata:  make(map[int32]*classMetadata),
		libraries: make(map[int32]*record.BinaryLibraryRecord),
	}

	header, err := d.readHeader()
	if err != nil {
		return nil, err
	}

	for {
		rec, err := d.readRecordSkippingLibraries()
		if err != nil {
			return nil, err
		}
		if _, ok := rec.(*record.MessageEndRecord); ok {
			break
		}
	}

	root, ok := d.records[header.RootId]
	if !ok {
		return nil, &record.RootNotFound{RootId: header.RootId}
	}

	return &Result{
		Header:    header,
		Root:      root,
		Records:   d.records,
		Libraries: d.libraries,
	}, nil
}

func (d *decoder) readHeader() (*record.HeaderRecord, error) {
	offset := d.r.Offset()
	b, err := d.r.U8()
	if err != nil {
		return nil, truncated(d, err)
	}
	if record.Kind(b) != record.KindHeader {
		return nil, &record.BadRecordTag{Byte: b, Offset: offset, Context: d.r.Context(32)}
	}

	h := &record.HeaderRecord{}
	if h.RootId, err = d.r.I32(); err != nil {
		return nil, truncated(d, err)
	}
	if h.HeaderId, err = d.r.I32(); err != nil {
		return nil, truncated(d, err)
	}
	if h.MajorVersion, err = d.r.I32(); err != nil {
		return nil, truncated(d, err)
	}
	if h.MinorVersion, err = d.r.I32(); err != nil {
		return nil, truncated(d, err)
	}
	return h, nil
}

func truncated(d *decoder, err error) error {
	return &record.TruncatedStream{Offset: d.r.Offset(), Err: err}
}

func (d *decoder) register(id int32, rec record.Record) error {
	if _, exists := d.records[id]; exists {
		return &record.DuplicateObjectId{Id: id}
	}
	d.records[id] = rec
	return nil
}

// readRecordSkippingLibraries reads exactly one logical record, registering
// and transparently consuming any BinaryLibrary records encountered first —
// the format allows a library record to appear immediately before the
// class record that names it (spec.md §4.3's BinaryLibrary note).
func (d *decoder) readRecordSkippingLibraries() (record.Record, error) {
	for {
		rec, err := d.readNextRecord()
		if err != nil {
			return nil, err
		}
		if lib, ok := rec.(*record.BinaryLibraryRecord); ok {
			d.libraries[lib.LibraryId] = lib
			continue
		}
		return rec, nil
	}
}

// readNextRecord reads and dispatches a single tagged record.
func (d *decoder) readNextRecord() (record.Record, error) {
	offset := d.r.Offset()
	b, err := d.r.U8()
	if err != nil {
		return nil, truncated(d, err)
	}

	k := record.Kind(b)
	if !k.IsValid() {
		return nil, &record.BadRecordTag{Byte: b, Offset: offset, Context: d.r.Context(32)}
	}

	d.count++
	if d.count > maxRecords {
		return nil, &record.TooManyRecords{Limit: maxRecords}
	}

	switch k {
	case record.KindClassWithId:
		return d.decodeClassWithId()
	case record.KindSystemClassWithMembers, record.KindClassWithMembers,
		record.KindSystemClassWithMembersAndTypes, record.KindClassWithMembersAndTypes:
		return d.decodeFullClass(k)
	case record.KindBinaryObjectString:
		return d.decodeBinaryObjectString()
	case record.KindBinaryArray:
		return d.decodeBinaryArray()
	case record.KindMemberPrimitiveTyped:
		return d.decodeMemberPrimitiveTyped()
	case record.KindMemberReference:
		return d.decodeMemberReference()
	case record.KindObjectNull:
		return &record.ObjectNullRecord{}, nil
	case record.KindMessageEnd:
		return &record.MessageEndRecord{}, nil
	case record.KindBinaryLibrary:
		return d.decodeBinaryLibrary()
	case record.KindObjectNullMultiple256:
		return d.decodeObjectNullMultiple256()
	case record.KindObjectNullMultiple:
		return d.decodeObjectNullMultiple()
	case record.KindArraySinglePrimitive:
		return d.decodeArraySinglePrimitive()
	case record.KindArraySingleObject:
		return d.decodeArraySingleObject()
	case record.KindArraySingleString:
		return d.decodeArraySingleString()
	default:
		return nil, &record.BadRecordTag{Byte: b, Offset: offset, Context: d.r.Context(32)}
	}
}

func (d *decoder) decodeClassInfo() (record.ClassInfo, error) {
	var ci record.ClassInfo
	var err error
	if ci.ObjectId, err = d.r.I32(); err != nil {
		return ci, truncated(d, err)
	}
	if ci.Name, err = d.r.String(); err != nil {
		return ci, wrapStringErr(d, err)
	}
	count, err := d.r.I32()
	if err != nil {
		return ci, truncated(d, err)
	}
	ci.MemberNames = make([]string, count)
	for i := range ci.MemberNames {
		if ci.MemberNames[i], err = d.r.String(); err != nil {
			return ci, wrapStringErr(d, err)
		}
	}
	return ci, nil
}

func wrapStringErr(d *decoder, err error) error {
	switch err {
	case wire.ErrNegativeLength:
		return &record.NegativeStringLength{Offset: d.r.Offset()}
	case wire.ErrMalformedVarint:
		return &record.MalformedVarint{Offset: d.r.Offset()}
	case wire.ErrInvalidUTF8:
		return &record.InvalidUtf8{Offset: d.r.Offset()}
	default:
		return truncated(d, err)
	}
}

func (d *decoder) decodeMemberTypeInfo(count int32) (*record.MemberTypeInfo, error) {
	ti := &record.MemberTypeInfo{
		BinaryTypes:     make([]record.BinaryType, count),
		AdditionalInfos: make([]record.AdditionalTypeInfo, count),
	}
	for i := range ti.BinaryTypes {
		b, err := d.r.U8()
		if err != nil {
			return nil, truncated(d, err)
		}
		ti.BinaryTypes[i] = record.BinaryType(b)
	}
	for i, bt := range ti.BinaryTypes {
		info, err := d.decodeAdditionalTypeInfo(bt)
		if err != nil {
			return nil, err
		}
		ti.AdditionalInfos[i] = info
	}
	return ti, nil
}

func (d *decoder) decodeAdditionalTypeInfo(bt record.BinaryType) (record.AdditionalTypeInfo, error) {
	switch bt {
	case record.BinaryTypePrimitive, record.BinaryTypePrimitiveArray:
		b, err := d.r.U8()
		if err != nil {
			return record.AdditionalTypeInfo{}, truncated(d, err)
		}
		return record.AdditionalTypeInfo{Kind: record.AdditionalInfoPrimitive, PrimitiveType: record.PrimitiveType(b)}, nil
	case record.BinaryTypeSystemClass:
		name, err := d.r.String()
		if err != nil {
			return record.AdditionalTypeInfo{}, wrapStringErr(d, err)
		}
		return record.AdditionalTypeInfo{Kind: record.AdditionalInfoSystemClass, Name: name}, nil
	case record.BinaryTypeClass:
		name, err := d.r.String()
		if err != nil {
			return record.AdditionalTypeInfo{}, wrapStringErr(d, err)
		}
		libId, err := d.r.I32()
		if err != nil {
			return record.AdditionalTypeInfo{}, truncated(d, err)
		}
		return record.AdditionalTypeInfo{Kind: record.AdditionalInfoClass, Name: name, LibraryId: libId}, nil
	default:
		return record.AdditionalTypeInfo{Kind: record.AdditionalInfoNone}, nil
	}
}

func (d *decoder) decodeFullClass(k record.Kind) (record.Record, error) {
	ci, err := d.decodeClassInfo()
	if err != nil {
		return nil, err
	}

	var typeInfo *record.MemberTypeInfo
	if k == record.KindSystemClassWithMembersAndTypes || k == record.KindClassWithMembersAndTypes {
		typeInfo, err = d.decodeMemberTypeInfo(int32(len(ci.MemberNames)))
		if err != nil {
			return nil, err
		}
	}

	var libraryId *int32
	if k == record.KindClassWithMembers || k == record.KindClassWithMembersAndTypes {
		id, err := d.r.I32()
		if err != nil {
			return nil, truncated(d, err)
		}
		libraryId = &id
	}

	d.metadata[ci.ObjectId] = &classMetadata{info: ci, typeInfo: typeInfo, libraryId: libraryId}

	rec := &record.ClassRecord{
		Info:         ci,
		TypeInfo:     typeInfo,
		LibraryId:    libraryId,
		OriginalKind: k,
		Values:       make(map[string]record.Value, len(ci.MemberNames)),
	}
	if err := d.register(ci.ObjectId, rec); err != nil {
		return nil, err
	}

	if err := d.readClassValues(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *decoder) decodeClassWithId() (record.Record, error) {
	objectId, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}
	metadataId, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}

	meta, ok := d.metadata[metadataId]
	if !ok {
		return nil, &record.UnknownMetadata{MetadataId: metadataId}
	}

	ci := record.ClassInfo{ObjectId: objectId, Name: meta.info.Name, MemberNames: meta.info.MemberNames}
	rec := &record.ClassRecord{
		Info:         ci,
		TypeInfo:     meta.typeInfo,
		LibraryId:    meta.libraryId,
		OriginalKind: record.KindClassWithId,
		Values:       make(map[string]record.Value, len(ci.MemberNames)),
		MetadataId:   &metadataId,
	}
	if err := d.register(objectId, rec); err != nil {
		return nil, err
	}

	if err := d.readClassValues(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// readClassValues reads member values using the typed inline-primitive path
// when TypeInfo is available, else one full record per member.
func (d *decoder) readClassValues(rec *record.ClassRecord) error {
	for i, name := range rec.Info.MemberNames {
		if rec.TypeInfo != nil {
			bt := rec.TypeInfo.BinaryTypes[i]
			if bt == record.BinaryTypePrimitive {
				v, err := d.readPrimitive(rec.TypeInfo.AdditionalInfos[i].PrimitiveType)
				if err != nil {
					return err
				}
				rec.Values[name] = record.PrimitiveValue(v)
				continue
			}
		}
		v, err := d.readOneValue()
		if err != nil {
			return err
		}
		rec.Values[name] = v
	}
	return nil
}

// readOneValue reads one nested record for a member/array slot and
// collapses ObjectNull into a plain null Value, per spec.md §3's
// Value = primitive | null | record.
func (d *decoder) readOneValue() (record.Value, error) {
	rec, err := d.readRecordSkippingLibraries()
	if err != nil {
		return record.Value{}, err
	}
	if _, ok := rec.(*record.ObjectNullRecord); ok {
		return record.NullValue, nil
	}
	return record.RecordValue(rec), nil
}

func (d *decoder) readPrimitive(pt record.PrimitiveType) (any, error) {
	var (
		v   any
		err error
	)
	switch pt {
	case record.PrimitiveBoolean:
		v, err = d.r.Bool()
	case record.PrimitiveByte:
		v, err = d.r.U8()
	case record.PrimitiveSByte:
		v, err = d.r.I8()
	case record.PrimitiveChar:
		v, err = d.r.Char()
	case record.PrimitiveDecimal:
		v, err = d.r.Decimal16()
	case record.PrimitiveDouble:
		v, err = d.r.F64()
	case record.PrimitiveInt16:
		v, err = d.r.I16()
	case record.PrimitiveInt32:
		v, err = d.r.I32()
	case record.PrimitiveInt64:
		v, err = d.r.I64()
	case record.PrimitiveSingle:
		v, err = d.r.F32()
	case record.PrimitiveTimeSpan:
		v, err = d.r.I64()
	case record.PrimitiveDateTime:
		v, err = d.r.I64()
	case record.PrimitiveUInt16:
		v, err = d.r.U16()
	case record.PrimitiveUInt32:
		v, err = d.r.U32()
	case record.PrimitiveUInt64:
		v, err = d.r.U64()
	case record.PrimitiveNull:
		v, err = nil, nil
	case record.PrimitiveString:
		v, err = d.r.String()
	default:
		return nil, &record.BadRecordTag{Byte: byte(pt), Offset: d.r.Offset(), Context: d.r.Context(32)}
	}
	if err != nil {
		return nil, wrapStringErr(d, err)
	}
	return v, nil
}

func (d *decoder) decodeBinaryObjectString() (record.Record, error) {
	objectId, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}
	s, err := d.r.String()
	if err != nil {
		return nil, wrapStringErr(d, err)
	}
	rec := &record.BinaryObjectStringRecord{ObjectId: objectId, Value: s}
	if err := d.register(objectId, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *decoder) decodeMemberPrimitiveTyped() (record.Record, error) {
	b, err := d.r.U8()
	if err != nil {
		return nil, truncated(d, err)
	}
	pt := record.PrimitiveType(b)
	v, err := d.readPrimitive(pt)
	if err != nil {
		return nil, err
	}
	return &record.MemberPrimitiveTypedRecord{PrimitiveType: pt, Value: record.PrimitiveValue(v)}, nil
}

func (d *decoder) decodeMemberReference() (record.Record, error) {
	idRef, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}
	return &record.MemberReferenceRecord{IdRef: idRef}, nil
}

func (d *decoder) decodeBinaryLibrary() (record.Record, error) {
	libraryId, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}
	name, err := d.r.String()
	if err != nil {
		return nil, wrapStringErr(d, err)
	}
	return &record.BinaryLibraryRecord{LibraryId: libraryId, LibraryName: name}, nil
}

func (d *decoder) decodeObjectNullMultiple() (record.Record, error) {
	count, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}
	return &record.ObjectNullMultipleRecord{Count: count}, nil
}

func (d *decoder) decodeObjectNullMultiple256() (record.Record, error) {
	count, err := d.r.U8()
	if err != nil {
		return nil, truncated(d, err)
	}
	return &record.ObjectNullMultiple256Record{Count: count}, nil
}

func (d *decoder) decodeArraySinglePrimitive() (record.Record, error) {
	objectId, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}
	length, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}
	b, err := d.r.U8()
	if err != nil {
		return nil, truncated(d, err)
	}
	pt := record.PrimitiveType(b)

	rec := &record.ArraySinglePrimitiveRecord{ObjectId: objectId, ElementType: pt}
	if err := d.register(objectId, rec); err != nil {
		return nil, err
	}

	rec.Elements = make([]record.Value, length)
	for i := range rec.Elements {
		v, err := d.readPrimitive(pt)
		if err != nil {
			return nil, err
		}
		rec.Elements[i] = record.PrimitiveValue(v)
	}
	return rec, nil
}

func (d *decoder) decodeArraySingleObject() (record.Record, error) {
	objectId, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}
	length, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}

	rec := &record.ArraySingleObjectRecord{ObjectId: objectId}
	if err := d.register(objectId, rec); err != nil {
		return nil, err
	}

	rec.Elements, err = d.readExpandedElements(int(length))
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *decoder) decodeArraySingleString() (record.Record, error) {
	objectId, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}
	length, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}

	rec := &record.ArraySingleStringRecord{ObjectId: objectId}
	if err := d.register(objectId, rec); err != nil {
		return nil, err
	}

	rec.Elements, err = d.readExpandedElements(int(length))
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *decoder) decodeBinaryArray() (record.Record, error) {
	objectId, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}
	kb, err := d.r.U8()
	if err != nil {
		return nil, truncated(d, err)
	}
	ak := record.ArrayKind(kb)

	rank, err := d.r.I32()
	if err != nil {
		return nil, truncated(d, err)
	}

	lengths := make([]int32, rank)
	for i := range lengths {
		if lengths[i], err = d.r.I32(); err != nil {
			return nil, truncated(d, err)
		}
	}

	var lowerBounds []int32
	if ak.HasOffsets() {
		lowerBounds = make([]int32, rank)
		for i := range lowerBounds {
			if lowerBounds[i], err = d.r.I32(); err != nil {
				return nil, truncated(d, err)
			}
		}
	}

	btb, err := d.r.U8()
	if err != nil {
		return nil, truncated(d, err)
	}
	elementType := record.BinaryType(btb)
	elementInfo, err := d.decodeAdditionalTypeInfo(elementType)
	if err != nil {
		return nil, err
	}

	rec := &record.BinaryArrayRecord{
		ObjectId:    objectId,
		ArrayKind:   ak,
		Rank:        rank,
		Lengths:     lengths,
		LowerBounds: lowerBounds,
		ElementType: elementType,
		ElementInfo: elementInfo,
	}
	if err := d.register(objectId, rec); err != nil {
		return nil, err
	}

	total := rec.TotalLength()
	if elementType == record.BinaryTypePrimitive {
		elements := make([]record.ElementSlot, total)
		for i := range elements {
			v, err := d.readPrimitive(elementInfo.PrimitiveType)
			if err != nil {
				return nil, err
			}
			elements[i] = record.ValueSlot(record.PrimitiveValue(v))
		}
		rec.Elements = elements
	} else {
		rec.Elements, err = d.readExpandedElements(total)
		if err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// readExpandedElements reads n logical array slots, keeping the wire-exact
// shape: a concrete value slot, or a null-run token (ObjectNullMultiple /
// ObjectNullMultiple256) that expands to Count consecutive null slots
// (spec.md §4.3's null-run expansion; spec.md §8's null-run fidelity
// property requires the original run kind and count survive re-encode).
func (d *decoder) readExpandedElements(n int) ([]record.ElementSlot, error) {
	slots := make([]record.ElementSlot, 0, n)
	logical := 0
	for logical < n {
		rec, err := d.readRecordSkippingLibraries()
		if err != nil {
			return nil, err
		}
		switch v := rec.(type) {
		case *record.ObjectNullRecord:
			slots = append(slots, record.ValueSlot(record.NullValue))
			logical++
		case *record.ObjectNullMultipleRecord:
			slots = append(slots, record.RunSlot(record.KindObjectNullMultiple, v.Count))
			logical += int(v.Count)
		case *record.ObjectNullMultiple256Record:
			slots = append(slots, record.RunSlot(record.KindObjectNullMultiple256, int32(v.Count)))
			logical += int(v.Count)
		default:
			slots = append(slots, record.ValueSlot(record.RecordValue(rec)))
			logical++
		}
	}
	return slots, nil
}
