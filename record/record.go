package record

import "fmt"

// ErrUnknownMember is returned by ClassRecord.SetValue when name is not one
// of the class's declared members.
type ErrUnknownMember struct {
	Class string
	Name  string
}

func (e *ErrUnknownMember) Error() string {
	return fmt.Sprintf("record: class %q has no member %q", e.Class, e.Name)
}

// Record is implemented by every one of the 18 tagged record kinds.
type Record interface {
	// RecordKind returns the wire tag this record was decoded as (and will
	// be re-encoded as).
	RecordKind() Kind

	// ObjectID returns the record's object ID and true for the 10 ID-bearing
	// kinds (ClassWithId, the four full class kinds, BinaryObjectString,
	// BinaryArray, and the three single-dimension array kinds); BinaryLibrary
	// returns its library ID and true; false for the remaining kinds, which
	// carry no object identity.
	ObjectID() (int32, bool)
}

// AdditionalInfoKind distinguishes the four shapes AdditionalTypeInfo can
// take, parallel to a member's BinaryType.
type AdditionalInfoKind byte

const (
	AdditionalInfoNone AdditionalInfoKind = iota
	AdditionalInfoPrimitive
	AdditionalInfoSystemClass
	AdditionalInfoClass
)

// AdditionalTypeInfo carries the extra type detail a member's BinaryType
// implies: a PrimitiveType for BinaryTypePrimitive, a class name for
// BinaryTypeSystemClass, a class name plus library ID for BinaryTypeClass,
// and nothing for every other BinaryType.
type AdditionalTypeInfo struct {
	Kind          AdditionalInfoKind
	PrimitiveType PrimitiveType
	Name          string
	LibraryId     int32
}

// ClassInfo is the name and ordered member list common to every class
// record kind. Order is significant: it matches the order of value slots.
type ClassInfo struct {
	ObjectId    int32
	Name        string
	MemberNames []string
}

// MemberTypeInfo is the per-member BinaryType/AdditionalTypeInfo pair
// present only on SystemClassWithMembersAndTypes and
// ClassWithMembersAndTypes (and inherited by ClassWithId when its
// metadata came from one of those kinds).
type MemberTypeInfo struct {
	BinaryTypes     []BinaryType
	AdditionalInfos []AdditionalTypeInfo
}

// Value is a member slot or array element: either an inline primitive or a
// reference to a nested record (spec.md §3's Value = primitive | null | record).
type Value struct {
	IsRecord  bool
	Record    Record // populated when IsRecord is true
	Primitive any    // populated when IsRecord is false; nil means a null slot
}

// NullValue is the canonical null Value (an ObjectNull slot collapsed to a
// plain null, used for array elements expanded out of a null run).
var NullValue = Value{}

// PrimitiveValue wraps a decoded primitive in a Value.
func PrimitiveValue(v any) Value { return Value{Primitive: v} }

// RecordValue wraps a nested record in a Value.
func RecordValue(r Record) Value { return Value{IsRecord: true, Record: r} }

// IsNull reports whether the value is a null (no record, no primitive).
func (v Value) IsNull() bool { return !v.IsRecord && v.Primitive == nil }

// HeaderRecord is the first record in every stream (Kind 0).
type HeaderRecord struct {
	RootId       int32
	HeaderId     int32
	MajorVersion int32
	MinorVersion int32
}

func (r *HeaderRecord) RecordKind() Kind          { return KindHeader }
func (r *HeaderRecord) ObjectID() (int32, bool)   { return 0, false }

// BinaryLibraryRecord names a .NET assembly referenced by class records
// (Kind 12). It is registered into the library table, not the record table
// (spec.md §4.3).
type BinaryLibraryRecord struct {
	LibraryId   int32
	LibraryName string
}

func (r *BinaryLibraryRecord) RecordKind() Kind        { return KindBinaryLibrary }
func (r *BinaryLibraryRecord) ObjectID() (int32, bool) { return r.LibraryId, true }

// ClassRecord covers the five class record kinds (1 through 5). Which
// fields are populated depends on OriginalKind:
//
//   - TypeInfo is non-nil only for kinds 4 and 5 (and for ClassWithId when
//     its referenced metadata came from one of those kinds).
//   - LibraryId is non-nil only for kinds 3 and 5 (and ClassWithId inherits
//     it from its referenced metadata).
type ClassRecord struct {
	Info         ClassInfo
	TypeInfo     *MemberTypeInfo
	LibraryId    *int32
	OriginalKind Kind
	Values       map[string]Value

	// MetadataId is set only when OriginalKind == KindClassWithId: the
	// objectId of the full class record this one's layout was resolved
	// from, needed to reproduce the exact wire bytes on re-encode.
	MetadataId *int32
}

func (r *ClassRecord) RecordKind() Kind        { return r.OriginalKind }
func (r *ClassRecord) ObjectID() (int32, bool) { return r.Info.ObjectId, true }

// TypeName returns the class name (or, for ClassWithId, the name inherited
// from the referenced metadata).
func (r *ClassRecord) TypeName() string { return r.Info.Name }

// MemberNames returns the ordered member names.
func (r *ClassRecord) MemberNames() []string { return r.Info.MemberNames }

// GetValue returns the member's current value and whether it exists.
func (r *ClassRecord) GetValue(name string) (Value, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// SetValue sets the member's value. It fails with *ErrUnknownMember if name
// is not one of MemberNames; it does not type-check v against the class's
// MemberTypeInfo (spec.md §4.2) — the caller must supply a value compatible
// with the member's encoded BinaryType. As a convenience, a
// MemberPrimitiveTypedRecord passed for a typed-primitive member (one with
// no wrapper on the wire) is unwrapped to its bare primitive, so callers
// don't need to know a member's wire shape in advance.
func (r *ClassRecord) SetValue(name string, v Value) error {
	idx := -1
	for i, n := range r.Info.MemberNames {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &ErrUnknownMember{Class: r.Info.Name, Name: name}
	}
	if r.TypeInfo != nil && r.TypeInfo.BinaryTypes[idx] == BinaryTypePrimitive {
		if wrapped, ok := v.Record.(*MemberPrimitiveTypedRecord); ok {
			v = wrapped.Value
		}
	}
	if r.Values == nil {
		r.Values = make(map[string]Value)
	}
	r.Values[name] = v
	return nil
}

// BinaryArrayRecord is a multi-dimensional or jagged array (Kind 7).
type BinaryArrayRecord struct {
	ObjectId    int32
	ArrayKind   ArrayKind
	Rank        int32
	Lengths     []int32
	LowerBounds []int32 // non-nil only when ArrayKind.HasOffsets()
	ElementType BinaryType
	ElementInfo AdditionalTypeInfo
	Elements    []ElementSlot
}

func (r *BinaryArrayRecord) RecordKind() Kind        { return KindBinaryArray }
func (r *BinaryArrayRecord) ObjectID() (int32, bool) { return r.ObjectId, true }

// TotalLength returns the product of Lengths.
func (r *BinaryArrayRecord) TotalLength() int {
	total := 1
	for _, l := range r.Lengths {
		total *= int(l)
	}
	return total
}

// ArraySinglePrimitiveRecord is a single-dimension array of one primitive
// type (Kind 15). Primitives can't be null, so no null-run expansion
// applies here.
type ArraySinglePrimitiveRecord struct {
	ObjectId    int32
	ElementType PrimitiveType
	Elements    []Value
}

func (r *ArraySinglePrimitiveRecord) RecordKind() Kind        { return KindArraySinglePrimitive }
func (r *ArraySinglePrimitiveRecord) ObjectID() (int32, bool) { return r.ObjectId, true }

// ArraySingleObjectRecord is a single-dimension array of Object-typed
// elements (Kind 16).
type ArraySingleObjectRecord struct {
	ObjectId int32
	Elements []ElementSlot
}

func (r *ArraySingleObjectRecord) RecordKind() Kind        { return KindArraySingleObject }
func (r *ArraySingleObjectRecord) ObjectID() (int32, bool) { return r.ObjectId, true }

// ArraySingleStringRecord is a single-dimension array of String-typed
// elements (Kind 17).
type ArraySingleStringRecord struct {
	ObjectId int32
	Elements []ElementSlot
}

func (r *ArraySingleStringRecord) RecordKind() Kind        { return KindArraySingleString }
func (r *ArraySingleStringRecord) ObjectID() (int32, bool) { return r.ObjectId, true }

// BinaryObjectStringRecord is a standalone referenceable string (Kind 6).
type BinaryObjectStringRecord struct {
	ObjectId int32
	Value    string
}

func (r *BinaryObjectStringRecord) RecordKind() Kind        { return KindBinaryObjectString }
func (r *BinaryObjectStringRecord) ObjectID() (int32, bool) { return r.ObjectId, true }

// MemberPrimitiveTypedRecord is an explicitly-typed inline primitive used
// in untyped member/array contexts (Kind 8).
type MemberPrimitiveTypedRecord struct {
	PrimitiveType PrimitiveType
	Value         Value
}

func (r *MemberPrimitiveTypedRecord) RecordKind() Kind        { return KindMemberPrimitiveTyped }
func (r *MemberPrimitiveTypedRecord) ObjectID() (int32, bool) { return 0, false }

// MemberReferenceRecord points at another record already (or not yet)
// present in the record table (Kind 9). Forward references are legal;
// resolution happens lazily at consumer time.
type MemberReferenceRecord struct {
	IdRef int32
}

func (r *MemberReferenceRecord) RecordKind() Kind        { return KindMemberReference }
func (r *MemberReferenceRecord) ObjectID() (int32, bool) { return 0, false }

// ObjectNullRecord is a single null value (Kind 10).
type ObjectNullRecord struct{}

func (r *ObjectNullRecord) RecordKind() Kind        { return KindObjectNull }
func (r *ObjectNullRecord) ObjectID() (int32, bool) { return 0, false }

// ObjectNullMultipleRecord expands to Count consecutive null array slots,
// with a 4-byte count (Kind 14).
type ObjectNullMultipleRecord struct {
	Count int32
}

func (r *ObjectNullMultipleRecord) RecordKind() Kind        { return KindObjectNullMultiple }
func (r *ObjectNullMultipleRecord) ObjectID() (int32, bool) { return 0, false }

// ObjectNullMultiple256Record is the same as ObjectNullMultipleRecord but
// with a 1-byte count, capping the run at 255 (Kind 13).
type ObjectNullMultiple256Record struct {
	Count uint8
}

func (r *ObjectNullMultiple256Record) RecordKind() Kind        { return KindObjectNullMultiple256 }
func (r *ObjectNullMultiple256Record) ObjectID() (int32, bool) { return 0, false }

// MessageEndRecord is the mandatory trailer, appearing exactly once as the
// last record read from the stream (Kind 11).
type MessageEndRecord struct{}

func (r *MessageEndRecord) RecordKind() Kind        { return KindMessageEnd }
func (r *MessageEndRecord) ObjectID() (int32, bool) { return 0, false }
