// Package record implements the NRBF tagged-record data model: the 18-variant
// record union, the primitive/binary type enums, per-class member layout,
// and the Value union a member slot or array element can hold.
package record

import "fmt"

// Kind is the wire tag of an NRBF record. The numeric value is the byte
// written on the wire and must be preserved across a decode/encode
// round-trip (spec.md §3).
type Kind byte

const (
	KindHeader                         Kind = 0
	KindClassWithId                    Kind = 1
	KindSystemClassWithMembers         Kind = 2
	KindClassWithMembers               Kind = 3
	KindSystemClassWithMembersAndTypes Kind = 4
	KindClassWithMembersAndTypes       Kind = 5
	KindBinaryObjectString             Kind = 6
	KindBinaryArray                    Kind = 7
	KindMemberPrimitiveTyped           Kind = 8
	KindMemberReference                Kind = 9
	KindObjectNull                     Kind = 10
	KindMessageEnd                     Kind = 11
	KindBinaryLibrary                  Kind = 12
	KindObjectNullMultiple256          Kind = 13
	KindObjectNullMultiple             Kind = 14
	KindArraySinglePrimitive           Kind = 15
	KindArraySingleObject              Kind = 16
	KindArraySingleString              Kind = 17
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "Header"
	case KindClassWithId:
		return "ClassWithId"
	case KindSystemClassWithMembers:
		return "SystemClassWithMembers"
	case KindClassWithMembers:
		return "ClassWithMembers"
	case KindSystemClassWithMembersAndTypes:
		return "SystemClassWithMembersAndTypes"
	case KindClassWithMembersAndTypes:
		return "ClassWithMembersAndTypes"
	case KindBinaryObjectString:
		return "BinaryObjectString"
	case KindBinaryArray:
		return "BinaryArray"
	case KindMemberPrimitiveTyped:
		return "MemberPrimitiveTyped"
	case KindMemberReference:
		return "MemberReference"
	case KindObjectNull:
		return "ObjectNull"
	case KindMessageEnd:
		return "MessageEnd"
	case KindBinaryLibrary:
		return "BinaryLibrary"
	case KindObjectNullMultiple256:
		return "ObjectNullMultiple256"
	case KindObjectNullMultiple:
		return "ObjectNullMultiple"
	case KindArraySinglePrimitive:
		return "ArraySinglePrimitive"
	case KindArraySingleObject:
		return "ArraySingleObject"
	case KindArraySingleString:
		return "ArraySingleString"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// IsValid reports whether k is one of the 18 defined record kinds.
func (k Kind) IsValid() bool { return k <= KindArraySingleString }

// BinaryType describes how a class member slot or array element is typed.
type BinaryType byte

const (
	BinaryTypePrimitive BinaryType = iota
	BinaryTypeString
	BinaryTypeObject
	BinaryTypeSystemClass
	BinaryTypeClass
	BinaryTypeObjectArray
	BinaryTypeStringArray
	BinaryTypePrimitiveArray
)

func (t BinaryType) String() string {
	switch t {
	case BinaryTypePrimitive:
		return "Primitive"
	case BinaryTypeString:
		return "String"
	case BinaryTypeObject:
		return "Object"
	case BinaryTypeSystemClass:
		return "SystemClass"
	case BinaryTypeClass:
		return "Class"
	case BinaryTypeObjectArray:
		return "ObjectArray"
	case BinaryTypeStringArray:
		return "StringArray"
	case BinaryTypePrimitiveArray:
		return "PrimitiveArray"
	default:
		return fmt.Sprintf("BinaryType(%d)", byte(t))
	}
}

// PrimitiveType is the wire tag of an inline primitive value.
type PrimitiveType byte

const (
	PrimitiveBoolean PrimitiveType = iota + 1
	PrimitiveByte
	PrimitiveSByte
	// PrimitiveChar is read and written as a single byte, which covers only
	// the ASCII subset; wider (UTF-16) chars are not decoded.
	PrimitiveChar
	PrimitiveDecimal
	PrimitiveDouble
	PrimitiveInt16
	PrimitiveInt32
	PrimitiveInt64
	PrimitiveSingle
	PrimitiveTimeSpan
	PrimitiveDateTime
	PrimitiveUInt16
	PrimitiveUInt32
	PrimitiveUInt64
	PrimitiveNull
	PrimitiveString
)

func (t PrimitiveType) String() string {
	switch t {
	case PrimitiveBoolean:
		return "Boolean"
	case PrimitiveByte:
		return "Byte"
	case PrimitiveSByte:
		return "SByte"
	case PrimitiveChar:
		return "Char"
	case PrimitiveDecimal:
		return "Decimal"
	case PrimitiveDouble:
		return "Double"
	case PrimitiveInt16:
		return "Int16"
	case PrimitiveInt32:
		return "Int32"
	case PrimitiveInt64:
		return "Int64"
	case PrimitiveSingle:
		return "Single"
	case PrimitiveTimeSpan:
		return "TimeSpan"
	case PrimitiveDateTime:
		return "DateTime"
	case PrimitiveUInt16:
		return "UInt16"
	case PrimitiveUInt32:
		return "UInt32"
	case PrimitiveUInt64:
		return "UInt64"
	case PrimitiveNull:
		return "Null"
	case PrimitiveString:
		return "String"
	default:
		return fmt.Sprintf("PrimitiveType(%d)", byte(t))
	}
}

// ArrayKind identifies the shape of a BinaryArray record.
type ArrayKind byte

const (
	ArrayKindSingle ArrayKind = iota
	ArrayKindJagged
	ArrayKindRectangular
	ArrayKindSingleOffset
	ArrayKindJaggedOffset
	ArrayKindRectangularOffset
)

func (k ArrayKind) String() string {
	switch k {
	case ArrayKindSingle:
		return "Single"
	case ArrayKindJagged:
		return "Jagged"
	case ArrayKindRectangular:
		return "Rectangular"
	case ArrayKindSingleOffset:
		return "SingleOffset"
	case ArrayKindJaggedOffset:
		return "JaggedOffset"
	case ArrayKindRectangularOffset:
		return "RectangularOffset"
	default:
		return fmt.Sprintf("ArrayKind(%d)", byte(k))
	}
}

// HasOffsets reports whether k carries per-dimension lower bounds.
func (k ArrayKind) HasOffsets() bool {
	switch k {
	case ArrayKindSingleOffset, ArrayKindJaggedOffset, ArrayKindRectangularOffset:
		return true
	default:
		return false
	}
}
