package record

import "fmt"

// The typed, non-overlapping error kinds produced by decode and encode
// (spec.md §7). All are fatal to the operation that produced them; no
// partial result is ever returned alongside one.

// TruncatedStream is returned when a read crosses the end of the buffer.
type TruncatedStream struct {
	Offset int
	Err    error
}

func (e *TruncatedStream) Error() string {
	return fmt.Sprintf("nrbf: truncated stream at offset %d: %v", e.Offset, e.Err)
}
func (e *TruncatedStream) Unwrap() error { return e.Err }

// BadRecordTag is returned when a lead byte is not one of the 18 defined
// record kinds. Context is up to 32 bytes surrounding Offset.
type BadRecordTag struct {
	Byte    byte
	Offset  int
	Context []byte
}

func (e *BadRecordTag) Error() string {
	return fmt.Sprintf("nrbf: bad record tag 0x%02x at offset %d (context % x)", e.Byte, e.Offset, e.Context)
}

// MalformedVarint is returned when a varint's fifth byte still has its
// continuation bit set.
type MalformedVarint struct {
	Offset int
}

func (e *MalformedVarint) Error() string {
	return fmt.Sprintf("nrbf: malformed varint at offset %d", e.Offset)
}

// NegativeStringLength is returned when a length-prefixed string's length
// decodes to a negative value.
type NegativeStringLength struct {
	Offset int
	Length int32
}

func (e *NegativeStringLength) Error() string {
	return fmt.Sprintf("nrbf: negative string length %d at offset %d", e.Length, e.Offset)
}

// InvalidUtf8 is returned when a length-prefixed string's bytes are not
// valid UTF-8.
type InvalidUtf8 struct {
	Offset int
}

func (e *InvalidUtf8) Error() string {
	return fmt.Sprintf("nrbf: invalid utf-8 string at offset %d", e.Offset)
}

// UnknownMetadata is returned when a ClassWithId record references a
// metadataId absent from the metadata table.
type UnknownMetadata struct {
	MetadataId int32
}

func (e *UnknownMetadata) Error() string {
	return fmt.Sprintf("nrbf: unknown metadata id %d", e.MetadataId)
}

// DuplicateObjectId is returned when two records in the same stream claim
// the same object ID.
type DuplicateObjectId struct {
	Id int32
}

func (e *DuplicateObjectId) Error() string {
	return fmt.Sprintf("nrbf: duplicate object id %d", e.Id)
}

// RootNotFound is returned when the header's rootId is not present in the
// record table after decode.
type RootNotFound struct {
	RootId int32
}

func (e *RootNotFound) Error() string {
	return fmt.Sprintf("nrbf: root id %d not found in record table", e.RootId)
}

// UnresolvedReference is returned lazily, at consumer dereference time, when
// a MemberReference's target never appeared in the record table.
type UnresolvedReference struct {
	IdRef int32
}

func (e *UnresolvedReference) Error() string {
	return fmt.Sprintf("nrbf: unresolved reference to object id %d", e.IdRef)
}

// EncodeTypeAmbiguous is returned when encoding an untyped primitive slot
// whose wire primitive type cannot be inferred from the runtime value.
type EncodeTypeAmbiguous struct {
	Value any
}

func (e *EncodeTypeAmbiguous) Error() string {
	return fmt.Sprintf("nrbf: cannot infer primitive wire type for %T value %v outside a typed context", e.Value, e.Value)
}

// TooManyRecords is returned when decode exceeds the safety cap on records
// read from a single stream (spec.md §4.3's "hard safety cap").
type TooManyRecords struct {
	Limit int
}

func (e *TooManyRecords) Error() string {
	return fmt.Sprintf("nrbf: exceeded safety cap of %d records in one stream", e.Limit)
}
