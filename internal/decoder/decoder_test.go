package decoder

import (
	"bytes"
	"testing"

	"github.com/binrec/nrbf-go/internal/wire"
	"github.com/binrec/nrbf-go/record"
)

// helloStream builds the minimal end-to-end stream: a header naming root
// id 1, a single BinaryObjectString record holding "hello", and a
// MessageEnd trailer.
func helloStream(t *testing.T) []byte {
	t.Helper()
	w := wire.NewWriter()
	w.U8(byte(record.KindHeader))
	w.I32(1)
	w.I32(-1)
	w.I32(1)
	w.I32(0)
	w.U8(byte(record.KindBinaryObjectString))
	w.I32(1)
	if err := w.String("hello"); err != nil {
		t.Fatalf("String: %v", err)
	}
	w.U8(byte(record.KindMessageEnd))
	return w.Bytes()
}

func TestDecodeMinimalStringStream(t *testing.T) {
	buf := helloStream(t)

	res, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if res.Header.RootId != 1 || res.Header.MajorVersion != 1 || res.Header.MinorVersion != 0 {
		t.Errorf("header: got %+v", res.Header)
	}

	root, ok := res.Root.(*record.BinaryObjectStringRecord)
	if !ok {
		t.Fatalf("root: got %T, want *record.BinaryObjectStringRecord", res.Root)
	}
	if root.ObjectId != 1 || root.Value != "hello" {
		t.Errorf("root: got %+v", root)
	}
}

func TestDecodeBadLeadByte(t *testing.T) {
	_, err := Decode([]byte{0xff, 0, 0, 0})
	if _, ok := err.(*record.BadRecordTag); !ok {
		t.Fatalf("Decode: got %T (%v), want *record.BadRecordTag", err, err)
	}
}

func TestDecodeTruncatedHeader(t *testing.T) {
	_, err := Decode([]byte{byte(record.KindHeader), 0, 0})
	if _, ok := err.(*record.TruncatedStream); !ok {
		t.Fatalf("Decode: got %T (%v), want *record.TruncatedStream", err, err)
	}
}

func TestDecodeRootNotFound(t *testing.T) {
	w := wire.NewWriter()
	w.U8(byte(record.KindHeader))
	w.I32(99) // no record will claim this id
	w.I32(-1)
	w.I32(1)
	w.I32(0)
	w.U8(byte(record.KindBinaryObjectString))
	w.I32(1)
	_ = w.String("hello")
	w.U8(byte(record.KindMessageEnd))

	_, err := Decode(w.Bytes())
	if _, ok := err.(*record.RootNotFound); !ok {
		t.Fatalf("Decode: got %T (%v), want *record.RootNotFound", err, err)
	}
}

func TestDecodeDuplicateObjectId(t *testing.T) {
	w := wire.NewWriter()
	w.U8(byte(record.KindHeader))
	w.I32(1)
	w.I32(-1)
	w.I32(1)
	w.I32(0)
	w.U8(byte(record.KindBinaryObjectString))
	w.I32(1)
	_ = w.String("first")
	w.U8(byte(record.KindBinaryObjectString))
	w.I32(1)
	_ = w.String("second")
	w.U8(byte(record.KindMessageEnd))

	_, err := Decode(w.Bytes())
	if _, ok := err.(*record.DuplicateObjectId); !ok {
		t.Fatalf("Decode: got %T (%v), want *record.DuplicateObjectId", err, err)
	}
}

func TestDecodeBinaryLibraryInterleaved(t *testing.T) {
	w := wire.NewWriter()
	w.U8(byte(record.KindHeader))
	w.I32(1)
	w.I32(-1)
	w.I32(1)
	w.I32(0)

	w.U8(byte(record.KindBinaryLibrary))
	w.I32(5)
	_ = w.String("MyAssembly, Version=1.0.0.0")

	w.U8(byte(record.KindClassWithMembers))
	w.I32(1)
	_ = w.String("MyApp.Widget")
	w.I32(1)
	_ = w.String("count")
	w.I32(5)
	w.U8(byte(record.KindMemberPrimitiveTyped))
	w.U8(byte(record.PrimitiveInt32))
	w.I32(42)

	w.U8(byte(record.KindMessageEnd))

	res, err := Decode(w.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := res.Libraries[5]; !ok {
		t.Fatalf("library 5 not registered: %+v", res.Libraries)
	}
	cls, ok := res.Root.(*record.ClassRecord)
	if !ok {
		t.Fatalf("root: got %T, want *record.ClassRecord", res.Root)
	}
	if cls.LibraryId == nil || *cls.LibraryId != 5 {
		t.Errorf("class libraryId: got %v, want 5", cls.LibraryId)
	}
	// "count" is an untyped member, so it decodes as a nested
	// MemberPrimitiveTyped record rather than a bare primitive.
	typed, ok := cls.Values["count"].Record.(*record.MemberPrimitiveTypedRecord)
	if !ok || typed.Value.Primitive != int32(42) {
		t.Errorf("count: got %+v, want typed primitive 42", cls.Values["count"])
	}
}

func TestDecodeInvalidUTF8String(t *testing.T) {
	w := wire.NewWriter()
	w.U8(byte(record.KindHeader))
	w.I32(1)
	w.I32(-1)
	w.I32(1)
	w.I32(0)
	w.U8(byte(record.KindBinaryObjectString))
	w.I32(1)
	if err := w.Varint(3); err != nil {
		t.Fatalf("Varint(3): %v", err)
	}
	w.RawBytes([]byte{0xff, 0xfe, 0xfd}) // not valid UTF-8
	w.U8(byte(record.KindMessageEnd))

	_, err := Decode(w.Bytes())
	if _, ok := err.(*record.InvalidUtf8); !ok {
		t.Fatalf("Decode: got %T (%v), want *record.InvalidUtf8", err, err)
	}
}

func TestRoundTripBytesUnchanged(t *testing.T) {
	buf := helloStream(t)
	orig := append([]byte(nil), buf...)
	res, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// A second Decode call on the identical bytes must reproduce the same
	// logical content, and Decode must leave its input unmodified (sanity
	// check that decoding is side-effect free on its input).
	res2, err := Decode(buf)
	if err != nil {
		t.Fatalf("second Decode: %v", err)
	}
	if !bytes.Equal(buf, orig) {
		t.Fatal("input buffer was mutated by Decode")
	}
	if res.Root.(*record.BinaryObjectStringRecord).Value != res2.Root.(*record.BinaryObjectStringRecord).Value {
		t.Error("repeated decode of identical input produced different values")
	}
}
