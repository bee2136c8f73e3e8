package nrbf

import (
	"testing"

	"github.com/binrec/nrbf-go/internal/wire"
	"github.com/binrec/nrbf-go/record"
)

func buildSampleGraph(t *testing.T) *Graph {
	t.Helper()
	w := wire.NewWriter()
	w.U8(byte(record.KindHeader))
	w.I32(1)
	w.I32(-1)
	w.I32(1)
	w.I32(0)

	// Root: untyped ClassWithMembers "Container" with members "name" and
	// "child", the latter nesting a full class directly.
	w.U8(byte(record.KindClassWithMembers))
	w.I32(1)
	_ = w.String("Container")
	w.I32(2)
	_ = w.String("name")
	_ = w.String("child")
	w.I32(0)
	w.U8(byte(record.KindMemberPrimitiveTyped))
	w.U8(byte(record.PrimitiveString))
	_ = w.String("root")

	w.U8(byte(record.KindClassWithMembersAndTypes))
	w.I32(2)
	_ = w.String("Point")
	w.I32(2)
	_ = w.String("x")
	_ = w.String("y")
	w.U8(byte(record.BinaryTypePrimitive))
	w.U8(byte(record.BinaryTypePrimitive))
	w.U8(byte(record.PrimitiveInt32))
	w.U8(byte(record.PrimitiveInt32))
	w.I32(0)
	w.I32(10)
	w.I32(20)

	w.U8(byte(record.KindMessageEnd))

	g, err := Decode(w.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return g
}

func TestGetDottedPath(t *testing.T) {
	g := buildSampleGraph(t)

	v, err := g.Get("child.x")
	if err != nil {
		t.Fatalf("Get(child.x): %v", err)
	}
	if v.Primitive != int32(10) {
		t.Errorf("child.x: got %v, want 10", v.Primitive)
	}

	v, err = g.Get("name")
	if err != nil {
		t.Fatalf("Get(name): %v", err)
	}
	// "name" is an untyped member, so it decodes as a nested
	// MemberPrimitiveTyped record rather than a bare primitive.
	typed, ok := v.Record.(*record.MemberPrimitiveTypedRecord)
	if !ok || typed.Value.Primitive != "root" {
		t.Errorf("name: got %+v, want %q", v, "root")
	}
}

func TestGetUnknownPathSegment(t *testing.T) {
	g := buildSampleGraph(t)
	if _, err := g.Get("child.z"); err == nil {
		t.Fatal("Get(child.z): expected PathNotFound, got nil")
	} else if _, ok := err.(*PathNotFound); !ok {
		t.Fatalf("Get(child.z): got %T, want *PathNotFound", err)
	}
}

// TestIdempotentPath covers spec.md §8's idempotent-path property:
// getPath(setPath(root,p,v),p) == v after re-encode/decode.
func TestIdempotentPath(t *testing.T) {
	g := buildSampleGraph(t)

	if err := g.Set("child.x", record.PrimitiveValue(int32(99))); err != nil {
		t.Fatalf("Set(child.x): %v", err)
	}

	encoded, err := g.Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	g2, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	v, err := g2.Get("child.x")
	if err != nil {
		t.Fatalf("Get(child.x) after round trip: %v", err)
	}
	if v.Primitive != int32(99) {
		t.Errorf("child.x after round trip: got %v, want 99", v.Primitive)
	}
}

// TestForwardReferencePathResolution covers end-to-end scenario 3: a member
// reference to a record appearing later in the stream resolves correctly
// through Graph.Get.
func TestForwardReferencePathResolution(t *testing.T) {
	w := wire.NewWriter()
	w.U8(byte(record.KindHeader))
	w.I32(1)
	w.I32(-1)
	w.I32(1)
	w.I32(0)

	w.U8(byte(record.KindClassWithMembers))
	w.I32(1)
	_ = w.String("Holder")
	w.I32(1)
	_ = w.String("slot")
	w.I32(0)
	w.U8(byte(record.KindMemberReference))
	w.I32(5)

	w.U8(byte(record.KindBinaryObjectString))
	w.I32(5)
	_ = w.String("later")

	w.U8(byte(record.KindMessageEnd))

	g, err := Decode(w.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	v, err := g.Get("slot")
	if err != nil {
		t.Fatalf("Get(slot): %v", err)
	}
	str, ok := v.Record.(*record.BinaryObjectStringRecord)
	if !ok || str.Value != "later" {
		t.Fatalf("slot: got %+v, want the forward-referenced string", v)
	}
}

// TestCyclePathNavigation covers end-to-end scenario 4: path navigation
// with two steps through a cycle returns to the starting record.
func TestCyclePathNavigation(t *testing.T) {
	w := wire.NewWriter()
	w.U8(byte(record.KindHeader))
	w.I32(1)
	w.I32(-1)
	w.I32(1)
	w.I32(0)

	w.U8(byte(record.KindClassWithMembers))
	w.I32(1)
	_ = w.String("Node")
	w.I32(1)
	_ = w.String("next")
	w.I32(0)

	w.U8(byte(record.KindClassWithMembers))
	w.I32(2)
	_ = w.String("Node")
	w.I32(1)
	_ = w.String("next")
	w.I32(0)
	w.U8(byte(record.KindMemberReference))
	w.I32(1)

	w.U8(byte(record.KindMessageEnd))

	g, err := Decode(w.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	v, err := g.Get("next.next")
	if err != nil {
		t.Fatalf("Get(next.next): %v", err)
	}
	back, ok := v.Record.(*record.ClassRecord)
	if !ok || back.Info.ObjectId != 1 {
		t.Fatalf("next.next: got %+v, want record 1", v)
	}
}
