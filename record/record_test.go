package record

import "testing"

func TestSetValueUnwrapsTypedPrimitiveForInlineMember(t *testing.T) {
	pt := PrimitiveInt32
	r := &ClassRecord{
		Info: ClassInfo{ObjectId: 1, Name: "Point", MemberNames: []string{"x", "y"}},
		TypeInfo: &MemberTypeInfo{
			BinaryTypes:     []BinaryType{BinaryTypePrimitive, BinaryTypePrimitive},
			AdditionalInfos: []AdditionalTypeInfo{{Kind: AdditionalInfoPrimitive, PrimitiveType: pt}, {Kind: AdditionalInfoPrimitive, PrimitiveType: pt}},
		},
		Values: map[string]Value{"x": PrimitiveValue(int32(10)), "y": PrimitiveValue(int32(20))},
	}

	wrapped := RecordValue(&MemberPrimitiveTypedRecord{PrimitiveType: pt, Value: PrimitiveValue(int32(99))})
	if err := r.SetValue("x", wrapped); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	got, _ := r.GetValue("x")
	if got.IsRecord {
		t.Fatalf("SetValue left a typed-primitive member wrapped: %+v", got)
	}
	if got.Primitive != int32(99) {
		t.Errorf("SetValue: got %v, want 99", got.Primitive)
	}
}

func TestSetValueLeavesUntypedMemberWrapped(t *testing.T) {
	r := &ClassRecord{
		Info:   ClassInfo{ObjectId: 1, Name: "Container", MemberNames: []string{"name"}},
		Values: map[string]Value{"name": RecordValue(&MemberPrimitiveTypedRecord{PrimitiveType: PrimitiveString, Value: PrimitiveValue("old")})},
	}

	wrapped := RecordValue(&MemberPrimitiveTypedRecord{PrimitiveType: PrimitiveString, Value: PrimitiveValue("new")})
	if err := r.SetValue("name", wrapped); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	got, _ := r.GetValue("name")
	typed, ok := got.Record.(*MemberPrimitiveTypedRecord)
	if !ok || typed.Value.Primitive != "new" {
		t.Errorf("SetValue on untyped member: got %+v, want wrapped %q", got, "new")
	}
}

func TestSetValueUnknownMember(t *testing.T) {
	r := &ClassRecord{Info: ClassInfo{ObjectId: 1, Name: "Point", MemberNames: []string{"x"}}}
	err := r.SetValue("z", PrimitiveValue(int32(1)))
	if _, ok := err.(*ErrUnknownMember); !ok {
		t.Fatalf("SetValue(unknown): got %T, want *ErrUnknownMember", err)
	}
}
