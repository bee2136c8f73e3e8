package wire

import "testing"

func TestVarintRoundTrip(t *testing.T) {
	cases := []int32{0, 1, 127, 128, 16383, 16384, 2097151, 2097152, 1<<31 - 1}

	for _, n := range cases {
		w := NewWriter()
		if err := w.Varint(n); err != nil {
			t.Fatalf("Varint(%d) write failed: %v", n, err)
		}
		if l := len(w.Bytes()); l < 1 || l > 5 {
			t.Errorf("Varint(%d) encoded to %d bytes, want 1..5", n, l)
		}

		r := NewReader(w.Bytes())
		got, err := r.Varint()
		if err != nil {
			t.Fatalf("Varint() read failed for %d: %v", n, err)
		}
		if got != n {
			t.Errorf("Varint round trip: got %d, want %d", got, n)
		}
	}
}

func TestVarintMalformed(t *testing.T) {
	// Five continuation bytes with no terminator.
	r := NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80})
	if _, err := r.Varint(); err == nil {
		t.Fatal("expected malformed varint error, got nil")
	}
}

func TestStringRoundTrip(t *testing.T) {
	cases := []string{"", "hello", "héllo wörld", "a fairly long string used to exercise the multi-byte varint length prefix path"}

	for _, s := range cases {
		w := NewWriter()
		if err := w.String(s); err != nil {
			t.Fatalf("String(%q) write failed: %v", s, err)
		}
		r := NewReader(w.Bytes())
		got, err := r.String()
		if err != nil {
			t.Fatalf("String() read failed for %q: %v", s, err)
		}
		if got != s {
			t.Errorf("String round trip: got %q, want %q", got, s)
		}
	}
}

func TestStringInvalidUTF8(t *testing.T) {
	w := NewWriter()
	if err := w.Varint(3); err != nil {
		t.Fatalf("Varint(3) write failed: %v", err)
	}
	w.RawBytes([]byte{0xff, 0xfe, 0xfd}) // not valid UTF-8

	r := NewReader(w.Bytes())
	if _, err := r.String(); err != ErrInvalidUTF8 {
		t.Fatalf("String() on invalid utf-8 bytes: got %v, want ErrInvalidUTF8", err)
	}
}

func TestPrimitiveRoundTrip(t *testing.T) {
	w := NewWriter()
	w.Bool(true)
	w.U8(0xff)
	w.I8(-1)
	w.U16(0xbeef)
	w.I16(-1234)
	w.U32(0xdeadbeef)
	w.I32(-123456789)
	w.U64(0x0123456789abcdef)
	w.I64(-9223372036854775808)
	w.F32(3.14159)
	w.F64(2.718281828459045)
	w.Char('x')

	r := NewReader(w.Bytes())

	if v, _ := r.Bool(); v != true {
		t.Errorf("Bool: got %v, want true", v)
	}
	if v, _ := r.U8(); v != 0xff {
		t.Errorf("U8: got %v, want 0xff", v)
	}
	if v, _ := r.I8(); v != -1 {
		t.Errorf("I8: got %v, want -1", v)
	}
	if v, _ := r.U16(); v != 0xbeef {
		t.Errorf("U16: got %#x, want 0xbeef", v)
	}
	if v, _ := r.I16(); v != -1234 {
		t.Errorf("I16: got %v, want -1234", v)
	}
	if v, _ := r.U32(); v != 0xdeadbeef {
		t.Errorf("U32: got %#x, want 0xdeadbeef", v)
	}
	if v, _ := r.I32(); v != -123456789 {
		t.Errorf("I32: got %v, want -123456789", v)
	}
	if v, _ := r.U64(); v != 0x0123456789abcdef {
		t.Errorf("U64: got %#x, want 0x0123456789abcdef", v)
	}
	if v, _ := r.I64(); v != -9223372036854775808 {
		t.Errorf("I64: got %v, want min int64", v)
	}
	if v, _ := r.F32(); v != float32(3.14159) {
		t.Errorf("F32: got %v, want 3.14159", v)
	}
	if v, _ := r.F64(); v != 2.718281828459045 {
		t.Errorf("F64: got %v, want e", v)
	}
	if v, _ := r.Char(); v != 'x' {
		t.Errorf("Char: got %v, want 'x'", v)
	}
}

func TestDecimal16RoundTrip(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	w := NewWriter()
	w.RawBytes(raw)

	r := NewReader(w.Bytes())
	hexStr, err := r.Decimal16()
	if err != nil {
		t.Fatalf("Decimal16() read failed: %v", err)
	}

	w2 := NewWriter()
	if err := w2.Decimal16(hexStr); err != nil {
		t.Fatalf("Decimal16(%q) write failed: %v", hexStr, err)
	}
	if string(w2.Bytes()) != string(raw) {
		t.Errorf("Decimal16 round trip: got %x, want %x", w2.Bytes(), raw)
	}
}

func TestTruncatedRead(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if _, err := r.U32(); err == nil {
		t.Fatal("expected truncated read error, got nil")
	}
}
