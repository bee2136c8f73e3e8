package nrbf

import (
	"testing"

	"github.com/binrec/nrbf-go/internal/encoder"
	"github.com/binrec/nrbf-go/record"
)

func TestLooksLikeNrbfOnEncodedStream(t *testing.T) {
	rec := &record.BinaryObjectStringRecord{ObjectId: 1, Value: "hello"}
	id := int32(1)
	buf, err := encoder.Encode(rec, &id, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !LooksLikeNrbf(buf) {
		t.Error("LooksLikeNrbf: want true for a freshly encoded stream")
	}
}

func TestLooksLikeNrbfRejectsArbitraryBuffers(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x00},
		{0x00, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, // version bytes don't match 1.0
		[]byte("not an nrbf stream at all, just text"),
		{0x01, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}, // wrong lead byte
	}
	for i, buf := range cases {
		if LooksLikeNrbf(buf) {
			t.Errorf("case %d: LooksLikeNrbf(%x) = true, want false", i, buf)
		}
	}
}
