package nrbf

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/binrec/nrbf-go/record"
)

// guidMemberNames is the fixed 11-member layout of a System.Guid class
// record: _a (Int32), _b, _c (Int16), then _d.._k (8x Byte).
var guidMemberNames = []string{"_a", "_b", "_c", "_d", "_e", "_f", "_g", "_h", "_i", "_j", "_k"}

// ParseGuid assembles a System.Guid class record's 11 members into the
// canonical hyphenated hex string (spec.md §4.5).
func ParseGuid(rec *record.ClassRecord) (string, error) {
	var buf [16]byte

	a, ok := rec.GetValue("_a")
	if !ok {
		return "", fmt.Errorf("nrbf: guid record missing member _a")
	}
	aVal, ok := a.Primitive.(int32)
	if !ok {
		return "", fmt.Errorf("nrbf: guid member _a is not an int32")
	}
	binary.LittleEndian.PutUint32(buf[0:4], uint32(aVal))

	b, ok := rec.GetValue("_b")
	if !ok {
		return "", fmt.Errorf("nrbf: guid record missing member _b")
	}
	bVal, ok := b.Primitive.(int16)
	if !ok {
		return "", fmt.Errorf("nrbf: guid member _b is not an int16")
	}
	binary.LittleEndian.PutUint16(buf[4:6], uint16(bVal))

	c, ok := rec.GetValue("_c")
	if !ok {
		return "", fmt.Errorf("nrbf: guid record missing member _c")
	}
	cVal, ok := c.Primitive.(int16)
	if !ok {
		return "", fmt.Errorf("nrbf: guid member _c is not an int16")
	}
	binary.LittleEndian.PutUint16(buf[6:8], uint16(cVal))

	for i, name := range guidMemberNames[3:] {
		v, ok := rec.GetValue(name)
		if !ok {
			return "", fmt.Errorf("nrbf: guid record missing member %s", name)
		}
		byteVal, ok := v.Primitive.(uint8)
		if !ok {
			return "", fmt.Errorf("nrbf: guid member %s is not a byte", name)
		}
		buf[8+i] = byteVal
	}

	return formatGuid(buf), nil
}

// BuildGuidRecord constructs a System.Guid ClassRecord for the given
// objectId whose members, re-encoded, reproduce the guid string's bytes.
func BuildGuidRecord(objectId int32, guid string) (*record.ClassRecord, error) {
	buf, err := parseGuidHex(guid)
	if err != nil {
		return nil, err
	}

	rec := &record.ClassRecord{
		Info: record.ClassInfo{
			ObjectId:    objectId,
			Name:        "System.Guid",
			MemberNames: append([]string(nil), guidMemberNames...),
		},
		OriginalKind: record.KindSystemClassWithMembersAndTypes,
		Values:       make(map[string]record.Value, len(guidMemberNames)),
	}

	binaryTypes := make([]record.BinaryType, len(guidMemberNames))
	infos := make([]record.AdditionalTypeInfo, len(guidMemberNames))
	for i := range binaryTypes {
		binaryTypes[i] = record.BinaryTypePrimitive
	}
	infos[0] = record.AdditionalTypeInfo{Kind: record.AdditionalInfoPrimitive, PrimitiveType: record.PrimitiveInt32}
	infos[1] = record.AdditionalTypeInfo{Kind: record.AdditionalInfoPrimitive, PrimitiveType: record.PrimitiveInt16}
	infos[2] = record.AdditionalTypeInfo{Kind: record.AdditionalInfoPrimitive, PrimitiveType: record.PrimitiveInt16}
	for i := 3; i < len(guidMemberNames); i++ {
		infos[i] = record.AdditionalTypeInfo{Kind: record.AdditionalInfoPrimitive, PrimitiveType: record.PrimitiveByte}
	}
	rec.TypeInfo = &record.MemberTypeInfo{BinaryTypes: binaryTypes, AdditionalInfos: infos}

	rec.Values["_a"] = record.PrimitiveValue(int32(binary.LittleEndian.Uint32(buf[0:4])))
	rec.Values["_b"] = record.PrimitiveValue(int16(binary.LittleEndian.Uint16(buf[4:6])))
	rec.Values["_c"] = record.PrimitiveValue(int16(binary.LittleEndian.Uint16(buf[6:8])))
	for i, name := range guidMemberNames[3:] {
		rec.Values[name] = record.PrimitiveValue(buf[8+i])
	}

	return rec, nil
}

func formatGuid(b [16]byte) string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.LittleEndian.Uint32(b[0:4]),
		binary.LittleEndian.Uint16(b[4:6]),
		binary.LittleEndian.Uint16(b[6:8]),
		binary.BigEndian.Uint16(b[8:10]),
		b[10:16])
}

func parseGuidHex(guid string) ([16]byte, error) {
	var buf [16]byte
	g := strings.ToLower(strings.ReplaceAll(guid, "-", ""))
	if len(g) != 32 {
		return buf, fmt.Errorf("nrbf: %q is not a well-formed guid string", guid)
	}

	a, err := strconv.ParseUint(g[0:8], 16, 32)
	if err != nil {
		return buf, fmt.Errorf("nrbf: invalid guid string %q: %w", guid, err)
	}
	b, err := strconv.ParseUint(g[8:12], 16, 16)
	if err != nil {
		return buf, fmt.Errorf("nrbf: invalid guid string %q: %w", guid, err)
	}
	c, err := strconv.ParseUint(g[12:16], 16, 16)
	if err != nil {
		return buf, fmt.Errorf("nrbf: invalid guid string %q: %w", guid, err)
	}
	binary.LittleEndian.PutUint32(buf[0:4], uint32(a))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(b))
	binary.LittleEndian.PutUint16(buf[6:8], uint16(c))

	tail := g[16:32]
	for i := 0; i < 8; i++ {
		v, err := strconv.ParseUint(tail[i*2:i*2+2], 16, 8)
		if err != nil {
			return buf, fmt.Errorf("nrbf: invalid guid string %q: %w", guid, err)
		}
		buf[8+i] = byte(v)
	}

	return buf, nil
}

// FindGuidInBuffer scans the raw buffer for the 16-byte wire representation
// of guid and returns every byte offset it occurs at.
func FindGuidInBuffer(buf []byte, guid string) ([]int, error) {
	needle, err := parseGuidHex(guid)
	if err != nil {
		return nil, err
	}

	var offsets []int
	for i := 0; i+16 <= len(buf); i++ {
		if string(buf[i:i+16]) == string(needle[:]) {
			offsets = append(offsets, i)
		}
	}
	return offsets, nil
}

// ReplaceGuidAtOffset overwrites the 16 bytes at offset with guid's wire
// representation, returning a new buffer (buf is not modified in place).
func ReplaceGuidAtOffset(buf []byte, offset int, guid string) ([]byte, error) {
	if offset < 0 || offset+16 > len(buf) {
		return nil, fmt.Errorf("nrbf: offset %d out of range for a 16-byte guid in a %d-byte buffer", offset, len(buf))
	}
	replacement, err := parseGuidHex(guid)
	if err != nil {
		return nil, err
	}

	out := append([]byte(nil), buf...)
	copy(out[offset:offset+16], replacement[:])
	return out, nil
}
