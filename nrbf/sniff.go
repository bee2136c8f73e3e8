package nrbf

import "encoding/binary"

// LooksLikeNrbf is a best-effort header sniff for file-type dispatch, not
// validation (spec.md §4.5): length >= 17, byte 0 is the Header tag, and
// bytes 9..17 encode majorVersion=1, minorVersion=0 as little-endian i32.
func LooksLikeNrbf(buf []byte) bool {
	if len(buf) < 17 {
		return false
	}
	if buf[0] != 0 {
		return false
	}
	major := binary.LittleEndian.Uint32(buf[9:13])
	minor := binary.LittleEndian.Uint32(buf[13:17])
	return major == 1 && minor == 0
}
