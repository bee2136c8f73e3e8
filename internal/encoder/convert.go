package encoder

// These accessors unwrap the interface{} a Value.Primitive carries back to
// its concrete Go type. Decoding always stores the exact type writePrimitive
// expects for a given PrimitiveType, so a failed assertion here means the
// caller built a Value with a type that doesn't match its declared
// PrimitiveType; zero value is returned in that case rather than panicking.

func asBool(v any) bool       { b, _ := v.(bool); return b }
func asUint8(v any) uint8     { b, _ := v.(uint8); return b }
func asInt8(v any) int8       { b, _ := v.(int8); return b }
func asInt16(v any) int16     { b, _ := v.(int16); return b }
func asInt32(v any) int32     { b, _ := v.(int32); return b }
func asInt64(v any) int64     { b, _ := v.(int64); return b }
func asUint16(v any) uint16   { b, _ := v.(uint16); return b }
func asUint32(v any) uint32   { b, _ := v.(uint32); return b }
func asUint64(v any) uint64   { b, _ := v.(uint64); return b }
func asFloat32(v any) float32 { b, _ := v.(float32); return b }
func asFloat64(v any) float64 { b, _ := v.(float64); return b }
func asString(v any) string   { b, _ := v.(string); return b }
