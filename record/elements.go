package record

// SlotKind distinguishes a concrete element slot from a null-run token
// occupying a position in an array's element sequence.
type SlotKind byte

const (
	SlotValue SlotKind = iota
	SlotNullRun
)

// ElementSlot is one entry in the *wire* sequence of an array's elements:
// either a concrete Value or a null-run token (ObjectNullMultiple /
// ObjectNullMultiple256) that expands to RunCount consecutive null slots.
//
// Arrays keep this wire-shaped sequence, rather than a flattened slice of
// logical Values, so that re-encoding reproduces the exact run record kind
// and count the stream originally carried (spec.md §8's null-run fidelity
// property) instead of renormalizing runs into individual nulls or merging
// adjacent runs.
type ElementSlot struct {
	Kind     SlotKind
	Value    Value // valid when Kind == SlotValue
	RunKind  Kind  // valid when Kind == SlotNullRun: KindObjectNullMultiple or KindObjectNullMultiple256
	RunCount int32 // valid when Kind == SlotNullRun
}

// ValueSlot wraps v as a concrete element slot.
func ValueSlot(v Value) ElementSlot { return ElementSlot{Kind: SlotValue, Value: v} }

// RunSlot wraps a null-run token as an element slot.
func RunSlot(kind Kind, count int32) ElementSlot {
	return ElementSlot{Kind: SlotNullRun, RunKind: kind, RunCount: count}
}

// LogicalLength returns the number of logical elements slots represents,
// after expanding any null runs.
func LogicalLength(slots []ElementSlot) int {
	n := 0
	for _, s := range slots {
		if s.Kind == SlotNullRun {
			n += int(s.RunCount)
		} else {
			n++
		}
	}
	return n
}

// ElementAt returns the logical element at index i, expanding null runs as
// it walks the wire-shaped slot sequence.
func ElementAt(slots []ElementSlot, i int) (Value, bool) {
	if i < 0 {
		return Value{}, false
	}
	pos := 0
	for _, s := range slots {
		if s.Kind == SlotNullRun {
			n := int(s.RunCount)
			if i < pos+n {
				return NullValue, true
			}
			pos += n
			continue
		}
		if i == pos {
			return s.Value, true
		}
		pos++
	}
	return Value{}, false
}

// SetElementAt returns a copy of slots with the logical element at index i
// replaced by v. If i falls inside a null run, the run is split so only
// that one slot changes; runs that remain unaffected keep their original
// token so unrelated elements keep round-tripping exactly.
func SetElementAt(slots []ElementSlot, i int, v Value) ([]ElementSlot, bool) {
	pos := 0
	for idx, s := range slots {
		if s.Kind == SlotNullRun {
			n := int(s.RunCount)
			if i < pos+n {
				return splitRun(slots, idx, i-pos, v), true
			}
			pos += n
			continue
		}
		if i == pos {
			out := make([]ElementSlot, len(slots))
			copy(out, slots)
			out[idx] = ValueSlot(v)
			return out, true
		}
		pos++
	}
	return slots, false
}

func splitRun(slots []ElementSlot, runIdx, offsetInRun int, v Value) []ElementSlot {
	run := slots[runIdx]
	var replacement []ElementSlot
	if offsetInRun > 0 {
		replacement = append(replacement, RunSlot(run.RunKind, int32(offsetInRun)))
	}
	replacement = append(replacement, ValueSlot(v))
	if remaining := int(run.RunCount) - offsetInRun - 1; remaining > 0 {
		replacement = append(replacement, RunSlot(run.RunKind, int32(remaining)))
	}

	out := make([]ElementSlot, 0, len(slots)+len(replacement)-1)
	out = append(out, slots[:runIdx]...)
	out = append(out, replacement...)
	out = append(out, slots[runIdx+1:]...)
	return out
}

// FlattenElements expands slots into a plain logical Value slice, for
// callers that don't need wire-exact round-tripping.
func FlattenElements(slots []ElementSlot) []Value {
	out := make([]Value, 0, LogicalLength(slots))
	for _, s := range slots {
		if s.Kind == SlotNullRun {
			for i := int32(0); i < s.RunCount; i++ {
				out = append(out, NullValue)
			}
			continue
		}
		out = append(out, s.Value)
	}
	return out
}
