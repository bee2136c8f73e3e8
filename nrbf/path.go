package nrbf

import (
	"strconv"
	"strings"

	"github.com/binrec/nrbf-go/record"
)

// PathNotFound is returned by Get/Set when a path segment does not resolve
// against the current node (unknown member, out-of-range index, or a step
// taken against a primitive/null value).
type PathNotFound struct {
	Path    string
	Segment string
}

func (e *PathNotFound) Error() string {
	return "nrbf: path " + e.Path + " not found at segment " + e.Segment
}

// Get resolves a dotted path against the graph's root, following
// MemberReference records and array indices as it descends (spec.md
// §4.5). A trailing reference is resolved once more after the last
// segment is consumed.
func (g *Graph) Get(path string) (record.Value, error) {
	segments := splitPath(path)
	cur := record.RecordValue(g.Root)

	for _, seg := range segments {
		var err error
		cur, err = g.resolveRef(cur)
		if err != nil {
			return record.Value{}, err
		}
		cur, err = g.step(cur, path, seg)
		if err != nil {
			return record.Value{}, err
		}
	}
	return g.resolveRef(cur)
}

// Set resolves path down to its final segment's parent, then sets that
// segment's value: SetValue on a class record, or an in-place element
// replacement on an array, preserving the wire shape of any untouched
// null runs (spec.md §4.5, §8's idempotent-path property).
func (g *Graph) Set(path string, v record.Value) error {
	segments := splitPath(path)
	if len(segments) == 0 {
		return &PathNotFound{Path: path, Segment: ""}
	}

	cur := record.RecordValue(g.Root)
	for _, seg := range segments[:len(segments)-1] {
		var err error
		cur, err = g.resolveRef(cur)
		if err != nil {
			return err
		}
		cur, err = g.step(cur, path, seg)
		if err != nil {
			return err
		}
	}

	cur, err := g.resolveRef(cur)
	if err != nil {
		return err
	}
	if !cur.IsRecord {
		return &PathNotFound{Path: path, Segment: segments[len(segments)-1]}
	}

	last := segments[len(segments)-1]
	switch rec := cur.Record.(type) {
	case *record.ClassRecord:
		return rec.SetValue(last, v)
	case *record.BinaryArrayRecord:
		idx, ok := parseIndex(last)
		if !ok {
			return &PathNotFound{Path: path, Segment: last}
		}
		slots, ok := record.SetElementAt(rec.Elements, idx, v)
		if !ok {
			return &PathNotFound{Path: path, Segment: last}
		}
		rec.Elements = slots
		return nil
	case *record.ArraySingleObjectRecord:
		idx, ok := parseIndex(last)
		if !ok {
			return &PathNotFound{Path: path, Segment: last}
		}
		slots, ok := record.SetElementAt(rec.Elements, idx, v)
		if !ok {
			return &PathNotFound{Path: path, Segment: last}
		}
		rec.Elements = slots
		return nil
	case *record.ArraySingleStringRecord:
		idx, ok := parseIndex(last)
		if !ok {
			return &PathNotFound{Path: path, Segment: last}
		}
		slots, ok := record.SetElementAt(rec.Elements, idx, v)
		if !ok {
			return &PathNotFound{Path: path, Segment: last}
		}
		rec.Elements = slots
		return nil
	case *record.ArraySinglePrimitiveRecord:
		idx, ok := parseIndex(last)
		if !ok || idx < 0 || idx >= len(rec.Elements) {
			return &PathNotFound{Path: path, Segment: last}
		}
		rec.Elements[idx] = v
		return nil
	default:
		return &PathNotFound{Path: path, Segment: last}
	}
}

// resolveRef follows a chain of MemberReference records to their final
// non-reference target.
func (g *Graph) resolveRef(cur record.Value) (record.Value, error) {
	for cur.IsRecord {
		ref, ok := cur.Record.(*record.MemberReferenceRecord)
		if !ok {
			return cur, nil
		}
		target, err := g.Resolve(ref)
		if err != nil {
			return record.Value{}, err
		}
		cur = record.RecordValue(target)
	}
	return cur, nil
}

func (g *Graph) step(cur record.Value, path, seg string) (record.Value, error) {
	if !cur.IsRecord {
		return record.Value{}, &PathNotFound{Path: path, Segment: seg}
	}

	switch rec := cur.Record.(type) {
	case *record.ClassRecord:
		v, ok := rec.GetValue(seg)
		if !ok {
			return record.Value{}, &PathNotFound{Path: path, Segment: seg}
		}
		return v, nil
	case *record.BinaryArrayRecord:
		idx, ok := parseIndex(seg)
		if !ok {
			return record.Value{}, &PathNotFound{Path: path, Segment: seg}
		}
		v, ok := record.ElementAt(rec.Elements, idx)
		if !ok {
			return record.Value{}, &PathNotFound{Path: path, Segment: seg}
		}
		return v, nil
	case *record.ArraySingleObjectRecord:
		idx, ok := parseIndex(seg)
		if !ok {
			return record.Value{}, &PathNotFound{Path: path, Segment: seg}
		}
		v, ok := record.ElementAt(rec.Elements, idx)
		if !ok {
			return record.Value{}, &PathNotFound{Path: path, Segment: seg}
		}
		return v, nil
	case *record.ArraySingleStringRecord:
		idx, ok := parseIndex(seg)
		if !ok {
			return record.Value{}, &PathNotFound{Path: path, Segment: seg}
		}
		v, ok := record.ElementAt(rec.Elements, idx)
		if !ok {
			return record.Value{}, &PathNotFound{Path: path, Segment: seg}
		}
		return v, nil
	case *record.ArraySinglePrimitiveRecord:
		idx, ok := parseIndex(seg)
		if !ok || idx < 0 || idx >= len(rec.Elements) {
			return record.Value{}, &PathNotFound{Path: path, Segment: seg}
		}
		return rec.Elements[idx], nil
	default:
		return record.Value{}, &PathNotFound{Path: path, Segment: seg}
	}
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func parseIndex(seg string) (int, bool) {
	n, err := strconv.Atoi(seg)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
