// Package nrbf is the public facade over the NRBF codec: Decode/Encode
// entry points plus a Graph type for navigating and mutating the decoded
// object graph by dotted path.
package nrbf

import (
	"fmt"
	"sync"

	"github.com/binrec/nrbf-go/internal/decoder"
	"github.com/binrec/nrbf-go/internal/encoder"
	"github.com/binrec/nrbf-go/record"
)

// Graph is a decoded NRBF stream: the root record plus the record and
// library tables built while decoding it. It is safe for concurrent
// read-only traversal once Decode returns; mutation via Set must be
// serialized by the caller.
type Graph struct {
	Header    *record.HeaderRecord
	Root      record.Record
	Records   map[int32]record.Record
	Libraries map[int32]*record.BinaryLibraryRecord

	reverseOnce  sync.Once
	reverseIndex map[int32][]int32 // objectId -> ids of records referencing it
}

// Decode parses a complete NRBF byte stream into a Graph.
func Decode(data []byte) (*Graph, error) {
	res, err := decoder.Decode(data)
	if err != nil {
		return nil, err
	}
	return &Graph{
		Header:    res.Header,
		Root:      res.Root,
		Records:   res.Records,
		Libraries: res.Libraries,
	}, nil
}

// Encode re-serializes g back to an NRBF byte stream. rootId overrides the
// header's rootId; nil uses the graph's original header rootId.
func (g *Graph) Encode(rootId *int32) ([]byte, error) {
	if rootId == nil {
		id := g.Header.RootId
		rootId = &id
	}
	return encoder.Encode(g.Root, rootId, g.Libraries)
}

// Encode decodes b and immediately re-encodes it with the original
// header's rootId, a convenience wrapper for round-trip callers that don't
// need to hold onto the intermediate Graph.
func Encode(b []byte) ([]byte, error) {
	g, err := Decode(b)
	if err != nil {
		return nil, err
	}
	return g.Encode(nil)
}

// Resolve follows a reference record to its target in the record table.
// Non-reference records are returned unchanged.
func (g *Graph) Resolve(rec record.Record) (record.Record, error) {
	ref, ok := rec.(*record.MemberReferenceRecord)
	if !ok {
		return rec, nil
	}
	target, ok := g.Records[ref.IdRef]
	if !ok {
		return nil, &record.UnresolvedReference{IdRef: ref.IdRef}
	}
	return target, nil
}

// Walk performs a depth-first traversal of every record reachable from the
// root, following class member values, array elements, and resolved
// references, visiting each objectId at most once. visit is called once
// per reachable record in traversal order; a false return stops the walk
// early without error.
func (g *Graph) Walk(visit func(record.Record) bool) error {
	visited := make(map[int32]bool)
	stopped := false
	guarded := func(rec record.Record) bool {
		if stopped {
			return false
		}
		if !visit(rec) {
			stopped = true
			return false
		}
		return true
	}
	return g.walk(g.Root, visited, guarded)
}

func (g *Graph) walk(rec record.Record, visited map[int32]bool, visit func(record.Record) bool) error {
	if rec == nil {
		return nil
	}
	if id, ok := rec.ObjectID(); ok {
		if visited[id] {
			return nil
		}
		visited[id] = true
	}

	if !visit(rec) {
		return nil
	}

	switch v := rec.(type) {
	case *record.ClassRecord:
		for _, name := range v.Info.MemberNames {
			val := v.Values[name]
			if err := g.walkValue(val, visited, visit); err != nil {
				return err
			}
		}
	case *record.BinaryArrayRecord:
		return g.walkSlots(v.Elements, visited, visit)
	case *record.ArraySingleObjectRecord:
		return g.walkSlots(v.Elements, visited, visit)
	case *record.ArraySingleStringRecord:
		return g.walkSlots(v.Elements, visited, visit)
	case *record.MemberReferenceRecord:
		target, err := g.Resolve(v)
		if err != nil {
			return err
		}
		return g.walk(target, visited, visit)
	}
	return nil
}

func (g *Graph) walkSlots(slots []record.ElementSlot, visited map[int32]bool, visit func(record.Record) bool) error {
	for _, s := range slots {
		if s.Kind == record.SlotNullRun {
			continue
		}
		if err := g.walkValue(s.Value, visited, visit); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) walkValue(v record.Value, visited map[int32]bool, visit func(record.Record) bool) error {
	if !v.IsRecord {
		return nil
	}
	return g.walk(v.Record, visited, visit)
}

// referencedBy lazily builds (once) a reverse index from objectId to the
// ids of every class record holding a MemberReference member to it (array
// elements are not indexed), used by consumers
// that need to find incoming edges (e.g. a REPL's "who points here").
func (g *Graph) referencedBy() map[int32][]int32 {
	g.reverseOnce.Do(func() {
		idx := make(map[int32][]int32)
		_ = g.Walk(func(rec record.Record) bool {
			id, ok := rec.ObjectID()
			if !ok {
				return true
			}
			if cr, ok := rec.(*record.ClassRecord); ok {
				for _, name := range cr.Info.MemberNames {
					if ref, ok := cr.Values[name].Record.(*record.MemberReferenceRecord); ok && cr.Values[name].IsRecord {
						idx[ref.IdRef] = append(idx[ref.IdRef], id)
					}
				}
			}
			return true
		})
		g.reverseIndex = idx
	})
	return g.reverseIndex
}

// ReferencedBy returns the object IDs of every class record holding a
// direct MemberReference to id.
func (g *Graph) ReferencedBy(id int32) []int32 {
	return g.referencedBy()[id]
}

// String renders a short human summary of the graph.
func (g *Graph) String() string {
	return fmt.Sprintf("nrbf.Graph{root=%v, records=%d, libraries=%d}", g.Header.RootId, len(g.Records), len(g.Libraries))
}
