package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/binrec/nrbf-go/nrbf"
	"github.com/binrec/nrbf-go/record"
)

// Document is the JSON-exportable form of a decoded graph: every
// id-bearing record flattened into Nodes keyed by objectId (as a string,
// since JSON object keys must be strings), with member/element values
// referring back into that map by id. This makes cycles and shared
// references representable without duplicating nodes.
type Document struct {
	RootId    int32                 `json:"rootId"`
	Libraries map[string]string     `json:"libraries,omitempty"`
	Nodes     map[string]*NodeDump  `json:"nodes"`
}

type MemberTypeDump struct {
	BinaryType    string `json:"binaryType"`
	PrimitiveType string `json:"primitiveType,omitempty"`
	ClassName     string `json:"className,omitempty"`
	LibraryId     *int32 `json:"libraryId,omitempty"`
}

type PrimitiveDump struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type ValueDump struct {
	Null           bool           `json:"null,omitempty"`
	Primitive      *PrimitiveDump `json:"primitive,omitempty"`
	TypedPrimitive *PrimitiveDump `json:"typedPrimitive,omitempty"`
	Ref            *int32         `json:"ref,omitempty"`
}

type NullRunDump struct {
	Kind  string `json:"kind"`
	Count int32  `json:"count"`
}

type ElementDump struct {
	NullRun *NullRunDump `json:"nullRun,omitempty"`
	Value   *ValueDump   `json:"value,omitempty"`
}

// NodeDump is a union over the 6 id-bearing record kinds; which fields are
// populated depends on Kind.
type NodeDump struct {
	Kind       string           `json:"kind"`
	ObjectId   int32            `json:"objectId"`
	MetadataId *int32           `json:"metadataId,omitempty"`

	// ClassRecord
	ClassName   string            `json:"className,omitempty"`
	MemberNames []string          `json:"memberNames,omitempty"`
	MemberTypes []MemberTypeDump  `json:"memberTypes,omitempty"`
	LibraryId   *int32            `json:"libraryId,omitempty"`
	Values      map[string]ValueDump `json:"values,omitempty"`

	// BinaryObjectString
	StringValue *string `json:"stringValue,omitempty"`

	// BinaryArrayRecord / ArraySingle*
	ArrayKind         string          `json:"arrayKind,omitempty"`
	Rank              *int32          `json:"rank,omitempty"`
	Lengths           []int32         `json:"lengths,omitempty"`
	LowerBounds       []int32         `json:"lowerBounds,omitempty"`
	ElementBinaryType string          `json:"elementBinaryType,omitempty"`
	ElementType       *MemberTypeDump `json:"elementType,omitempty"`
	Elements          []ElementDump   `json:"elements,omitempty"`

	PrimitiveElementType string           `json:"primitiveElementType,omitempty"`
	PrimitiveElements    []*PrimitiveDump `json:"primitiveElements,omitempty"`
}

// DumpDocument flattens g into a Document suitable for json.Marshal.
func DumpDocument(g *nrbf.Graph) (*Document, error) {
	doc := &Document{
		RootId:    g.Header.RootId,
		Libraries: make(map[string]string, len(g.Libraries)),
		Nodes:     make(map[string]*NodeDump),
	}
	for id, lib := range g.Libraries {
		doc.Libraries[strconv.Itoa(int(id))] = lib.LibraryName
	}

	visited := make(map[int32]bool)
	var visit func(rec record.Record) error
	visit = func(rec record.Record) error {
		id, ok := rec.ObjectID()
		if !ok {
			return fmt.Errorf("json: top-level record %T has no object id", rec)
		}
		if visited[id] {
			return nil
		}
		visited[id] = true

		nd, err := dumpNode(doc, visit, rec)
		if err != nil {
			return err
		}
		doc.Nodes[strconv.Itoa(int(id))] = nd
		return nil
	}

	if err := visit(g.Root); err != nil {
		return nil, err
	}
	return doc, nil
}

func dumpNode(doc *Document, visit func(record.Record) error, rec record.Record) (*NodeDump, error) {
	switch v := rec.(type) {
	case *record.ClassRecord:
		nd := &NodeDump{
			Kind:        v.OriginalKind.String(),
			ObjectId:    v.Info.ObjectId,
			MetadataId:  v.MetadataId,
			ClassName:   v.Info.Name,
			MemberNames: v.Info.MemberNames,
			LibraryId:   v.LibraryId,
		}
		if v.TypeInfo != nil {
			nd.MemberTypes = make([]MemberTypeDump, len(v.TypeInfo.BinaryTypes))
			for i, bt := range v.TypeInfo.BinaryTypes {
				nd.MemberTypes[i] = dumpMemberType(bt, v.TypeInfo.AdditionalInfos[i])
			}
		}
		nd.Values = make(map[string]ValueDump, len(v.Info.MemberNames))
		for i, name := range v.Info.MemberNames {
			var typed *record.PrimitiveType
			if v.TypeInfo != nil && v.TypeInfo.BinaryTypes[i] == record.BinaryTypePrimitive {
				t := v.TypeInfo.AdditionalInfos[i].PrimitiveType
				typed = &t
			}
			vd, err := dumpValue(doc, visit, v.Values[name], typed)
			if err != nil {
				return nil, err
			}
			nd.Values[name] = vd
		}
		return nd, nil

	case *record.BinaryObjectStringRecord:
		s := v.Value
		return &NodeDump{Kind: "BinaryObjectString", ObjectId: v.ObjectId, StringValue: &s}, nil

	case *record.BinaryArrayRecord:
		nd := &NodeDump{
			Kind:              "BinaryArray",
			ObjectId:          v.ObjectId,
			ArrayKind:         v.ArrayKind.String(),
			Rank:              &v.Rank,
			Lengths:           v.Lengths,
			LowerBounds:       v.LowerBounds,
			ElementBinaryType: v.ElementType.String(),
		}
		mt := dumpMemberType(v.ElementType, v.ElementInfo)
		nd.ElementType = &mt
		var typed *record.PrimitiveType
		if v.ElementType == record.BinaryTypePrimitive {
			t := v.ElementInfo.PrimitiveType
			typed = &t
		}
		elements, err := dumpSlots(doc, visit, v.Elements, typed)
		if err != nil {
			return nil, err
		}
		nd.Elements = elements
		return nd, nil

	case *record.ArraySingleObjectRecord:
		elements, err := dumpSlots(doc, visit, v.Elements, nil)
		if err != nil {
			return nil, err
		}
		return &NodeDump{Kind: "ArraySingleObject", ObjectId: v.ObjectId, Elements: elements}, nil

	case *record.ArraySingleStringRecord:
		elements, err := dumpSlots(doc, visit, v.Elements, nil)
		if err != nil {
			return nil, err
		}
		return &NodeDump{Kind: "ArraySingleString", ObjectId: v.ObjectId, Elements: elements}, nil

	case *record.ArraySinglePrimitiveRecord:
		nd := &NodeDump{Kind: "ArraySinglePrimitive", ObjectId: v.ObjectId, PrimitiveElementType: v.ElementType.String()}
		nd.PrimitiveElements = make([]*PrimitiveDump, len(v.Elements))
		for i, val := range v.Elements {
			nd.PrimitiveElements[i] = formatPrimitive(v.ElementType, val.Primitive)
		}
		return nd, nil

	default:
		return nil, fmt.Errorf("json: unsupported top-level record type %T", rec)
	}
}

func dumpSlots(doc *Document, visit func(record.Record) error, slots []record.ElementSlot, typed *record.PrimitiveType) ([]ElementDump, error) {
	out := make([]ElementDump, 0, len(slots))
	for _, s := range slots {
		if s.Kind == record.SlotNullRun {
			out = append(out, ElementDump{NullRun: &NullRunDump{Kind: s.RunKind.String(), Count: s.RunCount}})
			continue
		}
		vd, err := dumpValue(doc, visit, s.Value, typed)
		if err != nil {
			return nil, err
		}
		out = append(out, ElementDump{Value: &vd})
	}
	return out, nil
}

func dumpValue(doc *Document, visit func(record.Record) error, val record.Value, typed *record.PrimitiveType) (ValueDump, error) {
	if val.IsNull() {
		return ValueDump{Null: true}, nil
	}
	if !val.IsRecord {
		if typed == nil {
			return ValueDump{}, fmt.Errorf("json: bare primitive outside a typed context")
		}
		return ValueDump{Primitive: formatPrimitive(*typed, val.Primitive)}, nil
	}

	switch rec := val.Record.(type) {
	case *record.MemberPrimitiveTypedRecord:
		return ValueDump{TypedPrimitive: formatPrimitive(rec.PrimitiveType, rec.Value.Primitive)}, nil
	case *record.MemberReferenceRecord:
		id := rec.IdRef
		return ValueDump{Ref: &id}, nil
	default:
		id, ok := rec.ObjectID()
		if !ok {
			return ValueDump{}, fmt.Errorf("json: unexpected record type %T in value slot", rec)
		}
		if err := visit(rec); err != nil {
			return ValueDump{}, err
		}
		return ValueDump{Ref: &id}, nil
	}
}

func dumpMemberType(bt record.BinaryType, info record.AdditionalTypeInfo) MemberTypeDump {
	mt := MemberTypeDump{BinaryType: bt.String()}
	switch info.Kind {
	case record.AdditionalInfoPrimitive:
		mt.PrimitiveType = info.PrimitiveType.String()
	case record.AdditionalInfoSystemClass:
		mt.ClassName = info.Name
	case record.AdditionalInfoClass:
		mt.ClassName = info.Name
		libId := info.LibraryId
		mt.LibraryId = &libId
	}
	return mt
}

func formatPrimitive(pt record.PrimitiveType, v any) *PrimitiveDump {
	var s string
	switch pt {
	case record.PrimitiveBoolean:
		s = strconv.FormatBool(v.(bool))
	case record.PrimitiveByte:
		s = strconv.FormatUint(uint64(v.(uint8)), 10)
	case record.PrimitiveSByte:
		s = strconv.FormatInt(int64(v.(int8)), 10)
	case record.PrimitiveChar:
		s = strconv.FormatUint(uint64(v.(uint8)), 10)
	case record.PrimitiveDecimal:
		s = v.(string)
	case record.PrimitiveDouble:
		s = strconv.FormatFloat(v.(float64), 'g', -1, 64)
	case record.PrimitiveInt16:
		s = strconv.FormatInt(int64(v.(int16)), 10)
	case record.PrimitiveInt32:
		s = strconv.FormatInt(int64(v.(int32)), 10)
	case record.PrimitiveInt64:
		s = strconv.FormatInt(v.(int64), 10)
	case record.PrimitiveSingle:
		s = strconv.FormatFloat(float64(v.(float32)), 'g', -1, 32)
	case record.PrimitiveTimeSpan, record.PrimitiveDateTime:
		s = strconv.FormatInt(v.(int64), 10)
	case record.PrimitiveUInt16:
		s = strconv.FormatUint(uint64(v.(uint16)), 10)
	case record.PrimitiveUInt32:
		s = strconv.FormatUint(uint64(v.(uint32)), 10)
	case record.PrimitiveUInt64:
		s = strconv.FormatUint(v.(uint64), 10)
	case record.PrimitiveString:
		s = v.(string)
	}
	return &PrimitiveDump{Type: pt.String(), Value: s}
}

func parsePrimitiveValue(pd *PrimitiveDump) (record.PrimitiveType, any, error) {
	pt, err := parsePrimitiveType(pd.Type)
	if err != nil {
		return 0, nil, err
	}
	switch pt {
	case record.PrimitiveBoolean:
		b, err := strconv.ParseBool(pd.Value)
		return pt, b, err
	case record.PrimitiveByte, record.PrimitiveChar:
		n, err := strconv.ParseUint(pd.Value, 10, 8)
		return pt, uint8(n), err
	case record.PrimitiveSByte:
		n, err := strconv.ParseInt(pd.Value, 10, 8)
		return pt, int8(n), err
	case record.PrimitiveDecimal:
		return pt, pd.Value, nil
	case record.PrimitiveDouble:
		f, err := strconv.ParseFloat(pd.Value, 64)
		return pt, f, err
	case record.PrimitiveInt16:
		n, err := strconv.ParseInt(pd.Value, 10, 16)
		return pt, int16(n), err
	case record.PrimitiveInt32:
		n, err := strconv.ParseInt(pd.Value, 10, 32)
		return pt, int32(n), err
	case record.PrimitiveInt64, record.PrimitiveTimeSpan, record.PrimitiveDateTime:
		n, err := strconv.ParseInt(pd.Value, 10, 64)
		return pt, n, err
	case record.PrimitiveSingle:
		f, err := strconv.ParseFloat(pd.Value, 32)
		return pt, float32(f), err
	case record.PrimitiveUInt16:
		n, err := strconv.ParseUint(pd.Value, 10, 16)
		return pt, uint16(n), err
	case record.PrimitiveUInt32:
		n, err := strconv.ParseUint(pd.Value, 10, 32)
		return pt, uint32(n), err
	case record.PrimitiveUInt64:
		n, err := strconv.ParseUint(pd.Value, 10, 64)
		return pt, n, err
	case record.PrimitiveString:
		return pt, pd.Value, nil
	default:
		return pt, nil, nil
	}
}

// BuildGraph reconstructs a Graph from a Document. Nodes are pre-allocated
// in a first pass so that forward references and cycles resolve to the
// same pointer identity a decoder would have produced.
func BuildGraph(doc *Document) (*nrbf.Graph, error) {
	records := make(map[int32]record.Record, len(doc.Nodes))
	ids := make([]string, 0, len(doc.Nodes))
	for idStr := range doc.Nodes {
		ids = append(ids, idStr)
	}
	sort.Strings(ids)

	for _, idStr := range ids {
		nd := doc.Nodes[idStr]
		id, err := strconv.ParseInt(idStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("json: invalid node id %q: %w", idStr, err)
		}
		stub, err := makeStub(nd.Kind, int32(id))
		if err != nil {
			return nil, err
		}
		records[int32(id)] = stub
	}

	for _, idStr := range ids {
		nd := doc.Nodes[idStr]
		id, _ := strconv.ParseInt(idStr, 10, 32)
		if err := fillNode(records[int32(id)], nd, records); err != nil {
			return nil, fmt.Errorf("json: node %s: %w", idStr, err)
		}
	}

	root, ok := records[doc.RootId]
	if !ok {
		return nil, &nrbf.RootNotFound{RootId: doc.RootId}
	}

	libraries := make(map[int32]*record.BinaryLibraryRecord, len(doc.Libraries))
	for idStr, name := range doc.Libraries {
		id, err := strconv.ParseInt(idStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("json: invalid library id %q: %w", idStr, err)
		}
		libraries[int32(id)] = &record.BinaryLibraryRecord{LibraryId: int32(id), LibraryName: name}
	}

	return &nrbf.Graph{
		Header:    &record.HeaderRecord{RootId: doc.RootId, HeaderId: -1, MajorVersion: 1, MinorVersion: 0},
		Root:      root,
		Records:   records,
		Libraries: libraries,
	}, nil
}

func makeStub(kind string, id int32) (record.Record, error) {
	k, err := parseKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case record.KindClassWithId, record.KindSystemClassWithMembers, record.KindClassWithMembers,
		record.KindSystemClassWithMembersAndTypes, record.KindClassWithMembersAndTypes:
		return &record.ClassRecord{OriginalKind: k, Info: record.ClassInfo{ObjectId: id}}, nil
	case record.KindBinaryArray:
		return &record.BinaryArrayRecord{ObjectId: id}, nil
	case record.KindArraySingleObject:
		return &record.ArraySingleObjectRecord{ObjectId: id}, nil
	case record.KindArraySingleString:
		return &record.ArraySingleStringRecord{ObjectId: id}, nil
	case record.KindArraySinglePrimitive:
		return &record.ArraySinglePrimitiveRecord{ObjectId: id}, nil
	case record.KindBinaryObjectString:
		return &record.BinaryObjectStringRecord{ObjectId: id}, nil
	default:
		return nil, fmt.Errorf("json: node kind %q is not an id-bearing record kind", kind)
	}
}

func fillNode(rec record.Record, nd *NodeDump, records map[int32]record.Record) error {
	switch v := rec.(type) {
	case *record.ClassRecord:
		v.Info.Name = nd.ClassName
		v.Info.MemberNames = nd.MemberNames
		v.MetadataId = nd.MetadataId
		v.LibraryId = nd.LibraryId
		if len(nd.MemberTypes) > 0 {
			ti := &record.MemberTypeInfo{
				BinaryTypes:     make([]record.BinaryType, len(nd.MemberTypes)),
				AdditionalInfos: make([]record.AdditionalTypeInfo, len(nd.MemberTypes)),
			}
			for i, mt := range nd.MemberTypes {
				bt, err := parseBinaryType(mt.BinaryType)
				if err != nil {
					return err
				}
				ti.BinaryTypes[i] = bt
				ti.AdditionalInfos[i] = parseMemberType(mt)
			}
			v.TypeInfo = ti
		}
		v.Values = make(map[string]record.Value, len(nd.MemberNames))
		for i, name := range nd.MemberNames {
			var typed *record.PrimitiveType
			if v.TypeInfo != nil && v.TypeInfo.BinaryTypes[i] == record.BinaryTypePrimitive {
				t := v.TypeInfo.AdditionalInfos[i].PrimitiveType
				typed = &t
			}
			val, err := parseValue(nd.Values[name], records, typed)
			if err != nil {
				return err
			}
			v.Values[name] = val
		}
		return nil

	case *record.BinaryObjectStringRecord:
		if nd.StringValue != nil {
			v.Value = *nd.StringValue
		}
		return nil

	case *record.BinaryArrayRecord:
		ak, err := parseArrayKind(nd.ArrayKind)
		if err != nil {
			return err
		}
		v.ArrayKind = ak
		v.Lengths = nd.Lengths
		v.LowerBounds = nd.LowerBounds
		if nd.Rank != nil {
			v.Rank = *nd.Rank
		}
		bt, err := parseBinaryType(nd.ElementBinaryType)
		if err != nil {
			return err
		}
		v.ElementType = bt
		if nd.ElementType != nil {
			v.ElementInfo = parseMemberType(*nd.ElementType)
		}
		var typed *record.PrimitiveType
		if bt == record.BinaryTypePrimitive {
			t := v.ElementInfo.PrimitiveType
			typed = &t
		}
		slots, err := parseSlots(nd.Elements, records, typed)
		if err != nil {
			return err
		}
		v.Elements = slots
		return nil

	case *record.ArraySingleObjectRecord:
		slots, err := parseSlots(nd.Elements, records, nil)
		if err != nil {
			return err
		}
		v.Elements = slots
		return nil

	case *record.ArraySingleStringRecord:
		slots, err := parseSlots(nd.Elements, records, nil)
		if err != nil {
			return err
		}
		v.Elements = slots
		return nil

	case *record.ArraySinglePrimitiveRecord:
		pt, err := parsePrimitiveType(nd.PrimitiveElementType)
		if err != nil {
			return err
		}
		v.ElementType = pt
		v.Elements = make([]record.Value, len(nd.PrimitiveElements))
		for i, pd := range nd.PrimitiveElements {
			_, val, err := parsePrimitiveValue(pd)
			if err != nil {
				return err
			}
			v.Elements[i] = record.PrimitiveValue(val)
		}
		return nil

	default:
		return fmt.Errorf("unsupported node kind for %T", rec)
	}
}

func parseSlots(elements []ElementDump, records map[int32]record.Record, typed *record.PrimitiveType) ([]record.ElementSlot, error) {
	out := make([]record.ElementSlot, 0, len(elements))
	for _, e := range elements {
		if e.NullRun != nil {
			k, err := parseKind(e.NullRun.Kind)
			if err != nil {
				return nil, err
			}
			out = append(out, record.RunSlot(k, e.NullRun.Count))
			continue
		}
		if e.Value == nil {
			return nil, fmt.Errorf("json: element has neither nullRun nor value")
		}
		val, err := parseValue(*e.Value, records, typed)
		if err != nil {
			return nil, err
		}
		out = append(out, record.ValueSlot(val))
	}
	return out, nil
}

func parseValue(vd ValueDump, records map[int32]record.Record, typed *record.PrimitiveType) (record.Value, error) {
	if vd.Null {
		return record.NullValue, nil
	}
	if vd.Primitive != nil {
		_, val, err := parsePrimitiveValue(vd.Primitive)
		return record.PrimitiveValue(val), err
	}
	if vd.TypedPrimitive != nil {
		pt, val, err := parsePrimitiveValue(vd.TypedPrimitive)
		if err != nil {
			return record.Value{}, err
		}
		return record.RecordValue(&record.MemberPrimitiveTypedRecord{PrimitiveType: pt, Value: record.PrimitiveValue(val)}), nil
	}
	if vd.Ref != nil {
		target, ok := records[*vd.Ref]
		if !ok {
			return record.Value{}, fmt.Errorf("json: reference to unknown node id %d", *vd.Ref)
		}
		return record.RecordValue(target), nil
	}
	if typed != nil {
		return record.NullValue, nil
	}
	return record.Value{}, fmt.Errorf("json: value has no populated variant")
}

func parseMemberType(mt MemberTypeDump) record.AdditionalTypeInfo {
	if mt.PrimitiveType != "" {
		pt, _ := parsePrimitiveType(mt.PrimitiveType)
		return record.AdditionalTypeInfo{Kind: record.AdditionalInfoPrimitive, PrimitiveType: pt}
	}
	if mt.LibraryId != nil {
		return record.AdditionalTypeInfo{Kind: record.AdditionalInfoClass, Name: mt.ClassName, LibraryId: *mt.LibraryId}
	}
	if mt.ClassName != "" {
		return record.AdditionalTypeInfo{Kind: record.AdditionalInfoSystemClass, Name: mt.ClassName}
	}
	return record.AdditionalTypeInfo{Kind: record.AdditionalInfoNone}
}

var kindByName = map[string]record.Kind{
	"Header": record.KindHeader, "ClassWithId": record.KindClassWithId,
	"SystemClassWithMembers": record.KindSystemClassWithMembers, "ClassWithMembers": record.KindClassWithMembers,
	"SystemClassWithMembersAndTypes": record.KindSystemClassWithMembersAndTypes, "ClassWithMembersAndTypes": record.KindClassWithMembersAndTypes,
	"BinaryObjectString": record.KindBinaryObjectString, "BinaryArray": record.KindBinaryArray,
	"MemberPrimitiveTyped": record.KindMemberPrimitiveTyped, "MemberReference": record.KindMemberReference,
	"ObjectNull": record.KindObjectNull, "MessageEnd": record.KindMessageEnd, "BinaryLibrary": record.KindBinaryLibrary,
	"ObjectNullMultiple256": record.KindObjectNullMultiple256, "ObjectNullMultiple": record.KindObjectNullMultiple,
	"ArraySinglePrimitive": record.KindArraySinglePrimitive, "ArraySingleObject": record.KindArraySingleObject,
	"ArraySingleString": record.KindArraySingleString,
}

func parseKind(s string) (record.Kind, error) {
	k, ok := kindByName[s]
	if !ok {
		return 0, fmt.Errorf("json: unknown record kind %q", s)
	}
	return k, nil
}

var binaryTypeByName = map[string]record.BinaryType{
	"Primitive": record.BinaryTypePrimitive, "String": record.BinaryTypeString, "Object": record.BinaryTypeObject,
	"SystemClass": record.BinaryTypeSystemClass, "Class": record.BinaryTypeClass,
	"ObjectArray": record.BinaryTypeObjectArray, "StringArray": record.BinaryTypeStringArray,
	"PrimitiveArray": record.BinaryTypePrimitiveArray,
}

func parseBinaryType(s string) (record.BinaryType, error) {
	t, ok := binaryTypeByName[s]
	if !ok {
		return 0, fmt.Errorf("json: unknown binary type %q", s)
	}
	return t, nil
}

var primitiveTypeByName = map[string]record.PrimitiveType{
	"Boolean": record.PrimitiveBoolean, "Byte": record.PrimitiveByte, "SByte": record.PrimitiveSByte,
	"Char": record.PrimitiveChar, "Decimal": record.PrimitiveDecimal, "Double": record.PrimitiveDouble,
	"Int16": record.PrimitiveInt16, "Int32": record.PrimitiveInt32, "Int64": record.PrimitiveInt64,
	"Single": record.PrimitiveSingle, "TimeSpan": record.PrimitiveTimeSpan, "DateTime": record.PrimitiveDateTime,
	"UInt16": record.PrimitiveUInt16, "UInt32": record.PrimitiveUInt32, "UInt64": record.PrimitiveUInt64,
	"Null": record.PrimitiveNull, "String": record.PrimitiveString,
}

func parsePrimitiveType(s string) (record.PrimitiveType, error) {
	t, ok := primitiveTypeByName[s]
	if !ok {
		return 0, fmt.Errorf("json: unknown primitive type %q", s)
	}
	return t, nil
}

var arrayKindByName = map[string]record.ArrayKind{
	"Single": record.ArrayKindSingle, "Jagged": record.ArrayKindJagged, "Rectangular": record.ArrayKindRectangular,
	"SingleOffset": record.ArrayKindSingleOffset, "JaggedOffset": record.ArrayKindJaggedOffset,
	"RectangularOffset": record.ArrayKindRectangularOffset,
}

func parseArrayKind(s string) (record.ArrayKind, error) {
	k, ok := arrayKindByName[s]
	if !ok {
		return 0, fmt.Errorf("json: unknown array kind %q", s)
	}
	return k, nil
}
