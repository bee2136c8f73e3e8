package main

import (
	"fmt"

	"github.com/binrec/nrbf-go/record"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <nrbf-file> <path>",
	Short: "Read a value out of an NRBF stream by dotted path",
	Long: `Navigate an NRBF stream's record graph by dotted path and print
the value found there.

Path segments name a class member (MyClass.health) or an array index
(MyClass.items.0.name). References are resolved transparently at each
step.`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	g, err := decodeFile(args[0])
	if err != nil {
		return err
	}

	val, err := g.Get(args[1])
	if err != nil {
		return err
	}

	fmt.Fprintln(output, formatValue(val))
	return nil
}

func formatValue(v record.Value) string {
	if v.IsNull() {
		return "null"
	}
	if !v.IsRecord {
		return fmt.Sprintf("%v", v.Primitive)
	}
	switch rec := v.Record.(type) {
	case *record.MemberPrimitiveTypedRecord:
		return fmt.Sprintf("%v", rec.Value.Primitive)
	case *record.BinaryObjectStringRecord:
		return rec.Value
	case *record.ClassRecord:
		return fmt.Sprintf("<%s object %d>", rec.Info.Name, rec.Info.ObjectId)
	case *record.MemberReferenceRecord:
		return fmt.Sprintf("<unresolved reference %d>", rec.IdRef)
	default:
		if id, ok := rec.ObjectID(); ok {
			return fmt.Sprintf("<%s %d>", rec.RecordKind(), id)
		}
		return fmt.Sprintf("<%s>", rec.RecordKind())
	}
}
