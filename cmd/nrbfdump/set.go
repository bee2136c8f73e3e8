package main

import (
	"fmt"

	"github.com/binrec/nrbf-go/record"
	"github.com/spf13/cobra"
)

var setType string

var setCmd = &cobra.Command{
	Use:   "set <nrbf-file> <path> <value>",
	Short: "Write a value into an NRBF stream by dotted path and re-encode",
	Long: `Navigate to path the same way 'get' does, replace the value found
there, and re-encode the stream. Use --output to write the result
somewhere other than stdout.

--type selects how value is interpreted (default String); it must match
the PrimitiveType name the member or array element was originally
encoded with (Int32, Double, Boolean, ...).`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func init() {
	setCmd.Flags().StringVarP(&setType, "type", "t", "String", "primitive type of value (Boolean, Byte, Int32, Int64, Single, Double, String, ...)")
}

func runSet(cmd *cobra.Command, args []string) error {
	path := args[0]
	dottedPath := args[1]
	raw := args[2]

	g, err := decodeFile(path)
	if err != nil {
		return err
	}

	pt, err := parsePrimitiveType(setType)
	if err != nil {
		return err
	}
	_, parsed, err := parsePrimitiveValue(&PrimitiveDump{Type: setType, Value: raw})
	if err != nil {
		return fmt.Errorf("failed to parse value %q as %s: %w", raw, setType, err)
	}

	val := record.RecordValue(&record.MemberPrimitiveTypedRecord{PrimitiveType: pt, Value: record.PrimitiveValue(parsed)})
	if err := g.Set(dottedPath, val); err != nil {
		return err
	}

	encoded, err := g.Encode(nil)
	if err != nil {
		return fmt.Errorf("failed to re-encode: %w", err)
	}

	return writeEncoded(encoded)
}
