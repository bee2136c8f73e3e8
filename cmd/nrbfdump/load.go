package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var loadFormat string

var loadCmd = &cobra.Command{
	Use:   "load <json-file>",
	Short: "Rebuild an NRBF stream from a JSON Document and re-encode it",
	Long: `Read a Document previously produced by 'nrbfdump dump --format json',
reconstruct its record graph, and re-encode it to an NRBF stream on
--output (or stdout).`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVarP(&loadFormat, "format", "f", "json", "input format (json)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	if loadFormat != "json" {
		return fmt.Errorf("unsupported load format: %s", loadFormat)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse %s as a Document: %w", args[0], err)
	}

	g, err := BuildGraph(&doc)
	if err != nil {
		return err
	}

	encoded, err := g.Encode(nil)
	if err != nil {
		return fmt.Errorf("failed to encode rebuilt graph: %w", err)
	}

	return writeEncoded(encoded)
}
