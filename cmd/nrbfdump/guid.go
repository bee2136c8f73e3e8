package main

import (
	"fmt"

	"github.com/binrec/nrbf-go/nrbf"
	"github.com/spf13/cobra"
)

var guidCmd = &cobra.Command{
	Use:   "guid",
	Short: "Find or replace a System.Guid's raw bytes in an NRBF stream",
}

var guidFindCmd = &cobra.Command{
	Use:   "find <nrbf-file> <guid>",
	Short: "List every byte offset where guid's 16-byte wire form occurs",
	Args:  cobra.ExactArgs(2),
	RunE:  runGuidFind,
}

var guidReplaceCmd = &cobra.Command{
	Use:   "replace <nrbf-file> <offset> <guid>",
	Short: "Overwrite the 16-byte guid at offset and write the patched buffer",
	Args:  cobra.ExactArgs(3),
	RunE:  runGuidReplace,
}

func init() {
	guidCmd.AddCommand(guidFindCmd)
	guidCmd.AddCommand(guidReplaceCmd)
}

func runGuidFind(cmd *cobra.Command, args []string) error {
	buf, err := loadBuffer(args[0])
	if err != nil {
		return err
	}

	offsets, err := nrbf.FindGuidInBuffer(buf, args[1])
	if err != nil {
		return err
	}
	if len(offsets) == 0 {
		fmt.Fprintf(output, "no occurrences of %s found\n", args[1])
		return nil
	}
	for _, off := range offsets {
		fmt.Fprintf(output, "%d\n", off)
	}
	return nil
}

func runGuidReplace(cmd *cobra.Command, args []string) error {
	buf, err := loadBuffer(args[0])
	if err != nil {
		return err
	}

	var offset int
	if _, err := fmt.Sscanf(args[1], "%d", &offset); err != nil {
		return fmt.Errorf("invalid offset %q: %w", args[1], err)
	}

	replaced, err := nrbf.ReplaceGuidAtOffset(buf, offset, args[2])
	if err != nil {
		return err
	}

	return writeEncoded(replaced)
}
