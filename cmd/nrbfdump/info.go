package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeebo/xxh3"
)

var infoCmd = &cobra.Command{
	Use:   "info <nrbf-file>",
	Short: "Display summary information about an NRBF stream",
	Long:  `Display the header version, root id, record/library counts, and a content hash for an NRBF stream.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	buf, err := loadBuffer(path)
	if err != nil {
		return err
	}

	g, err := decodeFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "File: %s\n", path)
	fmt.Fprintf(output, "Major Version: %d\n", g.Header.MajorVersion)
	fmt.Fprintf(output, "Minor Version: %d\n", g.Header.MinorVersion)
	fmt.Fprintf(output, "Root Id: %d\n", g.Header.RootId)
	fmt.Fprintf(output, "Root Kind: %s\n", g.Root.RecordKind())
	fmt.Fprintf(output, "Records: %d\n", len(g.Records))
	fmt.Fprintf(output, "Libraries: %d\n", len(g.Libraries))
	fmt.Fprintf(output, "Size: %d bytes\n", len(buf))
	fmt.Fprintf(output, "Content Hash (xxh3-64): %016x\n", xxh3.Hash(buf))

	return nil
}
