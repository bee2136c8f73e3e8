package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hexCmd = &cobra.Command{
	Use:   "hex <nrbf-file>",
	Short: "Print a hex+ASCII dump of a stream's raw bytes",
	Args:  cobra.ExactArgs(1),
	RunE:  runHex,
}

func runHex(cmd *cobra.Command, args []string) error {
	buf, err := loadBuffer(args[0])
	if err != nil {
		return err
	}

	for offset := 0; offset < len(buf); offset += 16 {
		end := offset + 16
		if end > len(buf) {
			end = len(buf)
		}
		row := buf[offset:end]

		fmt.Fprintf(output, "%08x  ", offset)
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(output, "%02x ", row[i])
			} else {
				fmt.Fprint(output, "   ")
			}
			if i == 7 {
				fmt.Fprint(output, " ")
			}
		}
		fmt.Fprint(output, " |")
		for _, b := range row {
			if b >= 0x20 && b < 0x7f {
				fmt.Fprintf(output, "%c", b)
			} else {
				fmt.Fprint(output, ".")
			}
		}
		fmt.Fprintln(output, "|")
	}
	return nil
}
