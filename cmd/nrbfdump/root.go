package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	output     io.Writer
	useLz4     bool
)

var rootCmd = &cobra.Command{
	Use:   "nrbfdump",
	Short: "Inspect and edit .NET Remoting Binary Format (NRBF) streams",
	Long: `nrbfdump is a command-line tool for decoding, navigating, and
re-encoding .NET Remoting Binary Format streams, as found in Unity save
files and other persisted object graphs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&useLz4, "lz4", false, "the input file is LZ4-framed; decompress before decoding")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(guidCmd)
	rootCmd.AddCommand(hexCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(loadCmd)
}
