// Command nrbfdump inspects and edits .NET Remoting Binary Format streams:
// Unity save files and other persisted object graphs produced by legacy
// .NET binary formatters.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
