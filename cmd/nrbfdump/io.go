package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/pierrec/lz4/v4"

	"github.com/binrec/nrbf-go/nrbf"
)

// loadBuffer memory-maps path (cheaper than a full read for the large
// save files NRBF streams typically appear in) and, if useLz4 is set,
// decompresses the mapped region through an LZ4 frame reader before
// handing the bytes to the caller.
func loadBuffer(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	mapped, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap %s: %w", path, err)
	}
	defer mapped.Unmap()

	raw := make([]byte, len(mapped))
	copy(raw, mapped)

	if !useLz4 {
		return raw, nil
	}

	decompressed, err := io.ReadAll(lz4.NewReader(bytes.NewReader(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to lz4-decompress %s: %w", path, err)
	}
	return decompressed, nil
}

// writeEncoded writes encoded to the already-opened output writer (stdout
// or the --output file), LZ4-framing it first when --lz4 was given.
func writeEncoded(encoded []byte) error {
	if !useLz4 {
		_, err := output.Write(encoded)
		return err
	}

	w := lz4.NewWriter(output)
	if _, err := w.Write(encoded); err != nil {
		return fmt.Errorf("failed to lz4-compress output: %w", err)
	}
	return w.Close()
}

// decodeFile loads and decodes path into a Graph, wrapping the nrbf
// package's typed errors with %w so callers can still match them with
// errors.As.
func decodeFile(path string) (*nrbf.Graph, error) {
	buf, err := loadBuffer(path)
	if err != nil {
		return nil, err
	}
	g, err := nrbf.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return g, nil
}
