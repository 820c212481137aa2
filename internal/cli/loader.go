package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodedFile wraps a BOM-aware decoding reader around the underlying file
// so Close still reaches the file handle.
type decodedFile struct {
	io.Reader
	file *os.File
}

func (d *decodedFile) Close() error {
	return d.file.Close()
}

// openInput opens a GEDCOM source for reading with BOM-aware decoding.
// A UTF-8, UTF-16 LE, or UTF-16 BE byte order mark selects the decoder and
// is consumed; files without a BOM are read as UTF-8.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return &decodedFile{
		Reader: transform.NewReader(f, decoder),
		file:   f,
	}, nil
}

// confirmOverwrite asks whether an existing destination may be replaced.
// Anything other than "y" (case-insensitive) declines.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	fmt.Fprintf(out, "Warning: %s already exists. Overwrite? (y/N): ", path)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(response), "y"), nil
}
