package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestOpenInput_PlainUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.ged")
	require.NoError(t, os.WriteFile(path, []byte("0 HEAD\n"), 0o644))

	r, err := openInput(path)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "0 HEAD\n", string(data))
}

func TestOpenInput_UTF8BOMConsumed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.ged")
	require.NoError(t, os.WriteFile(path, []byte("\uFEFF0 HEAD\n"), 0o644))

	r, err := openInput(path)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "0 HEAD\n", string(data))
}

func TestOpenInput_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := enc.Bytes([]byte("0 HEAD\n1 NAME X\n"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "utf16.ged")
	require.NoError(t, os.WriteFile(path, encoded, 0o644))

	r, err := openInput(path)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "0 HEAD\n1 NAME X\n", string(data))
}

func TestOpenInput_Missing(t *testing.T) {
	_, err := openInput(filepath.Join(t.TempDir(), "absent.ged"))
	assert.Error(t, err)
}

func TestConfirmOverwrite(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase y", "Y\n", true},
		{"padded y", "  y  \n", true},
		{"n", "n\n", false},
		{"empty", "\n", false},
		{"yes is not y", "yes\n", false},
		{"eof", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			got, err := confirmOverwrite(strings.NewReader(tc.input), out, "out.ged")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "out.ged already exists")
		})
	}
}
