package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/gigledger/internal/encoding"
)

const header = "id,first_name,last_name,profession\n1,José,Gonçalves,Músico\n"

func TestDecode(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(header))
	require.NoError(t, err)

	tests := []struct {
		name        string
		input       []byte
		wantCharset encoding.Charset
		wantLatin   bool
	}{
		{
			name:        "UTF8Passthrough",
			input:       []byte(header),
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, header...),
			wantCharset: encoding.UTF8BOM,
		},
		{
			name:        "UTF16LE",
			input:       utf16le,
			wantCharset: encoding.UTF16LE,
		},
		{
			name:      "Latin1",
			input:     latin1,
			wantLatin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.Decode(bytes.NewReader(tt.input))
			require.NoError(t, err)

			if tt.wantLatin {
				assert.Contains(t, []encoding.Charset{encoding.Windows1252, encoding.ISO8859_9}, charset)
			} else {
				assert.Equal(t, tt.wantCharset, charset)
			}

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, header, string(got))
		})
	}
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	r, err := encoding.NewUTF8Reader(bytes.NewReader(nil))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
}
