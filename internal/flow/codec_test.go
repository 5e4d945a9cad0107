package flow

import (
	"bytes"
	"encoding/binary"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawFile assembles an on-disk flow image byte by byte so codec tests do
// not depend on Encode being correct.
func rawFile(t *testing.T, tag string, width, height int32, samples []float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString(tag)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, [2]int32{width, height}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, samples))
	return buf.Bytes()
}

func TestDecodeFlo(t *testing.T) {
	t.Parallel()

	raw := rawFile(t, "PIEH", 2, 1, []float32{1, 2, 3, 4})

	f, err := Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	want := &Field{Width: 2, Height: 1, Format: FormatFlo, Samples: []float32{1, 2, 3, 4}}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("decoded field mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFloc(t *testing.T) {
	t.Parallel()

	raw := rawFile(t, "PIEI", 1, 2, []float32{1, 2, 0.5, 3, 4, 0.25})

	f, err := Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, FormatFloc, f.Format)
	assert.Equal(t, float32(0.5), f.Conf(0, 0))
	assert.Equal(t, float32(0.25), f.Conf(0, 1))
}

// TestRoundTripBytes checks that Encode(Decode(raw)) reproduces a
// well-formed file byte for byte, for both variants.
func TestRoundTripBytes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  []byte
	}{
		{"flo", rawFile(t, "PIEH", 3, 2, []float32{
			0.1, -0.2, 1.5, 2.5, -3, 4,
			5, 6, 7, 8, 9, 10,
		})},
		{"floc", rawFile(t, "PIEI", 2, 2, []float32{
			1, 2, 0.9, 3, 4, 0.8,
			5, 6, 0.7, 7, 8, 0.6,
		})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f, err := Decode(bytes.NewReader(tc.raw))
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, Encode(&out, f))
			assert.Equal(t, tc.raw, out.Bytes())
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	valid := rawFile(t, "PIEH", 2, 2, []float32{1, 2, 3, 4, 5, 6, 7, 8})

	cases := []struct {
		name string
		raw  []byte
		want error
	}{
		{"empty", nil, ErrMalformedHeader},
		{"short tag", []byte("PI"), ErrMalformedHeader},
		{"unknown tag", rawFile(t, "XXXX", 2, 2, nil), ErrUnknownFormat},
		{"missing dimensions", []byte("PIEH"), ErrMalformedHeader},
		{"short dimensions", valid[:10], ErrMalformedHeader},
		{"zero width", rawFile(t, "PIEH", 0, 2, nil), ErrInvalidDimensions},
		{"negative height", rawFile(t, "PIEH", 2, -1, nil), ErrInvalidDimensions},
		{"no payload", valid[:12], ErrTruncatedData},
		{"short payload", valid[:len(valid)-4], ErrTruncatedData},
		{"huge dims with no payload", rawFile(t, "PIEH", 1<<30, 1<<30, nil), ErrTruncatedData},
		{"dims overflowing the sample count", rawFile(t, "PIEI", math.MaxInt32, math.MaxInt32, nil), ErrInvalidDimensions},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(bytes.NewReader(tc.raw))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestDecodeHostileHeader checks that a header declaring dimensions far
// beyond the payload on hand is rejected as truncated, without the decoder
// sizing its buffer from the header alone.
func TestDecodeHostileHeader(t *testing.T) {
	t.Parallel()

	// 12-byte file: tag and dimensions only, declaring 2^60 cells.
	raw := rawFile(t, "PIEH", 1<<30, 1<<30, nil)
	_, err := Decode(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrTruncatedData)

	// Same dimensions with a token payload must fail the same way.
	raw = rawFile(t, "PIEH", 1<<30, 1<<30, []float32{1, 2, 3, 4})
	_, err = Decode(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrTruncatedData)
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "does-not-exist.flo"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadFileWrapsPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.flo")
	require.NoError(t, os.WriteFile(path, []byte("JUNKJUNKJUNK"), 0o644))

	_, err := ReadFile(path)
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), path)
}

func TestWriteFileReadFile(t *testing.T) {
	t.Parallel()

	f := NewField(FormatFloc, 2, 3)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.Set(x, y, float32(x), float32(y), 0.5)
		}
	}

	path := filepath.Join(t.TempDir(), "out.floc")
	require.NoError(t, WriteFile(path, f))

	got, err := ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(f, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}
