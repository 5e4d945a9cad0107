package flow

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Decode error taxonomy. Every decode failure wraps exactly one of these,
// so callers can classify with errors.Is. Unopenable paths surface the
// underlying *os.PathError from ReadFile/WriteFile instead.
var (
	// ErrMalformedHeader means the tag or dimension fields could not be
	// read in full.
	ErrMalformedHeader = errors.New("malformed flow header")

	// ErrUnknownFormat means the four-byte tag matched neither known
	// variant.
	ErrUnknownFormat = errors.New("unknown flow format")

	// ErrInvalidDimensions means the header declared a non-positive
	// width or height.
	ErrInvalidDimensions = errors.New("invalid flow dimensions")

	// ErrTruncatedData means the sample payload was shorter than the
	// declared dimensions require.
	ErrTruncatedData = errors.New("truncated flow data")
)

const tagSize = 4

// decodeChunk is the number of samples read per step while decoding the
// payload. Reading in bounded chunks keeps the allocation proportional to
// the bytes actually present, so a hostile header declaring enormous
// dimensions fails with ErrTruncatedData once the stream runs dry instead
// of forcing a giant up-front allocation.
const decodeChunk int64 = 1 << 16

// Decode reads one flow field from r. It consumes exactly the bytes of a
// well-formed file: tag, two int32 dimensions, then width*height*channels
// float32 samples, all little-endian.
func Decode(r io.Reader) (*Field, error) {
	var tag [tagSize]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return nil, fmt.Errorf("%w: short read on format tag", ErrMalformedHeader)
	}

	format, ok := formatForTag(tag[:])
	if !ok {
		return nil, fmt.Errorf("%w: tag %q", ErrUnknownFormat, tag[:])
	}

	var dims [2]int32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return nil, fmt.Errorf("%w: short read on dimensions", ErrMalformedHeader)
	}

	width, height := int(dims[0]), int(dims[1])
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cells := int64(width) * int64(height)
	channels := int64(format.Channels())
	if cells > math.MaxInt64/channels {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	want := cells * channels

	samples, err := readSamples(r, want)
	if err != nil {
		return nil, fmt.Errorf("%w: want %d samples for %dx%d %s",
			ErrTruncatedData, want, width, height, format)
	}

	return &Field{Width: width, Height: height, Format: format, Samples: samples}, nil
}

// readSamples decodes want little-endian float32 values from r, growing
// the result as data arrives rather than trusting the header's size.
func readSamples(r io.Reader, want int64) ([]float32, error) {
	buf := make([]float32, min(want, decodeChunk))
	samples := make([]float32, 0, len(buf))
	for got := int64(0); got < want; {
		n := min(want-got, decodeChunk)
		if err := binary.Read(r, binary.LittleEndian, buf[:n]); err != nil {
			return nil, err
		}
		samples = append(samples, buf[:n]...)
		got += n
	}
	return samples, nil
}

// Encode writes f to w in the wire layout Decode expects. A failure
// partway through leaves w holding a truncated stream; there is no
// recovery at this layer.
func Encode(w io.Writer, f *Field) error {
	if _, err := io.WriteString(w, f.Format.Tag()); err != nil {
		return fmt.Errorf("writing tag: %w", err)
	}
	dims := [2]int32{int32(f.Width), int32(f.Height)}
	if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
		return fmt.Errorf("writing dimensions: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, f.Samples); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// ReadFile decodes the flow file at path.
func ReadFile(path string) (*Field, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	field, err := Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return field, nil
}

// WriteFile encodes f to path, creating or truncating it. On a midway
// write failure the file is left truncated; callers that need atomicity
// must write to a temporary path and rename.
func WriteFile(path string, f *Field) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(fd, f); err != nil {
		fd.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
