package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	f := NewField(FormatFlo, 2, 1)
	f.Set(0, 0, 3, 4, 0)  // magnitude 5
	f.Set(1, 0, 0, 12, 0) // magnitude 12

	s := Summarize(f)
	assert.Equal(t, 2, s.Cells)
	assert.InDelta(t, 5, s.MinMagnitude, 1e-9)
	assert.InDelta(t, 12, s.MaxMagnitude, 1e-9)
	assert.InDelta(t, 8.5, s.MeanMagnitude, 1e-9)
	assert.Equal(t, 0.0, s.MeanConfidence)
}

func TestSummarizeEmptyFieldPanics(t *testing.T) {
	t.Parallel()

	f := &Field{Width: 0, Height: 0, Format: FormatFlo}
	assert.PanicsWithValue(t, "flow: Summarize on empty field", func() {
		Summarize(f)
	})
}

func TestSummarizeConfidence(t *testing.T) {
	t.Parallel()

	f := NewField(FormatFloc, 2, 1)
	f.Set(0, 0, 1, 0, 0.5)
	f.Set(1, 0, 0, 1, 1.0)

	s := Summarize(f)
	assert.InDelta(t, 0.75, s.MeanConfidence, 1e-9)
}
