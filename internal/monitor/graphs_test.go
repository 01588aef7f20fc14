package monitor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMinMax(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		wantMin float64
		wantMax float64
	}{
		{name: "empty", data: nil, wantMin: 0, wantMax: 1},
		{name: "mixed", data: []float64{3, -2, 7, 0}, wantMin: -2, wantMax: 7},
		{name: "flat series gets a synthetic band", data: []float64{5, 5, 5}, wantMin: 4, wantMax: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := findMinMax(tt.data)
			assert.Equal(t, tt.wantMin, gotMin)
			assert.Equal(t, tt.wantMax, gotMax)
		})
	}
}

func TestResampleData(t *testing.T) {
	t.Run("downsampling preserves peaks", func(t *testing.T) {
		data := []float64{0, 0, 100, 0, 0, 0, 0, 0}
		out := resampleData(data, 4)
		require.Len(t, out, 4)

		// The spike must survive max-based bucketing
		var peak float64
		for _, v := range out {
			if v > peak {
				peak = v
			}
		}
		assert.Equal(t, 100.0, peak)
	})

	t.Run("upsampling interpolates endpoints", func(t *testing.T) {
		out := resampleData([]float64{0, 10}, 5)
		require.Len(t, out, 5)
		assert.Equal(t, 0.0, out[0])
		assert.Equal(t, 10.0, out[4])
		assert.InDelta(t, 5.0, out[2], 0.001)
	})

	t.Run("single value fills", func(t *testing.T) {
		out := resampleData([]float64{7}, 3)
		assert.Equal(t, []float64{7, 7, 7}, out)
	})

	t.Run("same size passes through", func(t *testing.T) {
		data := []float64{1, 2, 3}
		assert.Equal(t, data, resampleData(data, 3))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, resampleData(nil, 5))
		assert.Nil(t, resampleData([]float64{1}, 0))
	})
}

func TestRenderMiniSparkline(t *testing.T) {
	out := RenderMiniSparkline([]float64{0, 25, 50, 75, 100}, 5, ColorGraph)
	require.NotEmpty(t, out)

	// Low values render low blocks, high values render high blocks
	assert.Contains(t, out, "▁")
	assert.Contains(t, out, "█")

	assert.Empty(t, RenderMiniSparkline(nil, 5, ColorGraph))
	assert.Empty(t, RenderMiniSparkline([]float64{1}, 0, ColorGraph))
}

func TestRenderBrailleSparkline(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	out := RenderBrailleSparkline(data, 4, 3, ColorGraph)
	require.NotEmpty(t, out)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3, "one line per row of height")

	assert.Empty(t, RenderBrailleSparkline(nil, 4, 3, ColorGraph))
	assert.Empty(t, RenderBrailleSparkline(data, 0, 3, ColorGraph))
	assert.Empty(t, RenderBrailleSparkline(data, 4, 0, ColorGraph))
}

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, 0.0, normalizeValue(0, 0, 10))
	assert.Equal(t, 1.0, normalizeValue(10, 0, 10))
	assert.Equal(t, 0.5, normalizeValue(5, 0, 10))
	assert.Equal(t, 0.5, normalizeValue(3, 3, 3), "degenerate range centers")
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-5, 10))
	assert.Equal(t, 10, clampInt(15, 10))
	assert.Equal(t, 7, clampInt(7, 10))
}
