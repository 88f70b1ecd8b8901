package looks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarkit/multilook/internal/array"
)

func float32Raster(t *testing.T, data []float32, shape array.Shape) *array.Array {
	t.Helper()
	a, err := array.FromSlice(data, shape)
	require.NoError(t, err)
	return a
}

// TestTakeLooks_Identity checks that (1, 1) looks return the input array
// itself, not a copy.
func TestTakeLooks_Identity(t *testing.T) {
	a := float32Raster(t, []float32{1, 2, 3, 4}, array.Shape{2, 2})

	out, err := TakeLooks(a, 1, 1)
	require.NoError(t, err)
	assert.Same(t, a, out)
}

// TestTakeLooks_OnesSum checks the canonical case: a 4x4 of ones with
// (2, 2) looks sums to a 2x2 of fours.
func TestTakeLooks_OnesSum(t *testing.T) {
	a := array.Full(array.Shape{4, 4}, float32(1))

	out, err := TakeLooks(a, 2, 2)
	require.NoError(t, err)
	require.True(t, out.Shape().Equal(array.Shape{2, 2}), "shape = %v", out.Shape())
	for _, v := range out.AsFloat32() {
		assert.Equal(t, float32(4), v)
	}
}

func TestTakeLooks_BlockValues(t *testing.T) {
	a := float32Raster(t, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}, array.Shape{4, 4})

	out, err := TakeLooks(a, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{14, 22, 46, 54}, out.AsFloat32())
}

func TestTakeLooks_AsymmetricLooks(t *testing.T) {
	a := float32Raster(t, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
	}, array.Shape{2, 4})

	out, err := TakeLooks(a, 1, 2)
	require.NoError(t, err)
	require.True(t, out.Shape().Equal(array.Shape{2, 2}), "shape = %v", out.Shape())
	assert.Equal(t, []float32{3, 7, 11, 15}, out.AsFloat32())
}

// TestTakeLooks_CutoffDropsRemainder checks that a 5x5 input with (2, 2)
// looks keeps only the 4x4 top-left region under the default edge handling.
func TestTakeLooks_CutoffDropsRemainder(t *testing.T) {
	a := array.Full(array.Shape{5, 5}, float32(1))

	out, err := TakeLooks(a, 2, 2)
	require.NoError(t, err)
	require.True(t, out.Shape().Equal(array.Shape{2, 2}), "shape = %v", out.Shape())
	for _, v := range out.AsFloat32() {
		assert.Equal(t, float32(4), v)
	}
}

// TestTakeLooks_PadKeepsRemainder checks the pad edge handling: a 5x5 of
// ones with (2, 2) looks yields a 3x3 where edge blocks sum only the real
// cells, because the padding is NaN and the default reduction skips it.
func TestTakeLooks_PadKeepsRemainder(t *testing.T) {
	a := array.Full(array.Shape{5, 5}, float32(1))

	out, err := TakeLooks(a, 2, 2, WithEdgeStrategy(Pad))
	require.NoError(t, err)
	require.True(t, out.Shape().Equal(array.Shape{3, 3}), "shape = %v", out.Shape())
	assert.Equal(t, []float32{
		4, 4, 2,
		4, 4, 2,
		2, 2, 1,
	}, out.AsFloat32())
}

// TestTakeLooks_PadPlainSum checks that a non-nan reduction sees the NaN
// padding: every block touching the padded edge comes out NaN.
func TestTakeLooks_PadPlainSum(t *testing.T) {
	a := array.Full(array.Shape{5, 5}, float32(1))

	out, err := TakeLooks(a, 2, 2, WithEdgeStrategy(Pad), WithReduction(array.Sum))
	require.NoError(t, err)
	got := out.AsFloat32()
	for i, v := range got {
		r, c := i/3, i%3
		if r == 2 || c == 2 {
			assert.True(t, math.IsNaN(float64(v)), "edge block (%d,%d) = %v, want NaN", r, c, v)
		} else {
			assert.Equal(t, float32(4), v, "interior block (%d,%d)", r, c)
		}
	}
}

func TestTakeLooks_PadNanMean(t *testing.T) {
	a := array.Full(array.Shape{5, 5}, float32(3))

	out, err := TakeLooks(a, 2, 2, WithEdgeStrategy(Pad), WithReduction(array.NanMean))
	require.NoError(t, err)
	// Padded cells are skipped, so every block averages to the fill value.
	for _, v := range out.AsFloat32() {
		assert.Equal(t, float32(3), v)
	}
}

func TestTakeLooks_PadIntHasNoSentinel(t *testing.T) {
	a, err := array.FromSlice([]int32{1, 2, 3, 4, 5, 6}, array.Shape{2, 3})
	require.NoError(t, err)

	_, err = TakeLooks(a, 2, 2, WithEdgeStrategy(Pad))
	assert.Error(t, err)
}

func TestTakeLooks_Stack3D(t *testing.T) {
	a := float32Raster(t, []float32{
		// layer 0
		1, 1, 2, 2,
		1, 1, 2, 2,
		// layer 1
		3, 3, 4, 4,
		3, 3, 4, 4,
	}, array.Shape{2, 2, 4})

	out, err := TakeLooks(a, 2, 2)
	require.NoError(t, err)
	require.True(t, out.Shape().Equal(array.Shape{2, 1, 2}), "shape = %v", out.Shape())
	assert.Equal(t, []float32{4, 8, 12, 16}, out.AsFloat32())
}

// TestTakeLooks_Stack4D checks that stacks beyond 3D are peeled one leading
// axis at a time, aggregating only the trailing two dimensions.
func TestTakeLooks_Stack4D(t *testing.T) {
	a := float32Raster(t, []float32{
		1, 1, 2, 2,
		3, 3, 4, 4,
		5, 5, 6, 6,
		7, 7, 8, 8,
	}, array.Shape{2, 2, 2, 2})

	out, err := TakeLooks(a, 2, 2)
	require.NoError(t, err)
	require.True(t, out.Shape().Equal(array.Shape{2, 2, 1, 1}), "shape = %v", out.Shape())
	assert.Equal(t, []float32{6, 14, 22, 30}, out.AsFloat32())
}

func TestTakeLooks_InvalidLooks(t *testing.T) {
	a := array.Full(array.Shape{4, 4}, float32(1))

	_, err := TakeLooks(a, 0, 2)
	require.Error(t, err)
	var cfgErr *array.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestTakeLooks_TooFewDims(t *testing.T) {
	a, err := array.FromSlice([]float32{1, 2, 3, 4}, array.Shape{4})
	require.NoError(t, err)

	_, err = TakeLooks(a, 2, 2)
	assert.Error(t, err)
}

func TestTakeLooks_NanBlocks(t *testing.T) {
	nan := float32(math.NaN())
	a := float32Raster(t, []float32{
		1, 2, nan, nan,
		3, 4, nan, nan,
	}, array.Shape{2, 4})

	out, err := TakeLooks(a, 2, 2)
	require.NoError(t, err)
	got := out.AsFloat32()
	assert.Equal(t, float32(10), got[0])
	// All-missing block sums to zero, silently.
	assert.Equal(t, float32(0), got[1])

	out, err = TakeLooks(a, 2, 2, WithReduction(array.NanMean))
	require.NoError(t, err)
	got = out.AsFloat32()
	assert.Equal(t, float32(2.5), got[0])
	assert.True(t, math.IsNaN(float64(got[1])), "all-missing nanmean = %v, want NaN", got[1])
}

func TestParseEdgeStrategy(t *testing.T) {
	es, err := ParseEdgeStrategy("cutoff")
	require.NoError(t, err)
	assert.Equal(t, Cutoff, es)

	es, err = ParseEdgeStrategy("pad")
	require.NoError(t, err)
	assert.Equal(t, Pad, es)

	_, err = ParseEdgeStrategy("wrap")
	var cfgErr *array.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "wrap", cfgErr.Value)
}

func TestHalfWindowToFull(t *testing.T) {
	r, c := HalfWindowToFull(2, 3)
	assert.Equal(t, 5, r)
	assert.Equal(t, 7, c)

	r, c = HalfWindowToFull(0, 0)
	assert.Equal(t, 1, r)
	assert.Equal(t, 1, c)
}
