package looks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarkit/multilook/internal/array"
)

// TestUpsampleNearest_Identity checks that a matching target shape returns
// the input array itself.
func TestUpsampleNearest_Identity(t *testing.T) {
	a := float32Raster(t, []float32{1, 2, 3, 4}, array.Shape{2, 2})

	out := UpsampleNearest(a, array.Shape{2, 2})
	assert.Same(t, a, out)
}

func TestUpsampleNearest_ExactMultiple(t *testing.T) {
	a := float32Raster(t, []float32{1, 2, 3, 4}, array.Shape{2, 2})

	out := UpsampleNearest(a, array.Shape{4, 4})
	require.True(t, out.Shape().Equal(array.Shape{4, 4}), "shape = %v", out.Shape())
	assert.Equal(t, []float32{
		1, 1, 2, 2,
		1, 1, 2, 2,
		3, 3, 4, 4,
		3, 3, 4, 4,
	}, out.AsFloat32())
}

func TestUpsampleNearest_AsymmetricFactors(t *testing.T) {
	a := float32Raster(t, []float32{1, 2}, array.Shape{1, 2})

	out := UpsampleNearest(a, array.Shape{3, 4})
	require.True(t, out.Shape().Equal(array.Shape{3, 4}), "shape = %v", out.Shape())
	assert.Equal(t, []float32{
		1, 1, 2, 2,
		1, 1, 2, 2,
		1, 1, 2, 2,
	}, out.AsFloat32())
}

// TestUpsampleNearest_CropsExcess checks that pinned look factors larger
// than the target shape allows are cropped back to the target.
func TestUpsampleNearest_CropsExcess(t *testing.T) {
	a := float32Raster(t, []float32{1, 2, 3, 4}, array.Shape{2, 2})

	out := UpsampleNearest(a, array.Shape{3, 3}, WithLooks(2, 2))
	require.True(t, out.Shape().Equal(array.Shape{3, 3}), "shape = %v", out.Shape())
	assert.Equal(t, []float32{
		1, 1, 2,
		1, 1, 2,
		3, 3, 4,
	}, out.AsFloat32())
}

// TestUpsampleNearest_InferredLooksUndercount pins the known lossy case:
// after a cutoff downsample of a non-multiple dimension, the inferred
// factor under-counts and the trailing edge stays zero-filled.
func TestUpsampleNearest_InferredLooksUndercount(t *testing.T) {
	full := array.Full(array.Shape{5, 5}, float32(1))
	looked, err := TakeLooks(full, 2, 2)
	require.NoError(t, err)

	out := UpsampleNearest(looked, array.Shape{5, 5})
	require.True(t, out.Shape().Equal(array.Shape{5, 5}), "shape = %v", out.Shape())
	got := out.AsFloat32()
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			v := got[r*5+c]
			if r == 4 || c == 4 {
				assert.Equal(t, float32(0), v, "uncovered cell (%d,%d)", r, c)
			} else {
				assert.Equal(t, float32(4), v, "covered cell (%d,%d)", r, c)
			}
		}
	}
}

// TestUpsampleNearest_SmallerTargetIsZero checks that a target smaller than
// the input infers a zero factor and yields an all-zero output of the target
// shape, with nothing carried over from the input.
func TestUpsampleNearest_SmallerTargetIsZero(t *testing.T) {
	a := array.Full(array.Shape{4, 4}, float32(1))

	out := UpsampleNearest(a, array.Shape{2, 2})
	require.True(t, out.Shape().Equal(array.Shape{2, 2}), "shape = %v", out.Shape())
	for i, v := range out.AsFloat32() {
		assert.Equal(t, float32(0), v, "cell %d", i)
	}
}

func TestUpsampleNearest_Stack3D(t *testing.T) {
	a := float32Raster(t, []float32{1, 2}, array.Shape{2, 1, 1})

	out := UpsampleNearest(a, array.Shape{2, 2})
	require.True(t, out.Shape().Equal(array.Shape{2, 2, 2}), "shape = %v", out.Shape())
	assert.Equal(t, []float32{
		1, 1,
		1, 1,
		2, 2,
		2, 2,
	}, out.AsFloat32())
}

// TestTakeLooksUpsampleRoundTrip checks the multi-resolution round trip on
// exact-multiple shapes: a constant raster survives mean-look then upsample
// unchanged.
func TestTakeLooksUpsampleRoundTrip(t *testing.T) {
	a := array.Full(array.Shape{8, 8}, float32(7))

	looked, err := TakeLooks(a, 4, 2, WithReduction(array.NanMean))
	require.NoError(t, err)
	require.True(t, looked.Shape().Equal(array.Shape{2, 4}), "shape = %v", looked.Shape())

	out := UpsampleNearest(looked, array.Shape{8, 8})
	for i, v := range out.AsFloat32() {
		require.Equal(t, float32(7), v, "cell %d", i)
	}
}

func TestResolveBackendDefaultsToHost(t *testing.T) {
	a := float32Raster(t, []float32{1, 2, 3, 4}, array.Shape{2, 2})
	be := resolveBackend(a)
	assert.Equal(t, array.CPU, be.Device())
}

// TestResolveBackendRoutesNonFloat32ToHost checks that accelerator-tagged
// arrays of element types the accelerator kernels cannot handle are served
// by the host backend, whether or not an accelerator is present.
func TestResolveBackendRoutesNonFloat32ToHost(t *testing.T) {
	a, err := array.New(array.Shape{2, 2}, array.Float64, array.WebGPU)
	require.NoError(t, err)
	be := resolveBackend(a)
	assert.Equal(t, array.CPU, be.Device())
}
