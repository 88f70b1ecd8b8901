package webgpu

import (
	"fmt"

	"github.com/sarkit/multilook/internal/array"
)

// Zeros allocates a zero-filled array tagged for the accelerator. The
// backing buffer stays host-resident; kernels upload on dispatch.
func (b *Backend) Zeros(shape array.Shape, dtype array.DataType) *array.Array {
	a, err := array.New(shape, dtype, array.WebGPU)
	if err != nil {
		panic(fmt.Sprintf("webgpu: zeros: %v", err))
	}
	return a
}

// Reshape returns an array with the same data but a different shape.
// Pure metadata plus a buffer copy; no kernel dispatch.
func (b *Backend) Reshape(a *array.Array, newShape array.Shape) *array.Array {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("webgpu: reshape: invalid shape: %v", err))
	}
	if a.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("webgpu: reshape: incompatible shapes: %v -> %v (different number of elements)",
			a.Shape(), newShape))
	}
	result, err := array.New(newShape, a.DType(), array.WebGPU)
	if err != nil {
		panic(fmt.Sprintf("webgpu: reshape: %v", err))
	}
	copy(result.Data(), a.Data())
	return result
}

// Repeat repeats every element n times along the given axis on the GPU.
// Float32 only, as with the other kernels.
func (b *Backend) Repeat(a *array.Array, n, axis int) *array.Array {
	if n < 1 {
		panic(fmt.Sprintf("webgpu: repeat: count must be >= 1, got %d", n))
	}
	shape := a.Shape()
	ndim := len(shape)
	if axis < 0 {
		axis = ndim + axis
	}
	if axis < 0 || axis >= ndim {
		panic(fmt.Sprintf("webgpu: repeat: axis %d out of range for %dD array", axis, ndim))
	}

	outer := 1
	for d := 0; d < axis; d++ {
		outer *= shape[d]
	}
	inner := 1
	for d := axis + 1; d < ndim; d++ {
		inner *= shape[d]
	}

	outShape := shape.Clone()
	outShape[axis] *= n

	params := packParams(uint32(outer), uint32(shape[axis]), uint32(inner), uint32(n))
	result, err := b.runKernel(a, outShape, "repeat", repeatShader, params, outShape.NumElements())
	if err != nil {
		panic("webgpu: repeat: " + err.Error())
	}
	return result
}

// Reduce aggregates over the intra-block axes of a 4D
// (newRows, rowLooks, newCols, colLooks) regrouping. Only this block form,
// axes (3, 1), is implemented on the accelerator; it is the one form the
// resampling core dispatches.
func (b *Backend) Reduce(a *array.Array, op array.ReduceOp, axes ...int) *array.Array {
	if a.NDim() != 4 || len(axes) != 2 || !isBlockAxes(axes) {
		panic(fmt.Sprintf("webgpu: reduce: only block reduction over axes (3, 1) of a 4D array is supported, got %dD axes %v",
			a.NDim(), axes))
	}

	shape := a.Shape()
	newRows, rowLooks, newCols, colLooks := shape[0], shape[1], shape[2], shape[3]

	var opCode uint32
	switch op {
	case array.NanSum:
		opCode = opNanSum
	case array.Sum:
		opCode = opSum
	case array.NanMean:
		opCode = opNanMean
	case array.Mean:
		opCode = opMean
	case array.NanMax:
		opCode = opNanMax
	case array.Max:
		opCode = opMax
	default:
		panic(fmt.Sprintf("webgpu: reduce: unsupported op %s", op))
	}

	params := packParams(uint32(newRows), uint32(rowLooks), uint32(newCols), uint32(colLooks), opCode)
	outShape := array.Shape{newRows, newCols}
	result, err := b.runKernel(a, outShape, "block_reduce", blockReduceShader, params, outShape.NumElements())
	if err != nil {
		panic("webgpu: reduce: " + err.Error())
	}
	return result
}

func isBlockAxes(axes []int) bool {
	a0, a1 := axes[0], axes[1]
	if a0 < 0 {
		a0 += 4
	}
	if a1 < 0 {
		a1 += 4
	}
	return (a0 == 1 && a1 == 3) || (a0 == 3 && a1 == 1)
}
