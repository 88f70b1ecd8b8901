// Package cpu implements the host compute backend.
package cpu

import (
	"fmt"

	"github.com/sarkit/multilook/internal/array"
	"github.com/sarkit/multilook/internal/parallel"
)

// Backend implements array operations on the host CPU.
type Backend struct {
	device array.Device
	par    parallel.Config
}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{
		device: array.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *Backend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *Backend) Device() array.Device {
	return cpu.device
}

// Zeros allocates a zero-filled array tagged with this backend's device.
func (cpu *Backend) Zeros(shape array.Shape, dtype array.DataType) *array.Array {
	a, err := array.New(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("zeros: %v", err))
	}
	return a
}

// Reshape returns an array with the same data but a different shape.
func (cpu *Backend) Reshape(a *array.Array, newShape array.Shape) *array.Array {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}
	if a.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			a.Shape(), newShape))
	}

	// TODO: return a stride view instead of copying once strided reductions land.
	result, err := array.New(newShape, a.DType(), a.Device())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	copy(result.Data(), a.Data())
	return result
}

// Repeat repeats every element n times along the given axis.
// Row-major layout makes this a block copy: each contiguous run covering one
// index of the axis is written n times, regardless of dtype.
//
// Example:
//
//	a := 2x2 [1 2; 3 4]
//	backend.Repeat(a, 2, -1)  // 2x4 [1 1 2 2; 3 3 4 4]
//	backend.Repeat(a, 2, -2)  // 4x2 [1 2; 1 2; 3 4; 3 4]
func (cpu *Backend) Repeat(a *array.Array, n, axis int) *array.Array {
	if n < 1 {
		panic(fmt.Sprintf("repeat: count must be >= 1, got %d", n))
	}

	shape := a.Shape()
	ndim := len(shape)
	if axis < 0 {
		axis = ndim + axis
	}
	if axis < 0 || axis >= ndim {
		panic(fmt.Sprintf("repeat: axis %d out of range for %dD array", axis, ndim))
	}

	outShape := shape.Clone()
	outShape[axis] *= n

	result, err := array.New(outShape, a.DType(), a.Device())
	if err != nil {
		panic(fmt.Sprintf("repeat: %v", err))
	}
	if n == 1 {
		copy(result.Data(), a.Data())
		return result
	}

	// Bytes per contiguous block covering one index of the repeat axis.
	block := a.DType().Size()
	for d := axis + 1; d < ndim; d++ {
		block *= shape[d]
	}
	outer := 1
	for d := 0; d < axis; d++ {
		outer *= shape[d]
	}

	src := a.Data()
	dst := result.Data()
	axisLen := shape[axis]
	for o := 0; o < outer; o++ {
		for j := 0; j < axisLen; j++ {
			from := (o*axisLen + j) * block
			chunk := src[from : from+block]
			base := (o*axisLen + j) * n * block
			for r := 0; r < n; r++ {
				copy(dst[base+r*block:base+(r+1)*block], chunk)
			}
		}
	}
	return result
}
