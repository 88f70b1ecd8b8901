package cpu

import (
	"fmt"
	"math"
	"sort"

	"github.com/sarkit/multilook/internal/array"
	"github.com/sarkit/multilook/internal/parallel"
)

// Reduce aggregates over the given axes simultaneously and removes them from
// the shape. This is the per-block aggregation behind TakeLooks: the 4D
// (newRows, rowLooks, newCols, colLooks) regrouping reduces over axes (3, 1).
//
// The Nan variants skip NaN cells. An all-NaN block reduces to 0 under
// NanSum and to NaN under NanMean/NanMax; both are expected outcomes, not
// errors, and are produced silently.
func (cpu *Backend) Reduce(a *array.Array, op array.ReduceOp, axes ...int) *array.Array {
	shape := a.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		panic("reduce: at least one axis required")
	}
	norm := make([]int, len(axes))
	for i, ax := range axes {
		if ax < 0 {
			ax = ndim + ax
		}
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("reduce: axis %d out of range for %dD array", axes[i], ndim))
		}
		norm[i] = ax
	}
	sort.Ints(norm)
	for i := 1; i < len(norm); i++ {
		if norm[i] == norm[i-1] {
			panic(fmt.Sprintf("reduce: duplicate axis %d", norm[i]))
		}
	}

	reduced := make([]bool, ndim)
	for _, ax := range norm {
		reduced[ax] = true
	}

	inStrides := shape.ComputeStrides()

	// Split dims into kept and reduced, preserving order.
	var keptDims, keptStrides, redDims, redStrides []int
	outShape := make(array.Shape, 0, ndim-len(norm))
	for d := 0; d < ndim; d++ {
		if reduced[d] {
			redDims = append(redDims, shape[d])
			redStrides = append(redStrides, inStrides[d])
		} else {
			keptDims = append(keptDims, shape[d])
			keptStrides = append(keptStrides, inStrides[d])
			outShape = append(outShape, shape[d])
		}
	}

	blockSize := 1
	for _, d := range redDims {
		blockSize *= d
	}

	// Precompute the input offset of every cell inside one block.
	blockOffsets := make([]int, blockSize)
	for i := range blockOffsets {
		off, rem := 0, i
		for d := len(redDims) - 1; d >= 0; d-- {
			off += (rem % redDims[d]) * redStrides[d]
			rem /= redDims[d]
		}
		blockOffsets[i] = off
	}

	// Sums of narrow types accumulate in a wider output, the numpy
	// promotion rule; a uint8 mask summed in uint8 would wrap mod 256.
	outDType := a.DType()
	if op == array.Sum || op == array.NanSum {
		switch a.DType() {
		case array.Bool, array.Uint8:
			outDType = array.Int32
		case array.Int32:
			outDType = array.Int64
		}
	}

	result, err := array.New(outShape, outDType, a.Device())
	if err != nil {
		panic(fmt.Sprintf("reduce: %v", err))
	}

	numOut := result.NumElements()
	baseOf := func(outIdx int) int {
		base, rem := 0, outIdx
		for d := len(keptDims) - 1; d >= 0; d-- {
			base += (rem % keptDims[d]) * keptStrides[d]
			rem /= keptDims[d]
		}
		return base
	}

	switch a.DType() {
	case array.Float32:
		reduceFloat(a.AsFloat32(), result.AsFloat32(), op, numOut, baseOf, blockOffsets, cpu.par)
	case array.Float64:
		reduceFloat(a.AsFloat64(), result.AsFloat64(), op, numOut, baseOf, blockOffsets, cpu.par)
	case array.Int32:
		switch op {
		case array.Sum, array.NanSum:
			reduceIntSum(a.AsInt32(), result.AsInt64(), numOut, baseOf, blockOffsets, cpu.par)
		case array.Max, array.NanMax:
			reduceIntMax(a.AsInt32(), result.AsInt32(), numOut, baseOf, blockOffsets, cpu.par)
		default:
			panic(fmt.Sprintf("reduce: op %s unsupported for integer dtype", op))
		}
	case array.Int64:
		switch op {
		case array.Sum, array.NanSum:
			reduceIntSum(a.AsInt64(), result.AsInt64(), numOut, baseOf, blockOffsets, cpu.par)
		case array.Max, array.NanMax:
			reduceIntMax(a.AsInt64(), result.AsInt64(), numOut, baseOf, blockOffsets, cpu.par)
		default:
			panic(fmt.Sprintf("reduce: op %s unsupported for integer dtype", op))
		}
	case array.Uint8:
		switch op {
		case array.Sum, array.NanSum:
			reduceIntSum(a.AsUint8(), result.AsInt32(), numOut, baseOf, blockOffsets, cpu.par)
		case array.Max, array.NanMax:
			reduceIntMax(a.AsUint8(), result.AsUint8(), numOut, baseOf, blockOffsets, cpu.par)
		default:
			panic(fmt.Sprintf("reduce: op %s unsupported for integer dtype", op))
		}
	case array.Bool:
		reduceBool(a.AsBool(), result, op, numOut, baseOf, blockOffsets, cpu.par)
	case array.Complex64:
		reduceComplex(a.AsComplex64(), result.AsComplex64(), op, numOut, baseOf, blockOffsets, cpu.par)
	default:
		panic(fmt.Sprintf("reduce: unsupported dtype %s", a.DType()))
	}

	return result
}

// reduceFloat performs one block reduction per output cell.
func reduceFloat[T float32 | float64](data, out []T, op array.ReduceOp, numOut int, baseOf func(int) int, blockOffsets []int, cfg parallel.Config) {
	parallel.For(numOut, func(i int) {
		base := baseOf(i)
		switch op {
		case array.Sum, array.Mean:
			var sum T
			for _, off := range blockOffsets {
				sum += data[base+off]
			}
			if op == array.Mean {
				sum /= T(len(blockOffsets))
			}
			out[i] = sum
		case array.NanSum, array.NanMean:
			var sum T
			count := 0
			for _, off := range blockOffsets {
				v := data[base+off]
				if !math.IsNaN(float64(v)) {
					sum += v
					count++
				}
			}
			if op == array.NanMean {
				if count == 0 {
					out[i] = T(math.NaN()) // all-missing block
					return
				}
				sum /= T(count)
			}
			out[i] = sum
		case array.Max:
			best := data[base+blockOffsets[0]]
			for _, off := range blockOffsets[1:] {
				v := data[base+off]
				if math.IsNaN(float64(v)) {
					best = v // NaN propagates, as with a plain max
					break
				}
				if v > best {
					best = v
				}
			}
			out[i] = best
		case array.NanMax:
			best := T(math.Inf(-1))
			seen := false
			for _, off := range blockOffsets {
				v := data[base+off]
				if math.IsNaN(float64(v)) {
					continue
				}
				seen = true
				if v > best {
					best = v
				}
			}
			if !seen {
				best = T(math.NaN())
			}
			out[i] = best
		default:
			panic(fmt.Sprintf("reduce: unsupported op %s", op))
		}
	}, cfg)
}

// reduceIntSum sums integer blocks into the wider accumulator type U.
// There is no NaN for integers, so Sum and NanSum are the same reduction.
func reduceIntSum[T int32 | int64 | uint8, U int32 | int64](data []T, out []U, numOut int, baseOf func(int) int, blockOffsets []int, cfg parallel.Config) {
	parallel.For(numOut, func(i int) {
		base := baseOf(i)
		var sum U
		for _, off := range blockOffsets {
			sum += U(data[base+off])
		}
		out[i] = sum
	}, cfg)
}

// reduceIntMax takes the block maximum in the input's own type.
func reduceIntMax[T int32 | int64 | uint8](data, out []T, numOut int, baseOf func(int) int, blockOffsets []int, cfg parallel.Config) {
	parallel.For(numOut, func(i int) {
		base := baseOf(i)
		best := data[base+blockOffsets[0]]
		for _, off := range blockOffsets[1:] {
			if v := data[base+off]; v > best {
				best = v
			}
		}
		out[i] = best
	}, cfg)
}

// reduceBool treats sums as counts (Int32 output) and max as logical OR.
func reduceBool(data []bool, result *array.Array, op array.ReduceOp, numOut int, baseOf func(int) int, blockOffsets []int, cfg parallel.Config) {
	switch op {
	case array.Sum, array.NanSum:
		out := result.AsInt32()
		parallel.For(numOut, func(i int) {
			base := baseOf(i)
			var count int32
			for _, off := range blockOffsets {
				if data[base+off] {
					count++
				}
			}
			out[i] = count
		}, cfg)
	case array.Max, array.NanMax:
		out := result.AsBool()
		parallel.For(numOut, func(i int) {
			base := baseOf(i)
			hit := false
			for _, off := range blockOffsets {
				if data[base+off] {
					hit = true
					break
				}
			}
			out[i] = hit
		}, cfg)
	default:
		panic(fmt.Sprintf("reduce: op %s unsupported for bool dtype", op))
	}
}

// reduceComplex supports the sum and mean families. A cell is missing when
// either component is NaN.
func reduceComplex(data, out []complex64, op array.ReduceOp, numOut int, baseOf func(int) int, blockOffsets []int, cfg parallel.Config) {
	switch op {
	case array.Sum, array.Mean, array.NanSum, array.NanMean:
	default:
		panic(fmt.Sprintf("reduce: op %s unsupported for complex64 dtype", op))
	}
	isNaN := func(v complex64) bool {
		return math.IsNaN(float64(real(v))) || math.IsNaN(float64(imag(v)))
	}
	parallel.For(numOut, func(i int) {
		base := baseOf(i)
		var sum complex64
		count := 0
		for _, off := range blockOffsets {
			v := data[base+off]
			if op.IgnoresNan() && isNaN(v) {
				continue
			}
			sum += v
			count++
		}
		switch op {
		case array.Mean:
			sum /= complex(float32(len(blockOffsets)), 0)
		case array.NanMean:
			if count == 0 {
				nan := float32(math.NaN())
				out[i] = complex(nan, nan)
				return
			}
			sum /= complex(float32(count), 0)
		}
		out[i] = sum
	}, cfg)
}
