package looks

import (
	"fmt"
	"math"

	"github.com/sarkit/multilook/internal/array"
)

// makeDimsMultiples crops or pads a 2D array so its dimensions are exact
// multiples of the look factors.
func makeDimsMultiples(a *array.Array, rowLooks, colLooks int, how EdgeStrategy) (*array.Array, error) {
	rows, cols := a.Shape().Rows(), a.Shape().Cols()
	rowCut := rows % rowLooks
	colCut := cols % colLooks

	switch how {
	case Cutoff:
		if rowCut != 0 {
			// Trailing rows are contiguous in row-major layout: a view, no copy.
			a = a.Slice0(rows - rowCut)
		}
		if colCut != 0 {
			a = cropCols(a, cols-colCut)
		}
		return a, nil
	case Pad:
		padRows := (rowLooks - rowCut) % rowLooks
		padCols := (colLooks - colCut) % colLooks
		if padRows == 0 && padCols == 0 {
			return a, nil
		}
		return padTrailing(a, padRows, padCols)
	default:
		return nil, &array.ConfigError{Setting: "edge strategy", Value: how.String()}
	}
}

// cropCols copies the first keep columns of every row.
func cropCols(a *array.Array, keep int) *array.Array {
	rows, cols := a.Shape().Rows(), a.Shape().Cols()
	out, err := array.New(array.Shape{rows, keep}, a.DType(), a.Device())
	if err != nil {
		panic(fmt.Sprintf("crop: %v", err))
	}

	size := a.DType().Size()
	src := a.Data()
	dst := out.Data()
	for r := 0; r < rows; r++ {
		copy(dst[r*keep*size:(r+1)*keep*size], src[r*cols*size:(r*cols+keep)*size])
	}
	return out
}

// padTrailing extends the trailing edges of a 2D array with the missing-value
// sentinel: NaN for floating types, false for bool. Padding must never be
// zero, or sum-style reductions would silently count padded cells as data.
func padTrailing(a *array.Array, padRows, padCols int) (*array.Array, error) {
	rows, cols := a.Shape().Rows(), a.Shape().Cols()
	outRows, outCols := rows+padRows, cols+padCols

	out, err := array.New(array.Shape{outRows, outCols}, a.DType(), a.Device())
	if err != nil {
		return nil, fmt.Errorf("pad: %w", err)
	}

	if err := fillSentinel(out); err != nil {
		return nil, err
	}

	size := a.DType().Size()
	src := a.Data()
	dst := out.Data()
	for r := 0; r < rows; r++ {
		copy(dst[r*outCols*size:(r*outCols+cols)*size], src[r*cols*size:(r+1)*cols*size])
	}
	return out, nil
}

// fillSentinel fills an array with the type's missing-value sentinel.
func fillSentinel(a *array.Array) error {
	switch a.DType() {
	case array.Float32:
		nan := float32(math.NaN())
		data := a.AsFloat32()
		for i := range data {
			data[i] = nan
		}
	case array.Float64:
		nan := math.NaN()
		data := a.AsFloat64()
		for i := range data {
			data[i] = nan
		}
	case array.Complex64:
		nan := float32(math.NaN())
		data := a.AsComplex64()
		for i := range data {
			data[i] = complex(nan, nan)
		}
	case array.Bool:
		// Zero-initialized buffer is already all false.
	default:
		return fmt.Errorf("pad: no missing-value sentinel for dtype %s", a.DType())
	}
	return nil
}
