package looks

import (
	"github.com/sarkit/multilook/internal/array"
)

// UpsampleNearest reconstructs an approximate full-resolution array from a
// downsampled one by repeating blocks of (rowLooks, colLooks), then cropping
// or zero-padding to outputShape's trailing two dimensions. A 3D stack keeps
// its leading axis unchanged.
//
// When the look factors are not pinned with WithLooks they are inferred as
// outputRows/inputRows and outputCols/inputCols by integer division. That
// inference under-counts when the matching downsample used the Cutoff edge
// strategy on a non-multiple dimension: the true factor cannot be recovered
// from the shapes alone, and the uncovered trailing edge stays zero-filled.
// A target smaller than the input infers a factor of zero and yields an
// all-zero output of the target shape.
//
// If the input's trailing dimensions already equal the target, the input
// array itself is returned.
func UpsampleNearest(a *array.Array, outputShape array.Shape, opts ...Option) *array.Array {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	inRows, inCols := a.Shape().Rows(), a.Shape().Cols()
	outRows, outCols := outputShape.Rows(), outputShape.Cols()
	if inRows == outRows && inCols == outCols {
		return a
	}

	rowLooks, colLooks := cfg.looks[0], cfg.looks[1]
	if rowLooks == 0 && colLooks == 0 {
		rowLooks = outRows / inRows
		colLooks = outCols / inCols
	}

	be := resolveBackend(a)

	outShape := array.Shape{outRows, outCols}
	if a.NDim() == 3 {
		outShape = array.Shape{a.Shape()[0], outRows, outCols}
	}

	// A target smaller than the input infers a zero factor: repeating zero
	// times leaves nothing to copy, so the result is the zero-filled output.
	if rowLooks < 1 || colLooks < 1 {
		return be.Zeros(outShape, a.DType())
	}

	up := be.Repeat(be.Repeat(a, rowLooks, -2), colLooks, -1)

	out := be.Zeros(outShape, a.DType())
	copyTopLeft(out, up)
	return out
}

// copyTopLeft copies the overlapping trailing-2D region of src into dst,
// aligned at the top-left corner, layer by layer. Rows or columns of dst
// beyond the overlap keep their zero fill; excess rows or columns of src
// are dropped.
func copyTopLeft(dst, src *array.Array) {
	layers := 1
	if dst.NDim() == 3 {
		layers = dst.Shape()[0]
	}
	dstRows, dstCols := dst.Shape().Rows(), dst.Shape().Cols()
	srcRows, srcCols := src.Shape().Rows(), src.Shape().Cols()

	rows := min(dstRows, srcRows)
	cols := min(dstCols, srcCols)

	size := dst.DType().Size()
	db := dst.Data()
	sb := src.Data()
	for l := 0; l < layers; l++ {
		dstBase := l * dstRows * dstCols
		srcBase := l * srcRows * srcCols
		for r := 0; r < rows; r++ {
			do := (dstBase + r*dstCols) * size
			so := (srcBase + r*srcCols) * size
			copy(db[do:do+cols*size], sb[so:so+cols*size])
		}
	}
}
