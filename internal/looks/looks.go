// Package looks implements multi-resolution raster resampling: downsampling
// by block aggregation ("taking looks") and the inverse nearest-neighbor
// upsampling. Both dispatch transparently across the host and accelerator
// backends based on the array's own device tag.
package looks

import (
	"fmt"

	"github.com/sarkit/multilook/internal/array"
)

// EdgeStrategy controls how dimensions that are not exact multiples of the
// look factors are handled during downsampling.
type EdgeStrategy int

const (
	// Cutoff drops trailing rows/columns that do not fill a complete block.
	// Lossy by design; matches the legacy multilooking convention.
	Cutoff EdgeStrategy = iota
	// Pad extends trailing edges with NaN (false for bool arrays) so every
	// block is complete. NaN-ignoring reductions then see only real cells.
	Pad
)

// String returns the canonical name of the strategy.
func (es EdgeStrategy) String() string {
	switch es {
	case Cutoff:
		return "cutoff"
	case Pad:
		return "pad"
	default:
		return "unknown"
	}
}

// ParseEdgeStrategy resolves an edge strategy name.
// Unknown names yield a *array.ConfigError.
func ParseEdgeStrategy(name string) (EdgeStrategy, error) {
	switch name {
	case "cutoff":
		return Cutoff, nil
	case "pad":
		return Pad, nil
	default:
		return 0, &array.ConfigError{Setting: "edge strategy", Value: name}
	}
}

type config struct {
	reduction array.ReduceOp
	edge      EdgeStrategy
	looks     [2]int // upsample only; 0,0 = infer from shapes
}

// Option configures TakeLooks and UpsampleNearest.
type Option func(*config)

// WithReduction selects the per-block aggregation. Default is NanSum.
func WithReduction(op array.ReduceOp) Option {
	return func(c *config) { c.reduction = op }
}

// WithEdgeStrategy selects the edge handling policy. Default is Cutoff.
func WithEdgeStrategy(es EdgeStrategy) Option {
	return func(c *config) { c.edge = es }
}

// WithLooks pins the look factors for UpsampleNearest instead of inferring
// them from the shapes.
func WithLooks(rowLooks, colLooks int) Option {
	return func(c *config) { c.looks = [2]int{rowLooks, colLooks} }
}

// TakeLooks downsamples an array by aggregating blocks of
// (rowLooks, colLooks) pixels.
//
// Identity factors (1, 1) return the input array itself, not a copy. A stack
// with three or more dimensions is processed layer by layer along the leading
// axis and restacked; only the trailing two dimensions are aggregated.
// The returned array lives on the same device as the input.
//
// The result shape is (rows/rowLooks, cols/colLooks) under Cutoff and
// (ceil(rows/rowLooks), ceil(cols/colLooks)) under Pad.
func TakeLooks(a *array.Array, rowLooks, colLooks int, opts ...Option) (*array.Array, error) {
	cfg := config{reduction: array.NanSum, edge: Cutoff}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.edge != Cutoff && cfg.edge != Pad {
		return nil, &array.ConfigError{Setting: "edge strategy", Value: cfg.edge.String()}
	}
	if rowLooks < 1 || colLooks < 1 {
		return nil, &array.ConfigError{Setting: "looks", Value: fmt.Sprintf("(%d, %d)", rowLooks, colLooks)}
	}

	if rowLooks == 1 && colLooks == 1 {
		return a, nil
	}

	if a.NDim() < 2 {
		return nil, fmt.Errorf("take looks: array must have at least 2 dimensions, got %d", a.NDim())
	}
	if a.NDim() >= 3 {
		return takeLooksStack(a, rowLooks, colLooks, opts)
	}

	be := resolveBackend(a)

	a, err := makeDimsMultiples(a, rowLooks, colLooks, cfg.edge)
	if err != nil {
		return nil, err
	}

	rows, cols := a.Shape().Rows(), a.Shape().Cols()
	newRows := rows / rowLooks
	newCols := cols / colLooks

	blocks := be.Reshape(a, array.Shape{newRows, rowLooks, newCols, colLooks})
	return be.Reduce(blocks, cfg.reduction, 3, 1), nil
}

// takeLooksStack applies TakeLooks to each leading-axis layer and restacks
// the results in order.
func takeLooksStack(a *array.Array, rowLooks, colLooks int, opts []Option) (*array.Array, error) {
	layers := a.Shape()[0]
	looked := make([]*array.Array, layers)
	for i := 0; i < layers; i++ {
		layer := a.Layer(i)
		out, err := TakeLooks(layer, rowLooks, colLooks, opts...)
		layer.Release()
		if err != nil {
			return nil, err
		}
		looked[i] = out
	}

	first := looked[0]
	stackedShape := append(array.Shape{layers}, first.Shape()...)
	stacked, err := array.New(stackedShape, first.DType(), first.Device())
	if err != nil {
		return nil, fmt.Errorf("take looks: %w", err)
	}
	layerBytes := first.ByteSize()
	dst := stacked.Data()
	for i, l := range looked {
		copy(dst[i*layerBytes:(i+1)*layerBytes], l.Data())
	}
	return stacked, nil
}

// HalfWindowToFull converts a half window size to a full window size.
func HalfWindowToFull(halfRow, halfCol int) (int, int) {
	return 2*halfRow + 1, 2*halfCol + 1
}
