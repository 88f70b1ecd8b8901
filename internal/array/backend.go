package array

import "fmt"

// Backend is the capability interface that compute backends implement.
// It exposes only the operations the resampling core needs; the selector in
// the looks package picks an implementation from an array's device tag, so
// the same call sites serve host and accelerator arrays.
//
// Implementations:
//   - internal/backend/cpu: pure Go host backend
//   - internal/backend/webgpu: WGSL compute shaders via go-webgpu
type Backend interface {
	// Zeros allocates a zero-filled array on this backend's device.
	Zeros(shape Shape, dtype DataType) *Array

	// Reshape returns an array with the same data but a different shape.
	// The element count must match.
	Reshape(a *Array, shape Shape) *Array

	// Repeat repeats every element n times along the given axis
	// (nearest-neighbor expansion, not tiling). Negative axes count
	// from the end.
	Repeat(a *Array, n, axis int) *Array

	// Reduce aggregates over the given axes simultaneously, removing them
	// from the shape. Axes support negative indexing.
	Reduce(a *Array, op ReduceOp, axes ...int) *Array

	// Metadata
	Name() string
	Device() Device
}

// ReduceOp identifies a block aggregation function. The set is closed:
// name-based lookup goes through ParseReduceOp, which rejects unknown names
// up front instead of failing at reduction time.
type ReduceOp int

// Supported reductions. The Nan variants ignore NaN cells, which is what
// makes pad-mode edge handling work: padded cells are NaN and drop out.
const (
	NanSum ReduceOp = iota
	Sum
	NanMean
	Mean
	NanMax
	Max
)

// String returns the canonical name of the reduction.
func (op ReduceOp) String() string {
	switch op {
	case NanSum:
		return "nansum"
	case Sum:
		return "sum"
	case NanMean:
		return "nanmean"
	case Mean:
		return "mean"
	case NanMax:
		return "nanmax"
	case Max:
		return "max"
	default:
		return "unknown"
	}
}

// IgnoresNan reports whether the reduction skips NaN cells.
func (op ReduceOp) IgnoresNan() bool {
	return op == NanSum || op == NanMean || op == NanMax
}

// ParseReduceOp resolves a reduction name to a ReduceOp.
// Unknown names yield a *ConfigError.
func ParseReduceOp(name string) (ReduceOp, error) {
	switch name {
	case "nansum":
		return NanSum, nil
	case "sum":
		return Sum, nil
	case "nanmean":
		return NanMean, nil
	case "mean":
		return Mean, nil
	case "nanmax":
		return NanMax, nil
	case "max":
		return Max, nil
	default:
		return 0, &ConfigError{Setting: "reduction", Value: name}
	}
}

// ConfigError reports an invalid configuration value, such as an unknown
// edge strategy or reduction name. Configuration errors fail fast; they are
// never retried or degraded.
type ConfigError struct {
	Setting string
	Value   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Setting, e.Value)
}

func errShapeMismatch(n int, shape Shape) error {
	return fmt.Errorf("data length %d does not match shape %v (%d elements)", n, shape, shape.NumElements())
}
