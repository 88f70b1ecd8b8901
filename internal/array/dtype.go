// Package array provides the core N-dimensional array types used by the
// multilook resampling pipeline.
package array

// DType is a constraint for supported array element types.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool | ~complex64
}

// DataType represents runtime type information for arrays.
type DataType int

// Supported element types. Complex64 covers single-look complex (SLC)
// rasters; Int64 is the wide accumulator integer sums promote to.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
	Complex64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64, Complex64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	case Complex64:
		return "complex64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a real floating point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// dataTypeOf infers DataType from a generic type T.
func dataTypeOf[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	case complex64:
		return Complex64
	default:
		panic("unsupported type")
	}
}
