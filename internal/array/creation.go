package array

// Zeros creates a zero-filled array on the given device.
func Zeros(shape Shape, dtype DataType, device Device) *Array {
	a, err := New(shape, dtype, device)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	// Data is already zero-initialized by make()
	return a
}

// FromSlice creates a CPU array from a Go slice.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	a, err := array.FromSlice(data, array.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*Array, error) {
	var dummy T
	dtype := dataTypeOf(dummy)

	a, err := New(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	if len(data) != a.NumElements() {
		a.Release()
		return nil, errShapeMismatch(len(data), shape)
	}
	copy(typedData[T](a), data)
	return a, nil
}

// Full creates a CPU array filled with a specific value.
//
// Example:
//
//	ones := array.Full(Shape{4, 4}, float32(1))
func Full[T DType](shape Shape, value T) *Array {
	var dummy T
	dtype := dataTypeOf(dummy)

	a, err := New(shape, dtype, CPU)
	if err != nil {
		panic(err)
	}
	data := typedData[T](a)
	for i := range data {
		data[i] = value
	}
	return a
}

// typedData returns the array data as a []T. The caller guarantees T matches
// the array's dtype (creation functions infer both from the same type).
func typedData[T DType](a *Array) []T {
	switch any(*new(T)).(type) {
	case float32:
		return any(a.AsFloat32()).([]T)
	case float64:
		return any(a.AsFloat64()).([]T)
	case int32:
		return any(a.AsInt32()).([]T)
	case int64:
		return any(a.AsInt64()).([]T)
	case uint8:
		return any(a.AsUint8()).([]T)
	case bool:
		return any(a.AsBool()).([]T)
	case complex64:
		return any(a.AsComplex64()).([]T)
	default:
		panic("unsupported type")
	}
}
