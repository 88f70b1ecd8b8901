package array

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Device represents where an array's data is serviced.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// arrayBuffer is a reference-counted shared buffer. It enables cheap views
// (trailing-row crops, identity fast paths) without copying pixel data.
type arrayBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

func newArrayBuffer(size int) *arrayBuffer {
	buf := &arrayBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

func (ab *arrayBuffer) addRef() {
	ab.refCount.Add(1)
}

func (ab *arrayBuffer) release() {
	if ab.refCount.Add(-1) == 0 {
		ab.mu.Lock()
		defer ab.mu.Unlock()
		ab.data = nil
	}
}

// Array is an N-dimensional raster array: a shared byte buffer plus shape,
// element type, and the device that owns it. 2D arrays are single images;
// 3D arrays are stacks of 2D layers along the leading axis.
type Array struct {
	buffer *arrayBuffer
	shape  Shape
	stride []int
	dtype  DataType
	device Device
	offset int
}

// New creates a new Array with the given shape and type.
// Memory is allocated zero-initialized.
func New(shape Shape, dtype DataType, device Device) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	numElements := shape.NumElements()
	byteSize := numElements * dtype.Size()

	return &Array{
		buffer: newArrayBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
		offset: 0,
	}, nil
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Strides returns the array's memory strides.
func (a *Array) Strides() []int {
	return a.stride
}

// DType returns the array's element type.
func (a *Array) DType() DataType {
	return a.dtype
}

// Device returns the array's compute device.
func (a *Array) Device() Device {
	return a.device
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return a.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (a *Array) ByteSize() int {
	return a.NumElements() * a.dtype.Size()
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int {
	return len(a.shape)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (a *Array) Data() []byte {
	return a.buffer.data[a.offset : a.offset+a.ByteSize()]
}

// AsFloat32 interprets the data as []float32.
// Panics if the array's dtype is not Float32.
func (a *Array) AsFloat32() []float32 {
	if a.dtype != Float32 {
		panic(fmt.Sprintf("array dtype is %s, not float32", a.dtype))
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the array's dtype is not Float64.
func (a *Array) AsFloat64() []float64 {
	if a.dtype != Float64 {
		panic(fmt.Sprintf("array dtype is %s, not float64", a.dtype))
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the array's dtype is not Int32.
func (a *Array) AsInt32() []int32 {
	if a.dtype != Int32 {
		panic(fmt.Sprintf("array dtype is %s, not int32", a.dtype))
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the array's dtype is not Int64.
func (a *Array) AsInt64() []int64 {
	if a.dtype != Int64 {
		panic(fmt.Sprintf("array dtype is %s, not int64", a.dtype))
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*int64)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the array's dtype is not Uint8.
func (a *Array) AsUint8() []uint8 {
	if a.dtype != Uint8 {
		panic(fmt.Sprintf("array dtype is %s, not uint8", a.dtype))
	}
	return a.buffer.data[a.offset : a.offset+a.NumElements()]
}

// AsBool interprets the data as []bool.
// Panics if the array's dtype is not Bool.
func (a *Array) AsBool() []bool {
	if a.dtype != Bool {
		panic(fmt.Sprintf("array dtype is %s, not bool", a.dtype))
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*bool)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsComplex64 interprets the data as []complex64.
// Panics if the array's dtype is not Complex64.
func (a *Array) AsComplex64() []complex64 {
	if a.dtype != Complex64 {
		panic(fmt.Sprintf("array dtype is %s, not complex64", a.dtype))
	}
	data := a.buffer.data[a.offset:]
	return unsafe.Slice((*complex64)(unsafe.Pointer(&data[0])), a.NumElements())
}

// Clone creates a shallow copy of the Array sharing the same buffer with
// reference counting. Callers mutating a clone's data mutate the original.
func (a *Array) Clone() *Array {
	a.buffer.addRef()
	return &Array{
		buffer: a.buffer,
		shape:  a.shape.Clone(),
		stride: append([]int(nil), a.stride...),
		dtype:  a.dtype,
		device: a.device,
		offset: a.offset,
	}
}

// Slice0 returns a view of the first n entries along the leading axis,
// sharing the underlying buffer (no copy). This is the cutoff-mode
// trailing-row crop: contiguous in row-major layout.
func (a *Array) Slice0(n int) *Array {
	if n <= 0 || n > a.shape[0] {
		panic(fmt.Sprintf("slice0: n %d out of range for leading dimension %d", n, a.shape[0]))
	}
	v := a.Clone()
	v.shape[0] = n
	return v
}

// Layer returns a view of entry i along the leading axis, with that axis
// dropped: layer i of a 3D stack is 2D, of a 4D stack 3D, and so on. The
// view shares the underlying buffer. Panics if the array has fewer than 3
// dimensions.
func (a *Array) Layer(i int) *Array {
	if len(a.shape) < 3 {
		panic(fmt.Sprintf("layer: array is %dD, need at least 3D", len(a.shape)))
	}
	if i < 0 || i >= a.shape[0] {
		panic(fmt.Sprintf("layer: index %d out of range for stack of %d", i, a.shape[0]))
	}
	layerShape := a.shape[1:].Clone()
	a.buffer.addRef()
	return &Array{
		buffer: a.buffer,
		shape:  layerShape,
		stride: layerShape.ComputeStrides(),
		dtype:  a.dtype,
		device: a.device,
		offset: a.offset + i*layerShape.NumElements()*a.dtype.Size(),
	}
}

// Release decrements the reference count and deallocates if it reaches 0.
func (a *Array) Release() {
	a.buffer.release()
}
