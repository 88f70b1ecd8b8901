// Copyright 2026 The multilook Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides the public API for the multi-resolution raster
// arrays used throughout the module.
//
// The package re-exports the core types:
//   - Array: an N-dimensional, row-major, dtype-tagged data block
//   - Shape, DataType, Device: core type definitions
//   - Backend: interface for device-specific compute implementations
//   - ReduceOp: the closed set of block reduction operations
//
// Example:
//
//	a, _ := array.FromSlice([]float32{1, 2, 3, 4}, array.Shape{2, 2})
//	looked, _ := looks.TakeLooks(a, 2, 2)
package array

import (
	"github.com/sarkit/multilook/internal/array"
)

// Type aliases for public API

// DType is a constraint for array element types.
// Supported types: float32, float64, int32, int64, uint8, bool, complex64.
type DType = array.DType

// DataType represents the underlying element type of an array.
type DataType = array.DataType

// Data type constants.
const (
	Float32   DataType = array.Float32
	Float64   DataType = array.Float64
	Int32     DataType = array.Int32
	Int64     DataType = array.Int64
	Uint8     DataType = array.Uint8
	Bool      DataType = array.Bool
	Complex64 DataType = array.Complex64
)

// Device represents the device an array is dispatched to.
type Device = array.Device

// Device constants.
const (
	CPU    Device = array.CPU
	WebGPU Device = array.WebGPU
)

// Shape represents the dimensions of an array.
// Example: Shape{3, 1024, 512} is a 3-layer stack of 1024×512 rasters.
type Shape = array.Shape

// Array is an N-dimensional data block with row-major layout.
type Array = array.Array

// Backend is the device-polymorphic compute interface consumed by the
// resampling core.
type Backend = array.Backend

// ReduceOp identifies a block reduction operation.
type ReduceOp = array.ReduceOp

// Reduction constants. The Nan-prefixed forms skip missing values.
const (
	NanSum  ReduceOp = array.NanSum
	Sum     ReduceOp = array.Sum
	NanMean ReduceOp = array.NanMean
	Mean    ReduceOp = array.Mean
	NanMax  ReduceOp = array.NanMax
	Max     ReduceOp = array.Max
)

// ParseReduceOp parses a reduction name ("nansum", "mean", ...) into a
// ReduceOp, returning a *ConfigError for unknown names.
func ParseReduceOp(name string) (ReduceOp, error) {
	return array.ParseReduceOp(name)
}

// ConfigError reports an invalid configuration value.
type ConfigError = array.ConfigError

// New allocates an uninitialized array on the given device.
func New(shape Shape, dtype DataType, device Device) (*Array, error) {
	return array.New(shape, dtype, device)
}

// Zeros allocates a zero-filled array on the given device.
func Zeros(shape Shape, dtype DataType, device Device) *Array {
	return array.Zeros(shape, dtype, device)
}

// FromSlice builds a host array from a Go slice. The slice length must
// match the shape's element count.
func FromSlice[T DType](data []T, shape Shape) (*Array, error) {
	return array.FromSlice(data, shape)
}

// Full builds a host array with every element set to value.
func Full[T DType](shape Shape, value T) *Array {
	return array.Full(shape, value)
}
