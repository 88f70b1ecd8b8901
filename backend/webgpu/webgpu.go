// Copyright 2026 The multilook Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the accelerator backend for raster resampling,
// built on WGSL compute shaders.
//
// WebGPU is a cross-platform compute API that works on:
//   - Windows (via D3D12)
//   - macOS (via Metal)
//   - Linux (via Vulkan)
//
// Example:
//
//	import (
//	    "github.com/sarkit/multilook/backend/webgpu"
//	    "github.com/sarkit/multilook/looks"
//	)
//
//	func main() {
//	    if !webgpu.IsAvailable() {
//	        return // looks falls back to the host backend on its own
//	    }
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//	}
package webgpu

import (
	"github.com/sarkit/multilook/array"
	internalwebgpu "github.com/sarkit/multilook/internal/backend/webgpu"
)

// Backend is the accelerator backend implementation. Kernels are float32
// only; the looks package routes other element types to the host backend.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements array.Backend.
var _ array.Backend = (*Backend)(nil)

// ProbeResult reports whether the accelerator can be initialized, and the
// reason when it cannot.
type ProbeResult = internalwebgpu.ProbeResult

// New creates an accelerator backend.
//
// Initializes the WebGPU instance, adapter, and device. Call Release when
// done to free GPU resources. Returns an error when no compatible adapter
// or device is present.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// Probe checks accelerator availability in three stages: the native
// library loads, an adapter answers, and a device can be created.
func Probe() ProbeResult {
	return internalwebgpu.Probe()
}

// IsAvailable reports whether the accelerator backend can be initialized.
// Useful for logging; the looks package already falls back to the host
// backend on its own.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
