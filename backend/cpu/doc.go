// Copyright 2026 The multilook Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go host backend for raster resampling.
//
// # Overview
//
// The host backend implements the full array.Backend surface:
//   - Zeros, Reshape, Repeat
//   - Reduce with the sum/mean/max families, plain and nan-aware
//   - Every element type, including complex64 for SLC rasters
//
// # Basic Usage
//
//	import (
//	    "github.com/sarkit/multilook/array"
//	    "github.com/sarkit/multilook/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    z := backend.Zeros(array.Shape{128, 128}, array.Float32)
//	    _ = z
//	}
//
// Most callers never construct a backend directly: the looks package
// resolves one from the array's device tag.
//
// # Thread Safety
//
// The host backend is safe for concurrent use. Reductions parallelize over
// disjoint output cells and share no mutable state.
package cpu
