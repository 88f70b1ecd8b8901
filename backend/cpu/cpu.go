// Copyright 2026 The multilook Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/sarkit/multilook/array"
	internalcpu "github.com/sarkit/multilook/internal/backend/cpu"
)

// Backend is the host backend implementation.
//
// It supports every element type and reduction the module defines, with
// chunked goroutine parallelism over output cells.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements array.Backend.
var _ array.Backend = (*Backend)(nil)

// New creates a host backend.
//
// Example:
//
//	backend := cpu.New()
//	z := backend.Zeros(array.Shape{2, 3}, array.Float32)
func New() *Backend {
	return internalcpu.New()
}
