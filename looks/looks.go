// Copyright 2026 The multilook Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package looks provides the public API for multi-resolution resampling:
// block-aggregated downsampling ("taking looks") and nearest-neighbor
// upsampling.
//
// Operations run on the backend matching the array's device tag; arrays
// tagged for an unavailable accelerator fall back to the host backend
// silently.
//
// Example:
//
//	a, _ := array.FromSlice(pixels, array.Shape{1024, 512})
//	looked, err := looks.TakeLooks(a, 4, 2,
//	    looks.WithReduction(array.NanMean),
//	    looks.WithEdgeStrategy(looks.Pad))
package looks

import (
	"github.com/sarkit/multilook/internal/array"
	"github.com/sarkit/multilook/internal/looks"
)

// EdgeStrategy selects how trailing rows and columns that do not fill a
// whole look window are handled.
type EdgeStrategy = looks.EdgeStrategy

// Edge strategy constants.
const (
	// Cutoff drops the trailing remainder rows and columns.
	Cutoff EdgeStrategy = looks.Cutoff
	// Pad extends the array with missing-value fill to the next multiple.
	Pad EdgeStrategy = looks.Pad
)

// ParseEdgeStrategy parses "cutoff" or "pad" into an EdgeStrategy,
// returning a *array.ConfigError for anything else.
func ParseEdgeStrategy(name string) (EdgeStrategy, error) {
	return looks.ParseEdgeStrategy(name)
}

// Option configures TakeLooks and UpsampleNearest.
type Option = looks.Option

// WithReduction selects the block reduction. Default is array.NanSum.
func WithReduction(op array.ReduceOp) Option {
	return looks.WithReduction(op)
}

// WithEdgeStrategy selects the edge handling. Default is Cutoff.
func WithEdgeStrategy(es EdgeStrategy) Option {
	return looks.WithEdgeStrategy(es)
}

// WithLooks pins the look factors used by UpsampleNearest instead of
// inferring them from the shape ratio.
func WithLooks(rowLooks, colLooks int) Option {
	return looks.WithLooks(rowLooks, colLooks)
}

// TakeLooks downsamples the trailing two dimensions of a by block
// aggregation with the given look window. Arrays with three or more
// dimensions are processed layer by layer.
func TakeLooks(a *array.Array, rowLooks, colLooks int, opts ...Option) (*array.Array, error) {
	return looks.TakeLooks(a, rowLooks, colLooks, opts...)
}

// UpsampleNearest expands a to outputShape by nearest-neighbor repetition
// of the trailing two dimensions, cropping or missing-value padding where
// the shapes do not divide evenly.
func UpsampleNearest(a *array.Array, outputShape array.Shape, opts ...Option) *array.Array {
	return looks.UpsampleNearest(a, outputShape, opts...)
}

// HalfWindowToFull converts half-window sizes to full odd window sizes:
// (2, 3) becomes (5, 7).
func HalfWindowToFull(halfRow, halfCol int) (int, int) {
	return looks.HalfWindowToFull(halfRow, halfCol)
}

// AcceleratorAvailable reports whether the accelerator backend can be
// initialized on this system.
func AcceleratorAvailable() bool {
	return looks.AcceleratorAvailable()
}
