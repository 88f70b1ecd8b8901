package rasterio

import (
	"fmt"

	"github.com/sarkit/multilook/internal/array"
)

// MaskConvention declares what a zero pixel means in a mask raster.
type MaskConvention int

const (
	// ZeroIsInvalid treats 0 as masked-out and nonzero as valid.
	ZeroIsInvalid MaskConvention = iota
	// ZeroIsValid treats 0 as valid and nonzero as masked-out.
	ZeroIsValid
)

// CombineMasks reads the first band of each input raster and writes their
// logical AND to outPath as a Byte raster where 1 marks pixels valid in
// every input. Conventions align with inputs; a short conventions slice
// falls back to ZeroIsInvalid for the remainder. The georeferencing of the
// first input carries over to the output.
func CombineMasks(outPath string, inputs []string, conventions []MaskConvention) error {
	if len(inputs) == 0 {
		return fmt.Errorf("combine masks: no input files")
	}

	var combined *array.Array
	var ref GeoRef
	for i, path := range inputs {
		m, err := ReadBand(path, 1)
		if err != nil {
			return fmt.Errorf("combine masks: %w", err)
		}
		conv := ZeroIsInvalid
		if i < len(conventions) {
			conv = conventions[i]
		}
		valid, err := toValidity(m, conv)
		if err != nil {
			return fmt.Errorf("combine masks: %s: %w", path, err)
		}

		if combined == nil {
			combined = valid
			ref, err = ReadGeoRef(path)
			if err != nil {
				return fmt.Errorf("combine masks: %w", err)
			}
			continue
		}
		if !combined.Shape().Equal(valid.Shape()) {
			return fmt.Errorf("combine masks: %s has shape %v, want %v", path, valid.Shape(), combined.Shape())
		}
		dst, src := combined.AsUint8(), valid.AsUint8()
		for j := range dst {
			dst[j] &= src[j]
		}
	}

	return WriteArray(outPath, combined, WriteOptions{GeoRef: &ref})
}

// toValidity normalizes a mask band to 1 = valid, 0 = invalid bytes.
func toValidity(m *array.Array, conv MaskConvention) (*array.Array, error) {
	out, err := array.New(m.Shape(), array.Uint8, array.CPU)
	if err != nil {
		return nil, err
	}
	dst := out.AsUint8()

	set := func(i int, nonzero bool) {
		valid := nonzero
		if conv == ZeroIsValid {
			valid = !nonzero
		}
		if valid {
			dst[i] = 1
		}
	}

	switch m.DType() {
	case array.Uint8:
		for i, v := range m.AsUint8() {
			set(i, v != 0)
		}
	case array.Int32:
		for i, v := range m.AsInt32() {
			set(i, v != 0)
		}
	case array.Float32:
		for i, v := range m.AsFloat32() {
			set(i, v != 0)
		}
	case array.Float64:
		for i, v := range m.AsFloat64() {
			set(i, v != 0)
		}
	default:
		return nil, &array.ConfigError{Setting: "mask dtype", Value: m.DType().String()}
	}
	return out, nil
}
