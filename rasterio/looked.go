package rasterio

import (
	"fmt"
	"math"

	"github.com/airbusgeo/godal"

	"github.com/sarkit/multilook/internal/array"
	"github.com/sarkit/multilook/internal/looks"
)

// WriteLooked reads one band of a raster, multilooks it, and writes the
// result next to the original georeferencing with the pixel size scaled by
// the look factors. NoData pixels are mapped to NaN before reduction so the
// nan-aware reductions skip them, and the output keeps the input's nodata
// marker for float bands.
func WriteLooked(outPath, inPath string, band, rowLooks, colLooks int, opts ...looks.Option) error {
	a, err := ReadBand(inPath, band)
	if err != nil {
		return fmt.Errorf("write looked: %w", err)
	}
	ref, err := ReadGeoRef(inPath)
	if err != nil {
		return fmt.Errorf("write looked: %w", err)
	}
	nodata, hasNodata := readNoData(inPath, band)
	if hasNodata {
		maskNoData(a, nodata)
	}

	looked, err := looks.TakeLooks(a, rowLooks, colLooks, opts...)
	if err != nil {
		return fmt.Errorf("write looked: %w", err)
	}

	lookedRef := scaleGeoRef(ref, rowLooks, colLooks)
	wopts := WriteOptions{GeoRef: &lookedRef}
	if hasNodata && looked.DType().IsFloat() {
		wopts.NoData = &nodata
	}
	if err := WriteArray(outPath, looked, wopts); err != nil {
		return fmt.Errorf("write looked: %w", err)
	}
	return nil
}

// scaleGeoRef grows the pixel footprint of a geotransform by the look
// factors. Column-direction terms scale by colLooks, row-direction terms by
// rowLooks; the origin is unchanged.
func scaleGeoRef(ref GeoRef, rowLooks, colLooks int) GeoRef {
	out := ref
	out.Transform[1] *= float64(colLooks)
	out.Transform[2] *= float64(rowLooks)
	out.Transform[4] *= float64(colLooks)
	out.Transform[5] *= float64(rowLooks)
	return out
}

func readNoData(path string, band int) (float64, bool) {
	registerDrivers()
	ds, err := godal.Open(path)
	if err != nil {
		return 0, false
	}
	defer ds.Close()
	bands := ds.Bands()
	if band < 1 || band > len(bands) {
		return 0, false
	}
	return bands[band-1].NoData()
}

// maskNoData replaces nodata pixels with NaN in place. Non-float bands are
// left alone; their reductions have no missing-value sentinel.
func maskNoData(a *array.Array, nodata float64) {
	switch a.DType() {
	case array.Float32:
		nd := float32(nodata)
		data := a.AsFloat32()
		for i, v := range data {
			if v == nd {
				data[i] = float32(math.NaN())
			}
		}
	case array.Float64:
		data := a.AsFloat64()
		for i, v := range data {
			if v == nodata {
				data[i] = math.NaN()
			}
		}
	}
}
