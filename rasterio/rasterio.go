// Package rasterio reads and writes geospatial rasters through GDAL,
// converting between dataset bands and in-memory arrays. All access goes
// through godal; callers never touch GDAL handles directly.
package rasterio

import (
	"fmt"
	"sync"

	"github.com/airbusgeo/godal"

	"github.com/sarkit/multilook/internal/array"
)

var registerOnce sync.Once

// registerDrivers makes sure GDAL's format drivers are loaded. Safe to call
// from every entry point; the work happens once.
func registerDrivers() {
	registerOnce.Do(godal.RegisterAll)
}

// GeoRef carries the spatial referencing of a dataset: the projection as WKT
// and the six-element affine geotransform.
type GeoRef struct {
	Projection string
	Transform  [6]float64
}

// ReadGeoRef returns the projection and geotransform of a dataset.
func ReadGeoRef(path string) (GeoRef, error) {
	registerDrivers()
	ds, err := godal.Open(path)
	if err != nil {
		return GeoRef{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer ds.Close()
	return geoRefOf(ds)
}

func geoRefOf(ds *godal.Dataset) (GeoRef, error) {
	ref := GeoRef{Projection: ds.Projection()}
	gt, err := ds.GeoTransform()
	if err != nil {
		// Ungeoreferenced rasters are still usable; leave the identity
		// transform in place.
		return ref, nil
	}
	ref.Transform = gt
	return ref, nil
}

// ReadBand reads one band (1-based, as in GDAL) of a raster into a new
// host array. The element type follows the band's GDAL type via ArrayType.
func ReadBand(path string, band int) (*array.Array, error) {
	registerDrivers()
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer ds.Close()

	bands := ds.Bands()
	if band < 1 || band > len(bands) {
		return nil, fmt.Errorf("read %s: band %d out of range (dataset has %d)", path, band, len(bands))
	}
	bnd := bands[band-1]
	st := bnd.Structure()

	dtype, err := ArrayType(st.DataType)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	a, err := array.New(array.Shape{st.SizeY, st.SizeX}, dtype, array.CPU)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := readInto(bnd, a, st.SizeX, st.SizeY); err != nil {
		return nil, fmt.Errorf("read %s band %d: %w", path, band, err)
	}
	return a, nil
}

func readInto(bnd godal.Band, a *array.Array, w, h int) error {
	switch a.DType() {
	case array.Float32:
		return bnd.Read(0, 0, a.AsFloat32(), w, h)
	case array.Float64:
		return bnd.Read(0, 0, a.AsFloat64(), w, h)
	case array.Int32:
		return bnd.Read(0, 0, a.AsInt32(), w, h)
	case array.Int64:
		return bnd.Read(0, 0, a.AsInt64(), w, h)
	case array.Uint8:
		return bnd.Read(0, 0, a.AsUint8(), w, h)
	case array.Complex64:
		return bnd.Read(0, 0, a.AsComplex64(), w, h)
	default:
		return &array.ConfigError{Setting: "band read dtype", Value: a.DType().String()}
	}
}

func writeFrom(bnd godal.Band, a *array.Array, w, h int) error {
	switch a.DType() {
	case array.Float32:
		return bnd.Write(0, 0, a.AsFloat32(), w, h)
	case array.Float64:
		return bnd.Write(0, 0, a.AsFloat64(), w, h)
	case array.Int32:
		return bnd.Write(0, 0, a.AsInt32(), w, h)
	case array.Int64:
		return bnd.Write(0, 0, a.AsInt64(), w, h)
	case array.Uint8:
		return bnd.Write(0, 0, a.AsUint8(), w, h)
	case array.Complex64:
		return bnd.Write(0, 0, a.AsComplex64(), w, h)
	default:
		return &array.ConfigError{Setting: "band write dtype", Value: a.DType().String()}
	}
}

// WriteOptions configures WriteArray. The zero value writes a GTiff with no
// georeferencing and no nodata marker.
type WriteOptions struct {
	GeoRef *GeoRef
	NoData *float64
}

// WriteArray writes a 2D array as a single-band GTiff, or a 3D
// (bands, rows, cols) array as a multi-band one.
func WriteArray(path string, a *array.Array, opts WriteOptions) error {
	registerDrivers()

	var nBands, rows, cols int
	switch a.NDim() {
	case 2:
		nBands, rows, cols = 1, a.Shape()[0], a.Shape()[1]
	case 3:
		nBands, rows, cols = a.Shape()[0], a.Shape()[1], a.Shape()[2]
	default:
		return fmt.Errorf("write %s: expected a 2D or 3D array, got %dD", path, a.NDim())
	}

	gdt, err := GDALType(a.DType())
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	ds, err := godal.Create(godal.GTiff, path, nBands, gdt, cols, rows)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer ds.Close()

	if opts.GeoRef != nil {
		if opts.GeoRef.Projection != "" {
			if err := ds.SetProjection(opts.GeoRef.Projection); err != nil {
				return fmt.Errorf("write %s: set projection: %w", path, err)
			}
		}
		if err := ds.SetGeoTransform(opts.GeoRef.Transform); err != nil {
			return fmt.Errorf("write %s: set geotransform: %w", path, err)
		}
	}

	for i, bnd := range ds.Bands() {
		layer := a
		if a.NDim() == 3 {
			layer = a.Layer(i)
		}
		if opts.NoData != nil {
			if err := bnd.SetNoData(*opts.NoData); err != nil {
				return fmt.Errorf("write %s: set nodata: %w", path, err)
			}
		}
		if err := writeFrom(bnd, layer, cols, rows); err != nil {
			return fmt.Errorf("write %s band %d: %w", path, i+1, err)
		}
	}
	return nil
}
