package rasterio

import (
	"github.com/airbusgeo/godal"

	"github.com/sarkit/multilook/internal/array"
)

// GDALType maps an array element type to the GDAL type code used when
// creating datasets. Bool has no GDAL equivalent and is stored as Byte.
func GDALType(dt array.DataType) (godal.DataType, error) {
	switch dt {
	case array.Float32:
		return godal.Float32, nil
	case array.Float64:
		return godal.Float64, nil
	case array.Int32:
		return godal.Int32, nil
	case array.Int64:
		return godal.Int64, nil
	case array.Uint8, array.Bool:
		return godal.Byte, nil
	case array.Complex64:
		return godal.CFloat32, nil
	default:
		return godal.Unknown, &array.ConfigError{Setting: "gdal type mapping", Value: dt.String()}
	}
}

// ArrayType maps a GDAL band type code to the array element type bands of
// that type are read into.
func ArrayType(dt godal.DataType) (array.DataType, error) {
	switch dt {
	case godal.Byte:
		return array.Uint8, nil
	case godal.Int32:
		return array.Int32, nil
	case godal.Int64:
		return array.Int64, nil
	case godal.Float32:
		return array.Float32, nil
	case godal.Float64:
		return array.Float64, nil
	case godal.CFloat32:
		return array.Complex64, nil
	default:
		return 0, &array.ConfigError{Setting: "array type mapping", Value: dt.String()}
	}
}
