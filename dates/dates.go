// Package dates extracts acquisition dates embedded in raster file names and
// orders file lists chronologically. Upstream pipeline stages use it to sort
// interferogram stacks before resampling.
package dates

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DefaultLayout is the compact date form most products embed, e.g.
// "20191231.slc.tif".
const DefaultLayout = "20060102"

// Extract returns the dates found in the stem of filename matching the given
// reference layout (e.g. "20060102", "2006-01-02"). Dates in directory
// components are ignored. GDAL subdataset strings such as
// `NETCDF:"stack.nc":slc` are peeled to the real path first.
//
// Returns an empty slice when the stem contains no date; that is reported at
// debug level, not as an error.
func Extract(filename, layout string) []time.Time {
	stem := stem(StemPath(filename))
	pattern := layoutToRegexp(layout)

	var found []time.Time
	for _, m := range pattern.FindAllString(stem, -1) {
		t, err := time.Parse(layout, m)
		if err != nil {
			// Digit runs that are not calendar dates (e.g. month 13).
			continue
		}
		found = append(found, t)
	}
	if len(found) == 0 {
		slog.Debug("no date found in filename", "filename", filename, "layout", layout)
	}
	return found
}

// SortByDate sorts files chronologically by the dates embedded in their
// names. Files with the most dates sort first, so compressed products
// spanning a date range come before the individual acquisitions that make
// them up; within each group the earliest dates win. The returned date lists
// parallel the returned file order.
func SortByDate(files []string, layout string) ([]string, [][]time.Time) {
	type fileDates struct {
		file  string
		dates []time.Time
	}
	fd := make([]fileDates, len(files))
	for i, f := range files {
		fd[i] = fileDates{file: f, dates: Extract(f, layout)}
	}

	sort.SliceStable(fd, func(i, j int) bool {
		a, b := fd[i].dates, fd[j].dates
		if len(a) != len(b) {
			return len(a) > len(b) // most dates first
		}
		for k := range a {
			if !a[k].Equal(b[k]) {
				return a[k].Before(b[k])
			}
		}
		return false
	})

	sortedFiles := make([]string, len(fd))
	sortedDates := make([][]time.Time, len(fd))
	for i, e := range fd {
		sortedFiles[i] = e.file
		sortedDates[i] = e.dates
	}
	return sortedFiles, sortedDates
}

// StemPath resolves the file portion of a GDAL-openable string.
// `DERIVED_SUBDATASET:AMPLITUDE:slc.tif` yields "slc.tif";
// `NETCDF:"stack.nc":slc` yields "stack.nc"; plain paths pass through.
func StemPath(name string) string {
	switch {
	case strings.HasPrefix(name, "DERIVED_SUBDATASET"):
		parts := strings.Split(name, ":")
		return strings.Trim(parts[len(parts)-1], `"'`)
	case strings.Contains(name, ":") &&
		(strings.HasPrefix(name, "NETCDF") || strings.HasPrefix(name, "HDF")):
		parts := strings.SplitN(name, ":", 3)
		if len(parts) >= 2 {
			return strings.Trim(parts[1], `"'`)
		}
	}
	return name
}

// FullSuffix returns the full suffix of a filename, including multiple dots:
// FullSuffix("stack.tar.gz") == ".tar.gz".
func FullSuffix(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[i:]
	}
	return ""
}

// stem returns the base name without its final extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// layoutToRegexp converts a Go reference date layout into a regular
// expression matching dates written in that layout.
//
//	layoutToRegexp("20060102")   =~ `\d{4}\d{2}\d{2}`
//	layoutToRegexp("2006-01-02") =~ `\d{4}\-\d{2}\-\d{2}`
func layoutToRegexp(layout string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(layout)
	// Longest token first, so the year does not get split into day/month runs.
	escaped = strings.ReplaceAll(escaped, "2006", `\d{4}`)
	escaped = strings.ReplaceAll(escaped, "01", `\d{2}`)
	escaped = strings.ReplaceAll(escaped, "02", `\d{2}`)
	return regexp.MustCompile(escaped)
}
