package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarkit/multilook/array"
	"github.com/sarkit/multilook/backend/webgpu"
	"github.com/sarkit/multilook/dates"
	"github.com/sarkit/multilook/looks"
	"github.com/sarkit/multilook/rasterio"
)

func newLookCmd() *cobra.Command {
	var (
		rowLooks, colLooks int
		band               int
		edge               string
		reduce             string
	)
	cmd := &cobra.Command{
		Use:   "look INPUT OUTPUT",
		Short: "Downsample a raster by block aggregation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := array.ParseReduceOp(reduce)
			if err != nil {
				return err
			}
			es, err := looks.ParseEdgeStrategy(edge)
			if err != nil {
				return err
			}
			return rasterio.WriteLooked(args[1], args[0], band, rowLooks, colLooks,
				looks.WithReduction(op), looks.WithEdgeStrategy(es))
		},
	}
	cmd.Flags().IntVarP(&rowLooks, "row-looks", "r", 1, "Look window height in pixels")
	cmd.Flags().IntVarP(&colLooks, "col-looks", "c", 1, "Look window width in pixels")
	cmd.Flags().IntVar(&band, "band", 1, "Band to process (1-based)")
	cmd.Flags().StringVar(&edge, "edge", "cutoff", "Edge handling: cutoff or pad")
	cmd.Flags().StringVar(&reduce, "reduce", "nansum", "Reduction: nansum, sum, nanmean, mean, nanmax, max")
	return cmd
}

func newUpsampleCmd() *cobra.Command {
	var (
		rows, cols         int
		rowLooks, colLooks int
		band               int
	)
	cmd := &cobra.Command{
		Use:   "upsample INPUT OUTPUT",
		Short: "Upsample a raster by nearest-neighbor repetition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rasterio.ReadBand(args[0], band)
			if err != nil {
				return err
			}
			ref, err := rasterio.ReadGeoRef(args[0])
			if err != nil {
				return err
			}

			var opts []looks.Option
			if rowLooks > 0 && colLooks > 0 {
				opts = append(opts, looks.WithLooks(rowLooks, colLooks))
			}
			up := looks.UpsampleNearest(a, array.Shape{rows, cols}, opts...)

			// Shrink the pixel footprint by the true expansion ratio.
			rr := float64(a.Shape().Rows()) / float64(rows)
			cr := float64(a.Shape().Cols()) / float64(cols)
			ref.Transform[1] *= cr
			ref.Transform[2] *= rr
			ref.Transform[4] *= cr
			ref.Transform[5] *= rr

			return rasterio.WriteArray(args[1], up, rasterio.WriteOptions{GeoRef: &ref})
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "Output height in pixels")
	cmd.Flags().IntVar(&cols, "cols", 0, "Output width in pixels")
	cmd.Flags().IntVar(&rowLooks, "row-looks", 0, "Row repetition factor (default: inferred)")
	cmd.Flags().IntVar(&colLooks, "col-looks", 0, "Column repetition factor (default: inferred)")
	cmd.Flags().IntVar(&band, "band", 1, "Band to process (1-based)")
	cmd.MarkFlagRequired("rows") //nolint:errcheck
	cmd.MarkFlagRequired("cols") //nolint:errcheck
	return cmd
}

func newSortCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "sort FILE...",
		Short: "Sort raster files by the dates in their names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sorted, sortedDates := dates.SortByDate(args, format)
			for i, f := range sorted {
				var ds []string
				for _, d := range sortedDates[i] {
					ds = append(ds, d.Format(format))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%v\n", f, ds)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", dates.DefaultLayout, "Date layout to match (Go reference time)")
	return cmd
}

func newGPUCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gpu",
		Short: "Report accelerator availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := webgpu.Probe()
			if !res.Available {
				fmt.Fprintf(cmd.OutOrStdout(), "accelerator unavailable: %s\n", res.Reason)
				return nil
			}
			gpu, err := webgpu.New()
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "accelerator unavailable: %v\n", err)
				return nil
			}
			defer gpu.Release()
			fmt.Fprintf(cmd.OutOrStdout(), "accelerator available: %s\n", gpu.Name())
			return nil
		},
	}
}
