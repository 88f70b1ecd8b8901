package webgpu

import (
	"math"
	"testing"

	"github.com/sarkit/multilook/internal/array"
	"github.com/sarkit/multilook/internal/backend/cpu"
)

// Probe must never panic, whatever the host's GPU situation is.
func TestProbeNeverPanics(t *testing.T) {
	res := Probe()
	if !res.Available && res.Reason == "" {
		t.Error("unavailable probe must carry a reason")
	}
	if res.Available && res.Reason != "" {
		t.Errorf("available probe carries reason %q", res.Reason)
	}
}

func TestIsAvailableMatchesProbe(t *testing.T) {
	if IsAvailable() != Probe().Available {
		t.Error("IsAvailable disagrees with Probe")
	}
}

func newBackend(t *testing.T) *Backend {
	t.Helper()
	if !IsAvailable() {
		t.Skipf("accelerator unavailable: %s", Probe().Reason)
	}
	be, err := New()
	if err != nil {
		t.Fatalf("New failed after successful probe: %v", err)
	}
	t.Cleanup(be.Release)
	return be
}

func TestBlockReduceMatchesHost(t *testing.T) {
	be := newBackend(t)
	host := cpu.New()

	nan := float32(math.NaN())
	data := []float32{
		1, 2, 3, 4,
		5, nan, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, nan,
	}
	a, err := array.FromSlice(data, array.Shape{2, 2, 2, 2})
	if err != nil {
		t.Fatal(err)
	}

	for _, op := range []array.ReduceOp{array.NanSum, array.Sum, array.NanMean, array.Mean, array.NanMax, array.Max} {
		want := host.Reduce(a, op, 3, 1).AsFloat32()
		got := be.Reduce(a, op, 3, 1).AsFloat32()
		for i := range want {
			wNaN := math.IsNaN(float64(want[i]))
			gNaN := math.IsNaN(float64(got[i]))
			if wNaN != gNaN || (!wNaN && math.Abs(float64(want[i]-got[i])) > 1e-5) {
				t.Errorf("%s: cell %d = %v, host says %v", op, i, got[i], want[i])
			}
		}
	}
}

func TestRepeatMatchesHost(t *testing.T) {
	be := newBackend(t)
	host := cpu.New()

	a, err := array.FromSlice([]float32{1, 2, 3, 4, 5, 6}, array.Shape{2, 3})
	if err != nil {
		t.Fatal(err)
	}

	for _, axis := range []int{-1, -2} {
		want := host.Repeat(a, 3, axis).AsFloat32()
		got := be.Repeat(a, 3, axis).AsFloat32()
		for i := range want {
			if want[i] != got[i] {
				t.Errorf("axis %d: cell %d = %v, host says %v", axis, i, got[i], want[i])
			}
		}
	}
}

func TestReduceRejectsNonBlockForm(t *testing.T) {
	be := newBackend(t)
	a, err := array.FromSlice([]float32{1, 2, 3, 4}, array.Shape{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for 2D reduce on the accelerator")
		}
	}()
	be.Reduce(a, array.Sum, 0)
}

func TestIsBlockAxes(t *testing.T) {
	tests := []struct {
		axes []int
		want bool
	}{
		{[]int{3, 1}, true},
		{[]int{1, 3}, true},
		{[]int{-1, -3}, true},
		{[]int{0, 2}, false},
		{[]int{1, 2}, false},
	}
	for _, tt := range tests {
		if got := isBlockAxes(tt.axes); got != tt.want {
			t.Errorf("isBlockAxes(%v) = %v, want %v", tt.axes, got, tt.want)
		}
	}
}
