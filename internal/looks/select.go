package looks

import (
	"log/slog"
	"sync"

	"github.com/sarkit/multilook/internal/array"
	"github.com/sarkit/multilook/internal/backend/cpu"
	"github.com/sarkit/multilook/internal/backend/webgpu"
)

// The host backend is stateless; one instance serves all calls.
var hostBackend = cpu.New()

// The accelerator backend holds a GPU device and is expensive to create, so
// it is initialized at most once per process.
var accel struct {
	once sync.Once
	be   array.Backend
}

// resolveBackend picks the compute backend that owns the given array.
// Arrays tagged for the accelerator get the accelerator backend when it is
// usable and the element type is one its kernels handle (float32 only);
// everything else, including every accelerator failure mode, gets the host
// backend. This never fails: a missing accelerator is an expected
// configuration, reported at debug level only.
func resolveBackend(a *array.Array) array.Backend {
	if a.Device() == array.WebGPU {
		if a.DType() != array.Float32 {
			slog.Debug("accelerator kernels are float32 only, using host backend",
				"dtype", a.DType().String())
			return hostBackend
		}
		if be := acceleratorBackend(); be != nil {
			return be
		}
		slog.Debug("accelerator backend unavailable, falling back to host",
			"device", a.Device().String())
	}
	return hostBackend
}

// acceleratorBackend returns the process-wide accelerator backend, or nil
// when the accelerator is unusable.
func acceleratorBackend() array.Backend {
	accel.once.Do(func() {
		if probe := webgpu.Probe(); !probe.Available {
			slog.Debug("accelerator probe failed", "reason", probe.Reason)
			return
		}
		be, err := webgpu.New()
		if err != nil {
			slog.Debug("accelerator backend init failed", "error", err)
			return
		}
		accel.be = be
	})
	return accel.be
}

// AcceleratorAvailable reports whether a usable accelerator is present:
// the native WebGPU library loads, an adapter answers, and a device can be
// created. Every probe failure is swallowed into false; this is a capability
// check, not an assertion.
func AcceleratorAvailable() bool {
	probe := webgpu.Probe()
	if !probe.Available {
		slog.Debug("accelerator not available", "reason", probe.Reason)
	}
	return probe.Available
}
