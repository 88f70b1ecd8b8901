package array

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	a, err := New(Shape{2, 3}, Float32, CPU)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !a.Shape().Equal(Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", a.Shape())
	}
	if a.DType() != Float32 {
		t.Errorf("dtype = %s, want float32", a.DType())
	}
	if a.Device() != CPU {
		t.Errorf("device = %s, want cpu", a.Device())
	}
	if a.NumElements() != 6 {
		t.Errorf("NumElements = %d, want 6", a.NumElements())
	}
	if a.ByteSize() != 24 {
		t.Errorf("ByteSize = %d, want 24", a.ByteSize())
	}
}

func TestNewInvalidShape(t *testing.T) {
	if _, err := New(Shape{2, 0}, Float32, CPU); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestFromSlice(t *testing.T) {
	a, err := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	data := a.AsFloat32()
	for i, want := range []float32{1, 2, 3, 4} {
		if data[i] != want {
			t.Errorf("data[%d] = %v, want %v", i, data[i], want)
		}
	}
}

func TestFromSliceLengthMismatch(t *testing.T) {
	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("expected error for length/shape mismatch")
	}
}

func TestFull(t *testing.T) {
	a := Full(Shape{3, 3}, float64(2.5))
	if a.DType() != Float64 {
		t.Fatalf("dtype = %s, want float64", a.DType())
	}
	for i, v := range a.AsFloat64() {
		if v != 2.5 {
			t.Fatalf("data[%d] = %v, want 2.5", i, v)
		}
	}
}

func TestZerosIsZero(t *testing.T) {
	a := Zeros(Shape{4, 4}, Int32, CPU)
	for i, v := range a.AsInt32() {
		if v != 0 {
			t.Fatalf("data[%d] = %d, want 0", i, v)
		}
	}
}

func TestTypedViewDTypeMismatch(t *testing.T) {
	a := Zeros(Shape{2, 2}, Float32, CPU)
	defer func() {
		if recover() == nil {
			t.Error("expected panic reading float32 array as int32")
		}
	}()
	_ = a.AsInt32()
}

func TestCloneSharesBuffer(t *testing.T) {
	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2})
	b := a.Clone()
	b.AsFloat32()[0] = 42
	if a.AsFloat32()[0] != 42 {
		t.Error("Clone copied the buffer; expected a shared view")
	}
}

func TestSlice0(t *testing.T) {
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{3, 2})
	v := a.Slice0(2)
	if !v.Shape().Equal(Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", v.Shape())
	}
	got := v.AsFloat32()
	for i, want := range []float32{1, 2, 3, 4} {
		if got[i] != want {
			t.Errorf("data[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestLayer(t *testing.T) {
	a, _ := FromSlice([]float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
	}, Shape{2, 2, 2})
	l := a.Layer(1)
	if !l.Shape().Equal(Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", l.Shape())
	}
	got := l.AsFloat32()
	for i, want := range []float32{5, 6, 7, 8} {
		if got[i] != want {
			t.Errorf("data[%d] = %v, want %v", i, got[i], want)
		}
	}
	// Views share memory with the stack.
	l.AsFloat32()[0] = 99
	if a.AsFloat32()[4] != 99 {
		t.Error("Layer copied the buffer; expected a shared view")
	}
}

func TestLayer4D(t *testing.T) {
	a, _ := FromSlice([]float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}, Shape{2, 2, 2, 2})
	l := a.Layer(1)
	if !l.Shape().Equal(Shape{2, 2, 2}) {
		t.Fatalf("shape = %v, want [2 2 2]", l.Shape())
	}
	got := l.AsFloat32()
	for i, want := range []float32{9, 10, 11, 12, 13, 14, 15, 16} {
		if got[i] != want {
			t.Errorf("data[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestLayerNeedsStack(t *testing.T) {
	a := Zeros(Shape{2, 2}, Float32, CPU)
	defer func() {
		if recover() == nil {
			t.Error("expected panic taking a layer of a 2D array")
		}
	}()
	_ = a.Layer(0)
}

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dt   DataType
		want int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
		{Uint8, 1},
		{Bool, 1},
		{Complex64, 8},
	}
	for _, tt := range tests {
		if got := tt.dt.Size(); got != tt.want {
			t.Errorf("%s.Size() = %d, want %d", tt.dt, got, tt.want)
		}
	}
}

func TestParseReduceOp(t *testing.T) {
	tests := []struct {
		name string
		want ReduceOp
	}{
		{"nansum", NanSum},
		{"sum", Sum},
		{"nanmean", NanMean},
		{"mean", Mean},
		{"nanmax", NanMax},
		{"max", Max},
	}
	for _, tt := range tests {
		got, err := ParseReduceOp(tt.name)
		if err != nil {
			t.Errorf("ParseReduceOp(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseReduceOp(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestParseReduceOpUnknown(t *testing.T) {
	_, err := ParseReduceOp("median")
	if err == nil {
		t.Fatal("expected error for unknown reduction")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.Value != "median" {
		t.Errorf("ConfigError.Value = %q, want %q", cfgErr.Value, "median")
	}
}

func TestReduceOpIgnoresNan(t *testing.T) {
	for _, op := range []ReduceOp{NanSum, NanMean, NanMax} {
		if !op.IgnoresNan() {
			t.Errorf("%s.IgnoresNan() = false, want true", op)
		}
	}
	for _, op := range []ReduceOp{Sum, Mean, Max} {
		if op.IgnoresNan() {
			t.Errorf("%s.IgnoresNan() = true, want false", op)
		}
	}
}
