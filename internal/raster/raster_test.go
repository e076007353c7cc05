package raster

import (
	"math"
	"testing"
)

func TestNewFloatBuffer_Sentinel(t *testing.T) {
	b := NewFloatBuffer(3, 2)
	if len(b.Pix) != 6 {
		t.Fatalf("len = %d, want 6", len(b.Pix))
	}
	for i, v := range b.Pix {
		if !IsBlank(v) {
			t.Fatalf("pix[%d] = %v, want -inf", i, v)
		}
	}
	b.Set(1, 2, 4)
	if b.At(1, 2) != 4 || b.Pix[5] != 4 {
		t.Errorf("Set/At mismatch: %v", b.Pix)
	}
	if r, bl := b.Coverage(); r != 1 || bl != 5 {
		t.Errorf("Coverage = %d/%d, want 1/5", r, bl)
	}
}

func TestRange_IgnoresSentinelAndNaN(t *testing.T) {
	b := NewFloatBuffer(4, 1)
	b.Pix[0], b.Pix[1], b.Pix[2] = 2, math.NaN(), -3
	lo, hi, ok := b.Range()
	if !ok || lo != -3 || hi != 2 {
		t.Errorf("Range = (%v,%v,%v), want (-3,2,true)", lo, hi, ok)
	}

	if _, _, ok := NewFloatBuffer(2, 2).Range(); ok {
		t.Error("blank buffer should have no range")
	}
}

func TestRender(t *testing.T) {
	b := NewFloatBuffer(4, 1)
	b.Pix[0], b.Pix[1], b.Pix[2] = 0, 10, math.NaN()

	img, err := Render(b, DefaultColorOptions())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x           int
		r, g, bl, a uint8
	}{
		{0, 0, 0, 0, 255},
		{1, 255, 255, 255, 255},
		{2, 128, 128, 128, 255},
		{3, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		i := tt.x * 4
		got := [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
		if got != [4]uint8{tt.r, tt.g, tt.bl, tt.a} {
			t.Errorf("pixel %d = %v, want %v", tt.x, got, [4]uint8{tt.r, tt.g, tt.bl, tt.a})
		}
	}
}

func TestRender_HeatAndFixedRange(t *testing.T) {
	b := NewFloatBuffer(2, 1)
	b.Pix[0], b.Pix[1] = -100, 100
	opts := ColorOptions{Colormap: ColormapHeat, Scale: ScaleLinear, Min: -1, Max: 1}
	img, err := Render(b, opts)
	if err != nil {
		t.Fatal(err)
	}
	// clipped to the ends of the ramp: blue, then red
	if img.Pix[0] != 0 || img.Pix[2] != 255 {
		t.Errorf("low end = %v, want blue", img.Pix[0:4])
	}
	if img.Pix[4] != 255 || img.Pix[6] != 0 {
		t.Errorf("high end = %v, want red", img.Pix[4:8])
	}
}

func TestRender_Hist(t *testing.T) {
	b := NewFloatBuffer(3, 1)
	b.Pix[0], b.Pix[1], b.Pix[2] = 1, 2, 1000
	opts := DefaultColorOptions()
	opts.Scale = ScaleHist
	img, err := Render(b, opts)
	if err != nil {
		t.Fatal(err)
	}
	// ranks 0, 1, 2 spread evenly despite the outlier
	if img.Pix[0] != 0 || img.Pix[4] != 128 || img.Pix[8] != 255 {
		t.Errorf("hist greys = %d %d %d", img.Pix[0], img.Pix[4], img.Pix[8])
	}
}

func TestColorOptions_Validate(t *testing.T) {
	opts := DefaultColorOptions()
	opts.Colormap = "rainbow"
	if _, err := Render(NewFloatBuffer(1, 1), opts); err == nil {
		t.Error("expected error for unknown colormap")
	}
	opts = DefaultColorOptions()
	opts.Scale = "log"
	if err := opts.Validate(); err == nil {
		t.Error("expected error for unknown scale")
	}
}
