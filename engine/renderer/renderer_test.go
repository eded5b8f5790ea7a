package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestDrawingBufferSize(t *testing.T) {
	tcs := []struct {
		w, h  int
		ratio float32
		wantW int
		wantH int
	}{
		{800, 600, 1, 800, 600},
		{800, 600, 2, 1600, 1200},
		{801, 601, 1.5, 1202, 902},
	}
	for _, tc := range tcs {
		w, h := DrawingBufferSize(tc.w, tc.h, tc.ratio)
		if w != tc.wantW || h != tc.wantH {
			t.Fatalf("DrawingBufferSize(%d, %d, %v)=%dx%d; want %dx%d", tc.w, tc.h, tc.ratio, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestParseMSAASampleCount(t *testing.T) {
	tcs := []struct {
		in     int
		want   MSAASampleCount
		wantOK bool
	}{
		{0, MSAAOff, true},
		{1, MSAAOff, true},
		{4, MSAA4x, true},
		{8, MSAA8x, true},
		{16, MSAA16x, true},
		{2, MSAAOff, false},
	}
	for _, tc := range tcs {
		got, ok := ParseMSAASampleCount(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseMSAASampleCount(%d)=%v,%v; want %v,%v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestPickSurfaceFormatPrefersSRGB(t *testing.T) {
	got := pickSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb})
	if got != wgpu.TextureFormatBGRA8UnormSrgb {
		t.Fatalf("pickSurfaceFormat=%v; want BGRA8UnormSrgb", got)
	}
}
