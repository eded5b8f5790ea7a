package window

import "testing"

func TestPixelRatioOf(t *testing.T) {
	tcs := []struct {
		fb, win int
		want    float32
	}{
		{1280, 1280, 1},
		{2560, 1280, 2},
		{1920, 1280, 1.5},
		{0, 1280, 1},
		{1280, 0, 1},
	}
	for _, tc := range tcs {
		if got := pixelRatioOf(tc.fb, tc.win); got != tc.want {
			t.Fatalf("pixelRatioOf(%d, %d)=%v; want %v", tc.fb, tc.win, got, tc.want)
		}
	}
}

func TestSetSizeNotifiesOnChange(t *testing.T) {
	w := &engineWindow{width: 800, height: 600, pixelRatio: 1}
	var calls int
	var gotW, gotH int
	var gotRatio float32
	w.SetResizeCallback(func(width, height int, pixelRatio float32) {
		calls++
		gotW, gotH, gotRatio = width, height, pixelRatio
	})

	w.setSize(800, 600, 1)
	if calls != 0 {
		t.Fatalf("setSize(unchanged) fired %d callbacks; want 0", calls)
	}
	w.setSize(1024, 768, 2)
	if calls != 1 || gotW != 1024 || gotH != 768 || gotRatio != 2 {
		t.Fatalf("resize callback=(%d, %d, %v) after %d calls; want (1024, 768, 2) after 1", gotW, gotH, gotRatio, calls)
	}
	if w.Width() != 1024 || w.Height() != 768 || w.PixelRatio() != 2 {
		t.Fatalf("stored size=%dx%d@%v; want 1024x768@2", w.Width(), w.Height(), w.PixelRatio())
	}
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{}
	if w.IsRunning() {
		t.Fatalf("IsRunning()=true; want false without a platform window")
	}
	if w.PollEvents() {
		t.Fatalf("PollEvents()=true; want false without a platform window")
	}
	if w.SurfaceDescriptor() != nil {
		t.Fatalf("SurfaceDescriptor() non-nil without a platform window")
	}
	if err := w.Close(); err == nil {
		t.Fatalf("Close() error=nil; want error without a platform window")
	}
}
