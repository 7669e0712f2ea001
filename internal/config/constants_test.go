package config

import "testing"

func TestConstants(t *testing.T) {
	if RepaintDebounce <= 0 || HeaderDelay <= 0 {
		t.Fatalf("render timings must be positive")
	}
	if HorizontalSyncInterval <= 0 || HorizontalSyncInterval >= RepaintDebounce {
		t.Fatalf("sync interval must be positive and shorter than the repaint debounce")
	}
	if BoundaryTolerance <= 0 {
		t.Fatalf("BoundaryTolerance must be positive")
	}
	if LayoutRetryLimit <= 0 || LayoutRetryDelay <= 0 {
		t.Fatalf("layout retries must be bounded and delayed")
	}
	if AppName == "" || DBFileName == "" {
		t.Fatalf("AppName and DBFileName should not be empty")
	}
	if ScrollbarWidth <= 0 || HeaderRows <= 0 {
		t.Fatalf("unexpected layout constants")
	}
}
