package util

import (
	"path/filepath"
	"testing"
)

func TestDataDirHonoursXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)
	if got := DataDir("mvno"); got != filepath.Join(base, "mvno") {
		t.Fatalf("DataDir = %q", got)
	}
}

func TestResolveDir(t *testing.T) {
	t.Setenv("HOME", "/home/op")
	if got := ResolveDir("  ", "/fallback"); got != "/fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := ResolveDir("~/snap", "/fallback"); got != "/home/op/snap" {
		t.Fatalf("expected expanded home, got %q", got)
	}
	if got := ResolveDir("$HOME/b", ""); got != "/home/op/b" {
		t.Fatalf("expected $HOME expansion, got %q", got)
	}
}

func TestClampAndPtr(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Fatalf("unexpected int clamp")
	}
	if Clamp(4.0, 0, -1) != 0 {
		t.Fatalf("expected min to win when max < min")
	}
	if *Ptr(7) != 7 {
		t.Fatalf("unexpected Ptr")
	}
}
