package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}
	if err := os.MkdirAll(otherDir, 0o755); err != nil {
		t.Fatalf("failed to create other dir: %v", err)
	}

	target := filepath.Join(otherDir, "session.log")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(target)
	if got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}

	target := filepath.Join(baseDir, "nested", "session.log")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(filepath.Join("nested", "session.log"))
	if got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestToLineCol(t *testing.T) {
	lineIdx := buildLineIndex([]byte("ab\ncd\n\ne"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{off: 0, want: LineCol{Line: 1, Col: 1}},
		{off: 2, want: LineCol{Line: 1, Col: 3}}, // сам перевод строки
		{off: 3, want: LineCol{Line: 2, Col: 1}},
		{off: 6, want: LineCol{Line: 3, Col: 1}},
		{off: 7, want: LineCol{Line: 4, Col: 1}},
		{off: 8, want: LineCol{Line: 4, Col: 2}},
	}
	for _, tt := range tests {
		if got := toLineCol(lineIdx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}
