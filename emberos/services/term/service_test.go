package term

import (
	"fmt"
	"testing"
)

func TestWriteControls(t *testing.T) {
	s := New(nil, 0)
	fmt.Fprint(s, "abc\b\bX\n$ ")
	// "ab", cursor left, "X", then backspace over the X.
	s.Write([]byte("ab\bXb\b" + "\bb \b\b"))

	lines := s.Lines()
	if lines[0] != "aXc" {
		t.Fatalf("line 0 = %q, want %q", lines[0], "aXc")
	}
	if lines[1] != "$ ab" {
		t.Fatalf("line 1 = %q, want %q", lines[1], "$ ab")
	}
	if row, col := s.Cursor(); row != 1 || col != 3 {
		t.Fatalf("Cursor() = %d,%d, want 1,3", row, col)
	}
}

func TestScrollAndWrap(t *testing.T) {
	s := New(nil, 0)
	for i := 0; i < Rows+2; i++ {
		fmt.Fprintf(s, "line %d\n", i)
	}
	lines := s.Lines()
	if lines[0] != "line 3" {
		t.Fatalf("line 0 = %q, want %q", lines[0], "line 3")
	}
	if lines[Rows-2] != fmt.Sprintf("line %d", Rows+1) || lines[Rows-1] != "" {
		t.Fatalf("bottom lines = %q, %q", lines[Rows-2], lines[Rows-1])
	}

	long := make([]byte, Cols+5)
	for i := range long {
		long[i] = 'x'
	}
	s.Write(long)
	if row, col := s.Cursor(); row != Rows-1 || col != 5 {
		t.Fatalf("Cursor() after wrap = %d,%d, want %d,5", row, col, Rows-1)
	}
}

func TestRenderWithoutFramebuffer(t *testing.T) {
	s := New(nil, 0)
	if !s.Render() {
		t.Fatal("first Render() = false, want full draw")
	}
	if s.Render() {
		t.Fatal("second Render() = true with no changes")
	}
	s.Write([]byte("z"))
	if !s.Render() {
		t.Fatal("Render() after Write = false")
	}
}
