package hal

import "testing"

func TestCGACursorRegisters(t *testing.T) {
	c := NewCGA()

	c.Outb(CRTPort, CRTCursorHigh)
	c.Outb(CRTPort+1, 0x07)
	c.Outb(CRTPort, CRTCursorLow)
	c.Outb(CRTPort+1, 0xd0)

	if got := c.Cursor(); got != 0x7d0 {
		t.Fatalf("Cursor() = %#x, want 0x7d0", got)
	}

	c.Outb(CRTPort, CRTCursorHigh)
	if got := c.Inb(CRTPort + 1); got != 0x07 {
		t.Fatalf("Inb(data) = %#x, want 0x07", got)
	}
	if got := c.Inb(0x60); got != 0xff {
		t.Fatalf("Inb(unmapped) = %#x, want 0xff", got)
	}
}

func TestCGASnapshot(t *testing.T) {
	c := NewCGA()
	if c.Len() != CGAColumns*CGARows {
		t.Fatalf("Len() = %d, want %d", c.Len(), CGAColumns*CGARows)
	}

	c.Store(0, 'h'|0x0700)
	c.Store(CGAColumns, 'i'|0x0700)

	dst := make([]uint16, c.Len())
	if cur := c.Snapshot(dst); cur != 0 {
		t.Fatalf("Snapshot() cursor = %d, want 0", cur)
	}
	if dst[0] != 'h'|0x0700 || dst[CGAColumns] != 'i'|0x0700 {
		t.Fatalf("Snapshot() cells = %#x %#x", dst[0], dst[CGAColumns])
	}
	if c.Load(1) != 0 {
		t.Fatalf("Load(1) = %#x, want 0", c.Load(1))
	}
}
