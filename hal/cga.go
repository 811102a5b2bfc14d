package hal

import "sync"

const (
	// CGAColumns and CGARows give the text-mode geometry.
	CGAColumns = 80
	CGARows    = 25

	// CRTPort is the CRT controller index register; the data register is
	// CRTPort+1.
	CRTPort = 0x3d4

	// CRTC registers holding the cursor location (high and low byte).
	CRTCursorHigh = 14
	CRTCursorLow  = 15
)

// CGA emulates a colour text adapter: CGAColumns x CGARows cells of video
// memory plus the CRT controller's index/data port pair.
//
// All methods are safe for concurrent use so the display can be rasterized
// while the console driver writes to it.
type CGA struct {
	mu    sync.Mutex
	cells [CGAColumns * CGARows]uint16
	index uint8
	regs  [32]uint8
}

// NewCGA returns a blank adapter with the cursor at the top-left cell.
func NewCGA() *CGA {
	return &CGA{}
}

// Len implements TextMemory.
func (c *CGA) Len() int { return len(c.cells) }

// Load implements TextMemory.
func (c *CGA) Load(i int) uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cells[i]
}

// Store implements TextMemory.
func (c *CGA) Store(i int, v uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cells[i] = v
}

// Outb implements PortIO. Writes to ports other than the CRTC pair are ignored.
func (c *CGA) Outb(port uint16, v uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch port {
	case CRTPort:
		c.index = v & 0x1f
	case CRTPort + 1:
		c.regs[c.index] = v
	}
}

// Inb implements PortIO. Unmapped ports read as 0xff.
func (c *CGA) Inb(port uint16) uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch port {
	case CRTPort:
		return c.index
	case CRTPort + 1:
		return c.regs[c.index]
	default:
		return 0xff
	}
}

// Cursor returns the cell index held in the cursor location registers.
func (c *CGA) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursorLocked()
}

// Snapshot copies the cells into dst and returns the cursor location.
func (c *CGA) Snapshot(dst []uint16) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(dst, c.cells[:])
	return c.cursorLocked()
}

func (c *CGA) cursorLocked() int {
	return int(c.regs[CRTCursorHigh])<<8 | int(c.regs[CRTCursorLow])
}
