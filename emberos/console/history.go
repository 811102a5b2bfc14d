package console

import (
	"errors"
	"fmt"
)

const (
	// HistorySize is the number of lines the ring keeps.
	HistorySize = 1000

	// HistoryLineSize caps the stored length of one line.
	HistoryLineSize = 128
)

var (
	// ErrHistoryUnused means no line was ever recorded at the index.
	ErrHistoryUnused = errors.New("history index not yet used")

	// ErrHistoryRange means the index can never hold a line.
	ErrHistoryRange = errors.New("history index out of range")
)

// History is the ring of completed input lines with a recall cursor.
//
// Entries are ordered oldest first. Once full, appending evicts entry 0.
// The cursor shows the entry under it, then steps older.
type History struct {
	entries [HistorySize]string
	count   int
	cursor  int

	// atOldest is set once entry 0 has been shown by Older.
	atOldest bool
}

// Append records line, truncated to HistoryLineSize bytes, and resets the
// recall cursor to it.
func (h *History) Append(line []byte) {
	if len(line) > HistoryLineSize {
		line = line[:HistoryLineSize]
	}
	if h.count == HistorySize {
		copy(h.entries[:], h.entries[1:])
	} else {
		h.count++
	}
	h.entries[h.count-1] = string(line)
	h.cursor = h.count - 1
	h.atOldest = false
}

// Len returns the number of recorded lines.
func (h *History) Len() int { return h.count }

// Older returns the entry under the cursor and moves the cursor toward
// older entries. It reports false once the oldest entry was shown.
func (h *History) Older() (string, bool) {
	if h.count == 0 || h.atOldest {
		return "", false
	}
	s := h.entries[h.cursor]
	if h.cursor > 0 {
		h.cursor--
	} else {
		h.atOldest = true
	}
	return s, true
}

// Newer moves the cursor toward newer entries and returns the entry under
// it. It reports false at the newest entry.
func (h *History) Newer() (string, bool) {
	if h.count == 0 || h.cursor >= h.count-1 {
		return "", false
	}
	h.cursor++
	h.atOldest = false
	return h.entries[h.cursor], true
}

// Lookup returns the entry at absolute index idx.
func (h *History) Lookup(idx int) (string, error) {
	if idx < 0 || idx >= HistorySize {
		return "", fmt.Errorf("history %d: %w", idx, ErrHistoryRange)
	}
	if idx >= h.count {
		return "", fmt.Errorf("history %d: %w", idx, ErrHistoryUnused)
	}
	return h.entries[idx], nil
}
