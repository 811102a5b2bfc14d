package kernel

import "sync"

// Inode is the in-memory handle of an open device file. Its lock is held by
// the file layer across a read or write and released by devices that block.
type Inode struct {
	mu sync.Mutex

	Inum  uint32
	Major Major
}

func (ip *Inode) Lock()   { ip.mu.Lock() }
func (ip *Inode) Unlock() { ip.mu.Unlock() }
