package kernel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoDevice is returned for a major number with no registered device.
var ErrNoDevice = errors.New("no such device")

// Major is a device-switch table index.
type Major int

const (
	// Console is the major number of the console device.
	Console Major = 1

	// NDev is the size of the device-switch table.
	NDev = 10
)

// Device is a character device entry.
//
// Both entry points are called with ip locked and may unlock it while they
// block, provided it is locked again before they return.
type Device interface {
	Read(ctx context.Context, ip sync.Locker, dst []byte) (int, error)
	Write(ip sync.Locker, src []byte) (int, error)
}

// Devsw is the device-switch table.
type Devsw struct {
	mu   sync.RWMutex
	devs [NDev]Device
}

// Register installs d at major.
func (t *Devsw) Register(major Major, d Device) error {
	if major < 0 || major >= NDev {
		return fmt.Errorf("devsw: major %d: %w", major, ErrNoDevice)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.devs[major] = d
	return nil
}

// Lookup returns the device registered at major.
func (t *Devsw) Lookup(major Major) (Device, error) {
	if major < 0 || major >= NDev {
		return nil, fmt.Errorf("devsw: major %d: %w", major, ErrNoDevice)
	}
	t.mu.RLock()
	d := t.devs[major]
	t.mu.RUnlock()
	if d == nil {
		return nil, fmt.Errorf("devsw: major %d: %w", major, ErrNoDevice)
	}
	return d, nil
}

// Read reads from the device behind ip on behalf of p.
func (t *Devsw) Read(p *Proc, ip *Inode, dst []byte) (int, error) {
	d, err := t.Lookup(ip.Major)
	if err != nil {
		return 0, err
	}
	ip.Lock()
	defer ip.Unlock()

	p.setState(Sleeping)
	defer p.setState(Running)
	return d.Read(p.Context(), ip, dst)
}

// Write writes to the device behind ip on behalf of p.
func (t *Devsw) Write(p *Proc, ip *Inode, src []byte) (int, error) {
	d, err := t.Lookup(ip.Major)
	if err != nil {
		return 0, err
	}
	ip.Lock()
	defer ip.Unlock()
	return d.Write(ip, src)
}
