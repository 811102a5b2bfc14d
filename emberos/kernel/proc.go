package kernel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var ErrNoProc = errors.New("no such process")

// ProcState is the scheduling state shown by a process dump.
type ProcState uint32

const (
	Unused ProcState = iota
	Embryo
	Sleeping
	Runnable
	Running
	Zombie
)

func (s ProcState) String() string {
	switch s {
	case Unused:
		return "unused"
	case Embryo:
		return "embryo"
	case Sleeping:
		return "sleep "
	case Runnable:
		return "runble"
	case Running:
		return "run   "
	case Zombie:
		return "zombie"
	default:
		return "???"
	}
}

// Proc is a kernel process backed by a goroutine. Killing it cancels its
// context, which wakes it from any interruptible sleep.
type Proc struct {
	PID  int
	Name string

	ctx    context.Context
	cancel context.CancelFunc
	state  atomic.Uint32
	done   chan struct{}
}

// Context is cancelled once the process is killed.
func (p *Proc) Context() context.Context { return p.ctx }

func (p *Proc) Killed() bool { return p.ctx.Err() != nil }

func (p *Proc) State() ProcState { return ProcState(p.state.Load()) }

// Done is closed when the process body returns.
func (p *Proc) Done() <-chan struct{} { return p.done }

func (p *Proc) setState(s ProcState) {
	if p != nil {
		p.state.Store(uint32(s))
	}
}

// ProcTable owns every process started by the kernel.
type ProcTable struct {
	mu    sync.Mutex
	next  int
	procs []*Proc
}

// Spawn starts fn as a new process. The process is killed when ctx is done.
func (t *ProcTable) Spawn(ctx context.Context, name string, fn func(p *Proc)) *Proc {
	pctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	t.next++
	p := &Proc{
		PID:    t.next,
		Name:   name,
		ctx:    pctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	p.setState(Embryo)
	t.procs = append(t.procs, p)
	t.mu.Unlock()

	go func() {
		defer close(p.done)
		defer p.setState(Zombie)
		defer cancel()
		p.setState(Running)
		fn(p)
	}()
	return p
}

// Kill marks pid for termination.
func (t *ProcTable) Kill(pid int) error {
	p, err := t.Lookup(pid)
	if err != nil {
		return err
	}
	p.cancel()
	return nil
}

func (t *ProcTable) Lookup(pid int) (*Proc, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.procs {
		if p.PID == pid {
			return p, nil
		}
	}
	return nil, fmt.Errorf("pid %d: %w", pid, ErrNoProc)
}

// Dump prints one line per process. printf must not take locks held by the
// caller.
func (t *ProcTable) Dump(printf func(format string, args ...any)) {
	t.mu.Lock()
	procs := append([]*Proc(nil), t.procs...)
	t.mu.Unlock()

	for _, p := range procs {
		printf("%d %s %s\n", p.PID, p.State().String(), p.Name)
	}
}
