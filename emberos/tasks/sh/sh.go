// Package sh is the init shell. It reads command lines from the console
// device and runs a handful of builtins, among them the history query.
package sh

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ember/emberos/console"
	"ember/emberos/kernel"

	"github.com/google/shlex"
)

const prompt = "$ "

// Shell is one shell process bound to the console.
type Shell struct {
	sys  *kernel.System
	cons *console.Console
	cmds map[string]builtin

	p   *kernel.Proc
	ip  *kernel.Inode
	out io.Writer
}

// New returns a shell using sys's device switch to reach the console.
func New(sys *kernel.System, cons *console.Console) *Shell {
	s := &Shell{
		sys:  sys,
		cons: cons,
		cmds: builtins(),
		ip:   &kernel.Inode{Major: kernel.Console},
	}
	s.out = deviceWriter{s}
	return s
}

// Run is the process body. It returns at end of input or when p is killed.
func (s *Shell) Run(p *kernel.Proc) {
	s.p = p

	buf := make([]byte, console.InputBufSize)
	for {
		io.WriteString(s.out, prompt)
		n, err := s.sys.Devsw.Read(p, s.ip, buf)
		if errors.Is(err, console.ErrKilled) {
			return
		}
		if err != nil {
			s.sys.Logf("sh: read: %v", err)
			return
		}
		if n == 0 {
			io.WriteString(s.out, "\n")
			return
		}
		s.exec(string(buf[:n]))
	}
}

func (s *Shell) exec(line string) {
	args, err := shlex.Split(strings.TrimRight(line, "\n"))
	if err != nil {
		fmt.Fprintf(s.out, "sh: %v\n", err)
		return
	}
	if len(args) == 0 {
		return
	}

	name := args[0]
	if name == "?" {
		name = "help"
	}
	cmd, ok := s.cmds[name]
	if !ok {
		fmt.Fprintf(s.out, "sh: %s: command not found\n", name)
		return
	}
	if err := cmd.run(s, args[1:]); err != nil {
		fmt.Fprintf(s.out, "%s: %v\n", name, err)
	}
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// deviceWriter writes through the device switch like write(1, ...).
type deviceWriter struct {
	s *Shell
}

func (w deviceWriter) Write(p []byte) (int, error) {
	return w.s.sys.Devsw.Write(w.s.p, w.s.ip, p)
}
