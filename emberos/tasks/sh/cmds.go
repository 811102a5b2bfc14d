package sh

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ember/emberos/console"
	"ember/internal/buildinfo"
)

// builtin is one shell command.
type builtin struct {
	usage string
	desc  string
	run   func(s *Shell, args []string) error
}

func builtins() map[string]builtin {
	return map[string]builtin{
		"help":    {"help [command]", "Show available commands.", cmdHelp},
		"echo":    {"echo [args...]", "Print arguments.", cmdEcho},
		"history": {"history [n]", "List input history, or show entry n.", cmdHistory},
		"ps":      {"ps", "List processes (also ^P).", cmdPs},
		"kill":    {"kill <pid>", "Kill a process.", cmdKill},
		"ticks":   {"ticks", "Show current kernel tick counter.", cmdTicks},
		"version": {"version", "Show build version.", cmdVersion},
		"panic":   {"panic [message]", "Panic the kernel (halts every CPU).", cmdPanic},
	}
}

func cmdHelp(s *Shell, args []string) error {
	switch len(args) {
	case 0:
		names := make([]string, 0, len(s.cmds))
		for name := range s.cmds {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			s.printf("%-8s %s\n", name, s.cmds[name].desc)
		}
		return nil
	case 1:
		cmd, ok := s.cmds[args[0]]
		if !ok {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		s.printf("usage: %s\n%s\n", cmd.usage, cmd.desc)
		return nil
	}
	return errors.New("usage: help [command]")
}

func cmdEcho(s *Shell, args []string) error {
	s.printf("%s\n", strings.Join(args, " "))
	return nil
}

func cmdHistory(s *Shell, args []string) error {
	buf := make([]byte, console.HistoryLineSize)

	if len(args) == 0 {
		for i := 0; s.cons.SysHistory(buf, i) == 0; i++ {
			s.printf("%4d  %s\n", i, cstring(buf))
		}
		return nil
	}
	if len(args) != 1 {
		return errors.New("usage: history [n]")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad index %q", args[0])
	}
	switch s.cons.SysHistory(buf, n) {
	case 0:
		s.printf("%s\n", cstring(buf))
		return nil
	case -1:
		return fmt.Errorf("%d: %w", n, console.ErrHistoryUnused)
	default:
		return fmt.Errorf("%d: %w", n, console.ErrHistoryRange)
	}
}

func cmdPs(s *Shell, _ []string) error {
	s.sys.Procs.Dump(s.cons.Printf)
	return nil
}

func cmdKill(s *Shell, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: kill <pid>")
	}
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad pid %q", args[0])
	}
	return s.sys.Procs.Kill(pid)
}

func cmdTicks(s *Shell, _ []string) error {
	s.printf("%d\n", s.sys.Ticks())
	return nil
}

func cmdVersion(s *Shell, _ []string) error {
	s.printf("ember %s (%s, %s)\n", buildinfo.Short(), buildinfo.Commit, buildinfo.Date)
	return nil
}

func cmdPanic(s *Shell, args []string) error {
	msg := "sh"
	if len(args) > 0 {
		msg = strings.Join(args, " ")
	}
	s.cons.Panic(msg)
	return nil
}

// cstring returns b up to its first NUL.
func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
