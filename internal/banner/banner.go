// Package banner prints the descriptive header written at the top of
// generated files: who generated the file, where, when, and with which
// program and command line.
package banner

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Version is the toolkit version reported when build info carries none.
const Version = "0.1.0"

// Settings control how a header is rendered.
type Settings struct {
	LinePrefix        string // Prepended to every line, e.g. ";\t"
	GeneratedByHeader bool   // Include the "Created by" program block
}

// Printer writes a header for the file being generated.
type Printer interface {
	Print(w io.Writer, filename string, s Settings) error
}

// Context describes the running program. The zero value prints only the
// fields that are set.
type Context struct {
	Program     string
	Version     string
	User        string
	UID         string
	Host        string
	Executable  string
	WorkDir     string
	CommandLine []string
	Time        time.Time
}

// FromEnvironment captures the context of the current process.
// Fields that cannot be determined are left empty.
func FromEnvironment(program string) *Context {
	c := &Context{
		Program:     program,
		Version:     buildVersion(),
		CommandLine: append([]string(nil), os.Args...),
		Time:        time.Now(),
	}
	if u, err := user.Current(); err == nil {
		c.User = u.Username
		c.UID = u.Uid
	}
	if h, err := os.Hostname(); err == nil {
		c.Host = h
	}
	if exe, err := os.Executable(); err == nil {
		c.Executable = exe
	}
	if wd, err := os.Getwd(); err == nil {
		c.WorkDir = wd
	}
	return c
}

var (
	defaultOnce sync.Once
	defaultCtx  *Context
)

// Default returns the process context, captured on first use.
func Default() *Context {
	defaultOnce.Do(func() {
		defaultCtx = FromEnvironment("mdp")
	})
	return defaultCtx
}

func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return Version
	}
	return strings.TrimPrefix(info.Main.Version, "v")
}

// Print writes the header to w.
func (c *Context) Print(w io.Writer, filename string, s Settings) error {
	lw := &lineWriter{w: w, prefix: s.LinePrefix}

	lw.line("File '%s' was generated", filename)
	if c.User != "" {
		if c.UID != "" {
			lw.line("By user: %s (%s)", c.User, c.UID)
		} else {
			lw.line("By user: %s", c.User)
		}
	}
	if c.Host != "" {
		lw.line("On host: %s", c.Host)
	}
	if !c.Time.IsZero() {
		lw.line("At date: %s", c.Time.Format(time.ANSIC))
	}
	lw.line("")

	if s.GeneratedByHeader {
		lw.line("Created by:")
		lw.line("  %s, version %s", c.programName(), c.version())
		if c.Executable != "" {
			lw.line("Executable:   %s", c.Executable)
		}
		if c.WorkDir != "" {
			lw.line("Working dir:  %s", c.WorkDir)
		}
		if len(c.CommandLine) > 0 {
			lw.line("Command line:")
			lw.line("  %s", strings.Join(c.CommandLine, " "))
		}
		lw.line("")
	}
	return lw.err
}

func (c *Context) programName() string {
	if c.Program == "" {
		return "mdp"
	}
	return c.Program
}

func (c *Context) version() string {
	if c.Version == "" {
		return Version
	}
	return c.Version
}

// lineWriter keeps the first write error and drops later writes.
type lineWriter struct {
	w      io.Writer
	prefix string
	err    error
}

func (lw *lineWriter) line(format string, args ...any) {
	if lw.err != nil {
		return
	}
	text := fmt.Sprintf(format, args...)
	if text == "" {
		_, lw.err = fmt.Fprintf(lw.w, "%s\n", strings.TrimRight(lw.prefix, " \t"))
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, "%s%s\n", lw.prefix, text)
}
