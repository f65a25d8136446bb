// Package command implements the dispatch engine: declarative command
// specs, a registry resolving names to implementations, and the parser
// turning one raw line into a typed invocation.
package command

import (
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/vshell/vsh"
	"github.com/vshell/vsh/config"
	"github.com/vshell/vsh/filesystem"
)

// Environ is the session's variable store as commands see it.
type Environ interface {
	Get(name string) (string, error)
	Set(name, value string)
}

// Session is the shell state a command executes against. The terminal
// package provides the implementation; commands only see this surface.
type Session interface {
	FS() *filesystem.FileSystem
	SetFS(fs *filesystem.FileSystem)
	Cwd() *filesystem.Directory
	SetCwd(dir *filesystem.Directory)
	Env() Environ
	// RunScript executes the named host-side script file through the
	// session, line by line.
	RunScript(path string) error
}

// Context carries everything one dispatch call may touch. A new Context is
// built per Submit; the dispatcher itself holds no state between calls.
type Context struct {
	Session  Session
	Config   *config.Config
	Registry *Registry
	Logger   zerolog.Logger
}

// Func is a command implementation. It returns either a success Output or
// an error from the vsh taxonomy; the dispatcher translates anything else.
type Func func(ctx *Context, inv *Invocation) (vsh.Output, error)

// Spec declares a command's shape: its name, the flags it accepts and the
// positional arity it allows. Immutable after registration.
type Spec struct {
	// Name is the token that selects this command, unique in the registry.
	Name string
	// Usage is the one-line synopsis shown by help.
	Usage string
	// Help is the longer description.
	Help string
	// Flags registers the command's flags on a fresh flag set. Nil means
	// the command takes no flags.
	Flags func(f *pflag.FlagSet)
	// MinArgs and MaxArgs bound the positional argument count after flag
	// parsing. MaxArgs < 0 means unlimited.
	MinArgs int
	MaxArgs int
}

// Invocation is the parsed result of one input line, bound to a Spec.
type Invocation struct {
	Name string
	// Flags is the parsed flag set; value lookups go through GetInt etc.
	Flags *pflag.FlagSet
	// Args are the positional arguments in order.
	Args []string
}
