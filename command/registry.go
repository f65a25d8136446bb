package command

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/google/shlex"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/spf13/pflag"

	"github.com/vshell/vsh"
	"github.com/vshell/vsh/internal/util"
)

type registered struct {
	spec Spec
	fn   Func
}

// Registry maps command names to their spec and implementation. Population
// happens once at startup; lookups are safe for concurrent readers.
type Registry struct {
	commands *xsync.Map[string, *registered]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: xsync.NewMap[string, *registered]()}
}

// Register ties a spec to its implementation. Registering a name twice is
// rejected.
func (r *Registry) Register(spec Spec, fn Func) error {
	if spec.Name == "" {
		return vsh.InvalidArgumentf("command name cannot be empty")
	}
	if fn == nil {
		return vsh.InvalidArgumentf("command %q has no implementation", spec.Name)
	}
	if _, loaded := r.commands.LoadOrStore(spec.Name, &registered{spec: spec, fn: fn}); loaded {
		return vsh.InvalidOperationf("command %q already registered", spec.Name)
	}
	return nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	reg, ok := r.commands.Load(name)
	if !ok {
		return Spec{}, false
	}
	return reg.spec, true
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	var names []string
	r.commands.Range(func(name string, _ *registered) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Dispatch parses one raw line, resolves the command and executes it
// against ctx. Every failure comes back as a structured Output; an
// implementation's internal fault never escapes the call.
func (r *Registry) Dispatch(ctx *Context, line string) (out vsh.Output) {
	logger := util.GetLogger("dispatch")

	defer func() {
		if p := recover(); p != nil {
			logger.Error().Str("line", line).Interface("panic", p).Msg("Command panicked")
			out = vsh.ErrOutput(&vsh.Error{
				Kind:    vsh.KindUnknown,
				Message: fmt.Sprintf("internal error: %v", p),
			})
		}
	}()

	tokens, err := shlex.Split(line)
	if err != nil {
		return vsh.ErrOutput(vsh.InvalidArgumentf("cannot parse line: %v", err))
	}
	if len(tokens) == 0 {
		return vsh.Output{}
	}

	name := tokens[0]
	reg, ok := r.commands.Load(name)
	if !ok {
		return vsh.ErrOutput(vsh.UnknownCommandf("unknown command: %s", name))
	}

	inv, err := parseInvocation(reg.spec, tokens[1:])
	if err != nil {
		return vsh.ErrOutput(err)
	}

	ctx.Registry = r
	ctx.Logger = util.GetLogger("cmd." + name)
	out, err = reg.fn(ctx, inv)
	if err != nil {
		var classified *vsh.Error
		if !errors.As(err, &classified) {
			// Implementations are expected to translate; this is the
			// backstop for ones that let a raw error through.
			err = vsh.WrapKind(vsh.KindUnknown, err, "%s: %v", name, err)
		}
		logger.Debug().Str("cmd", name).Err(err).Msg("Command failed")
		return vsh.ErrOutput(err)
	}
	return out
}

// parseInvocation binds raw tokens to the spec's flags and positional
// slots.
func parseInvocation(spec Spec, tokens []string) (*Invocation, error) {
	flags := pflag.NewFlagSet(spec.Name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	if spec.Flags != nil {
		spec.Flags(flags)
	}
	if err := flags.Parse(tokens); err != nil {
		return nil, classifyFlagError(spec.Name, err)
	}
	args := flags.Args()
	if len(args) < spec.MinArgs {
		return nil, vsh.InvalidArgumentf("%s: missing operand", spec.Name)
	}
	if spec.MaxArgs >= 0 && len(args) > spec.MaxArgs {
		return nil, vsh.InvalidArgumentf("%s: too many arguments", spec.Name)
	}
	return &Invocation{Name: spec.Name, Flags: flags, Args: args}, nil
}
