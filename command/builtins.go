package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vshell/vsh"
	"github.com/vshell/vsh/config"
	"github.com/vshell/vsh/filesystem"
	"github.com/vshell/vsh/vfsxml"
)

// RegisterBuiltins registers the full builtin command set on r. Called once
// during session construction.
func RegisterBuiltins(r *Registry) error {
	builtins := []struct {
		spec Spec
		fn   Func
	}{
		{lsSpec, lsCmd},
		{cdSpec, cdCmd},
		{pwdSpec, pwdCmd},
		{treeSpec, treeCmd},
		{mkdirSpec, mkdirCmd},
		{touchSpec, touchCmd},
		{rmSpec, rmCmd},
		{mvSpec, mvCmd},
		{cpSpec, cpCmd},
		{catSpec, catCmd},
		{headSpec, headCmd},
		{tacSpec, tacCmd},
		{wcSpec, wcCmd},
		{scSpec, scCmd},
		{helpSpec, helpCmd},
		{exitSpec, exitCmd},
	}
	for _, b := range builtins {
		if err := r.Register(b.spec, b.fn); err != nil {
			return err
		}
	}
	return nil
}

var lsSpec = Spec{
	Name:  "ls",
	Usage: "ls [-a] [PATH]",
	Help:  "List directory contents in insertion order. Hidden entries (leading '.') are skipped unless -a is given.",
	Flags: func(f *pflag.FlagSet) {
		f.BoolP("all", "a", false, "show hidden entries")
	},
	MinArgs: 0,
	MaxArgs: 1,
}

func lsCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	path := "."
	if len(inv.Args) > 0 {
		path = inv.Args[0]
	}
	dir, err := ctx.Session.FS().ResolveDir(path, ctx.Session.Cwd())
	if err != nil {
		return vsh.Output{}, err
	}
	all, _ := inv.Flags.GetBool("all")

	var names []string
	for _, child := range ctx.Session.FS().List(dir) {
		if !all && strings.HasPrefix(child.Name(), ".") {
			continue
		}
		names = append(names, child.Name())
	}
	return vsh.TextOutput(strings.Join(names, "\n")), nil
}

var cdSpec = Spec{
	Name:    "cd",
	Usage:   "cd [PATH]",
	Help:    "Change the current working directory. Without PATH, stays in place. 'cd ..' at the root is a no-op.",
	MinArgs: 0,
	MaxArgs: 1,
}

func cdCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	path := "."
	if len(inv.Args) > 0 {
		path = inv.Args[0]
	}
	dir, err := ctx.Session.FS().ResolveDir(path, ctx.Session.Cwd())
	if err != nil {
		return vsh.Output{}, err
	}
	ctx.Session.SetCwd(dir)
	return vsh.Output{}, nil
}

var pwdSpec = Spec{
	Name:    "pwd",
	Usage:   "pwd",
	Help:    "Print the absolute path of the current working directory.",
	MinArgs: 0,
	MaxArgs: 0,
}

func pwdCmd(ctx *Context, _ *Invocation) (vsh.Output, error) {
	return vsh.TextOutput(ctx.Session.Cwd().AbsolutePath()), nil
}

var treeSpec = Spec{
	Name:    "tree",
	Usage:   "tree [PATH]",
	Help:    "Render the subtree rooted at PATH (default '.'); directories first, alphabetical within each group.",
	MinArgs: 0,
	MaxArgs: 1,
}

func treeCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	path := "."
	if len(inv.Args) > 0 {
		path = inv.Args[0]
	}
	dir, err := ctx.Session.FS().ResolveDir(path, ctx.Session.Cwd())
	if err != nil {
		return vsh.Output{}, err
	}
	return vsh.TextOutput(ctx.Session.FS().TreeString(dir, ctx.Config.TreeIndent)), nil
}

var mkdirSpec = Spec{
	Name:    "mkdir",
	Usage:   "mkdir PATH",
	Help:    "Create a directory. The parent must already exist.",
	MinArgs: 1,
	MaxArgs: 1,
}

func mkdirCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	if _, err := ctx.Session.FS().Mkdir(inv.Args[0], ctx.Session.Cwd()); err != nil {
		return vsh.Output{}, err
	}
	return vsh.Output{}, nil
}

var touchSpec = Spec{
	Name:    "touch",
	Usage:   "touch PATH",
	Help:    "Create an empty file. The parent must already exist.",
	MinArgs: 1,
	MaxArgs: 1,
}

func touchCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	if _, err := ctx.Session.FS().Touch(inv.Args[0], ctx.Session.Cwd()); err != nil {
		return vsh.Output{}, err
	}
	return vsh.Output{}, nil
}

var rmSpec = Spec{
	Name:    "rm",
	Usage:   "rm PATH",
	Help:    "Remove a file or directory (recursive). Removing the root is rejected.",
	MinArgs: 1,
	MaxArgs: 1,
}

func rmCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	fs := ctx.Session.FS()
	target, err := fs.Resolve(inv.Args[0], ctx.Session.Cwd())
	if err != nil {
		return vsh.Output{}, err
	}
	// If the cwd sits inside the doomed subtree the session would hold a
	// detached directory, so it falls back to the target's parent.
	fallback := target.Parent()
	cwdInside := false
	for d := ctx.Session.Cwd(); d != nil; d = d.Parent() {
		if d.ID() == target.ID() {
			cwdInside = true
			break
		}
	}
	if _, err := fs.Remove(inv.Args[0], ctx.Session.Cwd()); err != nil {
		return vsh.Output{}, err
	}
	if cwdInside {
		ctx.Session.SetCwd(fallback)
	}
	return vsh.Output{}, nil
}

var mvSpec = Spec{
	Name:    "mv",
	Usage:   "mv SOURCE DESTDIR",
	Help:    "Move a file or directory into the destination directory.",
	MinArgs: 2,
	MaxArgs: 2,
}

func mvCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	if err := ctx.Session.FS().Move(inv.Args[0], inv.Args[1], ctx.Session.Cwd()); err != nil {
		return vsh.Output{}, err
	}
	return vsh.Output{}, nil
}

var cpSpec = Spec{
	Name:    "cp",
	Usage:   "cp SOURCE DESTDIR",
	Help:    "Deep-copy a file or directory into the destination directory.",
	MinArgs: 2,
	MaxArgs: 2,
}

func cpCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	if _, err := ctx.Session.FS().Copy(inv.Args[0], inv.Args[1], ctx.Session.Cwd()); err != nil {
		return vsh.Output{}, err
	}
	return vsh.Output{}, nil
}

var scSpec = Spec{
	Name:  "sc",
	Usage: "sc --vfs PATH --script PATH",
	Help:  "Rebuild the session's filesystem from the named XML source, then run the named script through the session.",
	Flags: func(f *pflag.FlagSet) {
		f.String("vfs", "", "path to the XML VFS source")
		f.String("script", "", "path to the script file")
	},
	MinArgs: 0,
	MaxArgs: 0,
}

func scCmd(ctx *Context, inv *Invocation) (vsh.Output, error) {
	vfsPath, _ := inv.Flags.GetString("vfs")
	scriptPath, _ := inv.Flags.GetString("script")
	if vfsPath == "" {
		return vsh.Output{}, vsh.MissingValuef("sc: --vfs is required")
	}
	if scriptPath == "" {
		return vsh.Output{}, vsh.MissingValuef("sc: --script is required")
	}
	if _, err := os.Stat(scriptPath); err != nil {
		return vsh.Output{}, vsh.PathNotFoundf("script not found: %s", scriptPath)
	}

	fs, err := vfsxml.Load(vfsPath)
	if err != nil {
		return vsh.Output{}, err
	}
	ctx.Session.SetFS(fs)
	ctx.Session.SetCwd(fs.Root())
	ctx.Logger.Info().Str("vfs", vfsPath).Str("script", scriptPath).Msg("Reinitialized session from VFS source")

	if err := ctx.Session.RunScript(scriptPath); err != nil {
		return vsh.Output{}, vsh.WrapKind(vsh.KindInvalidOperation, err, "sc: %v", err)
	}
	return vsh.Output{}, nil
}

var helpSpec = Spec{
	Name:    "help",
	Usage:   "help",
	Help:    "List registered commands.",
	MinArgs: 0,
	MaxArgs: 0,
}

func helpCmd(ctx *Context, _ *Invocation) (vsh.Output, error) {
	var b strings.Builder
	for _, name := range ctx.Registry.Names() {
		spec, _ := ctx.Registry.Lookup(name)
		fmt.Fprintf(&b, "%-8s %s\n", name, spec.Usage)
	}
	return vsh.TextOutput(strings.TrimRight(b.String(), "\n")), nil
}

var exitSpec = Spec{
	Name:    "exit",
	Usage:   "exit",
	Help:    "End the session. Mutates nothing.",
	MinArgs: 0,
	MaxArgs: 0,
}

func exitCmd(_ *Context, _ *Invocation) (vsh.Output, error) {
	return vsh.TerminateOutput(), nil
}

// resolveFile resolves path and requires a file node.
func resolveFile(ctx *Context, path string) (*filesystem.File, error) {
	node, err := ctx.Session.FS().Resolve(path, ctx.Session.Cwd())
	if err != nil {
		return nil, err
	}
	file, ok := node.(*filesystem.File)
	if !ok {
		return nil, vsh.InvalidArgumentf("%s: is a directory", path)
	}
	return file, nil
}

// headLines returns the effective -n value: the flag when given, the
// configured default otherwise.
func headLines(ctx *Context, inv *Invocation) int {
	if inv.Flags.Changed("lines") {
		n, _ := inv.Flags.GetInt("lines")
		return n
	}
	if ctx.Config != nil && ctx.Config.HeadLines > 0 {
		return ctx.Config.HeadLines
	}
	return config.DefaultHeadLines
}
