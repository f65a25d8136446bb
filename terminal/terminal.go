// Package terminal holds the long-lived session state of one shell run —
// the filesystem, the working directory, the environment and the command
// registry — and the drivers that feed it lines.
package terminal

import (
	"strings"

	"github.com/vshell/vsh"
	"github.com/vshell/vsh/command"
	"github.com/vshell/vsh/config"
	"github.com/vshell/vsh/filesystem"
	"github.com/vshell/vsh/internal/util"
)

// Terminal is the session: it owns the only persistent state between
// submitted lines. Each Submit is one atomic request/response cycle; the
// dispatcher itself is stateless.
type Terminal struct {
	cfg      *config.Config
	fs       *filesystem.FileSystem
	cwd      *filesystem.Directory
	env      *Environment
	user     *User
	registry *command.Registry
	running  bool
}

// New builds a session over fs. A nil fs gets an empty tree.
func New(cfg *config.Config, fs *filesystem.FileSystem, env *Environment, user *User, registry *command.Registry) *Terminal {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if fs == nil {
		fs = filesystem.New()
	}
	if env == nil {
		env = NewEnvironment(nil)
	}
	if user == nil {
		user = NewUser(env)
	}
	return &Terminal{
		cfg:      cfg,
		fs:       fs,
		cwd:      fs.Root(),
		env:      env,
		user:     user,
		registry: registry,
		running:  true,
	}
}

// Submit processes one raw line and returns its structured result. Blank
// lines are a no-op; a line of the form $NAME prints that environment
// variable; everything else goes through the dispatcher.
func (t *Terminal) Submit(line string) vsh.Output {
	logger := util.GetLogger("terminal")

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return vsh.Output{}
	}

	if strings.HasPrefix(trimmed, "$") && !strings.ContainsAny(trimmed, " \t") {
		v, err := t.env.Get(strings.TrimPrefix(trimmed, "$"))
		if err != nil {
			return vsh.ErrOutput(err)
		}
		return vsh.TextOutput(v)
	}

	out := t.registry.Dispatch(&command.Context{Session: t, Config: t.cfg}, trimmed)
	if out.Terminate {
		logger.Debug().Msg("Session terminating")
		t.running = false
	}
	return out
}

// Running reports whether the session has been ended by a terminating
// command.
func (t *Terminal) Running() bool { return t.running }

// Prompt renders the session prompt for the current working directory.
func (t *Terminal) Prompt() string {
	return t.user.Prompt(t.cwd.AbsolutePath(), t.cfg.PromptColor)
}

/* [command.Session] interface implementations */

func (t *Terminal) FS() *filesystem.FileSystem { return t.fs }

// SetFS swaps the session's filesystem and resets the working directory to
// the new root. The sc command is the only caller.
func (t *Terminal) SetFS(fs *filesystem.FileSystem) {
	t.fs = fs
	t.cwd = fs.Root()
}

func (t *Terminal) Cwd() *filesystem.Directory { return t.cwd }

func (t *Terminal) SetCwd(dir *filesystem.Directory) {
	if dir != nil {
		t.cwd = dir
	}
}

func (t *Terminal) Env() command.Environ { return t.env }

// RunScript executes the named script file through this session.
func (t *Terminal) RunScript(path string) error {
	return NewScriptRunner(t).Run(path)
}
