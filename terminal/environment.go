package terminal

import (
	"os"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/vshell/vsh"
)

// Environment is the session's isolated variable store. It starts from a
// copy of the process environment (or a given seed), so nothing written
// here ever reaches the host. Reads are safe from concurrent embeddings.
type Environment struct {
	vars *xsync.Map[string, string]
}

// NewEnvironment seeds the store from vars, or from a copy of the process
// environment when vars is nil.
func NewEnvironment(vars map[string]string) *Environment {
	env := &Environment{vars: xsync.NewMap[string, string]()}
	if vars == nil {
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				env.vars.Store(k, v)
			}
		}
		return env
	}
	for k, v := range vars {
		env.vars.Store(k, v)
	}
	return env
}

// Get returns the variable's value, or an error when it is unset.
func (e *Environment) Get(name string) (string, error) {
	v, ok := e.vars.Load(name)
	if !ok {
		return "", vsh.InvalidArgumentf("variable %s not found in environment", name)
	}
	return v, nil
}

// Set creates or updates a variable.
func (e *Environment) Set(name, value string) {
	e.vars.Store(name, value)
}

// Len returns the number of stored variables.
func (e *Environment) Len() int {
	return e.vars.Size()
}
