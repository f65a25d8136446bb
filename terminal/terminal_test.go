package terminal

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vshell/vsh"
	"github.com/vshell/vsh/command"
	"github.com/vshell/vsh/config"
	"github.com/vshell/vsh/filesystem"
)

// newTestTerminal builds a session over the scenario tree:
//
//	/
//	  home/
//	    hello.txt ("Hello World!")
//	  LICENSE     ("MIT")
func newTestTerminal(t *testing.T) *Terminal {
	t.Helper()
	fs := filesystem.New()
	home, err := filesystem.NewDirectory("home")
	require.NoError(t, err)
	require.NoError(t, fs.Root().AddChild(home))
	hello, err := filesystem.NewFile("hello.txt", []byte("Hello World!"))
	require.NoError(t, err)
	require.NoError(t, home.AddChild(hello))
	license, err := filesystem.NewFile("LICENSE", []byte("MIT"))
	require.NoError(t, err)
	require.NoError(t, fs.Root().AddChild(license))

	registry := command.NewRegistry()
	require.NoError(t, command.RegisterBuiltins(registry))

	cfg := config.NewDefaultConfig()
	cfg.PromptColor = false
	env := NewEnvironment(map[string]string{"USER": "tester", "GREETING": "hi"})
	return New(cfg, fs, env, NewUser(env), registry)
}

func TestSubmit_Scenario(t *testing.T) {
	t.Parallel()
	term := newTestTerminal(t)

	require.NoError(t, term.Submit("cd home").Err)
	out := term.Submit("ls")
	require.NoError(t, out.Err)
	assert.Equal(t, "hello.txt", out.Text)

	require.NoError(t, term.Submit("cd /").Err)
	out = term.Submit("ls")
	require.NoError(t, out.Err)
	assert.Equal(t, "home\nLICENSE", out.Text)
}

func TestSubmit_BlankLine(t *testing.T) {
	t.Parallel()
	term := newTestTerminal(t)

	out := term.Submit("   ")

	assert.NoError(t, out.Err)
	assert.Empty(t, out.Text)
	assert.True(t, term.Running())
}

func TestSubmit_EnvLookup(t *testing.T) {
	t.Parallel()
	term := newTestTerminal(t)

	out := term.Submit("$GREETING")
	require.NoError(t, out.Err)
	assert.Equal(t, "hi", out.Text)

	out = term.Submit("$MISSING")
	require.Error(t, out.Err)
	assert.Contains(t, out.Err.Error(), "MISSING")
}

func TestSubmit_FailureKeepsSessionAlive(t *testing.T) {
	t.Parallel()
	term := newTestTerminal(t)

	out := term.Submit("cd /nowhere")
	assert.Equal(t, vsh.KindPathNotFound, vsh.KindOf(out.Err))
	assert.True(t, term.Running())

	// the next line still works
	out = term.Submit("pwd")
	require.NoError(t, out.Err)
	assert.Equal(t, "/", out.Text)
}

func TestSubmit_Exit(t *testing.T) {
	t.Parallel()
	term := newTestTerminal(t)

	out := term.Submit("exit")

	assert.True(t, out.Terminate)
	assert.False(t, term.Running())
}

func TestPrompt(t *testing.T) {
	t.Parallel()
	term := newTestTerminal(t)

	assert.Equal(t, "tester@"+term.user.Host+":/$ ", term.Prompt())

	require.NoError(t, term.Submit("cd home").Err)
	assert.Equal(t, "tester@"+term.user.Host+":/home$ ", term.Prompt())
}

func TestSetFS_ResetsCwd(t *testing.T) {
	t.Parallel()
	term := newTestTerminal(t)
	require.NoError(t, term.Submit("cd home").Err)

	fresh := filesystem.New()
	term.SetFS(fresh)

	assert.Equal(t, fresh, term.FS())
	assert.Equal(t, fresh.Root(), term.Cwd())
}

func TestEnvironment_Isolation(t *testing.T) {
	t.Parallel()

	env := NewEnvironment(nil)
	env.Set("VSH_TEST_ISOLATION", "set")

	v, err := env.Get("VSH_TEST_ISOLATION")
	require.NoError(t, err)
	assert.Equal(t, "set", v)

	// the host process must never see the write
	_, found := os.LookupEnv("VSH_TEST_ISOLATION")
	assert.False(t, found)
}

func TestEnvironment_GetMissing(t *testing.T) {
	t.Parallel()

	env := NewEnvironment(map[string]string{})

	_, err := env.Get("NOPE")
	require.Error(t, err)
	assert.Equal(t, vsh.KindInvalidArgument, vsh.KindOf(err))
}

func TestEnvironment_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	env := NewEnvironment(map[string]string{"K": "v"})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				env.Set("K", "v")
				got, err := env.Get("K")
				assert.NoError(t, err)
				assert.Equal(t, "v", got)
			}
		}()
	}
	wg.Wait()
}

func TestUser_Fallbacks(t *testing.T) {
	t.Parallel()

	user := NewUser(NewEnvironment(map[string]string{}))

	assert.Equal(t, "user", user.Name)
	assert.NotEmpty(t, user.Host)
}
