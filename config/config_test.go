package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vshell/vsh/internal/util"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultTreeIndent, cfg.TreeIndent)
	assert.Equal(t, DefaultHeadLines, cfg.HeadLines)
	assert.Equal(t, DefaultPromptColor, cfg.PromptColor)
	assert.Empty(t, cfg.VFSPath)
	assert.Empty(t, cfg.ScriptPath)
}

func TestMerge_PartialOverride(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Merge(&ConfigOverride{
		LogLevel:  util.Pointer("debug"),
		HeadLines: util.Pointer(10),
	})

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.HeadLines)
	// untouched fields keep their defaults
	assert.Equal(t, DefaultTreeIndent, cfg.TreeIndent)
	assert.Equal(t, DefaultPromptColor, cfg.PromptColor)
}

func TestMerge_ZeroValuesAreApplied(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Merge(&ConfigOverride{
		HeadLines:   util.Pointer(0),
		PromptColor: util.Pointer(false),
	})

	assert.Equal(t, 0, cfg.HeadLines)
	assert.False(t, cfg.PromptColor)
}

func TestMerge_EmptyOverride(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Merge(&ConfigOverride{})

	assert.Equal(t, NewDefaultConfig(), cfg)
}

func TestLoadConfigOverrideFile_YAML(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "vsh.yaml", `
log_level: warn
tree_indent: 4
prompt_color: false
vfs_path: /tmp/tree.xml
`)

	override, err := LoadConfigOverrideFile(path)
	require.NoError(t, err)

	require.NotNil(t, override.LogLevel)
	assert.Equal(t, "warn", *override.LogLevel)
	require.NotNil(t, override.TreeIndent)
	assert.Equal(t, 4, *override.TreeIndent)
	require.NotNil(t, override.PromptColor)
	assert.False(t, *override.PromptColor)
	require.NotNil(t, override.VFSPath)
	assert.Equal(t, "/tmp/tree.xml", *override.VFSPath)
	assert.Nil(t, override.HeadLines)
	assert.Nil(t, override.ScriptPath)
}

func TestLoadConfigOverrideFile_JSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "vsh.json", `{"head_lines": 3, "script_path": "run.vsh"}`)

	override, err := LoadConfigOverrideFile(path)
	require.NoError(t, err)

	require.NotNil(t, override.HeadLines)
	assert.Equal(t, 3, *override.HeadLines)
	require.NotNil(t, override.ScriptPath)
	assert.Equal(t, "run.vsh", *override.ScriptPath)
	assert.Nil(t, override.LogLevel)
}

func TestLoadConfigOverrideFile_UnknownExtension(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "vsh.toml", `log_level = "debug"`)

	_, err := LoadConfigOverrideFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config file extension")
}

func TestLoadConfigOverrideFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadConfigOverrideFile(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
}

func TestNewConfigFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "vsh.yml", "log_level: trace\n")

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Equal(t, DefaultHeadLines, cfg.HeadLines)
}

func TestNewConfigFromFile_Malformed(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "vsh.yaml", "log_level: [unterminated")

	_, err := NewConfigFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config file")
}
