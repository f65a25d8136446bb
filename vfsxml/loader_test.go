package vfsxml

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vshell/vsh"
	"github.com/vshell/vsh/filesystem"
)

const scenarioXML = `<filesystem>
  <folder name="home">
    <file name="hello.txt" content="SGVsbG8gV29ybGQh"/>
  </folder>
  <file name="LICENSE" content="TUlU"/>
</filesystem>`

func TestParse_Scenario(t *testing.T) {
	t.Parallel()

	fs, err := Parse([]byte(scenarioXML))
	require.NoError(t, err)

	hello, err := fs.Resolve("/home/hello.txt", nil)
	require.NoError(t, err)
	file, ok := hello.(*filesystem.File)
	require.True(t, ok)
	assert.Equal(t, "Hello World!", string(file.Read()))

	license, err := fs.Resolve("/LICENSE", nil)
	require.NoError(t, err)
	assert.Equal(t, "MIT", string(license.(*filesystem.File).Read()))
}

func TestParse_PreservesSourceOrder(t *testing.T) {
	t.Parallel()

	fs, err := Parse([]byte(scenarioXML))
	require.NoError(t, err)

	names := []string{}
	for _, child := range fs.Root().Children() {
		names = append(names, child.Name())
	}
	assert.Equal(t, []string{"home", "LICENSE"}, names)
}

func TestParse_PlainTextContentFallback(t *testing.T) {
	t.Parallel()

	// "not base64!" is not valid base64; the raw attribute is kept
	fs, err := Parse([]byte(`<fs><file name="raw.txt" content="not base64!"/></fs>`))
	require.NoError(t, err)

	node, err := fs.Resolve("/raw.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "not base64!", string(node.(*filesystem.File).Read()))
}

func TestParse_EmptyContent(t *testing.T) {
	t.Parallel()

	fs, err := Parse([]byte(`<fs><file name="empty.txt"/></fs>`))
	require.NoError(t, err)

	node, err := fs.Resolve("/empty.txt", nil)
	require.NoError(t, err)
	assert.Empty(t, node.(*filesystem.File).Read())
}

func TestParse_SkipsUnnamedAndUnknownElements(t *testing.T) {
	t.Parallel()

	fs, err := Parse([]byte(`<fs>
		<folder/>
		<symlink name="ignored"/>
		<folder name="kept"/>
	</fs>`))
	require.NoError(t, err)

	assert.Equal(t, 1, fs.Root().Len())
	assert.True(t, fs.Root().Has("kept"))
}

func TestParse_NestedFolders(t *testing.T) {
	t.Parallel()

	content := base64.StdEncoding.EncodeToString([]byte("deep"))
	fs, err := Parse([]byte(`<fs>
		<folder name="a">
			<folder name="b">
				<file name="c.txt" content="` + content + `"/>
			</folder>
		</folder>
	</fs>`))
	require.NoError(t, err)

	node, err := fs.Resolve("/a/b/c.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, "deep", string(node.(*filesystem.File).Read()))
}

func TestParse_DuplicateSiblingNames(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`<fs><file name="x"/><folder name="x"/></fs>`))

	require.Error(t, err)
	assert.Equal(t, vsh.KindNameCollision, vsh.KindOf(err))
}

func TestParse_MalformedXML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`<fs><folder name="open"`))

	require.Error(t, err)
	assert.Equal(t, vsh.KindInvalidArgument, vsh.KindOf(err))
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tree.xml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioXML), 0o644))

	fs, err := Load(path)
	require.NoError(t, err)
	assert.True(t, fs.Root().Has("home"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.xml"))

	require.Error(t, err)
	assert.Equal(t, vsh.KindPathNotFound, vsh.KindOf(err))
}
