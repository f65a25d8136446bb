// Package vfsxml is the loader boundary: it turns a declarative XML tree
// description into a filesystem satisfying the core invariants (single
// root, acyclic, unique sibling names).
//
// The format is nested <folder name="..."> and <file name="..."
// content="..."> elements under an arbitrary root element; file content is
// base64-encoded. Elements without a name attribute are skipped.
package vfsxml

import (
	"encoding/base64"
	"encoding/xml"
	"os"

	"github.com/vshell/vsh"
	"github.com/vshell/vsh/filesystem"
	"github.com/vshell/vsh/internal/util"
)

type xmlNode struct {
	XMLName  xml.Name
	Name     string    `xml:"name,attr"`
	Content  string    `xml:"content,attr"`
	Children []xmlNode `xml:",any"`
}

// Load reads and parses the XML source at path into a fresh filesystem.
func Load(path string) (*filesystem.FileSystem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, vsh.WrapKind(vsh.KindPathNotFound, err, "VFS source not found: %s", path)
	}
	return Parse(data)
}

// Parse builds a filesystem from raw XML data.
func Parse(data []byte) (*filesystem.FileSystem, error) {
	logger := util.GetLogger("vfsxml")

	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, vsh.WrapKind(vsh.KindInvalidArgument, err, "malformed VFS source: %v", err)
	}

	fs := filesystem.New()
	for _, child := range root.Children {
		if err := build(fs.Root(), child); err != nil {
			return nil, err
		}
	}
	logger.Debug().Int("entries", fs.Root().Len()).Msg("Built filesystem from VFS source")
	return fs, nil
}

func build(parent *filesystem.Directory, n xmlNode) error {
	if n.Name == "" {
		return nil
	}
	switch n.XMLName.Local {
	case "folder":
		dir, err := filesystem.NewDirectory(n.Name)
		if err != nil {
			return err
		}
		if err := parent.AddChild(dir); err != nil {
			return err
		}
		for _, child := range n.Children {
			if err := build(dir, child); err != nil {
				return err
			}
		}
	case "file":
		file, err := filesystem.NewFile(n.Name, decodeContent(n.Content))
		if err != nil {
			return err
		}
		if err := parent.AddChild(file); err != nil {
			return err
		}
	default:
		logger := util.GetLogger("vfsxml")
		logger.Warn().Str("tag", n.XMLName.Local).Str("name", n.Name).Msg("Unknown element, skipping")
	}
	return nil
}

// decodeContent decodes the base64 content attribute; sources that carry
// plain text fall back to the raw attribute value.
func decodeContent(raw string) []byte {
	if raw == "" {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return []byte(raw)
	}
	return decoded
}
