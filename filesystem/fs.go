package filesystem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vshell/vsh"
	"github.com/vshell/vsh/internal/util"
)

// FileSystem owns the root of the node tree and implements path
// resolution and the tree mutations the command layer builds on.
//
// The tree is single-rooted and acyclic; resolution cost is O(depth)
// with no segment caching.
type FileSystem struct {
	root *Directory
}

// New creates a filesystem holding only the root directory.
func New() *FileSystem {
	return &FileSystem{root: newDirectory("/")}
}

// Root returns the root directory.
func (fs *FileSystem) Root() *Directory { return fs.root }

// Resolve walks path starting at from (nil means root). A leading "/"
// restarts at the root; "." is a no-op; ".." steps to the parent, with the
// root's parent treated as the root itself.
func (fs *FileSystem) Resolve(path string, from *Directory) (Node, error) {
	var cur Node = fs.root
	if from != nil && !strings.HasPrefix(path, "/") {
		cur = from
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || seg == "." {
			continue
		}
		dir, ok := cur.(*Directory)
		if !ok {
			return nil, vsh.NotADirectoryf("%s: not a directory", cur.AbsolutePath())
		}
		if seg == ".." {
			if p := dir.Parent(); p != nil {
				cur = p
			}
			continue
		}
		child, ok := dir.Child(seg)
		if !ok {
			return nil, vsh.PathNotFoundf("%s: no such file or directory", path)
		}
		cur = child
	}
	return cur, nil
}

// ResolveDir resolves path and additionally requires a directory.
func (fs *FileSystem) ResolveDir(path string, from *Directory) (*Directory, error) {
	node, err := fs.Resolve(path, from)
	if err != nil {
		return nil, err
	}
	dir, ok := node.(*Directory)
	if !ok {
		return nil, vsh.NotADirectoryf("%s: not a directory", path)
	}
	return dir, nil
}

// List returns dir's children in insertion order.
func (fs *FileSystem) List(dir *Directory) []Node {
	return dir.Children()
}

// Remove resolves path and detaches the node from its parent, dropping
// the whole subtree for directories. Removing the root is rejected.
func (fs *FileSystem) Remove(path string, from *Directory) (Node, error) {
	logger := util.GetLogger("fs.Remove")

	node, err := fs.Resolve(path, from)
	if err != nil {
		return nil, err
	}
	if node == Node(fs.root) {
		return nil, vsh.InvalidOperationf("cannot remove root directory")
	}
	parent := node.Parent()
	if parent == nil {
		return nil, vsh.InvalidOperationf("%s: node is detached", path)
	}
	detached, _ := parent.RemoveChild(node.Name())
	logger.Debug().Str("path", path).Str("id", node.ID().String()).Msg("Removed node")
	return detached, nil
}

// Rename gives node a new name, failing if a sibling already carries it.
// The root cannot be renamed.
func (fs *FileSystem) Rename(node Node, newName string) error {
	if newName == "" {
		return vsh.InvalidArgumentf("new name cannot be empty")
	}
	if strings.Contains(newName, "/") {
		return vsh.InvalidArgumentf("%q: name cannot contain '/'", newName)
	}
	if node == Node(fs.root) {
		return vsh.InvalidOperationf("cannot rename root directory")
	}
	parent := node.Parent()
	if parent != nil {
		if newName == node.Name() {
			return nil
		}
		if parent.Has(newName) {
			return vsh.NameCollisionf("%q already exists in %q", newName, parent.Name())
		}
		parent.rekeyChild(node.Name(), newName)
	}
	node.setName(newName)
	return nil
}

// Clone deep-copies node (content for files, whole subtree for
// directories) and inserts the copy under newParent. The clone and every
// node in it get fresh identities.
func (fs *FileSystem) Clone(node Node, newParent *Directory) (Node, error) {
	if newParent == nil {
		return nil, vsh.InvalidArgumentf("new parent cannot be nil")
	}
	if Node(newParent) == node {
		return nil, vsh.InvalidOperationf("cannot clone %q into itself", node.Name())
	}
	if inSubtree(node, newParent) {
		return nil, vsh.InvalidOperationf("cannot clone %q into its own subtree", node.Name())
	}
	if newParent.Has(node.Name()) {
		return nil, vsh.NameCollisionf("%q already exists in %q", node.Name(), newParent.Name())
	}
	c := node.clone()
	if err := newParent.AddChild(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Mkdir creates a directory at path. The parent must already exist.
func (fs *FileSystem) Mkdir(path string, from *Directory) (*Directory, error) {
	parent, name, err := fs.resolveParentAndName(path, from)
	if err != nil {
		return nil, err
	}
	if parent.Has(name) {
		return nil, vsh.NameCollisionf("%q already exists in %q", name, parent.AbsolutePath())
	}
	dir, err := NewDirectory(name)
	if err != nil {
		return nil, err
	}
	if err := parent.AddChild(dir); err != nil {
		return nil, err
	}
	logger := util.GetLogger("fs.Mkdir")
	logger.Debug().Str("path", dir.AbsolutePath()).Msg("Created directory")
	return dir, nil
}

// Touch creates an empty file at path. The parent must already exist.
func (fs *FileSystem) Touch(path string, from *Directory) (*File, error) {
	parent, name, err := fs.resolveParentAndName(path, from)
	if err != nil {
		return nil, err
	}
	if parent.Has(name) {
		return nil, vsh.NameCollisionf("%q already exists in %q", name, parent.AbsolutePath())
	}
	file, err := NewFile(name, nil)
	if err != nil {
		return nil, err
	}
	if err := parent.AddChild(file); err != nil {
		return nil, err
	}
	logger := util.GetLogger("fs.Touch")
	logger.Debug().Str("path", file.AbsolutePath()).Msg("Created file")
	return file, nil
}

// Move re-parents the node at fromPath under the directory at toPath.
func (fs *FileSystem) Move(fromPath, toPath string, from *Directory) error {
	src, dst, err := fs.validateMoveOrCopy(fromPath, toPath, from)
	if err != nil {
		return err
	}
	if err := dst.AddChild(src); err != nil {
		return err
	}
	logger := util.GetLogger("fs.Move")
	logger.Debug().Str("from", fromPath).Str("to", toPath).Msg("Moved node")
	return nil
}

// Copy deep-clones the node at fromPath into the directory at toPath and
// returns the clone.
func (fs *FileSystem) Copy(fromPath, toPath string, from *Directory) (Node, error) {
	src, dst, err := fs.validateMoveOrCopy(fromPath, toPath, from)
	if err != nil {
		return nil, err
	}
	c, err := fs.Clone(src, dst)
	if err != nil {
		return nil, err
	}
	logger := util.GetLogger("fs.Copy")
	logger.Debug().Str("from", fromPath).Str("to", toPath).Msg("Copied node")
	return c, nil
}

// TreeString renders dir's subtree: directories first, each group
// alphabetical, directories suffixed with "/", indent spaces per level.
func (fs *FileSystem) TreeString(dir *Directory, indent int) string {
	var b strings.Builder
	renderTree(&b, dir, indent, 0)
	return strings.TrimRight(b.String(), "\n")
}

func renderTree(b *strings.Builder, dir *Directory, indent, level int) {
	prefix := strings.Repeat(" ", indent*level)
	if dir.Parent() == nil {
		fmt.Fprintf(b, "%s%s\n", prefix, dir.Name())
	} else {
		fmt.Fprintf(b, "%s%s/\n", prefix, dir.Name())
	}

	children := dir.Children()
	sort.SliceStable(children, func(i, j int) bool {
		di, dj := children[i].IsDir(), children[j].IsDir()
		if di != dj {
			return di
		}
		return children[i].Name() < children[j].Name()
	})
	for _, child := range children {
		if sub, ok := child.(*Directory); ok {
			renderTree(b, sub, indent, level+1)
		} else {
			fmt.Fprintf(b, "%s%s\n", strings.Repeat(" ", indent*(level+1)), child.Name())
		}
	}
}

// resolveParentAndName splits path into its resolved parent directory and
// the trailing name, for create-style operations.
func (fs *FileSystem) resolveParentAndName(path string, from *Directory) (*Directory, string, error) {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return nil, "", vsh.InvalidArgumentf("path cannot be empty")
	}
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		name := trimmed
		if err := validateLeafName(name); err != nil {
			return nil, "", err
		}
		parent := from
		if parent == nil {
			parent = fs.root
		}
		return parent, name, nil
	}
	name := trimmed[idx+1:]
	if err := validateLeafName(name); err != nil {
		return nil, "", err
	}
	parentPath := trimmed[:idx]
	if parentPath == "" {
		parentPath = "/"
	}
	parent, err := fs.ResolveDir(parentPath, from)
	if err != nil {
		return nil, "", err
	}
	return parent, name, nil
}

func validateLeafName(name string) error {
	if name == "" || name == "." || name == ".." {
		return vsh.InvalidArgumentf("%q: invalid name", name)
	}
	return nil
}

func (fs *FileSystem) validateMoveOrCopy(fromPath, toPath string, from *Directory) (Node, *Directory, error) {
	if fromPath == "" {
		return nil, nil, vsh.InvalidArgumentf("source path cannot be empty")
	}
	if toPath == "" {
		return nil, nil, vsh.InvalidArgumentf("destination path cannot be empty")
	}
	if fromPath == toPath {
		return nil, nil, vsh.InvalidArgumentf("source and destination paths must differ")
	}
	src, err := fs.Resolve(fromPath, from)
	if err != nil {
		return nil, nil, err
	}
	if src == Node(fs.root) {
		return nil, nil, vsh.InvalidOperationf("cannot move or copy root directory")
	}
	dst, err := fs.ResolveDir(toPath, from)
	if err != nil {
		return nil, nil, err
	}
	if inSubtree(src, dst) || Node(dst) == src {
		return nil, nil, vsh.InvalidOperationf("%q is inside %q", toPath, fromPath)
	}
	if dst.Has(src.Name()) {
		return nil, nil, vsh.NameCollisionf("%q already exists in %q", src.Name(), dst.AbsolutePath())
	}
	return src, dst, nil
}

// inSubtree reports whether candidate lives strictly below node.
func inSubtree(node Node, candidate *Directory) bool {
	for p := candidate.Parent(); p != nil; p = p.Parent() {
		if Node(p) == node {
			return true
		}
	}
	return false
}
