package filesystem

import (
	"github.com/google/uuid"

	"github.com/vshell/vsh"
)

// Node is a tree element: either a *File or a *Directory. The parent
// back-reference is non-owning; a Directory exclusively owns its children,
// so dropping a subtree's root drops the subtree.
type Node interface {
	// ID is the node's session-unique identity. Clones get a fresh ID.
	ID() uuid.UUID
	// Name is the node's name, unique among siblings (case-sensitive).
	Name() string
	// Parent returns the owning directory, nil for the root and for
	// detached nodes.
	Parent() *Directory
	// AbsolutePath joins names from the root down to this node with "/".
	// The root's path is "/".
	AbsolutePath() string
	// IsDir reports whether the node is a Directory.
	IsDir() bool

	setName(name string)
	setParent(p *Directory)
	clone() Node
}

// nodeBase carries the fields every node variant shares.
type nodeBase struct {
	id     uuid.UUID
	name   string
	parent *Directory
}

func (n *nodeBase) ID() uuid.UUID          { return n.id }
func (n *nodeBase) Name() string           { return n.name }
func (n *nodeBase) Parent() *Directory     { return n.parent }
func (n *nodeBase) setName(name string)    { n.name = name }
func (n *nodeBase) setParent(p *Directory) { n.parent = p }

// File is a leaf node holding an opaque byte sequence, decoded once at
// construction time from the external encoding.
type File struct {
	nodeBase
	content []byte
}

// NewFile creates a detached file node. The content slice is copied.
func NewFile(name string, content []byte) (*File, error) {
	if name == "" {
		return nil, vsh.InvalidArgumentf("file name cannot be empty")
	}
	f := &File{nodeBase: nodeBase{id: uuid.New(), name: name}}
	f.content = append([]byte(nil), content...)
	return f, nil
}

// Read returns a copy of the file's content.
func (f *File) Read() []byte {
	return append([]byte(nil), f.content...)
}

// Write replaces the file's content. Empty content truncates, same as
// [File.Clear].
func (f *File) Write(content []byte) {
	f.content = append([]byte(nil), content...)
}

// Clear truncates the file to empty.
func (f *File) Clear() { f.content = nil }

// Size returns the content length in bytes.
func (f *File) Size() int { return len(f.content) }

func (f *File) IsDir() bool { return false }

func (f *File) AbsolutePath() string { return absolutePath(f) }

func (f *File) clone() Node {
	c := &File{nodeBase: nodeBase{id: uuid.New(), name: f.name}}
	c.content = append([]byte(nil), f.content...)
	return c
}

// Directory is an interior node with insertion-ordered, uniquely named
// children.
type Directory struct {
	nodeBase
	children map[string]Node
	order    []string // child names in insertion order
}

// NewDirectory creates a detached directory node.
func NewDirectory(name string) (*Directory, error) {
	if name == "" {
		return nil, vsh.InvalidArgumentf("directory name cannot be empty")
	}
	return newDirectory(name), nil
}

func newDirectory(name string) *Directory {
	return &Directory{
		nodeBase: nodeBase{id: uuid.New(), name: name},
		children: make(map[string]Node),
	}
}

// AddChild links child under this directory and sets its parent reference.
// A child already owned elsewhere is detached from its old parent first.
func (d *Directory) AddChild(child Node) error {
	if child == nil {
		return vsh.InvalidArgumentf("child cannot be nil")
	}
	if _, exists := d.children[child.Name()]; exists {
		return vsh.NameCollisionf("%q already exists in %q", child.Name(), d.name)
	}
	if old := child.Parent(); old != nil {
		old.RemoveChild(child.Name())
	}
	d.children[child.Name()] = child
	d.order = append(d.order, child.Name())
	child.setParent(d)
	return nil
}

// RemoveChild detaches the named child and returns it. The second return
// is false if no such child exists.
func (d *Directory) RemoveChild(name string) (Node, bool) {
	child, exists := d.children[name]
	if !exists {
		return nil, false
	}
	delete(d.children, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	child.setParent(nil)
	return child, true
}

// Child returns the named child, if present.
func (d *Directory) Child(name string) (Node, bool) {
	child, ok := d.children[name]
	return child, ok
}

// Has reports whether a child with the given name exists.
func (d *Directory) Has(name string) bool {
	_, ok := d.children[name]
	return ok
}

// Children returns the children in insertion order.
func (d *Directory) Children() []Node {
	out := make([]Node, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.children[name])
	}
	return out
}

// Len returns the number of children.
func (d *Directory) Len() int { return len(d.children) }

func (d *Directory) IsDir() bool { return true }

func (d *Directory) AbsolutePath() string { return absolutePath(d) }

func (d *Directory) clone() Node {
	c := newDirectory(d.name)
	for _, name := range d.order {
		child := d.children[name].clone()
		c.children[name] = child
		c.order = append(c.order, name)
		child.setParent(c)
	}
	return c
}

// rekeyChild moves an owned child to a new map key in place, preserving
// its position in the insertion order. Used by rename.
func (d *Directory) rekeyChild(oldName, newName string) {
	child, ok := d.children[oldName]
	if !ok {
		return
	}
	delete(d.children, oldName)
	d.children[newName] = child
	for i, n := range d.order {
		if n == oldName {
			d.order[i] = newName
			break
		}
	}
}

func absolutePath(n Node) string {
	p := n.Parent()
	if p == nil {
		// The root's name is "/"; a detached node's path is just its name.
		return n.Name()
	}
	pPath := p.AbsolutePath()
	if pPath == "/" {
		return "/" + n.Name()
	}
	return pPath + "/" + n.Name()
}
