package nav

import "github.com/smithy-lang/smithy-language-server/internal/idl"

// EdgeKind discriminates a single step of a NodeCursor path.
type EdgeKind int

const (
	EdgeObj EdgeKind = iota
	EdgeArr
	EdgeKey
	EdgeValueForKey
	EdgeElem
	EdgeTerminal
)

// Edge is one step of the path NodeCursor builds from a root Node down to
// the node/position found at a document offset. Only the fields relevant
// to Kind are populated.
type Edge struct {
	Kind   EdgeKind
	Node   *idl.Node // Obj / Arr / Terminal
	Name   string    // Key / ValueForKey
	Index  int       // Elem
	Parent *idl.Node // Key / ValueForKey / Elem: the enclosing Kvps or Arr
}

// NodeCursor walks the ordered Edge path from a root Node value to whatever
// is at a document offset, letting feature handlers (completion, hover)
// read off context ergonomically.
type NodeCursor struct {
	Path       []Edge
	pos        int
	checkpoint int
}

// NewNodeCursor builds the path for offset within root.
func NewNodeCursor(root *idl.Node, offset int) *NodeCursor {
	var path []Edge
	buildPath(root, offset, &path)
	return &NodeCursor{Path: path}
}

func buildPath(n *idl.Node, offset int, path *[]Edge) {
	if n == nil {
		return
	}
	switch n.Kind {
	case idl.NodeObj:
		*path = append(*path, Edge{Kind: EdgeObj, Node: n})
		buildKvpsPath(n.Body, offset, path)
	case idl.NodeKvps:
		// A trait's naked-kvps value (e.g. @foo(bar: "baz")) has no wrapping
		// Obj node; n itself is the Kvps.
		*path = append(*path, Edge{Kind: EdgeObj, Node: n})
		buildKvpsPath(n, offset, path)
	case idl.NodeArr:
		*path = append(*path, Edge{Kind: EdgeArr, Node: n})
		buildArrPath(n, offset, path)
	default:
		*path = append(*path, Edge{Kind: EdgeTerminal, Node: n})
	}
}

func buildKvpsPath(kvps *idl.Node, offset int, path *[]Edge) {
	if kvps == nil {
		return
	}
	for _, kvp := range kvps.Items {
		if kvp == nil {
			continue
		}
		key := kvp.Key
		if key != nil && offset >= key.Start && offset <= key.End {
			*path = append(*path, Edge{Kind: EdgeKey, Name: key.Text, Parent: kvps})
			return
		}
		val := kvp.Value
		if val != nil && offset >= val.Start && offset <= val.End {
			*path = append(*path, Edge{Kind: EdgeValueForKey, Name: keyText(key), Parent: kvps})
			buildPath(val, offset, path)
			return
		}
	}
	// Past all Kvps but still inside the Kvps span: treat the last Kvp as
	// the target, as if the cursor is mid-edit after the final value.
	if len(kvps.Items) > 0 && offset >= kvps.Start && offset <= kvps.End {
		last := kvps.Items[len(kvps.Items)-1]
		*path = append(*path, Edge{Kind: EdgeValueForKey, Name: keyText(last.Key), Parent: kvps})
	}
}

func buildArrPath(arr *idl.Node, offset int, path *[]Edge) {
	for i, item := range arr.Items {
		if item != nil && offset >= item.Start && offset <= item.End {
			*path = append(*path, Edge{Kind: EdgeElem, Index: i, Parent: arr})
			buildPath(item, offset, path)
			return
		}
	}
	if len(arr.Items) > 0 && offset >= arr.Start && offset <= arr.End {
		*path = append(*path, Edge{Kind: EdgeElem, Index: len(arr.Items) - 1, Parent: arr})
	}
}

func keyText(key *idl.Node) string {
	if key == nil {
		return ""
	}
	return key.Text
}

// Next returns the next edge in the path and advances the cursor.
func (c *NodeCursor) Next() (Edge, bool) {
	if c.pos >= len(c.Path) {
		return Edge{}, false
	}
	e := c.Path[c.pos]
	c.pos++
	return e, true
}

// Previous steps the cursor back one edge and returns it.
func (c *NodeCursor) Previous() (Edge, bool) {
	if c.pos <= 0 {
		return Edge{}, false
	}
	c.pos--
	return c.Path[c.pos], true
}

// SetCheckpoint remembers the current cursor position for a later
// ReturnToCheckpoint.
func (c *NodeCursor) SetCheckpoint() { c.checkpoint = c.pos }

// ReturnToCheckpoint rewinds the cursor to the last SetCheckpoint call (or
// the start, if none was set).
func (c *NodeCursor) ReturnToCheckpoint() { c.pos = c.checkpoint }

// Terminal returns the final edge of the path, if any -- the node or
// key/value position the offset actually resolved to.
func (c *NodeCursor) Terminal() (Edge, bool) {
	if len(c.Path) == 0 {
		return Edge{}, false
	}
	return c.Path[len(c.Path)-1], true
}
