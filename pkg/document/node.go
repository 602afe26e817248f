package document

import (
	"github.com/vango-dev/htmlkit/pkg/attrs"
	"github.com/vango-dev/htmlkit/pkg/markup"
)

// Node is one element or text run of a document.
//
// A node with an empty Tag is a text node: Text is encoded, HTML is
// inserted as is. Element nodes render Text, then HTML, then Children as
// their content.
type Node struct {
	Tag      string
	Attrs    *attrs.Map
	Text     string
	HTML     string
	Children []*Node

	// Items, when set on a select element, are rendered as its options.
	Items     markup.Items
	Selection markup.Selection

	// Line and Column locate the node in its source, 1-based.
	Line   int
	Column int
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Tag == "" }

// Walk calls fn for n and every descendant in document order. It stops
// descending into a node when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}
