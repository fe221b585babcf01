package parser

// Tree is the result of one parse. Trees are immutable; an incremental parse
// returns a new tree that may share unchanged subtrees with older ones.
type Tree struct {
	Root   *Node
	length int
	reused int
}

// Length returns the length of the document the tree was built from.
func (t *Tree) Length() int {
	return t.length
}

// Reused returns how many subtrees were taken over from fragments.
func (t *Tree) Reused() int {
	return t.reused
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return t.Root.String()
}

// HasError reports whether any node in the tree is an error node.
func (t *Tree) HasError() bool {
	return t.Root != nil && t.Root.HasError()
}

// Errors returns every error node in document order.
func (t *Tree) Errors() []*Node {
	var errs []*Node
	t.Walk(func(n *Node, _ int) bool {
		if n.Kind == KindError {
			errs = append(errs, n)
		}
		return n.HasError()
	})
	return errs
}

// Walk visits the nodes depth first. Returning false from fn skips the
// children of the node just visited.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	if t.Root == nil {
		return
	}
	walk(t.Root, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}

func (t *Tree) Cursor() *Cursor {
	return &Cursor{stack: []cursorFrame{{node: t.Root}}}
}

// NodeAt returns the innermost node that covers pos.
func (t *Tree) NodeAt(pos int) *Node {
	c := t.Cursor()
	for c.enterAt(pos) {
	}
	return c.Node()
}

type cursorFrame struct {
	node  *Node
	index int
}

// Cursor walks a tree. It keeps the path from the root, since nodes do not
// point at their parents.
type Cursor struct {
	stack []cursorFrame
}

func (c *Cursor) Node() *Node {
	return c.stack[len(c.stack)-1].node
}

func (c *Cursor) Name() string {
	return c.Node().Name()
}

func (c *Cursor) Kind() NodeKind {
	return c.Node().Kind
}

func (c *Cursor) From() int {
	return c.Node().From
}

func (c *Cursor) To() int {
	return c.Node().To
}

// Depth is zero at the root.
func (c *Cursor) Depth() int {
	return len(c.stack) - 1
}

func (c *Cursor) FirstChild() bool {
	n := c.Node()
	if len(n.Children) == 0 {
		return false
	}
	c.stack = append(c.stack, cursorFrame{node: n.Children[0]})
	return true
}

func (c *Cursor) NextSibling() bool {
	if len(c.stack) < 2 {
		return false
	}
	top := &c.stack[len(c.stack)-1]
	parent := c.stack[len(c.stack)-2].node
	if top.index+1 >= len(parent.Children) {
		return false
	}
	top.index++
	top.node = parent.Children[top.index]
	return true
}

func (c *Cursor) Parent() bool {
	if len(c.stack) < 2 {
		return false
	}
	c.stack = c.stack[:len(c.stack)-1]
	return true
}

// Ancestor returns the node n levels up, or nil.
func (c *Cursor) Ancestor(n int) *Node {
	i := len(c.stack) - 1 - n
	if i < 0 {
		return nil
	}
	return c.stack[i].node
}

// Next moves to the next node in document order. It returns false once the
// walk is complete.
func (c *Cursor) Next() bool {
	if c.FirstChild() {
		return true
	}
	for {
		if c.NextSibling() {
			return true
		}
		if !c.Parent() {
			return false
		}
	}
}

func (c *Cursor) enterAt(pos int) bool {
	n := c.Node()
	for i, child := range n.Children {
		if child.From <= pos && pos < child.To {
			c.stack = append(c.stack, cursorFrame{node: child, index: i})
			return true
		}
	}
	return false
}
