package nodeproxy_test

import (
	"context"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/a11ybridged/bridge/accessible"
	"github.com/a11ybridged/bridge/nodeproxy"
)

func Test(t *testing.T) { TestingT(t) }

type NavigateSuite struct{}

var _ = Suite(&NavigateSuite{})

// fakeNode is an in-memory NodeProxy used to exercise the navigation
// algorithm without any transport. Nodes are wired up by address so
// cyclic graphs can be constructed deliberately in loop-guard tests.
type fakeNode struct {
	addr     accessible.Address
	parent   *fakeNode
	children []*fakeNode
	states   accessible.States
	layer    int
	extents  accessible.Rect[int32]
}

func newTree() map[string]*fakeNode {
	mk := func(id string) *fakeNode {
		return &fakeNode{addr: accessible.Address{Bus: "app", Path: id}}
	}
	root := mk("root")
	a := mk("a")
	b := mk("b")
	a1 := mk("a1")
	a2 := mk("a2")
	b1 := mk("b1")

	link := func(parent *fakeNode, children ...*fakeNode) {
		parent.children = children
		for _, ch := range children {
			ch.parent = parent
		}
	}
	link(root, a, b)
	link(a, a1, a2)
	link(b, b1)

	showing := accessible.NewStates(accessible.StateShowing, accessible.StateHighlightable)
	for _, n := range []*fakeNode{root, a, b, a1, a2, b1} {
		n.states = showing
	}

	return map[string]*fakeNode{
		"root": root, "a": a, "b": b, "a1": a1, "a2": a2, "b1": b1,
	}
}

func (n *fakeNode) Address() accessible.Address { return n.addr }
func (n *fakeNode) Name(ctx context.Context) (string, error)        { return n.addr.Path, nil }
func (n *fakeNode) Description(ctx context.Context) (string, error) { return "", nil }
func (n *fakeNode) Role(ctx context.Context) (accessible.Role, error) {
	return accessible.RolePanel, nil
}
func (n *fakeNode) States(ctx context.Context) (accessible.States, error) { return n.states, nil }
func (n *fakeNode) Attributes(ctx context.Context) (accessible.Attributes, error) {
	return accessible.Attributes{}, nil
}

func (n *fakeNode) Parent(ctx context.Context) (nodeproxy.NodeProxy, error) {
	if n.parent == nil {
		return nil, nil
	}
	return n.parent, nil
}

func (n *fakeNode) ChildCount(ctx context.Context) (int, error) { return len(n.children), nil }

func (n *fakeNode) ChildAt(ctx context.Context, index int) (nodeproxy.NodeProxy, error) {
	if index < 0 || index >= len(n.children) {
		return nil, nil
	}
	return n.children[index], nil
}

func (n *fakeNode) Children(ctx context.Context) ([]nodeproxy.NodeProxy, error) {
	out := make([]nodeproxy.NodeProxy, 0, len(n.children))
	for _, ch := range n.children {
		out = append(out, ch)
	}
	return out, nil
}

func (n *fakeNode) IndexInParent(ctx context.Context) (int, error) {
	if n.parent == nil {
		return -1, nil
	}
	for i, ch := range n.parent.children {
		if ch == n {
			return i, nil
		}
	}
	return -1, nil
}

func (n *fakeNode) ReadingMaterial(ctx context.Context) (accessible.ReadingMaterial, error) {
	return accessible.ReadingMaterial{}, nil
}
func (n *fakeNode) NodeInfo(ctx context.Context) (accessible.NodeInfo, error) {
	return accessible.NodeInfo{}, nil
}
func (n *fakeNode) Extents(ctx context.Context, coord nodeproxy.CoordType) (accessible.Rect[int32], error) {
	return n.extents, nil
}
func (n *fakeNode) Layer(ctx context.Context) (int, error)               { return n.layer, nil }
func (n *fakeNode) GrabFocus(ctx context.Context) (bool, error)          { return true, nil }
func (n *fakeNode) GrabHighlight(ctx context.Context) (bool, error)      { return true, nil }
func (n *fakeNode) ClearHighlight(ctx context.Context) (bool, error)     { return true, nil }
func (n *fakeNode) ActionCount(ctx context.Context) (int, error)         { return 0, nil }
func (n *fakeNode) ActionName(ctx context.Context, i int) (string, error) { return "", nil }
func (n *fakeNode) DoActionByName(ctx context.Context, name string) (bool, error) {
	return false, nil
}
func (n *fakeNode) CurrentValue(ctx context.Context) (float64, error)    { return 0, nil }
func (n *fakeNode) SetCurrentValue(ctx context.Context, v float64) error { return nil }
func (n *fakeNode) MinimumValue(ctx context.Context) (float64, error)    { return 0, nil }
func (n *fakeNode) MaximumValue(ctx context.Context) (float64, error)    { return 0, nil }
func (n *fakeNode) MinimumIncrement(ctx context.Context) (float64, error) { return 0, nil }
func (n *fakeNode) Text(ctx context.Context, start, end int) (string, error) { return "", nil }
func (n *fakeNode) CharacterCount(ctx context.Context) (int, error)      { return 0, nil }

var _ nodeproxy.NodeProxy = (*fakeNode)(nil)

func (s *NavigateSuite) TestForwardDFSOrder(c *C) {
	tree := newTree()
	ctx := context.Background()

	next, err := nodeproxy.Neighbor(ctx, tree["root"], tree["root"], true, nodeproxy.ModeNormal, false)
	c.Assert(err, IsNil)
	c.Assert(next, NotNil)
	c.Check(next.Address(), Equals, tree["a"].addr)

	next, err = nodeproxy.Neighbor(ctx, tree["root"], tree["a"], true, nodeproxy.ModeNormal, false)
	c.Assert(err, IsNil)
	c.Check(next.Address(), Equals, tree["a1"].addr)

	next, err = nodeproxy.Neighbor(ctx, tree["root"], tree["a2"], true, nodeproxy.ModeNormal, false)
	c.Assert(err, IsNil)
	c.Check(next.Address(), Equals, tree["b"].addr)
}

func (s *NavigateSuite) TestBackwardDFSOrder(c *C) {
	tree := newTree()
	ctx := context.Background()

	prev, err := nodeproxy.Neighbor(ctx, tree["root"], tree["b"], false, nodeproxy.ModeNormal, false)
	c.Assert(err, IsNil)
	c.Assert(prev, NotNil)
	c.Check(prev.Address(), Equals, tree["b1"].addr)
}

func (s *NavigateSuite) TestForwardFromLastReturnsNoneInNormalMode(c *C) {
	tree := newTree()
	ctx := context.Background()

	next, err := nodeproxy.Neighbor(ctx, tree["root"], tree["b1"], true, nodeproxy.ModeNormal, false)
	c.Assert(err, IsNil)
	c.Check(next, IsNil)
}

func (s *NavigateSuite) TestRecurseToOutsideAlsoReturnsNoneAtEnd(c *C) {
	tree := newTree()
	ctx := context.Background()

	next, err := nodeproxy.Neighbor(ctx, tree["root"], tree["b1"], true, nodeproxy.ModeRecurseToOutside, false)
	c.Assert(err, IsNil)
	c.Check(next, IsNil)
}

func (s *NavigateSuite) TestDefunctNodeIsSkipped(c *C) {
	tree := newTree()
	tree["a1"].states = accessible.NewStates(accessible.StateShowing, accessible.StateHighlightable, accessible.StateDefunct)
	ctx := context.Background()

	next, err := nodeproxy.Neighbor(ctx, tree["root"], tree["a"], true, nodeproxy.ModeNormal, false)
	c.Assert(err, IsNil)
	c.Assert(next, NotNil)
	c.Check(next.Address(), Equals, tree["a2"].addr)
}

func (s *NavigateSuite) TestHiddenNodeSkippedUnlessIncludeHidden(c *C) {
	tree := newTree()
	tree["a1"].states = accessible.NewStates(accessible.StateHighlightable)
	ctx := context.Background()

	next, err := nodeproxy.Neighbor(ctx, tree["root"], tree["a"], true, nodeproxy.ModeNormal, false)
	c.Assert(err, IsNil)
	c.Check(next.Address(), Equals, tree["a2"].addr)

	next, err = nodeproxy.Neighbor(ctx, tree["root"], tree["a"], true, nodeproxy.ModeNormal, true)
	c.Assert(err, IsNil)
	c.Check(next.Address(), Equals, tree["a1"].addr)
}

func (s *NavigateSuite) TestRecurseFromRootIgnoresStartPosition(c *C) {
	tree := newTree()
	ctx := context.Background()

	next, err := nodeproxy.Neighbor(ctx, tree["root"], tree["b1"], true, nodeproxy.ModeRecurseFromRoot, false)
	c.Assert(err, IsNil)
	c.Assert(next, NotNil)
	c.Check(next.Address(), Equals, tree["a"].addr)
}

func (s *NavigateSuite) TestCyclicGraphDoesNotHang(c *C) {
	tree := newTree()
	// a2 claims root as an extra child, forming a cycle; the loop guard
	// (and the NORMAL-mode start exclusion) must keep this terminating.
	tree["a2"].children = append(tree["a2"].children, tree["root"])
	ctx := context.Background()

	next, err := nodeproxy.Neighbor(ctx, tree["root"], tree["root"], true, nodeproxy.ModeNormal, false)
	c.Assert(err, IsNil)
	c.Check(next.Address(), Equals, tree["a"].addr)
}

func (s *NavigateSuite) TestNavigableAtPointPicksHighestLayerOverlap(c *C) {
	tree := newTree()
	tree["a"].extents = accessible.Rect[int32]{X: 0, Y: 0, Width: 100, Height: 100}
	tree["b"].extents = accessible.Rect[int32]{X: 0, Y: 0, Width: 100, Height: 100}
	tree["a"].layer = 1
	tree["b"].layer = 2
	tree["a1"].extents = accessible.Rect[int32]{X: 0, Y: 0, Width: 10, Height: 10}
	tree["root"].children = []*fakeNode{tree["a"], tree["b"]}

	ctx := context.Background()
	found, err := nodeproxy.NavigableAtPoint(ctx, tree["root"], 5, 5, nodeproxy.CoordScreen)
	c.Assert(err, IsNil)
	c.Check(found.Address(), Equals, tree["b"].addr)
}

func (s *NavigateSuite) TestNavigableAtPointDescendsToDeepestMatch(c *C) {
	tree := newTree()
	tree["a"].extents = accessible.Rect[int32]{X: 0, Y: 0, Width: 100, Height: 100}
	tree["a1"].extents = accessible.Rect[int32]{X: 0, Y: 0, Width: 10, Height: 10}
	tree["a2"].extents = accessible.Rect[int32]{X: 50, Y: 50, Width: 10, Height: 10}
	tree["root"].children = []*fakeNode{tree["a"]}

	ctx := context.Background()
	found, err := nodeproxy.NavigableAtPoint(ctx, tree["root"], 5, 5, nodeproxy.CoordScreen)
	c.Assert(err, IsNil)
	c.Check(found.Address(), Equals, tree["a1"].addr)
}
