package nodeproxy

import (
	"context"

	"github.com/a11ybridged/bridge/accessible"
)

// Mode selects a neighbor-search variant (§4.E).
type Mode int

const (
	ModeNormal Mode = iota
	ModeRecurseFromRoot
	ModeContinueAfterFailedRecursion
	ModeRecurseToOutside
)

// maxIterations bounds the iterative DFS so cyclic graphs (a node
// claimed as child by more than one parent) cannot loop forever; it
// must exceed any expected real tree size (§4.E "loop-guard counter").
const maxIterations = 100000

// Neighbor computes the next (forward=true) or previous (forward=false)
// highlightable proxy from start, scoped to root, under mode. It
// returns (nil, nil) when no neighbor exists within scope.
//
// includeHidden mirrors the bridge-wide "include hidden" flag: when
// false, nodes lacking SHOWING are excluded from traversal; when true
// they remain candidates (§4.E tie-break).
func Neighbor(ctx context.Context, root, start NodeProxy, forward bool, mode Mode, includeHidden bool) (NodeProxy, error) {
	current := start
	if mode == ModeRecurseFromRoot {
		current = root
	}

	rootParent, err := parentAddress(ctx, root)
	if err != nil {
		return nil, err
	}
	startAddr := start.Address()

	iterations := 0
	for iterations < maxIterations {
		iterations++

		children, err := validChildren(ctx, current, startAddr, mode, includeHidden)
		if err != nil {
			return nil, err
		}
		if len(children) > 0 {
			current = pick(children, forward)
			if ok, err := highlightable(ctx, current); err != nil {
				return nil, err
			} else if ok {
				return current, nil
			}
			continue
		}

		// Leaf or exhausted: ascend, hopping across siblings until one
		// is found or the search leaves scope.
		next, found, leftScope, err := ascend(ctx, root, rootParent, current, forward, mode, includeHidden, &iterations)
		if err != nil {
			return nil, err
		}
		if leftScope {
			return nil, nil
		}
		if found {
			if ok, err := highlightable(ctx, next); err != nil {
				return nil, err
			} else if ok {
				return next, nil
			}
		}
		current = next
	}
	return nil, nil
}

// ascend repeatedly climbs from current toward root's scope, trying a
// sibling at each level, until it finds a candidate to resume
// descending from (found=true), determines the search has left scope
// (leftScope=true), or the guard expires.
func ascend(ctx context.Context, root NodeProxy, rootParent accessible.Address, current NodeProxy, forward bool, mode Mode, includeHidden bool, iterations *int) (NodeProxy, bool, bool, error) {
	for *iterations < maxIterations {
		*iterations++

		parent, err := current.Parent(ctx)
		if err != nil {
			return nil, false, false, err
		}
		if parent == nil || parent.Address().Equal(rootParent) {
			switch mode {
			case ModeRecurseToOutside:
				return nil, false, true, nil
			case ModeContinueAfterFailedRecursion:
				if parent == nil {
					return nil, false, true, nil
				}
				current = parent
				continue
			default:
				return nil, false, true, nil
			}
		}

		siblings, err := validChildren(ctx, parent, accessible.Address{}, mode, includeHidden)
		if err != nil {
			return nil, false, false, err
		}
		idx := indexOfAddress(siblings, current.Address())
		if sibling := siblingAt(siblings, idx, forward); sibling != nil {
			return sibling, true, false, nil
		}
		current = parent
	}
	return nil, false, true, nil
}

func pick(children []NodeProxy, forward bool) NodeProxy {
	if forward {
		return children[0]
	}
	return children[len(children)-1]
}

func siblingAt(siblings []NodeProxy, idx int, forward bool) NodeProxy {
	if idx < 0 {
		return nil
	}
	if forward {
		if idx+1 < len(siblings) {
			return siblings[idx+1]
		}
		return nil
	}
	if idx-1 >= 0 {
		return siblings[idx-1]
	}
	return nil
}

func indexOfAddress(nodes []NodeProxy, addr accessible.Address) int {
	for i, n := range nodes {
		if n.Address().Equal(addr) {
			return i
		}
	}
	return -1
}

// validChildren returns of's children filtered per §4.E: non-null,
// not defunct, not hidden (unless includeHidden), and — in NORMAL mode
// — never the search's own start node (guards against cyclic graphs
// re-entering the node the search began at).
func validChildren(ctx context.Context, of NodeProxy, startAddr accessible.Address, mode Mode, includeHidden bool) ([]NodeProxy, error) {
	all, err := of.Children(ctx)
	if err != nil {
		return nil, err
	}
	valid := make([]NodeProxy, 0, len(all))
	for _, child := range all {
		if child == nil {
			continue
		}
		states, err := child.States(ctx)
		if err != nil {
			return nil, err
		}
		if IsDefunct(states) {
			continue
		}
		if !includeHidden && !IsShowing(states) {
			continue
		}
		if mode == ModeNormal && !startAddr.IsNull() && child.Address().Equal(startAddr) {
			continue
		}
		valid = append(valid, child)
	}
	return valid, nil
}

func highlightable(ctx context.Context, p NodeProxy) (bool, error) {
	states, err := p.States(ctx)
	if err != nil {
		return false, err
	}
	return IsHighlightable(states), nil
}

func parentAddress(ctx context.Context, root NodeProxy) (accessible.Address, error) {
	parent, err := root.Parent(ctx)
	if err != nil {
		return accessible.Address{}, err
	}
	if parent == nil {
		return accessible.Address{}, nil
	}
	return parent.Address(), nil
}

// NavigableAtPoint returns the deepest navigable descendant of root
// whose extents contain (x, y) under coord, preferring the
// highest-layer child when extents overlap (§4.E).
func NavigableAtPoint(ctx context.Context, root NodeProxy, x, y int32, coord CoordType) (NodeProxy, error) {
	current := root
	for {
		children, err := current.Children(ctx)
		if err != nil {
			return nil, err
		}
		var best NodeProxy
		var bestLayer int
		for _, child := range children {
			if child == nil {
				continue
			}
			ext, err := child.Extents(ctx, coord)
			if err != nil {
				continue
			}
			if !ext.Contains(x, y) {
				continue
			}
			layer, err := child.Layer(ctx)
			if err != nil {
				layer = 0
			}
			if best == nil || layer >= bestLayer {
				best = child
				bestLayer = layer
			}
		}
		if best == nil {
			return current, nil
		}
		current = best
	}
}
