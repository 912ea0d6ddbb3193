// Copyright (C) 2026 a11ybridged contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License version 3 as
// published by the Free Software Foundation.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package inspector

import (
	"context"
	"fmt"
	"strconv"

	"github.com/a11ybridged/bridge/accessible"
	"github.com/a11ybridged/bridge/atspi"
	"github.com/a11ybridged/bridge/nodeproxy"
)

// ProxySource adapts a live nodeproxy tree to Source: object-ids are
// the decimal suffix of the canonical accessible path, the same
// convention the bridge's own registry uses, so the inspector can
// address any object the bridge serves without a separate id space.
type ProxySource struct {
	factory   *nodeproxy.Factory
	bus       string
	rootID    int
	focusedID int
}

// NewProxySource returns a Source rooted at root, resolving further
// objects through factory. root's own id is parsed from its address.
func NewProxySource(factory *nodeproxy.Factory, root nodeproxy.NodeProxy) (*ProxySource, error) {
	rootID, err := idForAddress(root.Address())
	if err != nil {
		return nil, fmt.Errorf("inspector: root address: %w", err)
	}
	return &ProxySource{factory: factory, bus: root.Address().Bus, rootID: rootID, focusedID: rootID}, nil
}

func idForAddress(addr accessible.Address) (int, error) {
	rest, ok := atspi.StripAccessiblePrefix(addr.Path)
	if !ok {
		return 0, fmt.Errorf("path %q has no accessible prefix", addr.Path)
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("path %q has no numeric id: %w", addr.Path, err)
	}
	return id, nil
}

func (s *ProxySource) addressForID(id int) accessible.Address {
	return accessible.Address{Bus: s.bus, Path: atspi.AccessiblePathPrefix + strconv.Itoa(id)}
}

func (s *ProxySource) proxy(id int) nodeproxy.NodeProxy {
	return s.factory.Get(s.addressForID(id))
}

func (s *ProxySource) RootID() int       { return s.rootID }
func (s *ProxySource) FocusedID() int    { return s.focusedID }
func (s *ProxySource) SetFocusedID(id int) { s.focusedID = id }

var stateNames = []struct {
	state accessible.State
	name  string
}{
	{accessible.StateEnabled, "ENABLED"},
	{accessible.StateVisible, "VISIBLE"},
	{accessible.StateShowing, "SHOWING"},
	{accessible.StateSensitive, "SENSITIVE"},
	{accessible.StateFocusable, "FOCUSABLE"},
	{accessible.StateFocused, "FOCUSED"},
	{accessible.StateActive, "ACTIVE"},
	{accessible.StateChecked, "CHECKED"},
	{accessible.StateSelected, "SELECTED"},
	{accessible.StateExpanded, "EXPANDED"},
	{accessible.StatePressed, "PRESSED"},
	{accessible.StateHighlightable, "HIGHLIGHTABLE"},
	{accessible.StateHighlighted, "HIGHLIGHTED"},
	{accessible.StateEditable, "EDITABLE"},
	{accessible.StateReadOnly, "READ_ONLY"},
}

func statesString(states accessible.States) string {
	var result string
	for _, sn := range stateNames {
		if states.Has(sn.state) {
			if result != "" {
				result += ", "
			}
			result += sn.name
		}
	}
	if result == "" {
		return "(none)"
	}
	return result
}

// ElementInfo implements Source.
func (s *ProxySource) ElementInfo(ctx context.Context, id int) (ElementInfo, error) {
	p := s.proxy(id)

	name, err := p.Name(ctx)
	if err != nil {
		name = "(unknown)"
	}
	description, _ := p.Description(ctx)
	role, err := p.Role(ctx)
	if err != nil {
		role = accessible.RoleUnknown
	}
	states, _ := p.States(ctx)
	extents, _ := p.Extents(ctx, nodeproxy.CoordScreen)
	childCount, _ := p.ChildCount(ctx)

	childIDs := make([]int, 0, childCount)
	for i := 0; i < childCount; i++ {
		child, err := p.ChildAt(ctx, i)
		if err != nil || child == nil {
			continue
		}
		childID, err := idForAddress(child.Address())
		if err != nil {
			continue
		}
		childIDs = append(childIDs, childID)
	}

	parentID := 0
	if parent, err := p.Parent(ctx); err == nil && parent != nil {
		if pid, err := idForAddress(parent.Address()); err == nil {
			parentID = pid
		}
	}

	return ElementInfo{
		ID:           id,
		Name:         name,
		Role:         accessible.RoleName(role),
		Description:  description,
		States:       statesString(states),
		BoundsX:      extents.X,
		BoundsY:      extents.Y,
		BoundsWidth:  extents.Width,
		BoundsHeight: extents.Height,
		ChildCount:   childCount,
		ChildIDs:     childIDs,
		ParentID:     parentID,
	}, nil
}

// Tree implements Source, recursively walking every descendant.
func (s *ProxySource) Tree(ctx context.Context, rootID int) (TreeNode, error) {
	p := s.proxy(rootID)

	name, err := p.Name(ctx)
	if err != nil {
		name = "(unknown)"
	}
	role, err := p.Role(ctx)
	if err != nil {
		role = accessible.RoleUnknown
	}
	childCount, _ := p.ChildCount(ctx)

	node := TreeNode{ID: rootID, Name: name, Role: accessible.RoleName(role), ChildCount: childCount}
	for i := 0; i < childCount; i++ {
		child, err := p.ChildAt(ctx, i)
		if err != nil || child == nil {
			continue
		}
		childID, err := idForAddress(child.Address())
		if err != nil {
			continue
		}
		childNode, err := s.Tree(ctx, childID)
		if err != nil {
			continue
		}
		node.Children = append(node.Children, childNode)
	}
	return node, nil
}

// Navigate implements Source via the same iterative DFS neighbor
// engine the screen reader uses, scoped to the whole tree from root.
func (s *ProxySource) Navigate(ctx context.Context, currentID int, forward bool) (int, error) {
	root := s.proxy(s.rootID)
	current := s.proxy(currentID)
	next, err := nodeproxy.Neighbor(ctx, root, current, forward, nodeproxy.ModeNormal, true)
	if err != nil {
		return currentID, err
	}
	if next == nil {
		return currentID, nil
	}
	return idForAddress(next.Address())
}

// NavigateChild implements Source: moves to the first child, if any.
func (s *ProxySource) NavigateChild(ctx context.Context, currentID int) (int, error) {
	p := s.proxy(currentID)
	count, err := p.ChildCount(ctx)
	if err != nil || count == 0 {
		return currentID, nil
	}
	child, err := p.ChildAt(ctx, 0)
	if err != nil || child == nil {
		return currentID, nil
	}
	return idForAddress(child.Address())
}

// NavigateParent implements Source: moves to the parent, if any.
func (s *ProxySource) NavigateParent(ctx context.Context, currentID int) (int, error) {
	p := s.proxy(currentID)
	parent, err := p.Parent(ctx)
	if err != nil || parent == nil {
		return currentID, nil
	}
	return idForAddress(parent.Address())
}

var _ Source = (*ProxySource)(nil)
