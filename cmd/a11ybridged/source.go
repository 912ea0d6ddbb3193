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

package main

import (
	"context"
	"fmt"

	"github.com/a11ybridged/bridge/accessible"
	"github.com/a11ybridged/bridge/inspector"
	"github.com/a11ybridged/bridge/registry"
)

// registrySource adapts the process's own locally-owned accessible
// tree (the objects the bridge serves, not a remote one) to
// inspector.Source, so the diagnostic surface works even before a
// transport connection exists. ProxySource remains the inspector's
// implementation for the common case of inspecting a remote tree over
// nodeproxy; this adapter covers the self-inspection case a daemon's
// own process wants out of the box.
type registrySource struct {
	reg     *registry.Registry
	app     *registry.ApplicationAccessible
	focused int
}

func newRegistrySource(reg *registry.Registry, app *registry.ApplicationAccessible) *registrySource {
	return &registrySource{reg: reg, app: app, focused: app.ID()}
}

func (s *registrySource) RootID() int         { return s.app.ID() }
func (s *registrySource) FocusedID() int      { return s.focused }
func (s *registrySource) SetFocusedID(id int) { s.focused = id }

func (s *registrySource) resolve(id int) (registry.Accessible, error) {
	if id == s.app.ID() {
		return s.app, nil
	}
	return s.reg.Resolve(registry.PathForID(id))
}

func (s *registrySource) toElementInfo(acc registry.Accessible) inspector.ElementInfo {
	info := inspector.ElementInfo{
		ID:         acc.ID(),
		Name:       acc.Name(),
		Role:       accessible.RoleName(acc.Role()),
		States:     statesString(acc.States()),
		ChildCount: len(acc.Children()),
	}
	for _, child := range acc.Children() {
		info.ChildIDs = append(info.ChildIDs, child.ID())
	}
	if parent := acc.Parent(); parent != nil {
		info.ParentID = parent.ID()
	}
	return info
}

func statesString(states accessible.States) string {
	if states.IsEmpty() {
		return "(none)"
	}
	return fmt.Sprintf("%#08x:%#08x", states.Low, states.High)
}

func (s *registrySource) ElementInfo(ctx context.Context, id int) (inspector.ElementInfo, error) {
	acc, err := s.resolve(id)
	if err != nil {
		return inspector.ElementInfo{}, err
	}
	return s.toElementInfo(acc), nil
}

func (s *registrySource) buildTree(acc registry.Accessible) inspector.TreeNode {
	node := inspector.TreeNode{
		ID:         acc.ID(),
		Name:       acc.Name(),
		Role:       accessible.RoleName(acc.Role()),
		ChildCount: len(acc.Children()),
	}
	for _, child := range acc.Children() {
		node.Children = append(node.Children, s.buildTree(child))
	}
	return node
}

func (s *registrySource) Tree(ctx context.Context, rootID int) (inspector.TreeNode, error) {
	acc, err := s.resolve(rootID)
	if err != nil {
		return inspector.TreeNode{}, err
	}
	return s.buildTree(acc), nil
}

// Navigate walks to the next/previous sibling in document order among
// currentID's parent's children, wrapping at the ends by stopping
// (returning currentID unchanged) rather than cycling.
func (s *registrySource) Navigate(ctx context.Context, currentID int, forward bool) (int, error) {
	acc, err := s.resolve(currentID)
	if err != nil {
		return currentID, err
	}
	parent := acc.Parent()
	if parent == nil {
		return currentID, nil
	}
	siblings := parent.Children()
	for i, sib := range siblings {
		if sib.ID() != currentID {
			continue
		}
		if forward && i+1 < len(siblings) {
			return siblings[i+1].ID(), nil
		}
		if !forward && i > 0 {
			return siblings[i-1].ID(), nil
		}
		break
	}
	return currentID, nil
}

func (s *registrySource) NavigateChild(ctx context.Context, currentID int) (int, error) {
	acc, err := s.resolve(currentID)
	if err != nil {
		return currentID, err
	}
	if children := acc.Children(); len(children) > 0 {
		return children[0].ID(), nil
	}
	return currentID, nil
}

func (s *registrySource) NavigateParent(ctx context.Context, currentID int) (int, error) {
	acc, err := s.resolve(currentID)
	if err != nil {
		return currentID, err
	}
	if parent := acc.Parent(); parent != nil {
		return parent.ID(), nil
	}
	return currentID, nil
}

var _ inspector.Source = (*registrySource)(nil)
