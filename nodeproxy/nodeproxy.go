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

// Package nodeproxy implements the remote-facing NodeProxy: a thin
// per-call IPC wrapper over the Accessible, Component, Action, Value
// and Text interfaces, plus the iterative DFS neighbor-navigation
// engine and point hit-testing.
package nodeproxy

import (
	"context"

	"github.com/a11ybridged/bridge/accessible"
)

// CoordType selects the coordinate frame for extent queries, mirroring
// AT-SPI's screen/window distinction.
type CoordType int

const (
	CoordScreen CoordType = iota
	CoordWindow
)

// NodeProxy is the operation set every remote node offers: every call
// constructs a typed client for the target interface and issues one
// IPC round trip (or, in tests, is satisfied entirely in-memory). No
// parent back-pointer is stored; Parent() always asks the remote.
type NodeProxy interface {
	Address() accessible.Address

	// Accessible
	Name(ctx context.Context) (string, error)
	Description(ctx context.Context) (string, error)
	Role(ctx context.Context) (accessible.Role, error)
	States(ctx context.Context) (accessible.States, error)
	Attributes(ctx context.Context) (accessible.Attributes, error)
	Parent(ctx context.Context) (NodeProxy, error)
	ChildCount(ctx context.Context) (int, error)
	ChildAt(ctx context.Context, index int) (NodeProxy, error)
	Children(ctx context.Context) ([]NodeProxy, error)
	IndexInParent(ctx context.Context) (int, error)
	ReadingMaterial(ctx context.Context) (accessible.ReadingMaterial, error)
	NodeInfo(ctx context.Context) (accessible.NodeInfo, error)

	// Component
	Extents(ctx context.Context, coord CoordType) (accessible.Rect[int32], error)
	Layer(ctx context.Context) (int, error)
	GrabFocus(ctx context.Context) (bool, error)
	GrabHighlight(ctx context.Context) (bool, error)
	ClearHighlight(ctx context.Context) (bool, error)

	// Action
	ActionCount(ctx context.Context) (int, error)
	ActionName(ctx context.Context, index int) (string, error)
	DoActionByName(ctx context.Context, name string) (bool, error)

	// Value
	CurrentValue(ctx context.Context) (float64, error)
	SetCurrentValue(ctx context.Context, value float64) error
	MinimumValue(ctx context.Context) (float64, error)
	MaximumValue(ctx context.Context) (float64, error)
	MinimumIncrement(ctx context.Context) (float64, error)

	// Text
	Text(ctx context.Context, startOffset, endOffset int) (string, error)
	CharacterCount(ctx context.Context) (int, error)
}

// IsHighlightable reports the HIGHLIGHTABLE state bit for a states
// snapshot, the navigation algorithm's sole notion of "valid target".
func IsHighlightable(states accessible.States) bool {
	return states.Has(accessible.StateHighlightable)
}

// IsDefunct reports the DEFUNCT state bit.
func IsDefunct(states accessible.States) bool {
	return states.Has(accessible.StateDefunct)
}

// IsShowing reports the SHOWING state bit.
func IsShowing(states accessible.States) bool {
	return states.Has(accessible.StateShowing)
}
