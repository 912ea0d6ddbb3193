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

// Package registry is the server-side object registry: it owns the
// map from integer object-id to locally-implemented accessible, the
// top-level-window list and the default-label list, and resolves
// incoming object paths to the accessible they name.
package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a11ybridged/bridge/accessible"
	"github.com/a11ybridged/bridge/atspi"
)

// Accessible is the local, synchronous view of an object the bridge
// itself owns and serves over the bus — the counterpart of
// nodeproxy.NodeProxy, which is the client-side view of a remote one.
type Accessible interface {
	ID() int
	Name() string
	Role() accessible.Role
	States() accessible.States
	Parent() Accessible
	Children() []Accessible
	Hidden() bool
}

// ErrUnknownObject is returned when a path resolves to no live
// accessible, or resolves to one that is hidden while includeHidden is
// false; the bridge's handlers answer it with a transport.ErrDefault
// "Object ... does not implement ..." error.
var ErrUnknownObject = fmt.Errorf("registry: unknown object")

// Registry maps object-ids to owned accessibles and dispatches
// incoming path lookups. It is exclusively owned by the bridge on its
// main task and is not safe for concurrent use (§4.J "shared-resource
// policy").
type Registry struct {
	app           Accessible
	byID          map[int]Accessible
	includeHidden bool

	topLevel []Accessible

	labels []labelEntry

	emit func(eventWindowDestroy Accessible)
}

type labelEntry struct {
	root  Accessible
	label Accessible
}

// New returns a Registry rooted at app, the application accessible
// returned for path "root". emitWindowDestroy is invoked for
// WINDOW::DESTROY on remove-top-level and bridge teardown; it may be
// nil in tests that do not assert on emissions.
func New(app Accessible, emitWindowDestroy func(Accessible)) *Registry {
	r := &Registry{
		app:  app,
		byID: make(map[int]Accessible),
		emit: emitWindowDestroy,
	}
	if app != nil {
		r.byID[app.ID()] = app
	}
	return r
}

// SetIncludeHidden toggles the global visibility gate used by Resolve.
func (r *Registry) SetIncludeHidden(include bool) {
	r.includeHidden = include
}

// Register makes acc resolvable by its ID.
func (r *Registry) Register(acc Accessible) {
	r.byID[acc.ID()] = acc
}

// Unregister drops acc from the id map.
func (r *Registry) Unregister(acc Accessible) {
	delete(r.byID, acc.ID())
}

// Resolve strips the fixed accessible-path prefix from path and looks
// up the named object: "root" addresses the application, otherwise the
// remainder is parsed as an object-id. Lookup fails with
// ErrUnknownObject when the path is malformed, when no such id is
// registered, or when the resolved accessible is hidden and
// includeHidden is false.
func (r *Registry) Resolve(path string) (Accessible, error) {
	rest, ok := atspi.StripAccessiblePrefix(path)
	if !ok {
		return nil, ErrUnknownObject
	}
	if rest == "root" {
		if r.app == nil {
			return nil, ErrUnknownObject
		}
		return r.app, nil
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return nil, ErrUnknownObject
	}
	acc, ok := r.byID[id]
	if !ok {
		return nil, ErrUnknownObject
	}
	if acc.Hidden() && !r.includeHidden {
		return nil, ErrUnknownObject
	}
	return acc, nil
}

// childAdder is the narrower capability ApplicationAccessible exposes
// for maintaining its own child list; AddTopLevel/RemoveTopLevel
// downcast r.app to it so the application's SHOWING state (§8) tracks
// its top-level windows without Registry depending on the concrete
// ApplicationAccessible type.
type childAdder interface {
	AddChild(Accessible)
	RemoveChild(Accessible)
}

// AddTopLevel appends w to the top-level window list if not already
// present, marking it a root-level node, and appends it to the
// application's own children (§4.C "add-top-level") so the
// application's computed SHOWING state reflects it.
func (r *Registry) AddTopLevel(w Accessible) {
	for _, existing := range r.topLevel {
		if existing.ID() == w.ID() {
			return
		}
	}
	r.topLevel = append(r.topLevel, w)
	r.Register(w)
	if adder, ok := r.app.(childAdder); ok {
		adder.AddChild(w)
	}
}

// RemoveTopLevel removes w from the top-level list and the
// application's child list, then emits WINDOW::DESTROY for it.
func (r *Registry) RemoveTopLevel(w Accessible) {
	for i, existing := range r.topLevel {
		if existing.ID() == w.ID() {
			r.topLevel = append(r.topLevel[:i], r.topLevel[i+1:]...)
			break
		}
	}
	if adder, ok := r.app.(childAdder); ok {
		adder.RemoveChild(w)
	}
	if r.emit != nil {
		r.emit(w)
	}
}

// TopLevelWindows returns the current top-level window list.
func (r *Registry) TopLevelWindows() []Accessible {
	out := make([]Accessible, len(r.topLevel))
	copy(out, r.topLevel)
	return out
}

// TeardownWindows emits WINDOW::DESTROY for every remaining top-level
// window, in list order, and empties the list (§4.D "force-down").
func (r *Registry) TeardownWindows() {
	windows := r.topLevel
	r.topLevel = nil
	for _, w := range windows {
		if r.emit != nil {
			r.emit(w)
		}
	}
}

// RegisterLabel walks up label's ancestor chain to find its window
// root — the topmost ancestor whose parent is the application — then
// upserts the (root, label) pair. Re-registering the same label moves
// it to the latest window; re-registering the same window is
// idempotent, replacing any previous label for that root.
func (r *Registry) RegisterLabel(label Accessible) {
	root := windowRootOf(label, r.app)
	if root == nil {
		return
	}
	for i, e := range r.labels {
		if e.label.ID() == label.ID() || e.root.ID() == root.ID() {
			r.labels = append(r.labels[:i], r.labels[i+1:]...)
			break
		}
	}
	r.labels = append(r.labels, labelEntry{root: root, label: label})
}

// GetLabel returns the most recently registered label for root, or
// root itself when none is registered.
func (r *Registry) GetLabel(root Accessible) Accessible {
	for i := len(r.labels) - 1; i >= 0; i-- {
		if r.labels[i].root.ID() == root.ID() {
			return r.labels[i].label
		}
	}
	return root
}

// UnregisterLabel removes any entry naming label.
func (r *Registry) UnregisterLabel(label Accessible) {
	for i, e := range r.labels {
		if e.label.ID() == label.ID() {
			r.labels = append(r.labels[:i], r.labels[i+1:]...)
			return
		}
	}
}

func windowRootOf(label, app Accessible) Accessible {
	if label == nil {
		return nil
	}
	current := label
	for {
		parent := current.Parent()
		if parent == nil {
			return current
		}
		if app != nil && parent.ID() == app.ID() {
			return current
		}
		current = parent
	}
}

// ApplicationAccessible is the registry's root object: a synthetic
// node whose SHOWING state is the logical OR of its children's, and
// whose SENSITIVE state is always false (the application itself
// cannot be interacted with; only its windows can).
type ApplicationAccessible struct {
	id       int
	name     string
	children []Accessible
}

// NewApplicationAccessible returns the application root with the given
// registry object-id and process name.
func NewApplicationAccessible(id int, name string) *ApplicationAccessible {
	return &ApplicationAccessible{id: id, name: name}
}

func (a *ApplicationAccessible) ID() int     { return a.id }
func (a *ApplicationAccessible) Name() string { return a.name }
func (a *ApplicationAccessible) Role() accessible.Role { return accessible.RoleApplication }

func (a *ApplicationAccessible) States() accessible.States {
	states := accessible.NewStates(accessible.StateVisible)
	for _, child := range a.children {
		if child.States().Has(accessible.StateShowing) {
			states = states.Set(accessible.StateShowing)
			break
		}
	}
	return states
}

func (a *ApplicationAccessible) Parent() Accessible      { return nil }
func (a *ApplicationAccessible) Children() []Accessible   { return a.children }
func (a *ApplicationAccessible) Hidden() bool             { return false }

// AddChild appends w to the application's own child list (distinct
// from the registry's top-level-window tracking, which additionally
// marks w root-level and emits destroy on removal).
func (a *ApplicationAccessible) AddChild(w Accessible) {
	for _, existing := range a.children {
		if existing.ID() == w.ID() {
			return
		}
	}
	a.children = append(a.children, w)
}

// RemoveChild drops w from the application's child list.
func (a *ApplicationAccessible) RemoveChild(w Accessible) {
	for i, existing := range a.children {
		if existing.ID() == w.ID() {
			a.children = append(a.children[:i], a.children[i+1:]...)
			return
		}
	}
}

var _ Accessible = (*ApplicationAccessible)(nil)

// PathForID builds the canonical object path for a registered id.
func PathForID(id int) string {
	return atspi.AccessiblePathPrefix + strconv.Itoa(id)
}

// IsRootPath reports whether path names the application root, either
// via the literal "root" alias or the application's own numeric id.
func IsRootPath(path string, appID int) bool {
	rest, ok := atspi.StripAccessiblePrefix(path)
	if !ok {
		return false
	}
	return rest == "root" || rest == strconv.Itoa(appID) || strings.TrimSpace(rest) == ""
}
