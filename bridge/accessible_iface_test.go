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

package bridge_test

import (
	"context"

	. "gopkg.in/check.v1"

	"github.com/a11ybridged/bridge/accessible"
	"github.com/a11ybridged/bridge/atspi"
	"github.com/a11ybridged/bridge/bridge"
	"github.com/a11ybridged/bridge/platform"
	"github.com/a11ybridged/bridge/registry"
	"github.com/a11ybridged/bridge/transport"
	"github.com/a11ybridged/bridge/transport/transporttest"
)

// fakeWidgetBusName is fakeBackend's fixed ResolveATBusAddress result,
// which transporttest.Bus.Connect also uses as the connection's unique
// name — deterministic, so tests can dial it directly.
const fakeWidgetBusName = "at-bus-address"

// fakeWidget is a registry.Accessible used to exercise the real
// Accessible/Component dispatch end to end over a fake bus. Only
// widgets that also embed boundedWidget implement bridge.Bounded.
type fakeWidget struct {
	id       int
	name     string
	role     accessible.Role
	states   accessible.States
	parent   registry.Accessible
	children []registry.Accessible
}

func (w *fakeWidget) ID() int                         { return w.id }
func (w *fakeWidget) Name() string                    { return w.name }
func (w *fakeWidget) Role() accessible.Role           { return w.role }
func (w *fakeWidget) States() accessible.States       { return w.states }
func (w *fakeWidget) Parent() registry.Accessible     { return w.parent }
func (w *fakeWidget) Children() []registry.Accessible { return w.children }
func (w *fakeWidget) Hidden() bool                    { return false }

var _ registry.Accessible = (*fakeWidget)(nil)

// boundedWidget additionally reports on-screen extents, satisfying
// bridge.Bounded.
type boundedWidget struct {
	fakeWidget
	rect accessible.Rect[int32]
}

func (w *boundedWidget) Extents(coord int32) (accessible.Rect[int32], error) {
	return w.rect, nil
}

func (s *BridgeSuite) TestAccessibleInterfaceAnswersRealHandlers(c *C) {
	backend := newFakeBackend()

	app := registry.NewApplicationAccessible(1, "app")
	reg := registry.New(app, nil)
	window := &fakeWidget{id: 2, name: "Main Window", role: accessible.RoleWindow, parent: app}
	child := &fakeWidget{id: 3, name: "OK", role: accessible.RolePushButton, parent: window,
		states: accessible.NewStates(accessible.StateShowing, accessible.StateSensitive)}
	window.children = []registry.Accessible{child}
	reg.AddTopLevel(window)
	reg.Register(child)

	b := bridge.New(backend, reg, "", nil, platform.StandardCallbacks())
	c.Assert(b.Initialize(context.Background(), bridge.Inputs{ApplicationRunning: true, A11yEnabled: true}), IsNil)

	client := transporttest.NewClient(backend.bus, fakeWidgetBusName, registry.PathForID(child.ID()), atspi.IfaceAccessible)

	out, terr := client.Call(context.Background(), "GetName")
	c.Assert(terr, IsNil)
	c.Check(out, DeepEquals, []interface{}{"OK"})

	out, terr = client.Call(context.Background(), "GetRole")
	c.Assert(terr, IsNil)
	c.Check(out, DeepEquals, []interface{}{uint32(accessible.RolePushButton)})

	out, terr = client.Call(context.Background(), "GetRoleName")
	c.Assert(terr, IsNil)
	c.Check(out, DeepEquals, []interface{}{accessible.RoleName(accessible.RolePushButton)})

	out, terr = client.Call(context.Background(), "GetStates")
	c.Assert(terr, IsNil)
	c.Check(out, DeepEquals, []interface{}{child.states.Low, child.states.High})

	out, terr = client.Call(context.Background(), "GetParent")
	c.Assert(terr, IsNil)
	c.Check(out, DeepEquals, []interface{}{accessible.Address{Bus: fakeWidgetBusName, Path: registry.PathForID(window.ID())}})

	out, terr = client.Call(context.Background(), "GetIndexInParent")
	c.Assert(terr, IsNil)
	c.Check(out, DeepEquals, []interface{}{int32(0)})

	windowClient := transporttest.NewClient(backend.bus, fakeWidgetBusName, registry.PathForID(window.ID()), atspi.IfaceAccessible)

	out, terr = windowClient.Call(context.Background(), "GetChildCount")
	c.Assert(terr, IsNil)
	c.Check(out, DeepEquals, []interface{}{uint32(1)})

	out, terr = windowClient.Call(context.Background(), "GetChildAtIndex", int32(0))
	c.Assert(terr, IsNil)
	c.Check(out, DeepEquals, []interface{}{accessible.Address{Bus: fakeWidgetBusName, Path: registry.PathForID(child.ID())}})

	out, terr = windowClient.Call(context.Background(), "GetChildAtIndex", int32(9))
	c.Assert(terr, IsNil)
	c.Check(out, DeepEquals, []interface{}{accessible.Null(fakeWidgetBusName)})
}

func (s *BridgeSuite) TestAccessibleInterfaceUnknownPathIsDefaultError(c *C) {
	backend := newFakeBackend()
	reg := registry.New(registry.NewApplicationAccessible(1, "app"), nil)
	b := bridge.New(backend, reg, "", nil, platform.StandardCallbacks())
	c.Assert(b.Initialize(context.Background(), bridge.Inputs{ApplicationRunning: true, A11yEnabled: true}), IsNil)

	client := transporttest.NewClient(backend.bus, fakeWidgetBusName, registry.PathForID(99), atspi.IfaceAccessible)

	_, terr := client.Call(context.Background(), "GetName")
	c.Assert(terr, NotNil)
	c.Check(terr.Kind, Equals, transport.ErrDefault)
	c.Check(terr.Message, Equals, "Object "+registry.PathForID(99)+" does not implement "+atspi.IfaceAccessible)
}

func (s *BridgeSuite) TestComponentInterfaceDowncastSucceedsAndFails(c *C) {
	backend := newFakeBackend()
	app := registry.NewApplicationAccessible(1, "app")
	reg := registry.New(app, nil)

	plain := &fakeWidget{id: 2, name: "plain", parent: app}
	bounded := &boundedWidget{
		fakeWidget: fakeWidget{id: 3, name: "bounded", parent: app},
		rect:       accessible.Rect[int32]{X: 1, Y: 2, Width: 3, Height: 4},
	}
	reg.Register(plain)
	reg.Register(bounded)

	b := bridge.New(backend, reg, "", nil, platform.StandardCallbacks())
	c.Assert(b.Initialize(context.Background(), bridge.Inputs{ApplicationRunning: true, A11yEnabled: true}), IsNil)

	boundedClient := transporttest.NewClient(backend.bus, fakeWidgetBusName, registry.PathForID(bounded.ID()), atspi.IfaceComponent)
	out, terr := boundedClient.Call(context.Background(), "GetExtents", int32(0))
	c.Assert(terr, IsNil)
	c.Check(out, DeepEquals, []interface{}{bounded.rect})

	plainClient := transporttest.NewClient(backend.bus, fakeWidgetBusName, registry.PathForID(plain.ID()), atspi.IfaceComponent)
	_, terr = plainClient.Call(context.Background(), "GetExtents", int32(0))
	c.Assert(terr, NotNil)
	c.Check(terr.Kind, Equals, transport.ErrDefault)
	c.Check(terr.Message, Equals, "Object "+registry.PathForID(plain.ID())+" does not implement "+atspi.IfaceComponent)
}
