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

package bridge

import (
	"context"
	"fmt"

	"github.com/a11ybridged/bridge/accessible"
	"github.com/a11ybridged/bridge/atspi"
	"github.com/a11ybridged/bridge/registry"
	"github.com/a11ybridged/bridge/transport"
)

// Bounded is the optional org.a11y.atspi.Component capability: an
// accessible that can report its on-screen extents in the given
// coordinate frame. Handlers downcast the resolved registry.Accessible
// to this interface (Design Notes §9's "GetFeature<T>") and answer
// DEFAULT when it is absent, exactly as §6 requires per registered
// interface.
type Bounded interface {
	Extents(coord int32) (accessible.Rect[int32], error)
}

// notImplemented builds the DEFAULT "Object X does not implement Y"
// reply §6 specifies for a missing object or a failed capability
// downcast.
func notImplemented(path, iface string) *transport.Error {
	return transport.NewError(transport.ErrDefault, fmt.Sprintf("Object %s does not implement %s", path, iface))
}

// resolver looks up the object a DispatchContext names, answering the
// DEFAULT error any handler returns verbatim when the path is dead.
type resolver func(dctx transport.DispatchContext) (registry.Accessible, *transport.Error)

func resolverFor(reg *registry.Registry) resolver {
	return func(dctx transport.DispatchContext) (registry.Accessible, *transport.Error) {
		acc, err := reg.Resolve(dctx.ObjectPath)
		if err != nil {
			return nil, notImplemented(dctx.ObjectPath, atspi.IfaceAccessible)
		}
		return acc, nil
	}
}

// addressOf builds the wire Address for acc on busName, or the null
// address when acc is nil (no parent, out-of-range child).
func addressOf(busName string, acc registry.Accessible) accessible.Address {
	if acc == nil {
		return accessible.Null(busName)
	}
	return accessible.Address{Bus: busName, Path: registry.PathForID(acc.ID())}
}

// indexArg decodes a GetChildAtIndex-style int32 argument the way
// nodeproxy.Proxy sends it.
func indexArg(args []interface{}) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	switch v := args[0].(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case uint32:
		return int(v), true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// accessibleInterface builds the org.a11y.atspi.Accessible interface
// description every registered object answers through
// Server.ExportFallback: each method resolves the call's target by
// path via reg.Resolve and replies in the shapes nodeproxy.Proxy
// expects on the client side.
func accessibleInterface(reg *registry.Registry, busName string) *transport.InterfaceDescription {
	resolve := resolverFor(reg)

	return transport.NewInterfaceDescription(atspi.IfaceAccessible).
		WithMethod("GetName", func(ctx context.Context, dctx transport.DispatchContext, args []interface{}) ([]interface{}, *transport.Error) {
			acc, terr := resolve(dctx)
			if terr != nil {
				return nil, terr
			}
			return []interface{}{acc.Name()}, nil
		}).
		WithMethod("GetRole", func(ctx context.Context, dctx transport.DispatchContext, args []interface{}) ([]interface{}, *transport.Error) {
			acc, terr := resolve(dctx)
			if terr != nil {
				return nil, terr
			}
			return []interface{}{uint32(acc.Role())}, nil
		}).
		WithMethod("GetRoleName", func(ctx context.Context, dctx transport.DispatchContext, args []interface{}) ([]interface{}, *transport.Error) {
			acc, terr := resolve(dctx)
			if terr != nil {
				return nil, terr
			}
			return []interface{}{accessible.RoleName(acc.Role())}, nil
		}).
		WithMethod("GetStates", func(ctx context.Context, dctx transport.DispatchContext, args []interface{}) ([]interface{}, *transport.Error) {
			acc, terr := resolve(dctx)
			if terr != nil {
				return nil, terr
			}
			states := acc.States()
			return []interface{}{states.Low, states.High}, nil
		}).
		WithMethod("GetParent", func(ctx context.Context, dctx transport.DispatchContext, args []interface{}) ([]interface{}, *transport.Error) {
			acc, terr := resolve(dctx)
			if terr != nil {
				return nil, terr
			}
			return []interface{}{addressOf(busName, acc.Parent())}, nil
		}).
		WithMethod("GetChildCount", func(ctx context.Context, dctx transport.DispatchContext, args []interface{}) ([]interface{}, *transport.Error) {
			acc, terr := resolve(dctx)
			if terr != nil {
				return nil, terr
			}
			return []interface{}{uint32(len(acc.Children()))}, nil
		}).
		WithMethod("GetChildAtIndex", func(ctx context.Context, dctx transport.DispatchContext, args []interface{}) ([]interface{}, *transport.Error) {
			acc, terr := resolve(dctx)
			if terr != nil {
				return nil, terr
			}
			children := acc.Children()
			idx, ok := indexArg(args)
			if !ok || idx < 0 || idx >= len(children) {
				return []interface{}{accessible.Null(busName)}, nil
			}
			return []interface{}{addressOf(busName, children[idx])}, nil
		}).
		WithMethod("GetIndexInParent", func(ctx context.Context, dctx transport.DispatchContext, args []interface{}) ([]interface{}, *transport.Error) {
			acc, terr := resolve(dctx)
			if terr != nil {
				return nil, terr
			}
			parent := acc.Parent()
			if parent == nil {
				return []interface{}{int32(-1)}, nil
			}
			for i, sibling := range parent.Children() {
				if sibling.ID() == acc.ID() {
					return []interface{}{int32(i)}, nil
				}
			}
			return []interface{}{int32(-1)}, nil
		})
}

// componentInterface builds org.a11y.atspi.Component, whose one method
// demonstrates the capability-downcast dispatch contract directly: a
// resolved object that doesn't also implement Bounded answers DEFAULT
// "Object X does not implement org.a11y.atspi.Component" rather than
// panicking on a failed type assertion.
func componentInterface(reg *registry.Registry) *transport.InterfaceDescription {
	resolve := resolverFor(reg)

	return transport.NewInterfaceDescription(atspi.IfaceComponent).
		WithMethod("GetExtents", func(ctx context.Context, dctx transport.DispatchContext, args []interface{}) ([]interface{}, *transport.Error) {
			acc, terr := resolve(dctx)
			if terr != nil {
				return nil, terr
			}
			bounded, ok := acc.(Bounded)
			if !ok {
				return nil, notImplemented(dctx.ObjectPath, atspi.IfaceComponent)
			}
			coord, _ := indexArg(args)
			rect, err := bounded.Extents(int32(coord))
			if err != nil {
				return nil, transport.NewError(transport.ErrDefault, err.Error())
			}
			return []interface{}{rect}, nil
		})
}
