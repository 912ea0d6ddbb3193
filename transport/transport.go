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

// Package transport abstracts the message-bus capabilities the bridge
// and node proxies depend on: connections, interface description,
// server-side dispatch, client-side calls, and name ownership. The
// concrete backend is github.com/godbus/dbus/v5 (see dbus.go);
// transporttest provides a daemon-free in-memory double for unit tests.
package transport

import "context"

// ErrorKind classifies a transport-level failure the way the wire
// protocol does: DEFAULT for an arbitrary application error, or
// INVALID_REPLY for a malformed/unexpected response.
type ErrorKind int

const (
	ErrDefault ErrorKind = iota
	ErrInvalidReply
)

func (k ErrorKind) String() string {
	switch k {
	case ErrDefault:
		return "DEFAULT"
	case ErrInvalidReply:
		return "INVALID_REPLY"
	default:
		return "UNKNOWN"
	}
}

// Error is the structured error form every transport call and reply
// may carry.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NewError builds a transport Error with the given kind and message.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// BusType selects which well-known broker a Connection attaches to.
type BusType int

const (
	SessionBus BusType = iota
	SystemBus
)

// Connection is an opaque handle owning a session with a broker.
// Implementations MUST tolerate callers holding a connection that
// failed to establish; such a Connection reports a zero UniqueName.
type Connection interface {
	// UniqueName returns the connection's bus-assigned unique name, or
	// "" if the connection never completed the handshake.
	UniqueName() string
	Close() error
}

// NameOwner requests or releases ownership of a well-known bus name.
type NameOwner interface {
	RequestName(name string) (owned bool, err error)
	ReleaseName(name string) error
}

// Signal is a single signal delivery: object-path, interface,
// signal-name, detail-string, two integer details, a tagged payload,
// and the sender's address.
type Signal struct {
	Path    string
	Iface   string
	Name    string
	Detail  string
	Detail1 int32
	Detail2 int32
	Value   interface{}
	Sender  string
}

// DispatchContext is recorded by the Server before invoking a handler,
// replacing thread-local "current object path" state with an explicit
// parameter.
type DispatchContext struct {
	ObjectPath string
}

// MethodHandler answers one incoming method call.
type MethodHandler func(ctx context.Context, dctx DispatchContext, args []interface{}) ([]interface{}, *Error)

// PropertyHandler is a typed property getter/setter pair; either may
// be nil to mark the property read-only or write-only.
type PropertyHandler struct {
	Get func(dctx DispatchContext) (interface{}, *Error)
	Set func(dctx DispatchContext, value interface{}) *Error
}

// InterfaceDescription accumulates the methods, properties and signal
// names exposed under one interface name.
type InterfaceDescription struct {
	Name       string
	Methods    map[string]MethodHandler
	Properties map[string]PropertyHandler
	Signals    map[string]struct{}
}

// NewInterfaceDescription returns an empty, ready-to-populate builder
// for the named interface.
func NewInterfaceDescription(name string) *InterfaceDescription {
	return &InterfaceDescription{
		Name:       name,
		Methods:    make(map[string]MethodHandler),
		Properties: make(map[string]PropertyHandler),
		Signals:    make(map[string]struct{}),
	}
}

func (d *InterfaceDescription) WithMethod(name string, h MethodHandler) *InterfaceDescription {
	d.Methods[name] = h
	return d
}

func (d *InterfaceDescription) WithProperty(name string, h PropertyHandler) *InterfaceDescription {
	d.Properties[name] = h
	return d
}

func (d *InterfaceDescription) WithSignal(name string) *InterfaceDescription {
	d.Signals[name] = struct{}{}
	return d
}

// Server binds interface descriptions at object paths and dispatches
// incoming calls into them.
type Server interface {
	// Export binds iface at the exact path.
	Export(path string, iface *InterfaceDescription) error
	// ExportFallback binds iface so it matches any sub-path not more
	// specifically exported.
	ExportFallback(iface *InterfaceDescription) error
	// Emit sends a signal from path/iface to subscribers.
	Emit(sig Signal) error
	Close() error
}

// Client issues method and property calls bound at construction to
// one (endpoint, path, interface) triple.
type Client interface {
	Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, *Error)
	// CallAsync invokes method without blocking; cb runs when the
	// reply (or error) arrives.
	CallAsync(ctx context.Context, method string, cb func([]interface{}, *Error), args ...interface{})
	GetProperty(name string) (interface{}, *Error)
	SetProperty(name string, value interface{}) *Error
}
