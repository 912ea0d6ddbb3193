// Package transporttest provides a daemon-free, in-memory double of
// the transport package so higher layers (registry, bridge, nodeproxy,
// screenreader) can be unit-tested without a running message bus,
// following the fake-server-over-a-real-interface pattern
// desktop/portal's document_test.go and launcher_test.go use for their
// fakeDocumentPortal.
package transporttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/a11ybridged/bridge/transport"
)

// Bus is a shared in-memory broker: exported interfaces on one side
// are directly callable from a Client obtained for the same endpoint.
type Bus struct {
	mu        sync.Mutex
	names     map[string]bool
	endpoints map[string]*Connection
}

func NewBus() *Bus {
	return &Bus{names: make(map[string]bool), endpoints: make(map[string]*Connection)}
}

// Connection is a fake transport.Connection bound to one endpoint name
// on a Bus.
type Connection struct {
	bus        *Bus
	uniqueName string
	server     *Server
}

// Connect creates a new fake endpoint on bus with the given unique
// name (e.g. ":1.1").
func (b *Bus) Connect(uniqueName string) *Connection {
	c := &Connection{bus: b, uniqueName: uniqueName}
	b.mu.Lock()
	b.endpoints[uniqueName] = c
	b.mu.Unlock()
	return c
}

func (c *Connection) UniqueName() string { return c.uniqueName }
func (c *Connection) Close() error {
	c.bus.mu.Lock()
	delete(c.bus.endpoints, c.uniqueName)
	c.bus.mu.Unlock()
	return nil
}

func (c *Connection) RequestName(name string) (bool, error) {
	c.bus.mu.Lock()
	defer c.bus.mu.Unlock()
	if c.bus.names[name] {
		return false, nil
	}
	c.bus.names[name] = true
	return true, nil
}

func (c *Connection) ReleaseName(name string) error {
	c.bus.mu.Lock()
	delete(c.bus.names, name)
	c.bus.mu.Unlock()
	return nil
}

// Server is the fake transport.Server: a plain map from (path,
// interface) to InterfaceDescription, with a single fallback slot.
type Server struct {
	conn *Connection

	mu       sync.Mutex
	exact    map[string]map[string]*transport.InterfaceDescription
	fallback map[string]*transport.InterfaceDescription
	signals  []transport.Signal
}

// NewServer returns a fake Server bound to conn and registers it as
// conn's server so that Clients dialing conn's unique name can reach
// it directly.
func NewServer(conn *Connection) *Server {
	s := &Server{
		conn:     conn,
		exact:    make(map[string]map[string]*transport.InterfaceDescription),
		fallback: make(map[string]*transport.InterfaceDescription),
	}
	conn.server = s
	return s
}

func (s *Server) Export(path string, iface *transport.InterfaceDescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exact[path] == nil {
		s.exact[path] = make(map[string]*transport.InterfaceDescription)
	}
	s.exact[path][iface.Name] = iface
	return nil
}

func (s *Server) ExportFallback(iface *transport.InterfaceDescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback[iface.Name] = iface
	return nil
}

func (s *Server) Emit(sig transport.Signal) error {
	s.mu.Lock()
	s.signals = append(s.signals, sig)
	s.mu.Unlock()
	return nil
}

func (s *Server) Close() error { return nil }

// Signals returns every signal emitted so far, for test assertions.
func (s *Server) Signals() []transport.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]transport.Signal, len(s.signals))
	copy(out, s.signals)
	return out
}

func (s *Server) resolve(path, iface string) (*transport.InterfaceDescription, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if byIface, ok := s.exact[path]; ok {
		if d, ok := byIface[iface]; ok {
			return d, true
		}
	}
	if d, ok := s.fallback[iface]; ok {
		return d, true
	}
	return nil, false
}

// Client is the fake transport.Client: it looks up the target
// endpoint's Server on the shared Bus and invokes the handler
// in-process, synchronously.
type Client struct {
	bus      *Bus
	endpoint string
	path     string
	iface    string
}

// NewClient returns a fake Client bound to (endpoint, path, iface) on
// bus.
func NewClient(bus *Bus, endpoint, path, iface string) *Client {
	return &Client{bus: bus, endpoint: endpoint, path: path, iface: iface}
}

func (c *Client) server() (*Server, *transport.Error) {
	c.bus.mu.Lock()
	conn, ok := c.bus.endpoints[c.endpoint]
	c.bus.mu.Unlock()
	if !ok || conn.server == nil {
		return nil, transport.NewError(transport.ErrDefault, fmt.Sprintf("unknown endpoint %q", c.endpoint))
	}
	return conn.server, nil
}

func (c *Client) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, *transport.Error) {
	srv, terr := c.server()
	if terr != nil {
		return nil, terr
	}
	desc, ok := srv.resolve(c.path, c.iface)
	if !ok {
		return nil, transport.NewError(transport.ErrDefault, fmt.Sprintf("unknown object %q", c.path))
	}
	h, ok := desc.Methods[method]
	if !ok {
		return nil, transport.NewError(transport.ErrDefault, fmt.Sprintf("Object %s does not implement %s.%s", c.path, c.iface, method))
	}
	dctx := transport.DispatchContext{ObjectPath: c.path}
	return h(ctx, dctx, args)
}

func (c *Client) CallAsync(ctx context.Context, method string, cb func([]interface{}, *transport.Error), args ...interface{}) {
	out, err := c.Call(ctx, method, args...)
	cb(out, err)
}

func (c *Client) GetProperty(name string) (interface{}, *transport.Error) {
	srv, terr := c.server()
	if terr != nil {
		return nil, terr
	}
	desc, ok := srv.resolve(c.path, c.iface)
	if !ok {
		return nil, transport.NewError(transport.ErrDefault, fmt.Sprintf("unknown object %q", c.path))
	}
	ph, ok := desc.Properties[name]
	if !ok || ph.Get == nil {
		return nil, transport.NewError(transport.ErrDefault, fmt.Sprintf("property %s has no getter", name))
	}
	return ph.Get(transport.DispatchContext{ObjectPath: c.path})
}

func (c *Client) SetProperty(name string, value interface{}) *transport.Error {
	srv, terr := c.server()
	if terr != nil {
		return terr
	}
	desc, ok := srv.resolve(c.path, c.iface)
	if !ok {
		return transport.NewError(transport.ErrDefault, fmt.Sprintf("unknown object %q", c.path))
	}
	ph, ok := desc.Properties[name]
	if !ok || ph.Set == nil {
		return transport.NewError(transport.ErrDefault, fmt.Sprintf("property %s has no setter", name))
	}
	return ph.Set(transport.DispatchContext{ObjectPath: c.path}, value)
}

var (
	_ transport.Client     = (*Client)(nil)
	_ transport.Server     = (*Server)(nil)
	_ transport.Connection = (*Connection)(nil)
	_ transport.NameOwner  = (*Connection)(nil)
)
