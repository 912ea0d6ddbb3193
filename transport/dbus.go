package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

// dbusConnection adapts *dbus.Conn to Connection.
type dbusConnection struct {
	conn *dbus.Conn
}

// Connect dials the well-known system or session bus, following the
// desktop/notification and dbusutil convention of tolerating a failed
// handshake by returning an empty-UniqueName Connection alongside the
// error rather than panicking.
func Connect(t BusType) (Connection, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	switch t {
	case SystemBus:
		conn, err = dbus.SystemBus()
	default:
		conn, err = dbus.SessionBus()
	}
	if err != nil {
		return &dbusConnection{}, err
	}
	return &dbusConnection{conn: conn}, nil
}

// ConnectAddress dials an explicit broker address, the path used to
// reach the AT bus once its address has been resolved (§4.D step 2-3).
func ConnectAddress(address string) (Connection, error) {
	conn, err := dbus.Dial(address)
	if err != nil {
		return &dbusConnection{}, err
	}
	if err := conn.Auth(nil); err != nil {
		conn.Close()
		return &dbusConnection{}, err
	}
	if err := conn.Hello(); err != nil {
		conn.Close()
		return &dbusConnection{}, err
	}
	return &dbusConnection{conn: conn}, nil
}

func (c *dbusConnection) UniqueName() string {
	if c.conn == nil {
		return ""
	}
	return c.conn.Names()[0]
}

func (c *dbusConnection) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *dbusConnection) RequestName(name string) (bool, error) {
	if c.conn == nil {
		return false, fmt.Errorf("transport: no connection")
	}
	reply, err := c.conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		return false, err
	}
	return reply == dbus.RequestNameReplyPrimaryOwner || reply == dbus.RequestNameReplyAlreadyOwner, nil
}

func (c *dbusConnection) ReleaseName(name string) error {
	if c.conn == nil {
		return nil
	}
	_, err := c.conn.ReleaseName(name)
	return err
}

// dbusServer adapts *dbus.Conn's Export machinery to Server, recording
// a DispatchContext per call the way the teacher's fdoBackend resolves
// its target from the incoming method call.
type dbusServer struct {
	conn *dbus.Conn

	mu       sync.Mutex
	exact    map[string]*exportedHandler
	fallback *exportedHandler
}

type exportedHandler struct {
	ifaces map[string]*InterfaceDescription
}

// NewServer wraps conn for server-side export and signal emission.
func NewServer(conn Connection) (Server, error) {
	dc, ok := conn.(*dbusConnection)
	if !ok || dc.conn == nil {
		return nil, fmt.Errorf("transport: NewServer requires a live dbus Connection")
	}
	return &dbusServer{conn: dc.conn, exact: make(map[string]*exportedHandler)}, nil
}

func (s *dbusServer) Export(path string, iface *InterfaceDescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.exact[path]
	if !ok {
		h = &exportedHandler{ifaces: make(map[string]*InterfaceDescription)}
		s.exact[path] = h
	}
	h.ifaces[iface.Name] = iface
	return s.conn.ExportMethodTable(methodTable(iface, path), dbus.ObjectPath(path), iface.Name)
}

// ExportFallback binds iface at "/", the root prefix every sub-path
// falls back to when it has no more specific export.
func (s *dbusServer) ExportFallback(iface *InterfaceDescription) error {
	s.mu.Lock()
	if s.fallback == nil {
		s.fallback = &exportedHandler{ifaces: make(map[string]*InterfaceDescription)}
	}
	s.fallback.ifaces[iface.Name] = iface
	s.mu.Unlock()
	return s.conn.ExportMethodTable(methodTable(iface, ""), dbus.ObjectPath("/"), iface.Name)
}

// methodTable builds the map godbus's ExportMethodTable dispatches by
// name, binding each InterfaceDescription handler to a closure that
// records the DispatchContext before invoking it — the explicit
// replacement for a thread-local "current object path".
func methodTable(iface *InterfaceDescription, path string) map[string]interface{} {
	table := make(map[string]interface{}, len(iface.Methods))
	for name, h := range iface.Methods {
		h := h
		table[name] = func(args ...interface{}) ([]interface{}, *dbus.Error) {
			dctx := DispatchContext{ObjectPath: path}
			out, terr := h(context.Background(), dctx, args)
			if terr != nil {
				return nil, dbus.NewError("org.a11y.atspi.Error", []interface{}{terr.Message})
			}
			return out, nil
		}
	}
	return table
}

func (s *dbusServer) Emit(sig Signal) error {
	return s.conn.Emit(dbus.ObjectPath(sig.Path), sig.Iface+"."+sig.Name,
		sig.Detail, sig.Detail1, sig.Detail2, sig.Value)
}

func (s *dbusServer) Close() error {
	return nil
}

// dbusClient adapts a bound (endpoint, path, interface) to Client.
type dbusClient struct {
	obj   dbus.BusObject
	iface string
}

// NewClient binds a client against conn for calls to endpoint's path
// under iface.
func NewClient(conn Connection, endpoint, path, iface string) (Client, error) {
	dc, ok := conn.(*dbusConnection)
	if !ok || dc.conn == nil {
		return nil, fmt.Errorf("transport: NewClient requires a live dbus Connection")
	}
	return &dbusClient{obj: dc.conn.Object(endpoint, dbus.ObjectPath(path)), iface: iface}, nil
}

func (c *dbusClient) Call(ctx context.Context, method string, args ...interface{}) ([]interface{}, *Error) {
	call := c.obj.CallWithContext(ctx, c.iface+"."+method, 0, args...)
	if call.Err != nil {
		return nil, NewError(ErrDefault, call.Err.Error())
	}
	return call.Body, nil
}

func (c *dbusClient) CallAsync(ctx context.Context, method string, cb func([]interface{}, *Error), args ...interface{}) {
	go func() {
		out, err := c.Call(ctx, method, args...)
		cb(out, err)
	}()
}

func (c *dbusClient) GetProperty(name string) (interface{}, *Error) {
	v, err := c.obj.GetProperty(c.iface + "." + name)
	if err != nil {
		return nil, NewError(ErrInvalidReply, err.Error())
	}
	return v.Value(), nil
}

func (c *dbusClient) SetProperty(name string, value interface{}) *Error {
	if err := c.obj.SetProperty(c.iface+"."+name, dbus.MakeVariant(value)); err != nil {
		return NewError(ErrInvalidReply, err.Error())
	}
	return nil
}
