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

	"github.com/a11ybridged/bridge/atspi"
	"github.com/a11ybridged/bridge/transport"
)

// Broker resolves the AT bus address via the well-known session
// broker (§4.D step 2), a thin client over org.a11y.Bus.
type Broker interface {
	GetAddress(ctx context.Context) (string, error)
}

// busBroker queries org.a11y.Bus's GetAddress method over an
// already-open session-bus connection, the standard AT-SPI discovery
// path.
type busBroker struct {
	sessionConn transport.Connection
	dial        func(conn transport.Connection, endpoint, path, iface string) (transport.Client, error)
}

func (b *busBroker) GetAddress(ctx context.Context) (string, error) {
	client, err := b.dial(b.sessionConn, atspi.StatusBus, atspi.StatusPath, atspi.StatusInterface)
	if err != nil {
		return "", err
	}
	out, terr := client.Call(ctx, "GetAddress")
	if terr != nil {
		return "", terr
	}
	if len(out) == 0 {
		return "", fmt.Errorf("bridge: GetAddress: empty reply")
	}
	addr, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("bridge: GetAddress: unexpected reply shape")
	}
	return addr, nil
}

// DBusBackend is the production Backend: it dials the session bus to
// resolve the AT bus address, then opens a second connection to that
// address for the bridge's own traffic.
type DBusBackend struct {
	available bool
}

// NewDBusBackend returns a Backend backed by github.com/godbus/dbus/v5.
// available controls the §4.D step-1 "no backend installed" branch —
// set false on platforms with no D-Bus support.
func NewDBusBackend(available bool) *DBusBackend {
	return &DBusBackend{available: available}
}

func (d *DBusBackend) Available() bool { return d.available }

func (d *DBusBackend) ResolveATBusAddress(ctx context.Context) (string, error) {
	sessionConn, err := transport.Connect(transport.SessionBus)
	if err != nil {
		return "", err
	}
	defer sessionConn.Close()
	broker := &busBroker{sessionConn: sessionConn, dial: dialClient}
	return broker.GetAddress(ctx)
}

func (d *DBusBackend) Connect(ctx context.Context, address string) (transport.Connection, error) {
	return transport.ConnectAddress(address)
}

func (d *DBusBackend) NewServer(conn transport.Connection) (transport.Server, error) {
	return transport.NewServer(conn)
}

func (d *DBusBackend) NewClient(conn transport.Connection, endpoint, path, iface string) (transport.Client, error) {
	return dialClient(conn, endpoint, path, iface)
}

func dialClient(conn transport.Connection, endpoint, path, iface string) (transport.Client, error) {
	return transport.NewClient(conn, endpoint, path, iface)
}

var _ Backend = (*DBusBackend)(nil)
