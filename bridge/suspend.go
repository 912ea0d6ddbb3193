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
	"github.com/coreos/go-systemd/login1"
	"github.com/godbus/dbus/v5"
)

// login1SuspendMonitor adapts login1's PrepareForSleep signal to
// SuspendMonitor. It is the production implementation (§3
// SUPPLEMENTED host-suspend teardown); tests substitute a channel-
// backed fake instead of exercising logind.
type login1SuspendMonitor struct {
	conn *login1.Conn
}

// NewLogin1SuspendMonitor connects to the system bus via login1 and
// returns a SuspendMonitor backed by its PrepareForSleep signal.
func NewLogin1SuspendMonitor() (SuspendMonitor, error) {
	conn, err := login1.New()
	if err != nil {
		return nil, err
	}
	return &login1SuspendMonitor{conn: conn}, nil
}

// Subscribe translates login1's raw *dbus.Signal delivery (body[0] is
// the "about to sleep" bool) into the plain bool channel SuspendMonitor
// promises.
func (m *login1SuspendMonitor) Subscribe() (<-chan bool, error) {
	signals, errs := m.conn.Subscribe("PrepareForSleep")
	out := make(chan bool)
	go func() {
		defer close(out)
		for {
			select {
			case sig, ok := <-signals:
				if !ok {
					return
				}
				if sleeping, ok := signalBool(sig); ok {
					out <- sleeping
				}
			case _, ok := <-errs:
				if !ok {
					return
				}
			}
		}
	}()
	return out, nil
}

func signalBool(sig *dbus.Signal) (bool, bool) {
	if sig == nil || len(sig.Body) == 0 {
		return false, false
	}
	v, ok := sig.Body[0].(bool)
	return v, ok
}

func (m *login1SuspendMonitor) Close() error {
	m.conn.Close()
	return nil
}
