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

// Package bridge is the three-state monitor driving the AT bridge's
// lifecycle: it watches a11y-enabled, screen-reader-enabled and
// application-running, computes whether the bridge should be up, and
// runs the force-up/force-down procedures against a pluggable
// transport Backend.
package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/a11ybridged/bridge/atspi"
	"github.com/a11ybridged/bridge/platform"
	"github.com/a11ybridged/bridge/registry"
	"github.com/a11ybridged/bridge/transport"

	"gopkg.in/tomb.v2"
)

// Phase is the bridge's own lifecycle stage, distinct from up/down:
// transitions are deferred until the first status read completes.
type Phase int

const (
	PhaseUninit Phase = iota
	PhaseProbing
	PhaseListening
)

func (p Phase) String() string {
	switch p {
	case PhaseUninit:
		return "uninit"
	case PhaseProbing:
		return "probing"
	case PhaseListening:
		return "listening"
	default:
		return "unknown"
	}
}

// DefaultRetryDelay is the single-shot retry cadence for both force-up
// failures and status-read failures (§4.D).
const DefaultRetryDelay = 1000 * time.Millisecond

// Backend is the seam between the bridge and a concrete transport: it
// resolves the AT bus address, opens a connection to it and builds the
// Server/Client pairs the force-up procedure needs. Production code
// wires DBusBackend; tests wire a transporttest-backed fake.
type Backend interface {
	// Available reports whether a transport implementation is installed
	// at all (§4.D step 1's "no backend installed" branch).
	Available() bool
	ResolveATBusAddress(ctx context.Context) (string, error)
	Connect(ctx context.Context, address string) (transport.Connection, error)
	NewServer(conn transport.Connection) (transport.Server, error)
	NewClient(conn transport.Connection, endpoint, path, iface string) (transport.Client, error)
}

// EmbedFunc synchronously embeds the application root into the
// registry's root socket and returns the parent address the socket
// assigns (§4.D step 8).
type EmbedFunc func(ctx context.Context, client transport.Client) (parentAddress string, err error)

// Inputs is the bridge's three monitored external conditions plus the
// "suppressed" modifier on screen-reader mode.
type Inputs struct {
	A11yEnabled          bool
	ScreenReaderEnabled  bool
	ApplicationRunning   bool
	Suppressed           bool
}

// up evaluates the transition rule: UP iff application-running AND
// (a11y-enabled OR (screen-reader-enabled AND NOT suppressed)).
func (in Inputs) up() bool {
	return in.ApplicationRunning && (in.A11yEnabled || (in.ScreenReaderEnabled && !in.Suppressed))
}

// Bridge owns the object registry, the transport connection once
// force-up succeeds, and the retry/suspend goroutines. It is driven
// from a single goroutine; Apply and the lifecycle methods are not
// safe to call concurrently with each other, matching the registry's
// single-owner discipline (§4.J).
type Bridge struct {
	backend   Backend
	preferred string // preferred bus name; empty means local-only naming
	registry  *registry.Registry
	embed     EmbedFunc

	mu    sync.Mutex
	phase Phase
	up    bool
	inputs Inputs
	initialized bool

	conn        transport.Connection
	server      transport.Server
	registryClient transport.Client
	eventChan   transport.Client

	subscribedEvents map[string]struct{}

	retryTimer *platform.RepeatingTimer
	callbacks  platform.Callbacks

	t tomb.Tomb

	suspend SuspendMonitor
}

// SuspendMonitor abstracts the host-suspend signal (§3 SUPPLEMENTED
// host-suspend teardown): Subscribe returns a channel that receives
// true when the host is about to sleep and false on resume.
type SuspendMonitor interface {
	Subscribe() (<-chan bool, error)
	Close() error
}

// New returns a Bridge that drives reg through backend, requesting
// preferredBusName (may be empty) and embedding the application root
// via embed.
func New(backend Backend, reg *registry.Registry, preferredBusName string, embed EmbedFunc, callbacks platform.Callbacks) *Bridge {
	return &Bridge{
		backend:   backend,
		preferred: preferredBusName,
		registry:  reg,
		embed:     embed,
		callbacks: callbacks,
		phase:     PhaseUninit,
	}
}

// Phase returns the bridge's current lifecycle phase.
func (b *Bridge) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Up reports whether the bridge is currently up.
func (b *Bridge) Up() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.up
}

// Initialize marks the status channel established and performs the
// first application of inputs; until this is called, Apply defers all
// transitions (§4.D "initialize phase").
func (b *Bridge) Initialize(ctx context.Context, initial Inputs) error {
	b.mu.Lock()
	b.initialized = true
	b.phase = PhaseProbing
	b.mu.Unlock()
	return b.Apply(ctx, initial)
}

// Apply records new inputs and performs a force-up or force-down if
// the computed up/down state changed. Calls before Initialize are
// recorded but produce no transition.
func (b *Bridge) Apply(ctx context.Context, in Inputs) error {
	b.mu.Lock()
	b.inputs = in
	initialized := b.initialized
	wasUp := b.up
	wantUp := in.up()
	b.mu.Unlock()

	if !initialized {
		return nil
	}
	if wantUp == wasUp {
		return nil
	}
	if wantUp {
		return b.forceUp(ctx)
	}
	b.forceDown()
	return nil
}

// forceUp runs the nine-step procedure of §4.D. A failure at the
// broker-resolution step schedules a retry and leaves the bridge down.
func (b *Bridge) forceUp(ctx context.Context) error {
	// Step 1: no transport backend at all is a valid "just started"
	// local-only UP, distinct from a failed IPC attempt.
	if !b.backend.Available() {
		b.mu.Lock()
		b.up = true
		b.phase = PhaseListening
		b.mu.Unlock()
		return nil
	}

	// Step 2: resolve the AT bus address via the well-known broker.
	addr, err := b.backend.ResolveATBusAddress(ctx)
	if err != nil {
		b.scheduleRetry(ctx)
		return fmt.Errorf("bridge: resolve AT bus address: %w", err)
	}

	// Step 3: open the connection, cache its unique name.
	conn, err := b.backend.Connect(ctx, addr)
	if err != nil {
		b.scheduleRetry(ctx)
		return fmt.Errorf("bridge: connect: %w", err)
	}

	// Step 4: register interface descriptions at the canonical paths.
	server, err := b.backend.NewServer(conn)
	if err != nil {
		conn.Close()
		b.scheduleRetry(ctx)
		return fmt.Errorf("bridge: export server: %w", err)
	}
	for _, iface := range b.interfaceDescriptions(conn.UniqueName()) {
		if err := server.ExportFallback(iface); err != nil {
			conn.Close()
			b.scheduleRetry(ctx)
			return fmt.Errorf("bridge: export %s: %w", iface.Name, err)
		}
	}

	// Step 5: create the registry client and an empty subscribed-event
	// set. No listener-registration signal subscription is made, so the
	// set stays empty.
	registryClient, err := b.backend.NewClient(conn, atspi.RegistryInterface, atspi.RegistryPath, atspi.RegistryInterface)
	if err == nil {
		b.mu.Lock()
		b.registryClient = registryClient
		b.subscribedEvents = make(map[string]struct{})
		b.mu.Unlock()
	}

	// Step 6: the direct-reading client is built against the same
	// connection. No key-event forwarder is created.
	eventChan, _ := b.backend.NewClient(conn, atspi.DirectReadingBus, atspi.DirectReadingPath, atspi.DirectReadingInterface)

	// Step 7: request the preferred bus name, if any.
	if owner, ok := conn.(transport.NameOwner); ok && b.preferred != "" {
		if _, err := owner.RequestName(b.preferred); err != nil {
			conn.Close()
			b.scheduleRetry(ctx)
			return fmt.Errorf("bridge: request name: %w", err)
		}
	}

	// Step 8: embed the application root into the registry's socket.
	var parentAddr string
	if b.embed != nil && registryClient != nil {
		parentAddr, err = b.embed(ctx, registryClient)
		if err != nil {
			conn.Close()
			b.scheduleRetry(ctx)
			return fmt.Errorf("bridge: embed application root: %w", err)
		}
	}

	b.mu.Lock()
	b.conn = conn
	b.server = server
	b.eventChan = eventChan
	b.up = true
	b.phase = PhaseListening
	b.stopRetryLocked()
	b.mu.Unlock()

	// Step 9: emit the "enabled" signal.
	_ = server.Emit(transport.Signal{
		Path: atspi.StatusPath, Iface: atspi.StatusInterface, Name: "Enabled", Value: true,
	})
	platform.Log(platform.Info, "bridge: force-up complete, parent=%s", parentAddr)
	return nil
}

// forceDown releases the bus name, closes the server and the
// connection, tears down the registry's top-level windows, stops the
// retry timer and drops the clients. It does not unembed the
// application root from the registry socket, and the bridge holds no
// coalescable-message table to clear. A repeated call when already
// down is a no-op.
func (b *Bridge) forceDown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.up {
		return
	}

	if b.conn != nil {
		if owner, ok := b.conn.(transport.NameOwner); ok && b.preferred != "" {
			_ = owner.ReleaseName(b.preferred)
		}
		if b.server != nil {
			_ = b.server.Close()
		}
		_ = b.conn.Close()
	}
	if b.registry != nil {
		b.registry.TeardownWindows()
	}
	b.stopRetryLocked()

	b.conn = nil
	b.server = nil
	b.registryClient = nil
	b.eventChan = nil
	b.subscribedEvents = nil
	b.up = false
	b.phase = PhaseProbing
}

func (b *Bridge) scheduleRetry(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.retryTimer == nil {
		b.retryTimer = platform.NewRepeatingTimer(b.callbacks)
	}
	b.retryTimer.Start(int(DefaultRetryDelay/time.Millisecond), func() {
		_ = b.forceUp(ctx)
	})
}

func (b *Bridge) stopRetryLocked() {
	if b.retryTimer != nil {
		b.retryTimer.Stop()
	}
}

// interfaceDescriptions returns the bridge's exported surface: the
// registered interfaces of §6 built from the registry so that every
// object it knows about answers on the bus at its canonical path via
// Server.ExportFallback, rather than only the literal root object.
func (b *Bridge) interfaceDescriptions(busName string) []*transport.InterfaceDescription {
	if b.registry == nil {
		return nil
	}
	return []*transport.InterfaceDescription{
		accessibleInterface(b.registry, busName),
		componentInterface(b.registry),
	}
}

// WatchSuspend runs for the bridge's lifetime: on host suspend it
// force-downs (tearing down the connection before the process is
// frozen), and on resume it re-applies the last known inputs so a
// still-UP condition re-establishes the connection (§3 SUPPLEMENTED).
func (b *Bridge) WatchSuspend(ctx context.Context, monitor SuspendMonitor) {
	b.mu.Lock()
	b.suspend = monitor
	b.mu.Unlock()

	ch, err := monitor.Subscribe()
	if err != nil {
		platform.Log(platform.Warning, "bridge: suspend monitor unavailable: %v", err)
		return
	}
	b.t.Go(func() error {
		for {
			select {
			case <-b.t.Dying():
				return monitor.Close()
			case sleeping, ok := <-ch:
				if !ok {
					return monitor.Close()
				}
				if sleeping {
					b.forceDown()
				} else {
					b.mu.Lock()
					in := b.inputs
					b.mu.Unlock()
					_ = b.Apply(ctx, in)
				}
			}
		}
	})
}

// Stop ends the suspend-watch goroutine and tears the bridge down.
func (b *Bridge) Stop() error {
	b.t.Kill(nil)
	err := b.t.Wait()
	b.forceDown()
	return err
}
