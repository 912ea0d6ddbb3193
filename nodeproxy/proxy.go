package nodeproxy

import (
	"context"
	"fmt"
	"sync"

	"github.com/a11ybridged/bridge/accessible"
	"github.com/a11ybridged/bridge/atspi"
	"github.com/a11ybridged/bridge/transport"
)

// Dialer returns a Client bound to addr under the given interface
// name, the single extension point concrete transports plug into.
type Dialer func(addr accessible.Address, iface string) (transport.Client, error)

// Factory creates Proxy instances over a Dialer and caches them by
// address: repeated lookups of the same address return the same live
// proxy while at least one holder remains (§3, §5 "weak cache").
type Factory struct {
	dial Dialer

	mu    sync.Mutex
	cache map[accessible.Address]*entry
}

type entry struct {
	proxy *Proxy
	refs  int
}

// NewFactory returns a Factory dialing clients via dial.
func NewFactory(dial Dialer) *Factory {
	return &Factory{dial: dial, cache: make(map[accessible.Address]*entry)}
}

// Get returns the live proxy for addr, creating it if no holder
// currently keeps it alive, and increments its reference count. Every
// Get must be paired with a Release.
func (f *Factory) Get(addr accessible.Address) *Proxy {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.cache[addr]; ok {
		e.refs++
		return e.proxy
	}
	p := &Proxy{addr: addr, factory: f}
	f.cache[addr] = &entry{proxy: p, refs: 1}
	return p
}

// Release drops one reference to addr's proxy; once the count reaches
// zero the proxy is dropped from the cache and the next Get recreates
// it.
func (f *Factory) Release(addr accessible.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.cache[addr]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(f.cache, addr)
	}
}

// Proxy is the transport-backed NodeProxy implementation: every
// operation builds a typed client for the target interface via the
// factory's Dialer and issues one call.
type Proxy struct {
	addr    accessible.Address
	factory *Factory
}

var _ NodeProxy = (*Proxy)(nil)

func (p *Proxy) Address() accessible.Address { return p.addr }

func (p *Proxy) call(ctx context.Context, iface, method string, args ...interface{}) ([]interface{}, error) {
	client, err := p.factory.dial(p.addr, iface)
	if err != nil {
		return nil, err
	}
	out, terr := client.Call(ctx, method, args...)
	if terr != nil {
		return nil, terr
	}
	return out, nil
}

func (p *Proxy) Name(ctx context.Context) (string, error) {
	out, err := p.call(ctx, atspi.IfaceAccessible, "GetName")
	if err != nil {
		return "", err
	}
	return asString(out, 0)
}

func (p *Proxy) Description(ctx context.Context) (string, error) {
	out, err := p.call(ctx, atspi.IfaceAccessible, "GetDescription")
	if err != nil {
		return "", err
	}
	return asString(out, 0)
}

func (p *Proxy) Role(ctx context.Context) (accessible.Role, error) {
	out, err := p.call(ctx, atspi.IfaceAccessible, "GetRole")
	if err != nil {
		return accessible.RoleInvalid, err
	}
	v, err := asUint(out, 0)
	return accessible.Role(v), err
}

func (p *Proxy) States(ctx context.Context) (accessible.States, error) {
	out, err := p.call(ctx, atspi.IfaceAccessible, "GetStates")
	if err != nil {
		return accessible.States{}, err
	}
	if len(out) < 2 {
		return accessible.States{}, fmt.Errorf("nodeproxy: GetStates: unexpected reply shape")
	}
	low, lerr := asUint(out, 0)
	high, herr := asUint(out, 1)
	if lerr != nil {
		return accessible.States{}, lerr
	}
	if herr != nil {
		return accessible.States{}, herr
	}
	return accessible.States{Low: uint32(low), High: uint32(high)}, nil
}

func (p *Proxy) Attributes(ctx context.Context) (accessible.Attributes, error) {
	out, err := p.call(ctx, atspi.IfaceAccessible, "GetAttributes")
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return accessible.Attributes{}, nil
	}
	m, ok := out[0].(map[string]string)
	if !ok {
		return nil, fmt.Errorf("nodeproxy: GetAttributes: unexpected reply shape")
	}
	return accessible.Attributes(m), nil
}

func (p *Proxy) addressOfChild(ctx context.Context, method string, args ...interface{}) (NodeProxy, error) {
	out, err := p.call(ctx, atspi.IfaceAccessible, method, args...)
	if err != nil {
		return nil, err
	}
	addr, ok := asAddress(out, 0)
	if !ok {
		return nil, fmt.Errorf("nodeproxy: %s: unexpected reply shape", method)
	}
	if addr.IsNull() {
		return nil, nil
	}
	return p.factory.Get(addr), nil
}

func (p *Proxy) Parent(ctx context.Context) (NodeProxy, error) {
	return p.addressOfChild(ctx, "GetParent")
}

func (p *Proxy) ChildCount(ctx context.Context) (int, error) {
	out, err := p.call(ctx, atspi.IfaceAccessible, "GetChildCount")
	if err != nil {
		return 0, err
	}
	v, err := asUint(out, 0)
	return int(v), err
}

func (p *Proxy) ChildAt(ctx context.Context, index int) (NodeProxy, error) {
	return p.addressOfChild(ctx, "GetChildAtIndex", int32(index))
}

func (p *Proxy) Children(ctx context.Context) ([]NodeProxy, error) {
	n, err := p.ChildCount(ctx)
	if err != nil {
		return nil, err
	}
	children := make([]NodeProxy, 0, n)
	for i := 0; i < n; i++ {
		child, err := p.ChildAt(ctx, i)
		if err != nil {
			return nil, err
		}
		if child != nil {
			children = append(children, child)
		}
	}
	return children, nil
}

func (p *Proxy) IndexInParent(ctx context.Context) (int, error) {
	out, err := p.call(ctx, atspi.IfaceAccessible, "GetIndexInParent")
	if err != nil {
		return -1, err
	}
	v, err := asUint(out, 0)
	return int(v), err
}

func (p *Proxy) ReadingMaterial(ctx context.Context) (accessible.ReadingMaterial, error) {
	out, err := p.call(ctx, atspi.IfaceAccessible, "GetReadingMaterial")
	if err != nil {
		return accessible.ReadingMaterial{}, err
	}
	rm, ok := asReadingMaterial(out)
	if !ok {
		return accessible.ReadingMaterial{}, fmt.Errorf("nodeproxy: GetReadingMaterial: unexpected reply shape")
	}
	return rm, nil
}

func (p *Proxy) NodeInfo(ctx context.Context) (accessible.NodeInfo, error) {
	out, err := p.call(ctx, atspi.IfaceAccessible, "GetNodeInfo")
	if err != nil {
		return accessible.NodeInfo{}, err
	}
	ni, ok := asNodeInfo(out)
	if !ok {
		return accessible.NodeInfo{}, fmt.Errorf("nodeproxy: GetNodeInfo: unexpected reply shape")
	}
	return ni, nil
}

func (p *Proxy) Extents(ctx context.Context, coord CoordType) (accessible.Rect[int32], error) {
	out, err := p.call(ctx, atspi.IfaceComponent, "GetExtents", int32(coord))
	if err != nil {
		return accessible.Rect[int32]{}, err
	}
	r, ok := asRect(out)
	if !ok {
		return accessible.Rect[int32]{}, fmt.Errorf("nodeproxy: GetExtents: unexpected reply shape")
	}
	return r, nil
}

func (p *Proxy) Layer(ctx context.Context) (int, error) {
	out, err := p.call(ctx, atspi.IfaceComponent, "GetLayer")
	if err != nil {
		return 0, err
	}
	v, err := asUint(out, 0)
	return int(v), err
}

func (p *Proxy) GrabFocus(ctx context.Context) (bool, error) {
	out, err := p.call(ctx, atspi.IfaceComponent, "GrabFocus")
	if err != nil {
		return false, err
	}
	return asBool(out, 0)
}

func (p *Proxy) GrabHighlight(ctx context.Context) (bool, error) {
	out, err := p.call(ctx, atspi.IfaceComponent, "GrabHighlight")
	if err != nil {
		return false, err
	}
	return asBool(out, 0)
}

func (p *Proxy) ClearHighlight(ctx context.Context) (bool, error) {
	out, err := p.call(ctx, atspi.IfaceComponent, "ClearHighlight")
	if err != nil {
		return false, err
	}
	return asBool(out, 0)
}

func (p *Proxy) ActionCount(ctx context.Context) (int, error) {
	out, err := p.call(ctx, atspi.IfaceAction, "GetActionCount")
	if err != nil {
		return 0, err
	}
	v, err := asUint(out, 0)
	return int(v), err
}

func (p *Proxy) ActionName(ctx context.Context, index int) (string, error) {
	out, err := p.call(ctx, atspi.IfaceAction, "GetActionName", int32(index))
	if err != nil {
		return "", err
	}
	return asString(out, 0)
}

func (p *Proxy) DoActionByName(ctx context.Context, name string) (bool, error) {
	out, err := p.call(ctx, atspi.IfaceAction, "DoActionByName", name)
	if err != nil {
		return false, err
	}
	return asBool(out, 0)
}

func (p *Proxy) CurrentValue(ctx context.Context) (float64, error) {
	out, err := p.call(ctx, atspi.IfaceValue, "GetCurrentValue")
	if err != nil {
		return 0, err
	}
	return asFloat(out, 0)
}

func (p *Proxy) SetCurrentValue(ctx context.Context, value float64) error {
	_, err := p.call(ctx, atspi.IfaceValue, "SetCurrentValue", value)
	return err
}

func (p *Proxy) MinimumValue(ctx context.Context) (float64, error) {
	out, err := p.call(ctx, atspi.IfaceValue, "GetMinimumValue")
	if err != nil {
		return 0, err
	}
	return asFloat(out, 0)
}

func (p *Proxy) MaximumValue(ctx context.Context) (float64, error) {
	out, err := p.call(ctx, atspi.IfaceValue, "GetMaximumValue")
	if err != nil {
		return 0, err
	}
	return asFloat(out, 0)
}

func (p *Proxy) MinimumIncrement(ctx context.Context) (float64, error) {
	out, err := p.call(ctx, atspi.IfaceValue, "GetMinimumIncrement")
	if err != nil {
		return 0, err
	}
	return asFloat(out, 0)
}

func (p *Proxy) Text(ctx context.Context, startOffset, endOffset int) (string, error) {
	out, err := p.call(ctx, atspi.IfaceText, "GetText", int32(startOffset), int32(endOffset))
	if err != nil {
		return "", err
	}
	return asString(out, 0)
}

func (p *Proxy) CharacterCount(ctx context.Context) (int, error) {
	out, err := p.call(ctx, atspi.IfaceText, "GetCharacterCount")
	if err != nil {
		return 0, err
	}
	v, err := asUint(out, 0)
	return int(v), err
}
