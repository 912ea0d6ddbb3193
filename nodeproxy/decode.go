package nodeproxy

import (
	"fmt"

	"github.com/a11ybridged/bridge/accessible"
)

// These helpers decode a transport.Client reply body (a []interface{}
// tuple) into the Go type a given accessor promises. They exist
// because the transport layer is untyped at the call boundary (§4.A):
// each interface description's methods are registered dynamically, so
// replies cross that boundary as interface{} tuples the way godbus
// itself hands back dbus.Variant-free call bodies.

func asString(out []interface{}, i int) (string, error) {
	if i >= len(out) {
		return "", fmt.Errorf("nodeproxy: missing reply element %d", i)
	}
	s, ok := out[i].(string)
	if !ok {
		return "", fmt.Errorf("nodeproxy: reply element %d is not a string", i)
	}
	return s, nil
}

func asBool(out []interface{}, i int) (bool, error) {
	if i >= len(out) {
		return false, fmt.Errorf("nodeproxy: missing reply element %d", i)
	}
	b, ok := out[i].(bool)
	if !ok {
		return false, fmt.Errorf("nodeproxy: reply element %d is not a bool", i)
	}
	return b, nil
}

func asUint(out []interface{}, i int) (uint64, error) {
	if i >= len(out) {
		return 0, fmt.Errorf("nodeproxy: missing reply element %d", i)
	}
	switch v := out[i].(type) {
	case int:
		return uint64(v), nil
	case int32:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case int64:
		return uint64(v), nil
	case uint64:
		return v, nil
	default:
		return 0, fmt.Errorf("nodeproxy: reply element %d is not an integer", i)
	}
}

func asFloat(out []interface{}, i int) (float64, error) {
	if i >= len(out) {
		return 0, fmt.Errorf("nodeproxy: missing reply element %d", i)
	}
	switch v := out[i].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("nodeproxy: reply element %d is not a number", i)
	}
}

func asAddress(out []interface{}, i int) (accessible.Address, bool) {
	if i >= len(out) {
		return accessible.Address{}, false
	}
	addr, ok := out[i].(accessible.Address)
	return addr, ok
}

func asReadingMaterial(out []interface{}) (accessible.ReadingMaterial, bool) {
	if len(out) == 0 {
		return accessible.ReadingMaterial{}, false
	}
	rm, ok := out[0].(accessible.ReadingMaterial)
	return rm, ok
}

func asNodeInfo(out []interface{}) (accessible.NodeInfo, bool) {
	if len(out) == 0 {
		return accessible.NodeInfo{}, false
	}
	ni, ok := out[0].(accessible.NodeInfo)
	return ni, ok
}

func asRect(out []interface{}) (accessible.Rect[int32], bool) {
	if len(out) == 0 {
		return accessible.Rect[int32]{}, false
	}
	r, ok := out[0].(accessible.Rect[int32])
	return r, ok
}
