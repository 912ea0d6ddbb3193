package accessible

// NullPath is the reserved object-path sentinel for the null Address.
const NullPath = "/org/a11y/atspi/null"

// Address is an opaque, copyable identifier of a remote accessible: a
// (bus-or-endpoint-name, object-path) pair. A path of exactly NullPath
// round-trips as the null Address regardless of bus name.
type Address struct {
	Bus  string
	Path string
}

// Null returns the null address on the given bus.
func Null(bus string) Address {
	return Address{Bus: bus, Path: NullPath}
}

// IsNull reports whether a is a null address, ignoring the bus name so
// that null addresses compare equal across bridges.
func (a Address) IsNull() bool {
	return a.Path == NullPath || a.Path == ""
}

// Equal reports whether a and other identify the same accessible. Two
// null addresses are always equal regardless of bus.
func (a Address) Equal(other Address) bool {
	if a.IsNull() && other.IsNull() {
		return true
	}
	return a.Bus == other.Bus && a.Path == other.Path
}
