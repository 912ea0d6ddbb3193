package inspector

import (
	"testing"

	. "gopkg.in/check.v1"

	"github.com/a11ybridged/bridge/accessible"
)

func TestInternal(t *testing.T) { TestingT(t) }

type SourceSuite struct{}

var _ = Suite(&SourceSuite{})

func (s *SourceSuite) TestIDForAddressRoundTrip(c *C) {
	src := &ProxySource{bus: "app"}
	addr := src.addressForID(42)
	id, err := idForAddress(addr)
	c.Assert(err, IsNil)
	c.Check(id, Equals, 42)
}

func (s *SourceSuite) TestIDForAddressRejectsNonAccessiblePath(c *C) {
	_, err := idForAddress(accessible.Address{Bus: "app", Path: "/org/a11y/atspi/registry"})
	c.Check(err, NotNil)
}

func (s *SourceSuite) TestStatesStringListsSetStatesOrNone(c *C) {
	c.Check(statesString(accessible.States{}), Equals, "(none)")

	withStates := accessible.NewStates(accessible.StateEnabled, accessible.StateFocusable)
	c.Check(statesString(withStates), Equals, "ENABLED, FOCUSABLE")
}
