package accessible_test

import (
	"testing"

	. "gopkg.in/check.v1"

	"github.com/a11ybridged/bridge/accessible"
)

func Test(t *testing.T) { TestingT(t) }

type AccessibleSuite struct{}

var _ = Suite(&AccessibleSuite{})

func (s *AccessibleSuite) TestRoleNameIsTotal(c *C) {
	for r := accessible.Role(0); r < accessible.RoleLast; r++ {
		c.Check(accessible.RoleName(r), Not(Equals), "", Commentf("role %d has no name", r))
	}
}

func (s *AccessibleSuite) TestRoleNameKnownValues(c *C) {
	c.Check(accessible.RoleName(accessible.RolePushButton), Equals, "push button")
	c.Check(accessible.RoleName(accessible.RoleSlider), Equals, "slider")
}

func (s *AccessibleSuite) TestRoleStringFallback(c *C) {
	c.Check(accessible.Role(60000).String(), Equals, "unknown role")
}

func (s *AccessibleSuite) TestStatesSetHasClear(c *C) {
	var ss accessible.States
	ss = ss.Set(accessible.StateFocusable)
	ss = ss.Set(accessible.StateHighlightable)
	c.Check(ss.Has(accessible.StateFocusable), Equals, true)
	c.Check(ss.Has(accessible.StateChecked), Equals, false)

	ss = ss.Clear(accessible.StateFocusable)
	c.Check(ss.Has(accessible.StateFocusable), Equals, false)
	c.Check(ss.Has(accessible.StateHighlightable), Equals, true)
}

func (s *AccessibleSuite) TestStatesHighWord(c *C) {
	var ss accessible.States
	ss = ss.Set(accessible.StateHighlighted) // index >= 32
	c.Check(ss.High, Not(Equals), uint32(0))
	c.Check(ss.Low, Equals, uint32(0))
}

func (s *AccessibleSuite) TestStatesUnionIntersectEqual(c *C) {
	a := accessible.NewStates(accessible.StateEnabled, accessible.StateVisible)
	b := accessible.NewStates(accessible.StateVisible, accessible.StateFocused)

	union := a.Union(b)
	c.Check(union.Has(accessible.StateEnabled), Equals, true)
	c.Check(union.Has(accessible.StateFocused), Equals, true)

	inter := a.Intersect(b)
	c.Check(inter.Equal(accessible.NewStates(accessible.StateVisible)), Equals, true)
}

func (s *AccessibleSuite) TestAddressNullRoundTrip(c *C) {
	n1 := accessible.Null("org.a11y.bus1")
	n2 := accessible.Address{Bus: "org.a11y.bus2", Path: accessible.NullPath}
	c.Check(n1.IsNull(), Equals, true)
	c.Check(n1.Equal(n2), Equals, true)
}

func (s *AccessibleSuite) TestAddressIdentityRoundTrip(c *C) {
	a := accessible.Address{Bus: ":1.42", Path: "/org/a11y/atspi/accessible/7"}
	b := accessible.Address{Bus: ":1.42", Path: "/org/a11y/atspi/accessible/7"}
	c.Check(a.Equal(b), Equals, true)

	other := accessible.Address{Bus: ":1.43", Path: "/org/a11y/atspi/accessible/7"}
	c.Check(a.Equal(other), Equals, false)
}

func (s *AccessibleSuite) TestRectIntersects(c *C) {
	a := accessible.Rect[int32]{X: 0, Y: 0, Width: 10, Height: 10}
	b := accessible.Rect[int32]{X: 5, Y: 5, Width: 10, Height: 10}
	d := accessible.Rect[int32]{X: 20, Y: 20, Width: 5, Height: 5}

	c.Check(a.Intersects(b), Equals, true)
	c.Check(a.Intersects(d), Equals, false)
	c.Check(a.Contains(1, 1), Equals, true)
	c.Check(a.Contains(10, 10), Equals, false)
}
