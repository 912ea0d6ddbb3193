package reading_test

import (
	"testing"

	. "gopkg.in/check.v1"

	"github.com/a11ybridged/bridge/accessible"
	"github.com/a11ybridged/bridge/reading"
)

func Test(t *testing.T) { TestingT(t) }

type ReadingSuite struct{}

var _ = Suite(&ReadingSuite{})

func (s *ReadingSuite) TestHighlightButtonScenario(c *C) {
	rm := accessible.ReadingMaterial{
		Name:   "OK",
		Role:   accessible.RolePushButton,
		States: accessible.NewStates(accessible.StateFocusable, accessible.StateHighlightable, accessible.StateEnabled),
	}
	got := reading.Compose(rm, reading.Config{})
	c.Check(got, Equals, "OK, Button. Double tap to activate")
}

func (s *ReadingSuite) TestTVSliderScenario(c *C) {
	rm := accessible.ReadingMaterial{
		Name:           "Volume",
		Role:           accessible.RoleSlider,
		CurrentValue:   42.7,
		FormattedValue: "",
		States:         accessible.NewStates(accessible.StateEnabled),
	}
	got := reading.Compose(rm, reading.Config{SuppressTouchHints: true, IncludeTVTraits: true})
	c.Check(got, Equals, "Volume, Slider, 42")
}

func (s *ReadingSuite) TestNamePriority(c *C) {
	rm := accessible.ReadingMaterial{
		Name:              "plain name",
		LabeledByName:     "labeled name",
		TextInterfaceName: "text name",
		States:            accessible.NewStates(accessible.StateEnabled),
	}
	c.Check(reading.Compose(rm, reading.Config{}), Equals, "labeled name")

	rm2 := accessible.ReadingMaterial{Name: "plain name", TextInterfaceName: "text name", States: accessible.NewStates(accessible.StateEnabled)}
	c.Check(reading.Compose(rm2, reading.Config{}), Equals, "plain name")

	rm3 := accessible.ReadingMaterial{TextInterfaceName: "text name", States: accessible.NewStates(accessible.StateEnabled)}
	c.Check(reading.Compose(rm3, reading.Config{}), Equals, "text name")
}

func (s *ReadingSuite) TestStateTraitOrdering(c *C) {
	rm := accessible.ReadingMaterial{
		Name: "Item",
		Role: accessible.RoleCheckBox,
		States: accessible.NewStates(
			accessible.StateCheckable, accessible.StateChecked,
			accessible.StateSelected, accessible.StateRequired,
			accessible.StateEnabled,
		),
	}
	got := reading.Compose(rm, reading.Config{SuppressTouchHints: true})
	c.Check(got, Equals, "Item, Check box, Checked, Selected, Required")
}

func (s *ReadingSuite) TestDisabledReadOnlyTraits(c *C) {
	rm := accessible.ReadingMaterial{
		Name:   "Field",
		Role:   accessible.RoleEntry,
		States: accessible.NewStates(accessible.StateReadOnly, accessible.StateEditable),
	}
	got := reading.Compose(rm, reading.Config{SuppressTouchHints: true})
	c.Check(got, Equals, "Field, Edit field, Disabled, Read only")
}

func (s *ReadingSuite) TestEmptyMaterialProducesEmptyString(c *C) {
	c.Check(reading.Compose(accessible.ReadingMaterial{States: accessible.NewStates(accessible.StateEnabled)}, reading.Config{SuppressTouchHints: true}), Equals, "")
}

func (s *ReadingSuite) TestDescriptionAppended(c *C) {
	rm := accessible.ReadingMaterial{
		Name:        "Icon",
		Role:        accessible.RoleImage,
		Description: "a red icon",
		States:      accessible.NewStates(accessible.StateEnabled),
	}
	c.Check(reading.Compose(rm, reading.Config{SuppressTouchHints: true}), Equals, "Icon, Image, a red icon")
}

func (s *ReadingSuite) TestUnknownRoleHasNoTrait(c *C) {
	rm := accessible.ReadingMaterial{Name: "Thing", Role: accessible.RoleCanvas, States: accessible.NewStates(accessible.StateEnabled)}
	c.Check(reading.Compose(rm, reading.Config{SuppressTouchHints: true}), Equals, "Thing")
}
