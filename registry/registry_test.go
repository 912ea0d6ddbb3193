package registry_test

import (
	"testing"

	. "gopkg.in/check.v1"

	"github.com/a11ybridged/bridge/accessible"
	"github.com/a11ybridged/bridge/registry"
)

func Test(t *testing.T) { TestingT(t) }

type RegistrySuite struct{}

var _ = Suite(&RegistrySuite{})

type fakeAcc struct {
	id       int
	name     string
	states   accessible.States
	parent   registry.Accessible
	children []registry.Accessible
	hidden   bool
}

func (a *fakeAcc) ID() int                        { return a.id }
func (a *fakeAcc) Name() string                    { return a.name }
func (a *fakeAcc) Role() accessible.Role           { return accessible.RolePanel }
func (a *fakeAcc) States() accessible.States       { return a.states }
func (a *fakeAcc) Parent() registry.Accessible     { return a.parent }
func (a *fakeAcc) Children() []registry.Accessible { return a.children }
func (a *fakeAcc) Hidden() bool                    { return a.hidden }

var _ registry.Accessible = (*fakeAcc)(nil)

func (s *RegistrySuite) TestResolveRootAlias(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	r := registry.New(app, nil)
	got, err := r.Resolve("/org/a11y/atspi/accessible/root")
	c.Assert(err, IsNil)
	c.Check(got, Equals, registry.Accessible(app))
}

func (s *RegistrySuite) TestResolveByID(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	r := registry.New(app, nil)
	win := &fakeAcc{id: 2}
	r.Register(win)

	got, err := r.Resolve("/org/a11y/atspi/accessible/2")
	c.Assert(err, IsNil)
	c.Check(got, Equals, registry.Accessible(win))
}

func (s *RegistrySuite) TestResolveUnknownID(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	r := registry.New(app, nil)
	_, err := r.Resolve("/org/a11y/atspi/accessible/99")
	c.Check(err, Equals, registry.ErrUnknownObject)
}

func (s *RegistrySuite) TestResolveHiddenFailsUnlessIncludeHidden(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	r := registry.New(app, nil)
	win := &fakeAcc{id: 2, hidden: true}
	r.Register(win)

	_, err := r.Resolve("/org/a11y/atspi/accessible/2")
	c.Check(err, Equals, registry.ErrUnknownObject)

	r.SetIncludeHidden(true)
	got, err := r.Resolve("/org/a11y/atspi/accessible/2")
	c.Assert(err, IsNil)
	c.Check(got, Equals, registry.Accessible(win))
}

func (s *RegistrySuite) TestTopLevelLifecycleEmitsDestroy(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	var destroyed []registry.Accessible
	r := registry.New(app, func(w registry.Accessible) { destroyed = append(destroyed, w) })

	win := &fakeAcc{id: 2}
	r.AddTopLevel(win)
	c.Check(r.TopLevelWindows(), HasLen, 1)

	r.AddTopLevel(win)
	c.Check(r.TopLevelWindows(), HasLen, 1)

	r.RemoveTopLevel(win)
	c.Check(r.TopLevelWindows(), HasLen, 0)
	c.Check(destroyed, HasLen, 1)
	c.Check(destroyed[0], Equals, registry.Accessible(win))
}

func (s *RegistrySuite) TestAddTopLevelAlsoTracksApplicationChild(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	r := registry.New(app, nil)

	win := &fakeAcc{id: 2, states: accessible.NewStates(accessible.StateShowing)}
	r.AddTopLevel(win)
	c.Check(app.Children(), HasLen, 1)
	c.Check(app.States().Has(accessible.StateShowing), Equals, true)

	r.RemoveTopLevel(win)
	c.Check(app.Children(), HasLen, 0)
	c.Check(app.States().Has(accessible.StateShowing), Equals, false)
}

func (s *RegistrySuite) TestTeardownWindowsEmitsForAllThenClears(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	var destroyed []registry.Accessible
	r := registry.New(app, func(w registry.Accessible) { destroyed = append(destroyed, w) })

	a := &fakeAcc{id: 2}
	b := &fakeAcc{id: 3}
	r.AddTopLevel(a)
	r.AddTopLevel(b)

	r.TeardownWindows()
	c.Check(destroyed, HasLen, 2)
	c.Check(r.TopLevelWindows(), HasLen, 0)
}

func (s *RegistrySuite) TestDefaultLabelWalksToWindowRoot(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	r := registry.New(app, nil)

	window := &fakeAcc{id: 2, parent: app}
	panel := &fakeAcc{id: 3, parent: window}
	label := &fakeAcc{id: 4, parent: panel}

	r.RegisterLabel(label)
	c.Check(r.GetLabel(window), Equals, registry.Accessible(label))
}

func (s *RegistrySuite) TestDefaultLabelUnregisteredReturnsRootItself(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	r := registry.New(app, nil)
	window := &fakeAcc{id: 2, parent: app}

	c.Check(r.GetLabel(window), Equals, registry.Accessible(window))
}

func (s *RegistrySuite) TestReRegisteringSameWindowReplacesLabel(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	r := registry.New(app, nil)
	window := &fakeAcc{id: 2, parent: app}
	label1 := &fakeAcc{id: 3, parent: window}
	label2 := &fakeAcc{id: 4, parent: window}

	r.RegisterLabel(label1)
	r.RegisterLabel(label2)
	c.Check(r.GetLabel(window), Equals, registry.Accessible(label2))
}

func (s *RegistrySuite) TestApplicationShowingIsORofChildren(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	c.Check(app.States().Has(accessible.StateShowing), Equals, false)

	hidden := &fakeAcc{id: 2, states: accessible.NewStates()}
	app.AddChild(hidden)
	c.Check(app.States().Has(accessible.StateShowing), Equals, false)

	showing := &fakeAcc{id: 3, states: accessible.NewStates(accessible.StateShowing)}
	app.AddChild(showing)
	c.Check(app.States().Has(accessible.StateShowing), Equals, true)
}

func (s *RegistrySuite) TestApplicationSensitiveAlwaysFalse(c *C) {
	app := registry.NewApplicationAccessible(1, "app")
	c.Check(app.States().Has(accessible.StateSensitive), Equals, false)
	app.AddChild(&fakeAcc{id: 2, states: accessible.NewStates(accessible.StateSensitive, accessible.StateShowing)})
	c.Check(app.States().Has(accessible.StateSensitive), Equals, false)
}
