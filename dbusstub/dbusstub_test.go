package dbusstub

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/require"
)

type fakeLauncher struct {
	activated   bool
	opened      []string
	action      string
	returnedErr *dbus.Error
}

func (f *fakeLauncher) Activate(platformData map[string]dbus.Variant) *dbus.Error {
	f.activated = true
	return f.returnedErr
}

func (f *fakeLauncher) Open(uris []string, platformData map[string]dbus.Variant) *dbus.Error {
	f.opened = uris
	return f.returnedErr
}

func (f *fakeLauncher) ActivateAction(actionName string, parameter []dbus.Variant, platformData map[string]dbus.Variant) *dbus.Error {
	f.action = actionName
	return f.returnedErr
}

func TestApplicationActivateDelegates(t *testing.T) {
	fake := &fakeLauncher{}
	app := NewApplication(fake)

	err := app.Activate(nil)
	require.Nil(t, err)
	require.True(t, fake.activated)
}

func TestApplicationOpenDelegates(t *testing.T) {
	fake := &fakeLauncher{}
	app := NewApplication(fake)

	err := app.Open([]string{"file:///tmp/x.txt"}, nil)
	require.Nil(t, err)
	require.Equal(t, []string{"file:///tmp/x.txt"}, fake.opened)
}

func TestApplicationActivateActionDelegates(t *testing.T) {
	fake := &fakeLauncher{}
	app := NewApplication(fake)

	err := app.ActivateAction("new-window", nil, nil)
	require.Nil(t, err)
	require.Equal(t, "new-window", fake.action)
}

func TestApplicationPropagatesLauncherError(t *testing.T) {
	dbusErr := dbus.NewError("org.driftwl.Error.Failed", []interface{}{"boom"})
	fake := &fakeLauncher{returnedErr: dbusErr}
	app := NewApplication(fake)

	err := app.Activate(nil)
	require.NotNil(t, err)
	require.Equal(t, "org.driftwl.Error.Failed", err.Name)
}
