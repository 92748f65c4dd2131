// Package dbusstub exports the org.freedesktop.Application object path,
// implementing only its method surface. Session and connection lifecycle
// (acquiring the well-known bus name, reconnecting) stays the caller's
// concern; this package assumes a connected *dbus.Conn is handed in.
package dbusstub

import (
	"github.com/godbus/dbus/v5"

	"driftwl/internal/logx"
)

// InterfaceName is the org.freedesktop.Application interface name.
const InterfaceName = "org.freedesktop.Application"

// ObjectPath is the well-known path an application exports itself on,
// e.g. "/org/driftwl/Application".
type ObjectPath = dbus.ObjectPath

// Launcher is invoked when the shell asks the compositor to spawn or
// focus its primary surface, matching the Activate method's contract.
type Launcher interface {
	Activate(platformData map[string]dbus.Variant) *dbus.Error
	Open(uris []string, platformData map[string]dbus.Variant) *dbus.Error
	ActivateAction(actionName string, parameter []dbus.Variant, platformData map[string]dbus.Variant) *dbus.Error
}

// Application implements the org.freedesktop.Application method surface
// over a Launcher, ready for dbus.Conn.Export.
type Application struct {
	launcher Launcher
}

// NewApplication returns an Application dispatching to launcher.
func NewApplication(launcher Launcher) *Application {
	return &Application{launcher: launcher}
}

// Activate implements the Activate() method of org.freedesktop.Application.
func (a *Application) Activate(platformData map[string]dbus.Variant) *dbus.Error {
	logx.Debug("dbus Activate", "keys", len(platformData))
	return a.launcher.Activate(platformData)
}

// Open implements the Open(as,a{sv}) method.
func (a *Application) Open(uris []string, platformData map[string]dbus.Variant) *dbus.Error {
	logx.Debug("dbus Open", "uris", len(uris))
	return a.launcher.Open(uris, platformData)
}

// ActivateAction implements the ActivateAction(s,av,a{sv}) method.
func (a *Application) ActivateAction(actionName string, parameter []dbus.Variant, platformData map[string]dbus.Variant) *dbus.Error {
	logx.Debug("dbus ActivateAction", "action", actionName)
	return a.launcher.ActivateAction(actionName, parameter, platformData)
}

// Export registers a on conn at path under InterfaceName, returning any
// error from the underlying dbus.Conn.Export call.
func Export(conn *dbus.Conn, a *Application, path ObjectPath) error {
	return conn.Export(a, path, InterfaceName)
}
