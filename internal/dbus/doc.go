// Package dbus exposes the marqueed scheduler over the session bus and
// provides the typed client used by the marquee CLI.
package dbus
