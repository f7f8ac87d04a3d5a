// Package dbus reads the desktop colour-scheme preference from the
// org.freedesktop.portal.Settings interface and follows its changes. The
// applet uses it to pick the light or dark fallback theme.
package dbus
