// Package display turns panel records into GTK4 surfaces. It sizes the applet
// window, builds popovers and widgets from their specs, docks standalone
// windows with layer-shell and loads the theme stylesheet.
package display
