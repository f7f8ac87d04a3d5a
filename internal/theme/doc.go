// Package theme resolves the applet theme. Dark and Light backgrounds use the
// built-in themes; the others read a TOML theme store under the XDG config
// directory, stream changes to subscribers, and render the result as a GTK
// stylesheet.
package theme
