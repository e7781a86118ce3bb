// Package log provides a minimal structured logging facade for skyview.
//
// The [Logger] interface decouples the library from any particular logging
// implementation. A zerolog-backed adapter is provided for CLI use and a
// no-op adapter is the library default, so embedding applications pay
// nothing unless they opt in.
package log
