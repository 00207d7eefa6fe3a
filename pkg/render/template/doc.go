// Package template defines the renderer-agnostic template interface. The
// gotemplate subpackage implements it with pongo2.
package template
