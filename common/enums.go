// Package common keeps enums shared between configuration and processing
// code so config does not have to import processing packages.
package common

//go:generate go tool go-enum --marshal --names

// Specification of requested output type.
// ENUM(html, css)
type OutputFmt int

// Ext returns file extension for the output format.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtHtml:
		return ".html"
	case OutputFmtCss:
		return ".css"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Inject reports whether generated rules are put back into the document.
func (o OutputFmt) Inject() bool {
	return o == OutputFmtHtml
}
