// Package theme defines lookup tables used to translate utility class tokens
// into CSS values: colors, spacing properties, size and shadow presets,
// breakpoints and gradient directions.
//
// Theme is built once (defaults plus optional overrides) and is read-only
// afterwards, so a single value can be shared by any number of generators.
package theme

import (
	"maps"
	"slices"
	"sort"
)

// Theme keeps all tables. Use Default or New to get an instance, zero value is
// not usable.
type Theme struct {
	colors      map[string]string
	spacing     map[string]string
	sizes       map[string]string
	shadows     map[string]string
	directions  map[string]string
	breakpoints map[string]int
}

// Overrides are merged over default tables, new keys are added and existing
// ones replaced.
type Overrides struct {
	Colors      map[string]string
	Sizes       map[string]string
	Shadows     map[string]string
	Breakpoints map[string]int
}

var defaultColors = map[string]string{
	"amber": "#ffc107", "aqua": "#00ffff", "blue": "#2196F3", "lightBlue": "#87CEEB",
	"brown": "#795548", "cyan": "#00bcd4", "blueGrey": "#607d8b", "green": "#4CAF50",
	"lightGreen": "#8bc34a", "indigo": "#3f51b5", "khaki": "#f0e68c", "lime": "#cddc39",
	"orange": "#ff9800", "deepOrange": "#ff5722", "pink": "#e91e63", "purple": "#9c27b0",
	"deepPurple": "#673ab7", "red": "#f44336", "sand": "#fdf5e6", "teal": "#009688",
	"yellow": "#ffeb3b", "white": "#fff", "black": "#000",
}

var defaultSpacing = map[string]string{
	"p": "padding", "pl": "padding-left", "pr": "padding-right",
	"pt": "padding-top", "pb": "padding-bottom",
	"m": "margin", "ml": "margin-left", "mr": "margin-right",
	"mt": "margin-top", "mb": "margin-bottom",
}

var defaultSizes = map[string]string{
	"sm": "40px", "md": "80px", "lg": "160px", "xl": "320px", "xxl": "640px",
}

var defaultShadows = map[string]string{
	"sm":  "0 1px 2px rgba(0,0,0,0.05)",
	"md":  "0 4px 6px rgba(0,0,0,0.1)",
	"lg":  "0 10px 15px rgba(0,0,0,0.15)",
	"xl":  "0 20px 25px rgba(0,0,0,0.2)",
	"2xl": "0 25px 50px rgba(0,0,0,0.25)",
}

var defaultDirections = map[string]string{
	"to-r":  "to right",
	"to-l":  "to left",
	"to-t":  "to top",
	"to-b":  "to bottom",
	"to-tr": "to top right",
	"to-tl": "to top left",
	"to-br": "to bottom right",
	"to-bl": "to bottom left",
}

var defaultBreakpoints = map[string]int{
	"sm": 640, "md": 768, "lg": 1024, "xl": 1280, "2xl": 1536,
}

// DefaultShadow is the preset used for bare "shadow" token.
const DefaultShadow = "sm"

// DefaultDirection is used for unknown "to-*" gradient directions.
const DefaultDirection = "to right"

// Default returns theme with built-in tables only.
func Default() *Theme {
	return New(Overrides{})
}

// New returns default theme with overrides applied.
func New(o Overrides) *Theme {
	t := &Theme{
		colors:      maps.Clone(defaultColors),
		spacing:     maps.Clone(defaultSpacing),
		sizes:       maps.Clone(defaultSizes),
		shadows:     maps.Clone(defaultShadows),
		directions:  maps.Clone(defaultDirections),
		breakpoints: maps.Clone(defaultBreakpoints),
	}
	maps.Copy(t.colors, o.Colors)
	maps.Copy(t.sizes, o.Sizes)
	maps.Copy(t.shadows, o.Shadows)
	maps.Copy(t.breakpoints, o.Breakpoints)
	return t
}

// Color resolves color name, unknown names are returned as is so raw values
// like "#123" or "transparent" can be passed through.
func (t *Theme) Color(name string) string {
	if v, ok := t.colors[name]; ok {
		return v
	}
	return name
}

// SpacingProperty returns full property name for short spacing key.
func (t *Theme) SpacingProperty(key string) (string, bool) {
	v, ok := t.spacing[key]
	return v, ok
}

// Size returns size preset value.
func (t *Theme) Size(name string) (string, bool) {
	v, ok := t.sizes[name]
	return v, ok
}

// Shadow returns shadow preset value.
func (t *Theme) Shadow(name string) (string, bool) {
	v, ok := t.shadows[name]
	return v, ok
}

// Direction maps "to-*" gradient direction keyword to CSS phrase falling back
// to DefaultDirection.
func (t *Theme) Direction(key string) string {
	if v, ok := t.directions[key]; ok {
		return v
	}
	return DefaultDirection
}

// Breakpoint returns min-width threshold in pixels for the breakpoint name.
func (t *Theme) Breakpoint(name string) (int, bool) {
	v, ok := t.breakpoints[name]
	return v, ok
}

// Breakpoints returns breakpoint names ordered from smallest to largest
// threshold.
func (t *Theme) Breakpoints() []string {
	names := slices.Collect(maps.Keys(t.breakpoints))
	sort.Slice(names, func(i, j int) bool {
		bi, bj := t.breakpoints[names[i]], t.breakpoints[names[j]]
		if bi != bj {
			return bi < bj
		}
		return names[i] < names[j]
	})
	return names
}

// Colors returns copy of the color table.
func (t *Theme) Colors() map[string]string {
	return maps.Clone(t.colors)
}
