package utility

import (
	"strings"

	"twigwind/css"
	"twigwind/theme"
)

const (
	// Delimiter separates prefixes from the rest of the token.
	Delimiter = ":"
	// HoverMarker is the only supported interaction prefix.
	HoverMarker = "hover"
)

// Parsed is the result of splitting token into optional prefix and core
// pattern. It is computed fresh for every token and never cached.
type Parsed struct {
	Hover      bool   // token starts with "hover:"
	Breakpoint string // breakpoint name if token starts with one, e.g. "md"
	MinWidth   int    // breakpoint threshold in pixels, 0 when Breakpoint is empty
	Core       string // token without recognized prefix
}

// Media returns media query prelude ("@media (min-width: Npx){") or empty
// string when no breakpoint was found.
func (p Parsed) Media() string {
	if p.MinWidth == 0 {
		return ""
	}
	return css.MinWidthQuery(p.MinWidth).Prelude()
}

// Parse splits token on Delimiter. Only the first segment is considered a
// prefix and only if it is HoverMarker or a known breakpoint. Otherwise the
// whole token is the core: grid, flex, transform and transition syntax use
// the delimiter internally. Default theme is used when th is nil.
func Parse(th *theme.Theme, token string) Parsed {
	if th == nil {
		th = theme.Default()
	}
	first, rest, found := strings.Cut(token, Delimiter)
	if !found {
		return Parsed{Core: token}
	}
	if first == HoverMarker {
		return Parsed{Hover: true, Core: rest}
	}
	if px, ok := th.Breakpoint(first); ok {
		return Parsed{Breakpoint: first, MinWidth: px, Core: rest}
	}
	return Parsed{Core: token}
}
