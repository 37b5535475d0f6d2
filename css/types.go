// Package css holds the rule model used for generated utility styles and a
// reader able to parse generated stylesheets back for verification.
package css

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// Declarations keeps property declarations in insertion order. Order matters
// for output stability, so map is not used here.
type Declarations []Declaration

// Add appends declaration and returns extended list.
func (d Declarations) Add(property, value string) Declarations {
	return append(d, Declaration{Property: property, Value: value})
}

// Get returns value of the first declaration for the property.
func (d Declarations) Get(property string) (string, bool) {
	for _, decl := range d {
		if decl.Property == property {
			return decl.Value, true
		}
	}
	return "", false
}

// String serializes declarations as "a: b; c: d;".
func (d Declarations) String() string {
	var sb strings.Builder
	for i, decl := range d {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(decl.Property)
		sb.WriteString(": ")
		sb.WriteString(decl.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}

// Selector is a single class selector with optional :hover pseudo-class.
type Selector struct {
	Class string // Class name as it appears in markup (not escaped)
	Hover bool   // true if ":hover" pseudo-class is attached
}

// String returns escaped selector text.
func (s Selector) String() string {
	if s.Hover {
		return "." + EscapeClass(s.Class) + ":hover"
	}
	return "." + EscapeClass(s.Class)
}

// Rule represents a single CSS rule (selector + declarations).
type Rule struct {
	Selector     Selector
	Declarations Declarations
}

// String returns rule text in a single line: ".sel { a: b; }".
func (r Rule) String() string {
	return r.Selector.String() + " { " + r.Declarations.String() + " }"
}

// MediaQuery represents a media condition. Only min-width conditions are
// produced by the generator, Raw keeps whatever was read from the source.
type MediaQuery struct {
	Raw      string // Condition text, e.g. "(min-width: 768px)"
	MinWidth int    // Parsed min-width in pixels, 0 if absent
}

// MinWidthQuery returns media query for the given breakpoint threshold.
func MinWidthQuery(px int) MediaQuery {
	return MediaQuery{Raw: fmt.Sprintf("(min-width: %dpx)", px), MinWidth: px}
}

// Prelude returns opening part of the media block including brace.
func (mq MediaQuery) Prelude() string {
	return "@media " + mq.Raw + "{"
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []Rule
}

// String returns media block text, rules are concatenated without separators
// so a single rule block reads "@media (...){.sel { a: b; }}".
func (mb MediaBlock) String() string {
	var sb strings.Builder
	sb.WriteString(mb.Query.Prelude())
	for _, r := range mb.Rules {
		sb.WriteString(r.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule or MediaBlock is non-nil.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
}

// String returns item text.
func (it StylesheetItem) String() string {
	switch {
	case it.MediaBlock != nil:
		return it.MediaBlock.String()
	case it.Rule != nil:
		return it.Rule.String()
	default:
		return ""
	}
}

// NewItem wraps rule into a stylesheet item, inside media block if query is
// requested.
func NewItem(rule Rule, minWidth int) StylesheetItem {
	if minWidth > 0 {
		return StylesheetItem{MediaBlock: &MediaBlock{Query: MinWidthQuery(minWidth), Rules: []Rule{rule}}}
	}
	return StylesheetItem{Rule: &rule}
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Problems found while reading
}

// Rules returns all rules in source order, including those nested in media
// blocks.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			rules = append(rules, *item.Rule)
		case item.MediaBlock != nil:
			rules = append(rules, item.MediaBlock.Rules...)
		}
	}
	return rules
}

// RulesByClass returns all rules (including nested ones) for the class name.
func (s *Stylesheet) RulesByClass(class string) []Rule {
	var matches []Rule
	for _, r := range s.Rules() {
		if r.Selector.Class == class {
			matches = append(matches, r)
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, one item per line,
// implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		if i > 0 {
			n, err := io.WriteString(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := io.WriteString(w, item.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}
