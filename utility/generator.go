// Package utility turns utility class tokens ("bg-red", "md:p-4",
// "hover:shadow-lg") into CSS rules.
//
// Generator is the unit of work: it remembers which tokens were already seen
// and accumulates rules in first-seen order. Each token produces at most one
// rule no matter how many times it is encountered. Lookup tables come from
// theme.Theme which is shared and never modified.
package utility

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"twigwind/css"
	"twigwind/theme"
)

// Element is anything carrying class list, normally document element.
type Element interface {
	ClassNames() []string
}

// ClassList is Element backed by plain slice of tokens.
type ClassList []string

// ClassNames implements Element.
func (cl ClassList) ClassNames() []string {
	return cl
}

// StyleTarget receives generated stylesheet on Flush.
type StyleTarget interface {
	AppendStyle(text string) error
}

// Generator accumulates CSS for tokens it was given. It is safe for
// concurrent use.
type Generator struct {
	theme       *theme.Theme
	log         *zap.Logger
	recognizers map[Feature]Recognizer

	mu       sync.Mutex
	seen     map[string]Feature
	order    []string // seen tokens, first-seen order
	produced map[string]bool
	rules    []string
}

// New returns empty generator using theme tables. Default theme is used when
// th is nil.
func New(th *theme.Theme, log *zap.Logger) *Generator {
	if th == nil {
		th = theme.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		theme:       th,
		log:         log.Named("utility"),
		recognizers: NewRecognizers(th),
		seen:        make(map[string]Feature),
		produced:    make(map[string]bool),
	}
}

// Color handles "bg-<name>" and "color-<name>" tokens.
func (g *Generator) Color(token string) bool { return g.run(FeatureColor, token) }

// Spacing handles padding and margin tokens: "p-4", "mt-2rem".
func (g *Generator) Spacing(token string) bool { return g.run(FeatureSpacing, token) }

// Size handles "w-N", "h-N" and "size-<preset>" tokens.
func (g *Generator) Size(token string) bool { return g.run(FeatureSize, token) }

// Flex handles "flex[:row|:col][-main][-cross]" tokens.
func (g *Generator) Flex(token string) bool { return g.run(FeatureFlex, token) }

// Grid handles "grid:C,R[,gap]" tokens.
func (g *Generator) Grid(token string) bool { return g.run(FeatureGrid, token) }

// Border handles width and color border tokens with optional side.
func (g *Generator) Border(token string) bool { return g.run(FeatureBorder, token) }

// BorderRadius handles "border-radius[-value]" tokens.
func (g *Generator) BorderRadius(token string) bool { return g.run(FeatureBorderRadius, token) }

// Transform handles "transform:<kind>-<value>" tokens.
func (g *Generator) Transform(token string) bool { return g.run(FeatureTransform, token) }

// Gradient handles "gradient-<direction>-<c1>-<c2>..." tokens.
func (g *Generator) Gradient(token string) bool { return g.run(FeatureGradient, token) }

// Transition handles "transition:<value>" tokens, underscores become spaces.
func (g *Generator) Transition(token string) bool { return g.run(FeatureTransition, token) }

// Shadow handles box and text shadow tokens.
func (g *Generator) Shadow(token string) bool { return g.run(FeatureShadow, token) }

// Image handles "image-url-<path>" tokens.
func (g *Generator) Image(token string) bool { return g.run(FeatureImage, token) }

// Position handles position keywords, offsets and z-index.
func (g *Generator) Position(token string) bool { return g.run(FeaturePosition, token) }

// Animation handles "animate-<name>-<duration><unit>-<iteration>" tokens.
func (g *Generator) Animation(token string) bool { return g.run(FeatureAnimation, token) }

// Process classifies token and passes it to the proper feature. Returns true
// if new rule was added. Tokens which could not be classified are left
// unseen.
func (g *Generator) Process(token string) bool {
	if token == "" {
		return false
	}
	p := Parse(g.theme, token)
	f := Classify(p.Core)
	if f == FeatureNone {
		g.log.Debug("Unknown utility class", zap.String("token", token))
		return false
	}
	return g.run(f, token)
}

// Apply processes every class of the element in order.
func (g *Generator) Apply(el Element) {
	for _, token := range el.ClassNames() {
		g.Process(token)
	}
}

func (g *Generator) run(f Feature, token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seen[token]; ok {
		return false
	}
	g.seen[token] = f
	g.order = append(g.order, token)

	p := Parse(g.theme, token)
	decls, ok := g.recognizers[f].Match(p.Core)
	if !ok {
		g.log.Debug("Token does not follow grammar", zap.String("token", token), zap.Stringer("feature", f))
		return false
	}
	g.emit(token, decls, p.Hover, p.MinWidth)
	g.produced[token] = true
	return true
}

// emit appends rule for the token to the buffer. Must be called with mutex
// held.
func (g *Generator) emit(token string, decls css.Declarations, hover bool, minWidth int) {
	rule := css.Rule{
		Selector:     css.Selector{Class: token, Hover: hover},
		Declarations: decls,
	}
	g.rules = append(g.rules, css.NewItem(rule, minWidth).String())
}

// CSS returns accumulated stylesheet, one rule per line.
func (g *Generator) CSS() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return strings.Join(g.rules, "\n")
}

// Rules returns copy of accumulated rules.
func (g *Generator) Rules() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]string(nil), g.rules...)
}

// Len returns number of accumulated rules.
func (g *Generator) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.rules)
}

// Seen reports whether token was already given to the generator and
// classified.
func (g *Generator) Seen(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seen[token]
	return ok
}

// Unmatched returns tokens which were routed to a feature but did not follow
// its grammar, in first-seen order.
func (g *Generator) Unmatched() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var res []string
	for _, token := range g.order {
		if !g.produced[token] {
			res = append(res, token)
		}
	}
	return res
}

// Flush hands accumulated stylesheet to the target. Buffer is not cleared,
// calling Flush twice appends the same text twice.
func (g *Generator) Flush(target StyleTarget) error {
	text := g.CSS()
	g.log.Debug("Flushing stylesheet", zap.Int("rules", g.Len()), zap.Int("bytes", len(text)))
	return target.AppendStyle(text)
}
