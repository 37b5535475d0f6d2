package utility

import (
	"regexp"
	"strings"

	"twigwind/css"
	"twigwind/theme"
)

// Recognizer owns grammar of a single feature. Match is called with core
// pattern (prefixes already stripped) and returns declarations for the rule
// body or false when pattern does not follow the grammar.
type Recognizer interface {
	Feature() Feature
	Match(core string) (css.Declarations, bool)
}

// matchFunc adapts plain function to Recognizer.
type matchFunc struct {
	feature Feature
	th      *theme.Theme
	match   func(th *theme.Theme, core string) (css.Declarations, bool)
}

func (m matchFunc) Feature() Feature {
	return m.feature
}

func (m matchFunc) Match(core string) (css.Declarations, bool) {
	return m.match(m.th, core)
}

// NewRecognizers returns recognizers for every supported feature bound to the
// theme.
func NewRecognizers(th *theme.Theme) map[Feature]Recognizer {
	fns := map[Feature]func(*theme.Theme, string) (css.Declarations, bool){
		FeatureColor:        matchColor,
		FeatureSpacing:      matchSpacing,
		FeatureSize:         matchSize,
		FeatureFlex:         matchFlex,
		FeatureGrid:         matchGrid,
		FeatureBorderRadius: matchBorderRadius,
		FeatureBorder:       matchBorder,
		FeatureTransform:    matchTransform,
		FeatureTransition:   matchTransition,
		FeatureShadow:       matchShadow,
		FeaturePosition:     matchPosition,
		FeatureAnimation:    matchAnimation,
		FeatureGradient:     matchGradient,
		FeatureImage:        matchImage,
	}
	recognizers := make(map[Feature]Recognizer, len(fns))
	for f, fn := range fns {
		recognizers[f] = matchFunc{feature: f, th: th, match: fn}
	}
	return recognizers
}

var (
	digitsPattern          = regexp.MustCompile(`^\d+$`)
	spacingPattern         = regexp.MustCompile(`^([pm][lrtb]?)-(\d+)(px|rem|em|%)?$`)
	dimensionPattern       = regexp.MustCompile(`^(w|h)-(\d+)(px|rem|em|%)?$`)
	sizePresetPattern      = regexp.MustCompile(`^size-(\w+)$`)
	flexPattern            = regexp.MustCompile(`^flex(?::(row|col))?(?:-(center|right|left))?(?:-(center|right|left))?$`)
	gridPattern            = regexp.MustCompile(`^grid:(\d+),(\d+)(?:,([0-9a-zA-Z%]+))?$`)
	borderPattern          = regexp.MustCompile(`^border(?:-(t|b|l|r))?-(\d+|.+)$`)
	borderRadiusPattern    = regexp.MustCompile(`^border-radius(?:-(.+))?$`)
	transformPattern       = regexp.MustCompile(`^transform:(rotate|scale|skew|translate)-(.+)$`)
	gradientPattern        = regexp.MustCompile(`^gradient-(to-[a-z]+|\d+deg)-(.+)$`)
	shadowPattern          = regexp.MustCompile(`^shadow(?:-(.+))?$`)
	textShadowPattern      = regexp.MustCompile(`^text-shadow(?:-(.+))?$`)
	imagePattern           = regexp.MustCompile(`^image-url-(.+)$`)
	positionKeywordPattern = regexp.MustCompile(`^(absolute|relative|fixed|sticky|static)$`)
	offsetPattern          = regexp.MustCompile(`^(top|bottom|left|right|inset)-(.+)$`)
	zIndexPattern          = regexp.MustCompile(`^z-(.+)$`)
	animationPattern       = regexp.MustCompile(`^animate-(.+?)-(\d+)(ms|s)-(infinite|normal|reverse|alternate|alternate-reverse)$`)
)

const (
	backgroundColorPrefix = "bg-"
	colorPrefix           = "color-"
	transitionPrefix      = "transition:"
	defaultUnit           = "px"
)

var alignments = map[string]string{
	"center": "center",
	"left":   "flex-start",
	"right":  "flex-end",
}

var flexDirections = map[string]string{
	"row": "row",
	"col": "column",
}

var sides = map[string]string{
	"t": "top",
	"b": "bottom",
	"l": "left",
	"r": "right",
}

func matchColor(th *theme.Theme, core string) (css.Declarations, bool) {
	var prop, name string
	switch {
	case strings.HasPrefix(core, backgroundColorPrefix):
		prop, name = "background-color", core[len(backgroundColorPrefix):]
	case strings.HasPrefix(core, colorPrefix):
		prop, name = "color", core[len(colorPrefix):]
	default:
		return nil, false
	}
	return css.Declarations{}.Add(prop, th.Color(name)), true
}

func matchSpacing(th *theme.Theme, core string) (css.Declarations, bool) {
	m := spacingPattern.FindStringSubmatch(core)
	if m == nil {
		return nil, false
	}
	prop, ok := th.SpacingProperty(m[1])
	if !ok {
		return nil, false
	}
	return css.Declarations{}.Add(prop, m[2]+unitOrDefault(m[3])), true
}

func matchSize(th *theme.Theme, core string) (css.Declarations, bool) {
	if m := dimensionPattern.FindStringSubmatch(core); m != nil {
		prop := "width"
		if m[1] == "h" {
			prop = "height"
		}
		return css.Declarations{}.Add(prop, m[2]+unitOrDefault(m[3])), true
	}
	if m := sizePresetPattern.FindStringSubmatch(core); m != nil {
		if size, ok := th.Size(m[1]); ok {
			return css.Declarations{}.Add("width", size).Add("height", size), true
		}
	}
	return nil, false
}

func matchFlex(_ *theme.Theme, core string) (css.Declarations, bool) {
	m := flexPattern.FindStringSubmatch(core)
	if m == nil {
		return nil, false
	}
	decls := css.Declarations{}.Add("display", "flex")
	if m[1] != "" {
		decls = decls.Add("flex-direction", flexDirections[m[1]])
	}
	if m[2] != "" {
		decls = decls.Add("justify-content", alignments[m[2]])
	}
	if m[3] != "" {
		decls = decls.Add("align-items", alignments[m[3]])
	}
	return decls, true
}

func matchGrid(_ *theme.Theme, core string) (css.Declarations, bool) {
	m := gridPattern.FindStringSubmatch(core)
	if m == nil {
		return nil, false
	}
	gap := m[3]
	if gap == "" {
		gap = "0"
	}
	return css.Declarations{}.
		Add("display", "grid").
		Add("grid-template-columns", "repeat("+m[1]+", 1fr)").
		Add("grid-template-rows", "repeat("+m[2]+", auto)").
		Add("gap", gap), true
}

func matchBorder(th *theme.Theme, core string) (css.Declarations, bool) {
	m := borderPattern.FindStringSubmatch(core)
	if m == nil {
		return nil, false
	}
	prop := "border"
	if side := m[1]; side != "" {
		prop += "-" + sides[side]
	}
	if digitsPattern.MatchString(m[2]) {
		return css.Declarations{}.Add(prop, m[2]+"px solid"), true
	}
	return css.Declarations{}.Add(prop+"-color", th.Color(m[2])), true
}

func matchBorderRadius(_ *theme.Theme, core string) (css.Declarations, bool) {
	m := borderRadiusPattern.FindStringSubmatch(core)
	if m == nil {
		return nil, false
	}
	radius := m[1]
	if radius == "" {
		radius = "0"
	}
	return css.Declarations{}.Add("border-radius", radius), true
}

func matchTransform(_ *theme.Theme, core string) (css.Declarations, bool) {
	m := transformPattern.FindStringSubmatch(core)
	if m == nil {
		return nil, false
	}
	kind, value := m[1], m[2]
	switch kind {
	case "rotate", "skew":
		if !strings.HasSuffix(value, "deg") {
			value += "deg"
		}
	case "translate":
		if parts := strings.Split(value, ","); len(parts) == 2 {
			value = strings.TrimSpace(parts[0]) + ", " + strings.TrimSpace(parts[1])
		}
	}
	return css.Declarations{}.Add("transform", kind+"("+value+")"), true
}

func matchGradient(th *theme.Theme, core string) (css.Declarations, bool) {
	m := gradientPattern.FindStringSubmatch(core)
	if m == nil {
		return nil, false
	}
	names := strings.Split(m[2], "-")
	if len(names) < 2 {
		return nil, false
	}
	colors := make([]string, 0, len(names))
	for _, name := range names {
		colors = append(colors, th.Color(name))
	}
	direction := m[1]
	if strings.HasPrefix(direction, "to-") {
		direction = th.Direction(direction)
	}
	return css.Declarations{}.Add("background-image",
		"linear-gradient("+direction+", "+strings.Join(colors, ", ")+")"), true
}

func matchTransition(_ *theme.Theme, core string) (css.Declarations, bool) {
	value, found := strings.CutPrefix(core, transitionPrefix)
	if !found || value == "" {
		return nil, false
	}
	return css.Declarations{}.Add("transition", underscoresToSpaces(value)), true
}

func matchShadow(th *theme.Theme, core string) (css.Declarations, bool) {
	var prop, value string
	if m := shadowPattern.FindStringSubmatch(core); m != nil {
		prop, value = "box-shadow", m[1]
	} else if m := textShadowPattern.FindStringSubmatch(core); m != nil {
		prop, value = "text-shadow", m[1]
	} else {
		return nil, false
	}
	if value == "" {
		value = theme.DefaultShadow
	}
	if preset, ok := th.Shadow(value); ok {
		return css.Declarations{}.Add(prop, preset), true
	}
	return css.Declarations{}.Add(prop, underscoresToSpaces(value)), true
}

func matchImage(_ *theme.Theme, core string) (css.Declarations, bool) {
	m := imagePattern.FindStringSubmatch(core)
	if m == nil {
		return nil, false
	}
	return css.Declarations{}.
		Add("background-image", "url('"+underscoresToSpaces(m[1])+"')").
		Add("background-size", "cover").
		Add("background-position", "center").
		Add("background-repeat", "no-repeat"), true
}

func matchPosition(_ *theme.Theme, core string) (css.Declarations, bool) {
	if m := positionKeywordPattern.FindStringSubmatch(core); m != nil {
		return css.Declarations{}.Add("position", m[1]), true
	}
	if m := offsetPattern.FindStringSubmatch(core); m != nil {
		value := offsetValue(m[2])
		if m[1] == "inset" {
			return css.Declarations{}.
				Add("top", value).
				Add("right", value).
				Add("bottom", value).
				Add("left", value), true
		}
		return css.Declarations{}.Add(m[1], value), true
	}
	if m := zIndexPattern.FindStringSubmatch(core); m != nil {
		return css.Declarations{}.Add("z-index", m[1]), true
	}
	return nil, false
}

func matchAnimation(_ *theme.Theme, core string) (css.Declarations, bool) {
	m := animationPattern.FindStringSubmatch(core)
	if m == nil {
		return nil, false
	}
	return css.Declarations{}.Add("animation", m[1]+" "+m[2]+m[3]+" "+m[4]), true
}

// offsetValue appends pixel unit to bare numbers, "auto" and anything else is
// used as is.
func offsetValue(v string) string {
	if v != "auto" && digitsPattern.MatchString(v) {
		return v + "px"
	}
	return v
}

func unitOrDefault(unit string) string {
	if unit == "" {
		return defaultUnit
	}
	return unit
}

func underscoresToSpaces(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
