package utility

import "strings"

// route pairs classification predicate with feature handling matching cores.
type route struct {
	feature Feature
	accepts func(core string) bool
}

func hasAnyPrefix(prefixes ...string) func(string) bool {
	return func(core string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(core, p) {
				return true
			}
		}
		return false
	}
}

// routes are checked in order and first match wins. Order is significant:
// "border-radius" must be tried before "border" and spacing regex before
// anything starting with "p" or "m".
var routes = []route{
	{FeatureColor, hasAnyPrefix(backgroundColorPrefix, colorPrefix)},
	{FeatureSpacing, spacingPattern.MatchString},
	{FeatureSize, func(core string) bool {
		return dimensionPattern.MatchString(core) || strings.HasPrefix(core, "size-")
	}},
	{FeatureFlex, hasAnyPrefix("flex")},
	{FeatureGrid, hasAnyPrefix("grid:")},
	{FeatureBorderRadius, hasAnyPrefix("border-radius")},
	{FeatureBorder, hasAnyPrefix("border")},
	{FeatureTransform, hasAnyPrefix("transform:")},
	{FeatureTransition, hasAnyPrefix(transitionPrefix)},
	{FeatureShadow, hasAnyPrefix("shadow", "text-shadow")},
	{FeaturePosition, func(core string) bool {
		return positionKeywordPattern.MatchString(core) ||
			offsetPattern.MatchString(core) ||
			zIndexPattern.MatchString(core)
	}},
	{FeatureAnimation, hasAnyPrefix("animate-")},
	{FeatureGradient, hasAnyPrefix("gradient-")},
	{FeatureImage, hasAnyPrefix("image-url-")},
}

// Classify returns feature responsible for the core pattern or FeatureNone.
// Classification only looks at the shape of the core, actual grammar is
// checked later by the recognizer and may still reject it.
func Classify(core string) Feature {
	for _, r := range routes {
		if r.accepts(core) {
			return r.feature
		}
	}
	return FeatureNone
}
