package utility

import "fmt"

// Feature identifies group of utility classes handled by a single grammar.
type Feature int

const (
	FeatureNone Feature = iota
	FeatureColor
	FeatureSpacing
	FeatureSize
	FeatureFlex
	FeatureGrid
	FeatureBorderRadius
	FeatureBorder
	FeatureTransform
	FeatureTransition
	FeatureShadow
	FeaturePosition
	FeatureAnimation
	FeatureGradient
	FeatureImage
)

var featureNames = [...]string{
	FeatureNone:         "none",
	FeatureColor:        "color",
	FeatureSpacing:      "spacing",
	FeatureSize:         "size",
	FeatureFlex:         "flex",
	FeatureGrid:         "grid",
	FeatureBorderRadius: "border-radius",
	FeatureBorder:       "border",
	FeatureTransform:    "transform",
	FeatureTransition:   "transition",
	FeatureShadow:       "shadow",
	FeaturePosition:     "position",
	FeatureAnimation:    "animation",
	FeatureGradient:     "gradient",
	FeatureImage:        "image",
}

// String implements the Stringer interface.
func (f Feature) String() string {
	if f >= 0 && int(f) < len(featureNames) {
		return featureNames[f]
	}
	return fmt.Sprintf("Feature(%d)", int(f))
}
