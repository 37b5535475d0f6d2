package utility

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		core string
		want Feature
	}{
		{"bg-red", FeatureColor},
		{"color-red", FeatureColor},
		{"p-4", FeatureSpacing},
		{"mb-2rem", FeatureSpacing},
		{"w-10", FeatureSize},
		{"h-5%", FeatureSize},
		{"size-md", FeatureSize},
		{"size-unknown", FeatureSize},
		{"flex", FeatureFlex},
		{"flex:row", FeatureFlex},
		{"flexible", FeatureFlex},
		{"grid:2,2", FeatureGrid},
		{"border-radius", FeatureBorderRadius},
		{"border-radius-4px", FeatureBorderRadius},
		{"border-2", FeatureBorder},
		{"border-t-red", FeatureBorder},
		{"transform:rotate-4", FeatureTransform},
		{"transition:all", FeatureTransition},
		{"shadow", FeatureShadow},
		{"shadow-md", FeatureShadow},
		{"text-shadow", FeatureShadow},
		{"absolute", FeaturePosition},
		{"top-0", FeaturePosition},
		{"inset-auto", FeaturePosition},
		{"z-10", FeaturePosition},
		{"animate-spin-1s-infinite", FeatureAnimation},
		{"animate-bogus", FeatureAnimation},
		{"gradient-to-r-red-blue", FeatureGradient},
		{"image-url-a.png", FeatureImage},
		{"", FeatureNone},
		{"unknown", FeatureNone},
		{"text-red", FeatureNone},
		{"mx-4", FeatureNone},
		{"grid", FeatureNone},
		{"hover:bg-red", FeatureNone},
	}

	for _, tt := range tests {
		t.Run(tt.core, func(t *testing.T) {
			if got := Classify(tt.core); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.core, got, tt.want)
			}
		})
	}
}

func TestFeature_String(t *testing.T) {
	if got := FeatureBorderRadius.String(); got != "border-radius" {
		t.Errorf("String() = %q", got)
	}
	if got := Feature(100).String(); got != "Feature(100)" {
		t.Errorf("String() = %q", got)
	}
}

func TestRoutes_CoverAllFeatures(t *testing.T) {
	seen := make(map[Feature]bool)
	for _, r := range routes {
		if seen[r.feature] {
			t.Errorf("feature %s routed twice", r.feature)
		}
		seen[r.feature] = true
	}
	for f := FeatureColor; f <= FeatureImage; f++ {
		if !seen[f] {
			t.Errorf("feature %s has no route", f)
		}
	}
}
