package generate

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"twigwind/common"
	"twigwind/config"
	"twigwind/state"
)

func setupTestEnvForOutputPath(t *testing.T, noDirs bool, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Document.FileNameTransliterate = transliterate
	cfg.Document.OutputNameTemplate = template

	return &state.LocalEnv{
		Log:    logger,
		Cfg:    cfg,
		NoDirs: noDirs,
	}
}

func testValues(src string, format common.OutputFmt) Values {
	return newValues(config.OutputNameTemplateFieldName, src, "Landing Page", format, "0190b2a4-0000-7000-8000-000000000000", 3)
}

func TestBuildOutputPath(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		noDirs        bool
		transliterate bool
		template      string
		format        common.OutputFmt
		expected      string
	}{
		{"no dirs", "site/pages/index.html", true, false, "", common.OutputFmtHtml, filepath.Join("/output", "index.html")},
		{"with dirs", "site/pages/index.html", false, false, "", common.OutputFmtHtml, filepath.Join("/output", "site", "pages", "index.html")},
		{"css format", "index.htm", true, false, "", common.OutputFmtCss, filepath.Join("/output", "index.css")},
		{"transliterate", "Книга.html", true, true, "", common.OutputFmtHtml, filepath.Join("/output", "kniga.html")},
		{"template", "site/index.html", true, false, "{{ .SourceFile }}-{{ .Format }}", common.OutputFmtCss, filepath.Join("/output", "index-css.css")},
		{"template with dirs", "site/index.html", false, false, "{{ .Title | lower }}/{{ .SourceFile }}", common.OutputFmtHtml, filepath.Join("/output", "site", "landing page", "index.html")},
		{"template transliterate", "index.html", true, true, "{{ .Title }}", common.OutputFmtHtml, filepath.Join("/output", "landing-page.html")},
		{"broken template", "index.html", true, false, "{{ .Nope", common.OutputFmtHtml, filepath.Join("/output", "index.html")},
		{"unknown field", "index.html", true, false, "{{ .Nope }}", common.OutputFmtHtml, filepath.Join("/output", "index.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, tt.noDirs, tt.transliterate, tt.template)

			result := buildOutputPath(testValues(tt.src, tt.format), tt.src, "/output", tt.format, env)
			if result != tt.expected {
				t.Errorf("buildOutputPath() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDetermineOutputDir(t *testing.T) {
	env := setupTestEnvForOutputPath(t, true, false, "")
	if result := determineOutputDir("site/pages/index.html", "/output", env); result != "/output" {
		t.Errorf("determineOutputDir() = %q, want /output", result)
	}

	env = setupTestEnvForOutputPath(t, false, false, "")
	if result, expected := determineOutputDir("site/pages/index.html", "/output", env), filepath.Join("/output", "site", "pages"); result != expected {
		t.Errorf("determineOutputDir() = %q, want %q", result, expected)
	}
}

func TestBuildDefaultFileName(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		transliterate bool
		format        common.OutputFmt
		expected      string
	}{
		{"simple html", "index.html", false, common.OutputFmtHtml, "index.html"},
		{"with path", "path/to/index.xhtml", false, common.OutputFmtHtml, "index.html"},
		{"css format", "index.html", false, common.OutputFmtCss, "index.css"},
		{"transliterate", "Книга.html", true, common.OutputFmtHtml, "kniga.html"},
		{"hidden", ".index.html", false, common.OutputFmtCss, "index.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, true, tt.transliterate, "")

			if result := buildDefaultFileName(tt.src, tt.format, env); result != tt.expected {
				t.Errorf("buildDefaultFileName() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"simple path", filepath.Join("site", "index"), []string{"site", "index"}},
		{"single segment", "index", []string{"index"}},
		{"with trailing slash", filepath.Join("site", "index") + string(filepath.Separator), []string{"site", "index"}},
		{"three levels", filepath.Join("a", "b", "c"), []string{"a", "b", "c"}},
		{"empty path", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndCleanPath(tt.path)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndCleanPath() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndCleanPath()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestCleanPathSegment(t *testing.T) {
	tests := []struct {
		name          string
		segment       string
		transliterate bool
		expected      string
	}{
		{"simple segment", "site", false, "site"},
		{"with spaces", "My Site", false, "My Site"},
		{"transliterate cyrillic", "Автор", true, "avtor"},
		{"list separator", "site:name", false, "sitename"},
		{"only dots", "..", false, "_bad_file_name_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, true, tt.transliterate, "")

			if result := cleanPathSegment(tt.segment, env); result != tt.expected {
				t.Errorf("cleanPathSegment() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestAssemblePathWithSubdirs_EmptyPath(t *testing.T) {
	env := setupTestEnvForOutputPath(t, true, false, "")

	if result := assemblePathWithSubdirs("/output", "", common.OutputFmtHtml, env); result != "/output" {
		t.Errorf("assemblePathWithSubdirs() with empty path = %q, want /output", result)
	}
}
