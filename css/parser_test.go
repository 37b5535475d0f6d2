package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"twigwind/css"
)

func TestParser_ClassRule(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.p-10 { padding: 10px; }`))
	if len(sheet.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", sheet.Warnings)
	}
	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	rule := rules[0]
	if rule.Selector.Class != "p-10" {
		t.Errorf("expected class 'p-10', got '%s'", rule.Selector.Class)
	}
	if rule.Selector.Hover {
		t.Error("expected no hover")
	}
	val, ok := rule.Declarations.Get("padding")
	if !ok || val != "10px" {
		t.Errorf("expected padding 10px, got %q (%v)", val, ok)
	}
}

func TestParser_HoverAndEscapes(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.hover\:bg-green:hover { background-color: #4CAF50; }`))
	if len(sheet.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", sheet.Warnings)
	}
	rules := sheet.RulesByClass("hover:bg-green")
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule for hover:bg-green, got %d", len(rules))
	}
	if !rules[0].Selector.Hover {
		t.Error("expected hover selector")
	}
}

func TestParser_MediaBlock(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := `@media (min-width: 768px){.md\:bg-blue { background-color: #2196F3; }}`
	sheet := p.Parse([]byte(input))
	if len(sheet.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", sheet.Warnings)
	}
	if len(sheet.Items) != 1 || sheet.Items[0].MediaBlock == nil {
		t.Fatalf("expected single media block, got %+v", sheet.Items)
	}
	mb := sheet.Items[0].MediaBlock
	if mb.Query.MinWidth != 768 {
		t.Errorf("expected min-width 768, got %d", mb.Query.MinWidth)
	}
	if len(mb.Rules) != 1 || mb.Rules[0].Selector.Class != "md:bg-blue" {
		t.Errorf("unexpected media rules: %+v", mb.Rules)
	}
	if got := sheet.String(); got != input {
		t.Errorf("String() = %q, want %q", got, input)
	}
}

func TestParser_MultipleDeclarations(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := `.grid\:2\,3 { display: grid; grid-template-columns: repeat(2, 1fr); grid-template-rows: repeat(3, auto); gap: 0; }`
	sheet := p.Parse([]byte(input))
	if len(sheet.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", sheet.Warnings)
	}
	rules := sheet.RulesByClass("grid:2,3")
	if len(rules) != 1 {
		t.Fatalf("expected rule for grid:2,3, got %d", len(rules))
	}
	decls := rules[0].Declarations
	if len(decls) != 4 {
		t.Fatalf("expected 4 declarations, got %d: %v", len(decls), decls)
	}
	if v, _ := decls.Get("grid-template-columns"); v != "repeat(2, 1fr)" {
		t.Errorf("grid-template-columns = %q", v)
	}
	if got := sheet.String(); got != input {
		t.Errorf("String() = %q, want %q", got, input)
	}
}

func TestParser_LeadingDigitEscape(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sel := css.Selector{Class: "2col"}
	input := sel.String() + " { color: red; }"
	sheet := p.Parse([]byte(input))
	if len(sheet.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", sheet.Warnings)
	}
	if rules := sheet.RulesByClass("2col"); len(rules) != 1 {
		t.Errorf("expected rule for 2col, got %d", len(rules))
	}
}

func TestParser_Warnings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"element selector", `p { color: red; }`, "unsupported selector"},
		{"descendant selector", `.a .b { color: red; }`, "unsupported selector"},
		{"empty value", `.bg- { background-color: ; }`, "empty value"},
		{"font-face", `@font-face { font-family: x; }`, "unsupported @-rule"},
		{"import", `@import url("a.css");`, "unsupported @-rule"},
		{"no min-width", `@media print{.a { color: red; }}`, "without min-width"},
		{"empty rule", `.a { }`, "without declarations"},
	}

	p := css.NewParser(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := p.Verify([]byte(tt.input), tt.name)
			found := false
			for _, w := range warnings {
				if strings.Contains(w, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected warning containing %q, got %v", tt.want, warnings)
			}
		})
	}
}

func TestParser_NilLogger(t *testing.T) {
	p := css.NewParser(nil)
	if sheet := p.Parse([]byte(`.a { color: red; }`)); len(sheet.Rules()) != 1 {
		t.Errorf("expected 1 rule, got %d", len(sheet.Rules()))
	}
}
