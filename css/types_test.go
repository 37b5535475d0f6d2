package css

import (
	"strings"
	"testing"
)

func TestEscapeClass(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"bg-red", "bg-red"},
		{"md:bg-blue", `md\:bg-blue`},
		{"w-50%", `w-50\%`},
		{"grid:2,3,16px", `grid\:2\,3\,16px`},
		{"transform:scale-1.1", `transform\:scale-1\.1`},
		{"image-url-/img/a.png", `image-url-\/img\/a\.png`},
		{"2xl:p-4", `\32 xl\:p-4`},
		{`a!"#$`, `a\!\"\#\$`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := EscapeClass(tt.in); got != tt.want {
				t.Errorf("EscapeClass(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnescapeClass(t *testing.T) {
	for _, class := range []string{"bg-red", "md:bg-blue", "grid:2,3,16px", "2xl:p-4", "image-url-a_b.png", "x\\y"} {
		if got := UnescapeClass(EscapeClass(class)); got != class {
			t.Errorf("UnescapeClass(EscapeClass(%q)) = %q", class, got)
		}
	}
}

func TestDeclarations(t *testing.T) {
	var d Declarations
	d = d.Add("width", "40px").Add("height", "40px")

	if got := d.String(); got != "width: 40px; height: 40px;" {
		t.Errorf("String() = %q", got)
	}
	if v, ok := d.Get("height"); !ok || v != "40px" {
		t.Errorf("Get(height) = %q, %v", v, ok)
	}
	if _, ok := d.Get("color"); ok {
		t.Error("Get(color) should report absence")
	}
	if got := Declarations(nil).String(); got != "" {
		t.Errorf("empty String() = %q", got)
	}
}

func TestNewItem(t *testing.T) {
	rule := Rule{
		Selector:     Selector{Class: "hover:bg-green", Hover: true},
		Declarations: Declarations{{Property: "background-color", Value: "#4CAF50"}},
	}

	plain := NewItem(rule, 0)
	if plain.Rule == nil || plain.MediaBlock != nil {
		t.Fatal("expected plain rule item")
	}
	if got, want := plain.String(), `.hover\:bg-green:hover { background-color: #4CAF50; }`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	wrapped := NewItem(rule, 1024)
	if wrapped.MediaBlock == nil {
		t.Fatal("expected media block item")
	}
	got := wrapped.String()
	if !strings.HasPrefix(got, "@media (min-width: 1024px){") {
		t.Errorf("unexpected prelude: %q", got)
	}
	if strings.Count(got, "{") != strings.Count(got, "}") {
		t.Errorf("unbalanced braces: %q", got)
	}
}

func TestStylesheet_WriteTo(t *testing.T) {
	sheet := &Stylesheet{Items: []StylesheetItem{
		NewItem(Rule{Selector: Selector{Class: "a"}, Declarations: Declarations{{"color", "red"}}}, 0),
		NewItem(Rule{Selector: Selector{Class: "md:a"}, Declarations: Declarations{{"color", "blue"}}}, 768),
	}}
	want := ".a { color: red; }\n@media (min-width: 768px){.md\\:a { color: blue; }}"
	if got := sheet.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if n := len(sheet.Rules()); n != 2 {
		t.Errorf("Rules() = %d, want 2", n)
	}
}
