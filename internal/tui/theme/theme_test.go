package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha"},
		{name: "upper case name", themeName: "LATTE", wantName: "latte"},
		{name: "unknown theme falls back to mocha", themeName: "solarized", wantName: "mocha"},
	}
	for _, name := range Available() {
		tests = append(tests, struct {
			name      string
			themeName string
			wantName  string
		}{name: "load " + name, themeName: name, wantName: name})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_BookingColors(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			theme, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", name, err)
			}

			colors := map[string]string{
				"Bg":          theme.Bg,
				"Fg":          theme.Fg,
				"Accent":      theme.Accent,
				"Start":       theme.Start,
				"End":         theme.End,
				"Today":       theme.Today,
				"Warning":     theme.Warning,
				"BaseBg":      theme.BaseBg,
				"ModalBorder": theme.ModalBorder,
				"Highlight":   theme.Highlight,
			}
			for field, hex := range colors {
				if len(hex) != 7 || hex[0] != '#' {
					t.Errorf("%s.%s = %q, want #rrggbb", name, field, hex)
				}
			}

			// Start and end handles must be told apart on the grid.
			if theme.Start == theme.End {
				t.Errorf("%s: start and end handles share color %s", name, theme.Start)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	th := Theme{
		Bg:          "#000000",
		BgHighlight: "#111111",
		Fg:          "#eeeeee",
		FgMuted:     "#888888",
		Accent:      "#ff00ff",
	}
	th.applyDefaults()

	tests := []struct {
		field string
		got   string
		want  string
	}{
		{"BaseBg", th.BaseBg, "#111111"},
		{"ModalBorder", th.ModalBorder, "#ff00ff"},
		{"TextPrimary", th.TextPrimary, "#eeeeee"},
		{"TextMuted", th.TextMuted, "#888888"},
		{"Highlight", th.Highlight, "#ff00ff"},
		{"Today", th.Today, "#ff00ff"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.field, tt.got, tt.want)
		}
	}

	explicit := Theme{Accent: "#ff00ff", Today: "#ffaa00", BgSelection: "#222222"}
	explicit.applyDefaults()
	if explicit.Today != "#ffaa00" {
		t.Errorf("explicit Today overwritten: %q", explicit.Today)
	}
	if explicit.Highlight != "#222222" {
		t.Errorf("Highlight = %q, want selection color", explicit.Highlight)
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected bool
	}{
		{name: "exact match", theme: "mocha", expected: true},
		{name: "case insensitive", theme: "Frappe", expected: true},
		{name: "missing theme", theme: "unknown", expected: false},
		{name: "empty", theme: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.theme); got != tt.expected {
				t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.expected)
			}
		})
	}
}
