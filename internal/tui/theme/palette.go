package theme

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Start       lipgloss.Color
	End         lipgloss.Color
	Today       lipgloss.Color
	Warning     lipgloss.Color

	// Drop-target backgrounds while a start or end handle is dragged.
	StartBg lipgloss.Color
	EndBg   lipgloss.Color

	TextOnAccent lipgloss.Color
	TextOnStart  lipgloss.Color
	TextOnEnd    lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg       lipgloss.Color
	Border   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Button   lipgloss.Color
	Backdrop lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	light := isLightTheme(t.Bg)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Start:       lipgloss.Color(t.Start),
		End:         lipgloss.Color(t.End),
		Today:       lipgloss.Color(coalesce(t.Today, t.Accent)),
		Warning:     lipgloss.Color(t.Warning),

		StartBg: lipgloss.Color(dropBg(t.Start, t.Bg, light)),
		EndBg:   lipgloss.Color(dropBg(t.End, t.Bg, light)),

		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnStart:  lipgloss.Color(chooseTextColor(t.Start, t.Bg, t.Fg)),
		TextOnEnd:    lipgloss.Color(chooseTextColor(t.End, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:       lipgloss.Color(coalesce(t.BaseBg, t.BgHighlight, t.Bg)),
			Border:   lipgloss.Color(coalesce(t.ModalBorder, t.Accent)),
			Text:     lipgloss.Color(coalesce(t.TextPrimary, t.Fg)),
			Muted:    lipgloss.Color(coalesce(t.TextMuted, t.FgMuted)),
			Button:   lipgloss.Color(coalesce(t.Highlight, t.BgSelection, t.Accent)),
			Backdrop: lipgloss.Color(coalesce(t.BgSelection, t.BgHighlight, t.Bg)),
		},
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// dropBg tints the background toward the handle color.
func dropBg(accent, bg string, light bool) string {
	if light {
		return blendColors(accent, bg, 0.75)
	}
	return blendColors(accent, "#000000", 0.50)
}

type rgb struct{ r, g, b int }

func parseColor(hex string) (rgb, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{r: int(v >> 16 & 0xff), g: int(v >> 8 & 0xff), b: int(v & 0xff)}, true
}

func (c rgb) hex() string {
	const digits = "0123456789abcdef"
	return string([]byte{'#',
		digits[c.r>>4], digits[c.r&0xf],
		digits[c.g>>4], digits[c.g&0xf],
		digits[c.b>>4], digits[c.b&0xf],
	})
}

func blendColors(a, b string, ratio float64) string {
	ca, okA := parseColor(a)
	cb, okB := parseColor(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Max(0, math.Min(1, ratio))
	mix := func(x, y int) int {
		return int(float64(x)*(1-ratio) + float64(y)*ratio)
	}
	return rgb{r: mix(ca.r, cb.r), g: mix(ca.g, cb.g), b: mix(ca.b, cb.b)}.hex()
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	c, ok := parseColor(hex)
	if !ok {
		return 0
	}
	return 0.2126*srgbToLinear(c.r) + 0.7152*srgbToLinear(c.g) + 0.0722*srgbToLinear(c.b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
