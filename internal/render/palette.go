package render

import (
	"github.com/akyairhashvil/mvno/internal/gantt"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colours used by the renderer.
type Palette struct {
	Background       colorful.Color
	HeaderBackground colorful.Color
	Text             colorful.Color
	Grid             colorful.Color
	Today            colorful.Color
	kinds            [4]colorful.Color
}

type paletteSpec struct {
	background, header, text, grid, today string
	major, middle, minor, task            string
}

var paletteSpecs = map[string]paletteSpec{
	"default": {
		background: "#ffffff", header: "#f3f4f6", text: "#1f2937", grid: "#9ca3af", today: "#ef4444",
		major: "#4f46e5", middle: "#0891b2", minor: "#059669", task: "#3b82f6",
	},
	"dracula": {
		background: "#282a36", header: "#343746", text: "#f8f8f2", grid: "#6272a4", today: "#ff5555",
		major: "#bd93f9", middle: "#8be9fd", minor: "#50fa7b", task: "#ff79c6",
	},
}

// PaletteNames lists the built-in palettes.
func PaletteNames() []string {
	return []string{"default", "dracula"}
}

// PaletteFor returns the named palette; unknown names get the default.
func PaletteFor(name string) Palette {
	spec, ok := paletteSpecs[name]
	if !ok {
		spec = paletteSpecs["default"]
	}
	return Palette{
		Background:       mustHex(spec.background),
		HeaderBackground: mustHex(spec.header),
		Text:             mustHex(spec.text),
		Grid:             mustHex(spec.grid),
		Today:            mustHex(spec.today),
		kinds: [4]colorful.Color{
			gantt.KindMajor:  mustHex(spec.major),
			gantt.KindMiddle: mustHex(spec.middle),
			gantt.KindMinor:  mustHex(spec.minor),
			gantt.KindTask:   mustHex(spec.task),
		},
	}
}

// DefaultPalette is PaletteFor("default").
func DefaultPalette() Palette { return PaletteFor("default") }

// KindColor is the progress colour of a node kind.
func (p Palette) KindColor(k gantt.NodeKind) colorful.Color {
	if int(k) < 0 || int(k) >= len(p.kinds) {
		return p.kinds[gantt.KindTask]
	}
	return p.kinds[k]
}

// Track is the faded bar colour behind the progress fill.
func (p Palette) Track(k gantt.NodeKind) colorful.Color {
	return p.KindColor(k).BlendLab(p.Background, 0.65).Clamped()
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad palette colour " + s)
	}
	return c
}
