package layout

// Size-category palettes. Colors carry no meaning beyond visual variety.
var (
	smallPalette  = []string{"#f97316", "#fb923c", "#fdba74"}
	mediumPalette = []string{"#06b6d4", "#22d3ee", "#67e8f9"}
	largePalette  = []string{"#a855f7", "#c084fc", "#d8b4fe"}
	xlargePalette = []string{"#10b981", "#34d399", "#6ee7b7"}
)

// Palette is the four category palettes concatenated.
var Palette = concat(smallPalette, mediumPalette, largePalette, xlargePalette)

// Neutral tones used next to a role accent in feature scenes.
const (
	Slate500 = "#64748b"
	Slate400 = "#94a3b8"
	Slate300 = "#cbd5e1"
	Slate800 = "#1e293b"
)

// DefaultAccent is the warehouse role accent.
const DefaultAccent = "#06b6d4"

// PaletteColor returns the color for the i-th inserted box.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

func concat(ps ...[]string) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p...)
	}
	return out
}
