package tour

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// ErrUnknownPreset is returned by Preset for a name with no embedded tour.
var ErrUnknownPreset = errors.New("unknown tour preset")

// Preset decodes the embedded tour called name.
func Preset(name string) (*Tour, error) {
	f, err := presetFS.Open(path.Join("presets", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	defer f.Close()
	return DecodeTour(f)
}

// Presets lists the embedded tour names in sorted order.
func Presets() []string {
	entries, _ := presetFS.ReadDir("presets")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}
