package codec

import (
	"fmt"
	"strings"
)

// ColorPreset is a named set of the six chromaticity fragments.
type ColorPreset struct {
	Name     string `json:"name" yaml:"name"`
	GreenX   uint8  `json:"gx" yaml:"gx"`
	GreenY   uint8  `json:"gy" yaml:"gy"`
	RedX     uint8  `json:"rx" yaml:"rx"`
	BlueX    uint8  `json:"bx" yaml:"bx"`
	RedY     uint8  `json:"ry" yaml:"ry"`
	BlueY    uint8  `json:"by" yaml:"by"`
	Verified bool   `json:"verified" yaml:"verified"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Registered presets, in menu order.
//
// BT.709 and DCI-P3 have no known bit mapping. They are all-zero placeholders
// and MUST NOT be treated as real primaries.
var presets = []ColorPreset{
	{
		Name:   "BT.2020",
		GreenX: 0b0101011, // 0.1700
		GreenY: 0b1001100, // 0.7970
		RedX:   0b10101,   // 0.7080
		BlueX:  0b001,     // 0.1310
		RedY:   0b01010,   // 0.2920
		BlueY:  0b011,     // 0.0460

		Verified: true,
		Note:     "player-led HDR example",
	},
	{
		Name: "BT.709",
		Note: "unverified placeholder, bit values are not derived from the standard",
	},
	{
		Name: "DCI-P3",
		Note: "unverified placeholder, bit values are not derived from the standard",
	},
}

// Presets returns the registered presets in menu order.
func Presets() []ColorPreset {
	out := make([]ColorPreset, len(presets))
	copy(out, presets)
	return out
}

// PresetNames returns the registered preset names in menu order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (ColorPreset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return ColorPreset{}, fmt.Errorf("%w %q, choose from: %s",
		ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
}

// ApplyPreset assigns all six chromaticity fragments from the named preset.
func (fs *FieldSet) ApplyPreset(name string) error {
	p, err := LookupPreset(name)
	if err != nil {
		return err
	}
	fs.GreenX = p.GreenX
	fs.GreenY = p.GreenY
	fs.RedX = p.RedX
	fs.BlueX = p.BlueX
	fs.RedY = p.RedY
	fs.BlueY = p.BlueY
	return nil
}
