package codec

import (
	"fmt"
	"strings"
)

// Field identifies one sub-field of the record. Fields are numbered in wire
// order: byte by byte, most-significant bits first.
type Field int

const (
	FieldVersion Field = iota
	FieldDMVersion
	FieldBacklightControl
	FieldYUV12Bit
	FieldMinLuminance
	FieldGlobalDimming
	FieldBacklightMinLuminance
	FieldMaxLuminance
	FieldReserved
	FieldDVMode
	FieldGreenX
	FieldInterface12b444
	FieldGreenY
	FieldInterface10b444
	FieldRedX
	FieldBlueX
	FieldRedY
	FieldBlueY

	fieldCount
)

// FieldSpec places a field inside the packed record.
type FieldSpec struct {
	Field Field
	Key   string // stable identifier used by the CLI, config and JSON
	Name  string // human-readable name
	Byte  int
	Shift uint
	Width uint
}

// Mask returns the right-aligned bit mask for the field.
func (s FieldSpec) Mask() uint8 {
	return uint8(maxValue(s.Width))
}

// Max returns the largest value the field can hold.
func (s FieldSpec) Max() uint8 {
	return s.Mask()
}

// Layout is the record layout. Decode and Encode both iterate it in order.
// It MUST NOT be modified.
var Layout = [fieldCount]FieldSpec{
	{FieldVersion, "version", "Version", 0, 5, 3},
	{FieldDMVersion, "dm_version", "DM Version", 0, 2, 3},
	{FieldBacklightControl, "backlight_control", "Backlight Control", 0, 1, 1},
	{FieldYUV12Bit, "yuv_12bit", "YUV 12-bit Support", 0, 0, 1},

	{FieldMinLuminance, "min_luminance", "Min Display Luminance", 1, 3, 5},
	{FieldGlobalDimming, "global_dimming", "Global Dimming Support", 1, 2, 1},
	{FieldBacklightMinLuminance, "backlight_min_luminance", "Backlight Min Luminance", 1, 0, 2},

	{FieldMaxLuminance, "max_luminance", "Max Display Luminance", 2, 3, 5},
	{FieldReserved, "reserved", "Reserved", 2, 2, 1},
	{FieldDVMode, "dv_mode", "DV Mode", 2, 0, 2},

	{FieldGreenX, "gx", "Gx Coordinate", 3, 1, 7},
	{FieldInterface12b444, "interface_12b_444", "Interface 12b 4:4:4 Support", 3, 0, 1},

	{FieldGreenY, "gy", "Gy Coordinate", 4, 1, 7},
	{FieldInterface10b444, "interface_10b_444", "Interface 10b 4:4:4 Support", 4, 0, 1},

	{FieldRedX, "rx", "Rx Coordinate", 5, 3, 5},
	{FieldBlueX, "bx", "Bx Coordinate", 5, 0, 3},

	{FieldRedY, "ry", "Ry Coordinate", 6, 3, 5},
	{FieldBlueY, "by", "By Coordinate", 6, 0, 3},
}

// Fields returns every field in wire order.
func Fields() []Field {
	fields := make([]Field, 0, fieldCount)
	for _, s := range Layout {
		fields = append(fields, s.Field)
	}
	return fields
}

// Spec returns the layout entry for f.
func (f Field) Spec() FieldSpec {
	if !f.IsValid() {
		return FieldSpec{Field: f}
	}
	return Layout[f]
}

// IsValid reports whether f is a defined field.
func (f Field) IsValid() bool {
	return f >= 0 && f < fieldCount
}

// Key returns the field's stable identifier.
func (f Field) Key() string {
	if !f.IsValid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return Layout[f].Key
}

func (f Field) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return Layout[f].Name
}

// ParseField resolves a field by key, case-insensitively. Dashes are accepted
// in place of underscores so CLI flag spellings resolve too.
func ParseField(key string) (Field, error) {
	k := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	for _, s := range Layout {
		if s.Key == k {
			return s.Field, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, key)
}

func maxValue(width uint) uint {
	return 1<<width - 1
}
