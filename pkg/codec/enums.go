package codec

import "fmt"

// Support is a 1-bit capability flag.
type Support uint8

const (
	NotSupported Support = 0
	Supported    Support = 1
)

func (s Support) String() string {
	return labelOrUnrecognized(supportLabels, uint8(s), 1)
}

// DMVersion is the 3-bit dynamic-metadata version code.
type DMVersion uint8

const (
	DMVersion29 DMVersion = 0b000
	DMVersion3x DMVersion = 0b001
	DMVersion4x DMVersion = 0b010
)

func (v DMVersion) String() string {
	return labelOrUnrecognized(dmVersionLabels, uint8(v), 3)
}

// IsValid reports whether v has a documented meaning.
func (v DMVersion) IsValid() bool {
	_, ok := lookupLabel(dmVersionLabels, uint8(v))
	return ok
}

// BacklightMinLuminance is the 2-bit backlight minimum luminance code.
type BacklightMinLuminance uint8

const (
	BacklightMin25  BacklightMinLuminance = 0b00
	BacklightMin50  BacklightMinLuminance = 0b01
	BacklightMin75  BacklightMinLuminance = 0b10
	BacklightMin100 BacklightMinLuminance = 0b11
)

// BacklightDisabled shares its code with BacklightMin100.
const BacklightDisabled = BacklightMin100

func (b BacklightMinLuminance) String() string {
	return labelOrUnrecognized(backlightMinLabels, uint8(b), 2)
}

// DVMode is the 2-bit interface mode. Bit 0 is the LLDV-HDMI flag.
type DVMode uint8

const (
	DVModeLLDV           DVMode = 0b00
	DVModeLLDVHDMI       DVMode = 0b01
	DVModeStdLLDV        DVMode = 0b10
	DVModeStdLLDVAndHDMI DVMode = 0b11
)

func (m DVMode) String() string {
	return labelOrUnrecognized(dvModeLabels, uint8(m), 2)
}

// HasLLDVHDMI reports whether the LLDV-HDMI interface bit is set.
func (m DVMode) HasLLDVHDMI() bool {
	return m&DVModeLLDVHDMI != 0
}

// Label pairs a wire code with its display text.
type Label struct {
	Code uint8  `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

var (
	supportLabels = []Label{
		{0, "Not Supported"},
		{1, "Supported"},
	}

	// Only the versions with a known meaning; other codes stay unrecognized.
	dmVersionLabels = []Label{
		{uint8(DMVersion29), "2.9"},
		{uint8(DMVersion3x), "3.x"},
		{uint8(DMVersion4x), "4.x"},
	}

	backlightMinLabels = []Label{
		{uint8(BacklightMin25), "25 nits"},
		{uint8(BacklightMin50), "50 nits"},
		{uint8(BacklightMin75), "75 nits"},
		{uint8(BacklightMin100), "100 nits / Disabled"},
	}

	dvModeLabels = []Label{
		{uint8(DVModeLLDV), "LLDV"},
		{uint8(DVModeLLDVHDMI), "LLDV + LLDV-HDMI"},
		{uint8(DVModeStdLLDV), "Std + LLDV"},
		{uint8(DVModeStdLLDVAndHDMI), "Std + LLDV + LLDV-HDMI"},
	}
)

// categories maps each categorical field to its display labels, in code order.
var categories = map[Field][]Label{
	FieldDMVersion:             dmVersionLabels,
	FieldBacklightControl:      supportLabels,
	FieldYUV12Bit:              supportLabels,
	FieldGlobalDimming:         supportLabels,
	FieldBacklightMinLuminance: backlightMinLabels,
	FieldDVMode:                dvModeLabels,
	FieldInterface12b444:       supportLabels,
	FieldInterface10b444:       supportLabels,
}

// aliases are extra labels accepted on input only.
var aliases = map[Field][]Label{
	FieldBacklightMinLuminance: {
		{uint8(BacklightMin100), "100 nits"},
		{uint8(BacklightDisabled), "Disabled"},
	},
}

// IsCategorical reports whether f is set by label rather than by number.
func IsCategorical(f Field) bool {
	_, ok := categories[f]
	return ok
}

// Categories returns the display labels of a categorical field in code order.
// It returns nil for numeric fields.
func Categories(f Field) []Label {
	labels, ok := categories[f]
	if !ok {
		return nil
	}
	out := make([]Label, len(labels))
	copy(out, labels)
	return out
}

// Labels returns every label SetCategorical accepts for f: the display labels
// in code order followed by input-only aliases.
func Labels(f Field) []string {
	var out []string
	for _, l := range categories[f] {
		out = append(out, l.Name)
	}
	for _, l := range aliases[f] {
		out = append(out, l.Name)
	}
	return out
}

// LabelOf returns the display label for code. ok is false when the code has no
// documented meaning or f is not categorical.
func LabelOf(f Field, code uint8) (label string, ok bool) {
	return lookupLabel(categories[f], code)
}

// CodeOf resolves a label to its wire code by exact match.
func CodeOf(f Field, label string) (uint8, error) {
	labels, ok := categories[f]
	if !ok {
		return 0, fmt.Errorf("%w: %s is not categorical", ErrUnknownField, f)
	}
	for _, l := range labels {
		if l.Name == label {
			return l.Code, nil
		}
	}
	for _, l := range aliases[f] {
		if l.Name == label {
			return l.Code, nil
		}
	}
	return 0, &UnknownLabelError{Field: f, Label: label, Valid: Labels(f)}
}

func describeCode(f Field, code uint8) string {
	return labelOrUnrecognized(categories[f], code, f.Spec().Width)
}

func lookupLabel(labels []Label, code uint8) (string, bool) {
	for _, l := range labels {
		if l.Code == code {
			return l.Name, true
		}
	}
	return "", false
}

func labelOrUnrecognized(labels []Label, code uint8, width uint) string {
	if name, ok := lookupLabel(labels, code); ok {
		return name
	}
	return fmt.Sprintf("unrecognized (0b%0*b)", int(width), code)
}
