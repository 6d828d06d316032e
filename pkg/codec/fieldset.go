package codec

import "fmt"

// FieldSet is the decoded form of a record. Every value is stored right-aligned
// and raw: categorical codes without a known label are kept as they are.
type FieldSet struct {
	Version               uint8                 `json:"version" yaml:"version"`
	DMVersion             DMVersion             `json:"dm_version" yaml:"dm_version"`
	BacklightControl      Support               `json:"backlight_control" yaml:"backlight_control"`
	YUV12Bit              Support               `json:"yuv_12bit" yaml:"yuv_12bit"`
	MinLuminance          uint8                 `json:"min_luminance" yaml:"min_luminance"`
	GlobalDimming         Support               `json:"global_dimming" yaml:"global_dimming"`
	BacklightMinLuminance BacklightMinLuminance `json:"backlight_min_luminance" yaml:"backlight_min_luminance"`
	MaxLuminance          uint8                 `json:"max_luminance" yaml:"max_luminance"`
	Reserved              uint8                 `json:"reserved" yaml:"reserved"`
	DVMode                DVMode                `json:"dv_mode" yaml:"dv_mode"`
	GreenX                uint8                 `json:"gx" yaml:"gx"`
	Interface12b444       Support               `json:"interface_12b_444" yaml:"interface_12b_444"`
	GreenY                uint8                 `json:"gy" yaml:"gy"`
	Interface10b444       Support               `json:"interface_10b_444" yaml:"interface_10b_444"`
	RedX                  uint8                 `json:"rx" yaml:"rx"`
	BlueX                 uint8                 `json:"bx" yaml:"bx"`
	RedY                  uint8                 `json:"ry" yaml:"ry"`
	BlueY                 uint8                 `json:"by" yaml:"by"`
}

// NewFieldSet returns a field set built from scratch. All fields are zero,
// including the reserved bit.
func NewFieldSet() *FieldSet {
	return &FieldSet{Reserved: 0}
}

// Clone returns an independent copy.
func (fs *FieldSet) Clone() *FieldSet {
	c := *fs
	return &c
}

// Get returns the raw value of f.
func (fs *FieldSet) Get(f Field) uint8 {
	switch f {
	case FieldVersion:
		return fs.Version
	case FieldDMVersion:
		return uint8(fs.DMVersion)
	case FieldBacklightControl:
		return uint8(fs.BacklightControl)
	case FieldYUV12Bit:
		return uint8(fs.YUV12Bit)
	case FieldMinLuminance:
		return fs.MinLuminance
	case FieldGlobalDimming:
		return uint8(fs.GlobalDimming)
	case FieldBacklightMinLuminance:
		return uint8(fs.BacklightMinLuminance)
	case FieldMaxLuminance:
		return fs.MaxLuminance
	case FieldReserved:
		return fs.Reserved
	case FieldDVMode:
		return uint8(fs.DVMode)
	case FieldGreenX:
		return fs.GreenX
	case FieldInterface12b444:
		return uint8(fs.Interface12b444)
	case FieldGreenY:
		return fs.GreenY
	case FieldInterface10b444:
		return uint8(fs.Interface10b444)
	case FieldRedX:
		return fs.RedX
	case FieldBlueX:
		return fs.BlueX
	case FieldRedY:
		return fs.RedY
	case FieldBlueY:
		return fs.BlueY
	}
	return 0
}

// Set assigns a raw value to f after checking it fits the field width.
func (fs *FieldSet) Set(f Field, v uint8) error {
	if err := checkWidth(f, v); err != nil {
		return err
	}
	fs.put(f, v)
	return nil
}

// SetCategorical assigns a categorical field by label.
func (fs *FieldSet) SetCategorical(f Field, label string) error {
	code, err := CodeOf(f, label)
	if err != nil {
		return err
	}
	fs.put(f, code)
	return nil
}

// SetMinLuminanceNits stores the index nearest to nits. It returns false when
// the value had to be approximated.
func (fs *FieldSet) SetMinLuminanceNits(nits float64) (exact bool) {
	fs.MinLuminance, exact = MinLuminance.Lookup(nits)
	return exact
}

// SetMaxLuminanceNits stores the index nearest to nits. It returns false when
// the value had to be approximated.
func (fs *FieldSet) SetMaxLuminanceNits(nits float64) (exact bool) {
	fs.MaxLuminance, exact = MaxLuminance.Lookup(nits)
	return exact
}

// MinLuminanceNits returns the luminance the min index refers to.
func (fs *FieldSet) MinLuminanceNits() (float64, error) {
	return MinLuminance.Nits(fs.MinLuminance)
}

// MaxLuminanceNits returns the luminance the max index refers to.
func (fs *FieldSet) MaxLuminanceNits() (float64, error) {
	return MaxLuminance.Nits(fs.MaxLuminance)
}

// Validate returns a *FieldOverflowError for the first field, in wire order,
// whose value does not fit its width.
func (fs *FieldSet) Validate() error {
	for _, s := range Layout {
		if err := checkWidth(s.Field, fs.Get(s.Field)); err != nil {
			return err
		}
	}
	return nil
}

func (fs *FieldSet) put(f Field, v uint8) {
	switch f {
	case FieldVersion:
		fs.Version = v
	case FieldDMVersion:
		fs.DMVersion = DMVersion(v)
	case FieldBacklightControl:
		fs.BacklightControl = Support(v)
	case FieldYUV12Bit:
		fs.YUV12Bit = Support(v)
	case FieldMinLuminance:
		fs.MinLuminance = v
	case FieldGlobalDimming:
		fs.GlobalDimming = Support(v)
	case FieldBacklightMinLuminance:
		fs.BacklightMinLuminance = BacklightMinLuminance(v)
	case FieldMaxLuminance:
		fs.MaxLuminance = v
	case FieldReserved:
		fs.Reserved = v
	case FieldDVMode:
		fs.DVMode = DVMode(v)
	case FieldGreenX:
		fs.GreenX = v
	case FieldInterface12b444:
		fs.Interface12b444 = Support(v)
	case FieldGreenY:
		fs.GreenY = v
	case FieldInterface10b444:
		fs.Interface10b444 = Support(v)
	case FieldRedX:
		fs.RedX = v
	case FieldBlueX:
		fs.BlueX = v
	case FieldRedY:
		fs.RedY = v
	case FieldBlueY:
		fs.BlueY = v
	}
}

func checkWidth(f Field, v uint8) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}
	s := Layout[f]
	if v > s.Max() {
		return &FieldOverflowError{Field: f, Value: v, Width: s.Width}
	}
	return nil
}
