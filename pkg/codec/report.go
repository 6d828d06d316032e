package codec

import (
	"fmt"
	"strconv"
)

// Entry is one decoded field as shown to a user.
type Entry struct {
	Byte  int    `json:"byte" yaml:"byte"`
	Key   string `json:"key" yaml:"key"`
	Name  string `json:"name" yaml:"name"`
	Raw   uint8  `json:"raw" yaml:"raw"`
	Bits  string `json:"bits" yaml:"bits"`
	Value string `json:"value" yaml:"value"`
}

// Report is the display form of a field set.
type Report struct {
	Hex     string   `json:"hex" yaml:"hex"`
	Bytes   []string `json:"bytes" yaml:"bytes"`
	Entries []Entry  `json:"fields" yaml:"fields"`
}

// Describe encodes fs and renders every field in wire order. Unknown codes
// are shown as unrecognized, never replaced.
func (c *RecordCodec) Describe(fs *FieldSet) (*Report, error) {
	r, err := c.EncodeRecord(fs)
	if err != nil {
		return nil, err
	}

	rep := &Report{Hex: r.String()}
	for _, b := range r {
		rep.Bytes = append(rep.Bytes, fmt.Sprintf("0x%02x", b))
	}
	for _, s := range Layout {
		v := fs.Get(s.Field)
		rep.Entries = append(rep.Entries, Entry{
			Byte:  s.Byte,
			Key:   s.Key,
			Name:  s.Name,
			Raw:   v,
			Bits:  fmt.Sprintf("0b%0*b", int(s.Width), v),
			Value: displayValue(s.Field, v),
		})
	}
	return rep, nil
}

// Value returns the display value for the field with the given key.
func (rep *Report) Value(key string) (string, bool) {
	for _, e := range rep.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func displayValue(f Field, v uint8) string {
	switch {
	case IsCategorical(f):
		return describeCode(f, v)
	case f == FieldMinLuminance:
		return formatNits(MinLuminance, v)
	case f == FieldMaxLuminance:
		return formatNits(MaxLuminance, v)
	}
	return strconv.Itoa(int(v))
}
