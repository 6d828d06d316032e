package codec

// LLDV-HDMI is bit 0 of byte 2, the low bit of the DV mode field.
const (
	lldvHDMIByte = 2
	lldvHDMIBit  = 0
)

// Vector is a known-good input/output pair for EnableLLDVHDMI.
type Vector struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// LLDVVectors are payloads reported by real displays together with their
// LLDV-HDMI enabled form.
var LLDVVectors = []Vector{
	{"480376825e6d95", "480377825e6d95"},
	{"4403609248458f", "4403619248458f"},
	{"4d4e4a725a7776", "4d4e4b725a7776"},
	{"480a7e86607694", "480a7f86607694"},
	{"48039e5898aa5c", "48039f5898aa5c"},
}

// LLDVHDMI reports whether the LLDV-HDMI interface bit is set.
func (r Record) LLDVHDMI() bool {
	return r.Bit(lldvHDMIByte, lldvHDMIBit)
}

// WithLLDVHDMI returns a copy of r with the LLDV-HDMI bit set and the other
// 55 bits untouched.
func (r Record) WithLLDVHDMI() Record {
	return r.WithBit(lldvHDMIByte, lldvHDMIBit)
}

// EnableLLDVHDMI sets the LLDV-HDMI bit on a hex payload. changed is false
// when the bit was already set.
func EnableLLDVHDMI(payload string) (out string, changed bool, err error) {
	r, err := ParseHex(payload)
	if err != nil {
		return "", false, err
	}
	enabled := r.WithLLDVHDMI()
	return enabled.String(), enabled != r, nil
}

// VerifyLLDVVectors runs EnableLLDVHDMI over LLDVVectors and returns the
// vectors whose output did not match.
func VerifyLLDVVectors() ([]Vector, error) {
	var failed []Vector
	for _, v := range LLDVVectors {
		out, _, err := EnableLLDVHDMI(v.Input)
		if err != nil {
			return nil, err
		}
		if out != v.Output {
			failed = append(failed, Vector{Input: v.Input, Output: out})
		}
	}
	return failed, nil
}
