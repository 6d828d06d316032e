package codec

import (
	"encoding/hex"
	"fmt"
)

const (
	// RecordSize is the packed record length in bytes.
	RecordSize = 7
	// HexLength is the length of the hex wire form.
	HexLength = RecordSize * 2
)

// Record is the packed 56-bit form.
type Record [RecordSize]byte

// NewRecord copies exactly RecordSize bytes into a Record.
func NewRecord(data []byte) (Record, error) {
	var r Record
	if len(data) != RecordSize {
		return r, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(data), RecordSize)
	}
	copy(r[:], data)
	return r, nil
}

// ParseHex parses the 14-character hex wire form. Case is ignored.
func ParseHex(s string) (Record, error) {
	var r Record
	if len(s) != HexLength {
		return r, fmt.Errorf("%w: got %d characters, want %d", ErrInvalidLength, len(s), HexLength)
	}
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return r, fmt.Errorf("%w %q at position %d", ErrInvalidHexCharacter, s[i], i)
		}
	}
	if _, err := hex.Decode(r[:], []byte(s)); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidHexCharacter, err)
	}
	return r, nil
}

// String returns the lowercase hex wire form.
func (r Record) String() string {
	return hex.EncodeToString(r[:])
}

// Bytes returns a copy of the packed bytes.
func (r Record) Bytes() []byte {
	b := make([]byte, RecordSize)
	copy(b, r[:])
	return b
}

// Bit reports whether bit (0 = least significant) of byte index is set.
func (r Record) Bit(index int, bit uint) bool {
	return r[index]&(1<<bit) != 0
}

// WithBit returns a copy of r with one bit set.
func (r Record) WithBit(index int, bit uint) Record {
	r[index] |= 1 << bit
	return r
}

// RecordCodec converts between packed records and field sets.
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Decode unpacks exactly RecordSize bytes. Codes without a known meaning are
// kept verbatim.
func (c *RecordCodec) Decode(data []byte) (*FieldSet, error) {
	r, err := NewRecord(data)
	if err != nil {
		return nil, err
	}
	return c.DecodeRecord(r), nil
}

// DecodeRecord unpacks r. It cannot fail: every bit pattern is a valid field set.
func (c *RecordCodec) DecodeRecord(r Record) *FieldSet {
	fs := NewFieldSet()
	for _, s := range Layout {
		fs.put(s.Field, (r[s.Byte]>>s.Shift)&s.Mask())
	}
	return fs
}

// DecodeHex parses and unpacks the hex wire form.
func (c *RecordCodec) DecodeHex(s string) (*FieldSet, error) {
	r, err := ParseHex(s)
	if err != nil {
		return nil, err
	}
	return c.DecodeRecord(r), nil
}

// Encode packs fs into a fresh RecordSize-byte slice.
func (c *RecordCodec) Encode(fs *FieldSet) ([]byte, error) {
	r, err := c.EncodeRecord(fs)
	if err != nil {
		return nil, err
	}
	return r.Bytes(), nil
}

// EncodeRecord packs fs. Every field is checked before any byte is built.
func (c *RecordCodec) EncodeRecord(fs *FieldSet) (Record, error) {
	var r Record
	if err := fs.Validate(); err != nil {
		return r, err
	}
	for _, s := range Layout {
		r[s.Byte] |= fs.Get(s.Field) << s.Shift
	}
	return r, nil
}

// EncodeHex packs fs into the hex wire form.
func (c *RecordCodec) EncodeHex(fs *FieldSet) (string, error) {
	r, err := c.EncodeRecord(fs)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func isHex(ch byte) bool {
	switch {
	case '0' <= ch && ch <= '9':
		return true
	case 'a' <= ch && ch <= 'f':
		return true
	case 'A' <= ch && ch <= 'F':
		return true
	}
	return false
}
