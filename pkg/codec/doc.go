// Package codec decodes and encodes the Dolby Vision vendor-specific video data
// block (VSVDB) payload.
//
// The payload is a fixed 7-byte record that packs eighteen sub-fields into 56
// bits. Field boundaries do not align to bytes, so every field is described by
// the byte it lives in, its shift and its width. Decode and Encode both walk the
// same immutable Layout table.
//
// # Record Format
//
// Bits are numbered most-significant first within each byte:
//
//	byte 0: [Version(3)][DMVersion(3)][BacklightControl(1)][YUV12Bit(1)]
//	byte 1: [MinLuminance(5)][GlobalDimming(1)][BacklightMinLuminance(2)]
//	byte 2: [MaxLuminance(5)][Reserved(1)][DVMode(2)]
//	byte 3: [GreenX(7)][Interface12b444(1)]
//	byte 4: [GreenY(7)][Interface10b444(1)]
//	byte 5: [RedX(5)][BlueX(3)]
//	byte 6: [RedY(5)][BlueY(3)]
//
// The exchanged representation is a 14-character hexadecimal string, one byte
// per character pair, big-endian. ParseHex accepts either case; Record.String
// always emits lowercase.
//
// # Luminance
//
// MinLuminance and MaxLuminance hold 5-bit indices into two non-linear nits
// tables. LuminanceTable.Lookup maps a physical value back to the nearest index
// and reports whether the match was exact.
//
// # Categorical Fields
//
// DM version, the support flags, the backlight minimum and the DV interface mode
// are small enums. Every code has a label: codes without a documented meaning
// render as "unrecognized (0bNNN)" and are carried through decode and encode
// unchanged. Labels lists what SetCategorical accepts.
//
// # Usage
//
//	c := codec.NewRecordCodec()
//
//	fs, err := c.DecodeHex("480376825e6d95")
//	if err != nil {
//	    return err
//	}
//
//	if err := fs.SetCategorical(codec.FieldDVMode, "LLDV + LLDV-HDMI"); err != nil {
//	    return err
//	}
//
//	payload, err := c.EncodeHex(fs)
//
// # Error Handling
//
// All failures unwrap to one of the package sentinels: ErrInvalidLength,
// ErrInvalidHexCharacter, ErrFieldOverflow, ErrUnknownLabel and
// ErrUnknownPreset. Setters validate before writing, so a failed call never
// leaves a FieldSet half-modified.
//
// # Thread Safety
//
// RecordCodec is stateless and safe for concurrent use. A FieldSet is plain
// data owned by one caller; mutating the same FieldSet from several goroutines
// requires external synchronization.
package codec
