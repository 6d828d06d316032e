package api

import (
	"github.com/ssargent/vsvdb/pkg/codec"
	"github.com/ssargent/vsvdb/pkg/library"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string // empty disables authentication
}

// HexRequest carries a single payload in its hex wire form
type HexRequest struct {
	Hex string `json:"hex"`
}

// EncodeRequest describes a record to build. Changes are applied in this
// order: base, preset, raw fields, labels, luminance in nits. An empty base
// starts from an all-zero record.
type EncodeRequest struct {
	Base    string            `json:"base,omitempty"`
	Preset  string            `json:"preset,omitempty"`
	Fields  map[string]uint8  `json:"fields,omitempty"`
	Labels  map[string]string `json:"labels,omitempty"`
	MinNits *float64          `json:"min_nits,omitempty"`
	MaxNits *float64          `json:"max_nits,omitempty"`
}

// EncodeResponse is the result of an encode request
type EncodeResponse struct {
	Hex    string        `json:"hex"`
	Report *codec.Report `json:"report"`
	Notes  []string      `json:"notes,omitempty"`
}

// LLDVResponse is the result of enabling LLDV-HDMI
type LLDVResponse struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Changed bool   `json:"changed"`
}

// FieldInfo describes one field of the record layout
type FieldInfo struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	Byte   int      `json:"byte"`
	Width  uint     `json:"width"`
	Max    uint8    `json:"max"`
	Labels []string `json:"labels,omitempty"`
}

// FieldsResponse lists everything a client needs to build a record
type FieldsResponse struct {
	Fields       []FieldInfo         `json:"fields"`
	Presets      []codec.ColorPreset `json:"presets"`
	MinLuminance []float64           `json:"min_luminance"`
	MaxLuminance []float64           `json:"max_luminance"`
}

// PayloadResponse is a saved revision together with its decoded form
type PayloadResponse struct {
	Revision *library.Revision `json:"revision"`
	Report   *codec.Report     `json:"report"`
}
