package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ssargent/vsvdb/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_handleDecode(t *testing.T) {
	h, server := setupTestServer(t, ServerConfig{})

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid payload",
			body:           HexRequest{Hex: "480376825e6d95"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "uppercase payload",
			body:           HexRequest{Hex: "4D4E4A725A7776"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "short payload",
			body:           HexRequest{Hex: "480376825e6d9"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid record length",
		},
		{
			name:           "non-hex payload",
			body:           HexRequest{Hex: "480376825e6dzz"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid hex character",
		},
		{
			name:           "malformed json",
			body:           "{",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
		},
		{
			name:           "unknown json field",
			body:           `{"payload":"480376825e6d95"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doRequest(t, h, "POST", "/api/v1/decode", tt.body)
			assert.Equal(t, tt.expectedStatus, code)
			if tt.expectedError != "" {
				assert.False(t, resp.Success)
				assert.Contains(t, resp.Error, tt.expectedError)
				return
			}
			assert.True(t, resp.Success)
		})
	}

	ok := testutil.ToFloat64(server.metrics.codecOperationsTotal.WithLabelValues("decode", statusSuccess))
	failed := testutil.ToFloat64(server.metrics.codecOperationsTotal.WithLabelValues("decode", statusError))
	assert.Equal(t, float64(2), ok)
	assert.Equal(t, float64(4), failed)
}

func TestServer_handleDecodeReport(t *testing.T) {
	h, _ := setupTestServer(t, ServerConfig{})

	code, resp := doRequest(t, h, "POST", "/api/v1/decode", HexRequest{Hex: "480376825e6d95"})
	require.Equal(t, http.StatusOK, code)

	var rep codec.Report
	decodeData(t, resp, &rep)
	assert.Equal(t, "480376825e6d95", rep.Hex)
	require.Len(t, rep.Entries, len(codec.Layout))

	values := map[string]string{}
	for _, e := range rep.Entries {
		values[e.Key] = e.Value
	}
	assert.Equal(t, "4.x", values["dm_version"])
	assert.Equal(t, "807 nits", values["max_luminance"])
	assert.Equal(t, "Std + LLDV", values["dv_mode"])
	assert.Equal(t, "100 nits / Disabled", values["backlight_min_luminance"])
}

func TestServer_handleEncode(t *testing.T) {
	h, _ := setupTestServer(t, ServerConfig{})

	maxNits := 1000.0
	exactMax := 807.0

	tests := []struct {
		name           string
		req            EncodeRequest
		expectedStatus int
		expectedHex    string
		expectedNotes  int
		expectedError  string
	}{
		{
			name:           "empty request is all zero",
			req:            EncodeRequest{},
			expectedStatus: http.StatusOK,
			expectedHex:    "00000000000000",
		},
		{
			name:           "base only round trips",
			req:            EncodeRequest{Base: "480376825e6d95"},
			expectedStatus: http.StatusOK,
			expectedHex:    "480376825e6d95",
		},
		{
			name:           "preset from scratch",
			req:            EncodeRequest{Preset: "BT.2020"},
			expectedStatus: http.StatusOK,
			expectedHex:    "0000005698a953",
		},
		{
			name:           "approximate max luminance",
			req:            EncodeRequest{Base: "480376825e6d95", MaxNits: &maxNits},
			expectedStatus: http.StatusOK,
			expectedHex:    "48037e825e6d95",
			expectedNotes:  1,
		},
		{
			name:           "exact max luminance",
			req:            EncodeRequest{Base: "480376825e6d95", MaxNits: &exactMax},
			expectedStatus: http.StatusOK,
			expectedHex:    "480376825e6d95",
		},
		{
			name: "label sets dv mode",
			req: EncodeRequest{
				Base:   "480376825e6d95",
				Labels: map[string]string{"dv_mode": "LLDV + LLDV-HDMI"},
			},
			expectedStatus: http.StatusOK,
			expectedHex:    "480375825e6d95",
		},
		{
			name: "raw field",
			req: EncodeRequest{
				Base:   "480376825e6d95",
				Fields: map[string]uint8{"by": 7},
			},
			expectedStatus: http.StatusOK,
			expectedHex:    "480376825e6d97",
		},
		{
			name: "field overflow",
			req: EncodeRequest{
				Fields: map[string]uint8{"bx": 8},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Bx Coordinate value 8 exceeds 3-bit maximum 7",
		},
		{
			name: "unknown field",
			req: EncodeRequest{
				Fields: map[string]uint8{"hue": 1},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "unknown field",
		},
		{
			name: "unknown label",
			req: EncodeRequest{
				Labels: map[string]string{"dm_version": "5.x"},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "2.9, 3.x, 4.x",
		},
		{
			name:           "unknown preset",
			req:            EncodeRequest{Preset: "Rec.601"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "BT.2020",
		},
		{
			name:           "bad base",
			req:            EncodeRequest{Base: "4803"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "base:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doRequest(t, h, "POST", "/api/v1/encode", tt.req)
			assert.Equal(t, tt.expectedStatus, code)
			if tt.expectedError != "" {
				assert.False(t, resp.Success)
				assert.Contains(t, resp.Error, tt.expectedError)
				return
			}

			var out EncodeResponse
			decodeData(t, resp, &out)
			assert.Equal(t, tt.expectedHex, out.Hex)
			assert.Len(t, out.Notes, tt.expectedNotes)
		})
	}
}

func TestServer_handleLLDV(t *testing.T) {
	h, _ := setupTestServer(t, ServerConfig{})

	for _, v := range codec.LLDVVectors {
		t.Run(v.Input, func(t *testing.T) {
			code, resp := doRequest(t, h, "POST", "/api/v1/lldv", HexRequest{Hex: v.Input})
			require.Equal(t, http.StatusOK, code)

			var out LLDVResponse
			decodeData(t, resp, &out)
			assert.Equal(t, v.Output, out.Output)
			assert.True(t, out.Changed)
		})
	}

	t.Run("already enabled", func(t *testing.T) {
		code, resp := doRequest(t, h, "POST", "/api/v1/lldv", HexRequest{Hex: "480377825E6D95"})
		require.Equal(t, http.StatusOK, code)

		var out LLDVResponse
		decodeData(t, resp, &out)
		assert.Equal(t, "480377825e6d95", out.Input)
		assert.Equal(t, "480377825e6d95", out.Output)
		assert.False(t, out.Changed)
	})

	t.Run("invalid", func(t *testing.T) {
		code, resp := doRequest(t, h, "POST", "/api/v1/lldv", HexRequest{Hex: "xyz"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, resp.Success)
	})
}

func TestServer_handleFields(t *testing.T) {
	h, _ := setupTestServer(t, ServerConfig{})

	code, resp := doRequest(t, h, "GET", "/api/v1/fields", nil)
	require.Equal(t, http.StatusOK, code)

	var out FieldsResponse
	decodeData(t, resp, &out)
	require.Len(t, out.Fields, len(codec.Layout))
	assert.Equal(t, "version", out.Fields[0].Key)
	assert.Equal(t, uint8(7), out.Fields[0].Max)
	assert.Equal(t, []string{"2.9", "3.x", "4.x"}, out.Fields[1].Labels)
	assert.Len(t, out.MinLuminance, 32)
	assert.Len(t, out.MaxLuminance, 32)
	assert.Equal(t, float64(10000), out.MaxLuminance[31])
	assert.Equal(t, codec.PresetNames()[0], out.Presets[0].Name)
}

func TestServer_Payloads(t *testing.T) {
	h, server := setupTestServer(t, ServerConfig{})

	code, resp := doRequest(t, h, "GET", "/api/v1/payloads/den", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, resp.Success)

	code, _ = doRequest(t, h, "PUT", "/api/v1/payloads/den", HexRequest{Hex: "480376825e6d95"})
	require.Equal(t, http.StatusOK, code)
	code, resp = doRequest(t, h, "PUT", "/api/v1/payloads/den", HexRequest{Hex: "480377825e6d95"})
	require.Equal(t, http.StatusOK, code)

	var saved PayloadResponse
	decodeData(t, resp, &saved)
	assert.Equal(t, "den", saved.Revision.Name)
	assert.Equal(t, "480377825e6d95", saved.Revision.Hex)
	v, ok := saved.Report.Value("dv_mode")
	require.True(t, ok)
	assert.Equal(t, "Std + LLDV + LLDV-HDMI", v)

	code, resp = doRequest(t, h, "GET", "/api/v1/payloads/den", nil)
	require.Equal(t, http.StatusOK, code)
	var latest PayloadResponse
	decodeData(t, resp, &latest)
	assert.Equal(t, saved.Revision.ID, latest.Revision.ID)

	code, resp = doRequest(t, h, "GET", "/api/v1/payloads/den/history", nil)
	require.Equal(t, http.StatusOK, code)
	var history []struct {
		Hex string `json:"hex"`
	}
	decodeData(t, resp, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "480376825e6d95", history[0].Hex)
	assert.Equal(t, "480377825e6d95", history[1].Hex)

	_, _ = doRequest(t, h, "PUT", "/api/v1/payloads/bedroom", HexRequest{Hex: "4403609248458f"})
	code, resp = doRequest(t, h, "GET", "/api/v1/payloads", nil)
	require.Equal(t, http.StatusOK, code)
	var names []string
	decodeData(t, resp, &names)
	assert.Equal(t, []string{"bedroom", "den"}, names)

	code, _ = doRequest(t, h, "DELETE", "/api/v1/payloads/den", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = doRequest(t, h, "DELETE", "/api/v1/payloads/den", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = doRequest(t, h, "PUT", "/api/v1/payloads/den", HexRequest{Hex: "zz"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Error, "invalid record length")

	saves := testutil.ToFloat64(server.metrics.libraryOperationsTotal.WithLabelValues("save", statusSuccess))
	assert.Equal(t, float64(3), saves)
}

func TestServer_PayloadsWithoutLibrary(t *testing.T) {
	server := NewServer(nil, ServerConfig{}, NewMetrics(), nil)
	h := NewRouter(server)

	req := httptest.NewRequest("GET", "/api/v1/payloads", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// codec routes still work
	code, _ := doRequest(t, h, "GET", "/api/v1/fields", nil)
	assert.Equal(t, http.StatusOK, code)
}
