package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultPayload = "480376825e6d95"

// runScript feeds one answer per line and returns the shell and its output
func runScript(t *testing.T, lines ...string) (*Shell, string) {
	t.Helper()
	var out bytes.Buffer
	sh := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, defaultPayload, nil)
	require.NoError(t, sh.Run(context.Background()))
	return sh, out.String()
}

func TestShell_DefaultPayloadAndExit(t *testing.T) {
	sh, out := runScript(t, "", "3", "5")

	assert.Contains(t, out, "Loaded payload: 480376825e6d95")
	assert.Contains(t, out, "Current Raw Hex Payload: 480376825e6d95")
	assert.Contains(t, out, "Exiting tool.")
	assert.Equal(t, defaultPayload, sh.Hex())
}

func TestShell_ShowInfo(t *testing.T) {
	_, out := runScript(t, "", "1", "5")

	assert.Contains(t, out, "--- Current VSVDB Information ---")
	assert.Contains(t, out, "0x48 0x03 0x76 0x82 0x5e 0x6d 0x95")
	assert.Contains(t, out, "4.x")
	assert.Contains(t, out, "807 nits")
	assert.Contains(t, out, "Std + LLDV")
}

func TestShell_InvalidPayloadReprompts(t *testing.T) {
	sh, out := runScript(t, "zz", "480376825e6dzz", "4403609248458F", "5")

	assert.Contains(t, out, "Invalid payload: invalid record length")
	assert.Contains(t, out, "Invalid payload: invalid hex character")
	assert.Contains(t, out, "Loaded payload: 4403609248458f")
	assert.Equal(t, "4403609248458f", sh.Hex())
}

func TestShell_ModifyMenuListsEveryEditableField(t *testing.T) {
	_, out := runScript(t, "", "2", "19", "5")

	assert.Contains(t, out, "1. Version (0-7)")
	assert.Contains(t, out, "5. Min Display Luminance (nits)")
	assert.Contains(t, out, "8. Max Display Luminance (nits)")
	assert.Contains(t, out, "9. DV Mode")
	assert.Contains(t, out, "17. By Coordinate (0-7)")
	assert.Contains(t, out, "18. Set Color Primaries from Preset")
	assert.Contains(t, out, "19. Back to Main Menu")
	assert.NotContains(t, out, "Reserved")
}

func TestShell_ModifyFields(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantHex  string
		contains []string
	}{
		{
			name:    "categorical dv mode",
			lines:   []string{"", "2", "9", "2", "19", "5"},
			wantHex: "480375825e6d95",
			contains: []string{
				"Select DV Mode:",
				"  2. LLDV + LLDV-HDMI",
				"Field updated.",
			},
		},
		{
			name:    "max luminance approximated",
			lines:   []string{"", "2", "8", "1000", "19", "5"},
			wantHex: "48037e825e6d95",
			contains: []string{
				"Warning: 1000 nits not in table, using closest: 935 nits.",
			},
		},
		{
			name:    "min luminance exact",
			lines:   []string{"", "2", "5", "0.001", "19", "5"},
			wantHex: "480b76825e6d95",
		},
		{
			name:    "raw value out of range reprompts",
			lines:   []string{"", "2", "15", "8", "7", "19", "5"},
			wantHex: "480376825e6f95",
			contains: []string{
				"Invalid choice. Please enter a number between 0 and 7.",
			},
		},
		{
			name:    "non numeric raw value reprompts",
			lines:   []string{"", "2", "1", "two", "0", "19", "5"},
			wantHex: "080376825e6d95",
			contains: []string{
				"Invalid input. Please enter a number.",
			},
		},
		{
			name:    "backlight alias",
			lines:   []string{"", "2", "7", "6", "19", "5"},
			wantHex: defaultPayload,
			contains: []string{
				"  6. Disabled",
			},
		},
		{
			name:    "placeholder preset warns",
			lines:   []string{"", "2", "18", "2", "19", "5"},
			wantHex: "48037600000000",
			contains: []string{
				"Warning: BT.709 is an unverified placeholder",
			},
		},
		{
			name:    "verified preset",
			lines:   []string{"", "2", "18", "1", "19", "5"},
			wantHex: "4803765698a953",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, out := runScript(t, tt.lines...)
			assert.Equal(t, tt.wantHex, sh.Hex())
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestShell_LoadNewPayload(t *testing.T) {
	sh, out := runScript(t, "", "2", "9", "1", "19", "4", "48039e5898aa5c", "3", "5")

	assert.Contains(t, out, "Current Raw Hex Payload: 48039e5898aa5c")
	assert.Equal(t, "48039e5898aa5c", sh.Hex())
}

func TestShell_EndOfInputExits(t *testing.T) {
	var out bytes.Buffer
	sh := New(strings.NewReader("\n2\n9\n"), &out, defaultPayload, nil)

	require.NoError(t, sh.Run(context.Background()))
	assert.Equal(t, defaultPayload, sh.Hex())
}

func TestShell_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	sh := New(strings.NewReader("\n5\n"), &out, defaultPayload, nil)
	assert.ErrorIs(t, sh.Run(ctx), context.Canceled)
}

func TestShell_Load(t *testing.T) {
	sh := New(strings.NewReader(""), &bytes.Buffer{}, defaultPayload, nil)
	assert.Equal(t, "", sh.Hex())

	require.NoError(t, sh.Load("4d4e4a725a7776"))
	assert.Equal(t, "4d4e4a725a7776", sh.Hex())

	assert.Error(t, sh.Load("4d4e"))
	assert.Equal(t, "4d4e4a725a7776", sh.Hex())
}
