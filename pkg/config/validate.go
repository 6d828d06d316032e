package config

import (
	"fmt"

	"github.com/ssargent/vsvdb/pkg/codec"
	"github.com/ssargent/vsvdb/pkg/logging"
)

// Output formats understood by the CLI.
var Formats = []string{"text", "json", "yaml"}

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if _, err := codec.ParseHex(cfg.DefaultPayload); err != nil {
		return fmt.Errorf("default_payload %q: %w", cfg.DefaultPayload, err)
	}

	if !IsFormat(cfg.Output.Format) {
		return fmt.Errorf("output.format %q: must be one of %v", cfg.Output.Format, Formats)
	}

	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	if cfg.Library.DataDir == "" {
		return fmt.Errorf("library.data_dir must not be empty")
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	return nil
}

// IsFormat reports whether f is a supported output format.
func IsFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
