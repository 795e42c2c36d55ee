package flags

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const DefaultEndpoint = "127.0.0.1:50051"

// Config holds the client settings that can come from a TOML file.
type Config struct {
	Endpoint    string
	CallTimeout time.Duration
	MaxMsgBytes int
}

type fileConfig struct {
	Endpoint    string `toml:"endpoint"`
	CallTimeout string `toml:"call_timeout"`
	MaxMsgBytes int    `toml:"max_msg_bytes"`
}

func DefaultConfig() Config {
	return Config{Endpoint: DefaultEndpoint}
}

// LoadConfig overlays the keys defined in the TOML file at path onto DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load registry client config: %w", err)
	}

	if meta.IsDefined("endpoint") {
		endpoint := strings.TrimSpace(raw.Endpoint)
		if endpoint == "" {
			return Config{}, fmt.Errorf("load registry client config: empty endpoint")
		}
		cfg.Endpoint = endpoint
	}

	if meta.IsDefined("call_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.CallTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse call_timeout: %w", err)
		}
		cfg.CallTimeout = d
	}

	if meta.IsDefined("max_msg_bytes") {
		if raw.MaxMsgBytes < 0 {
			return Config{}, fmt.Errorf("max_msg_bytes must not be negative")
		}
		cfg.MaxMsgBytes = raw.MaxMsgBytes
	}

	return cfg, nil
}
