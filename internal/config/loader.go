package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const maxConfigFileSize = 1024 * 1024 // 1MB

// LoadFile loads configuration from a file, then overrides with environment
// variables, then fills in defaults for anything still unset.
//
// The file format is chosen by extension: ".yaml"/".yml" is parsed as YAML,
// anything else (including ".toml" and no extension) is parsed as TOML, the
// teacher's primary config format.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (CHATVAULT_ENGINE_BM25_K1, CHATVAULT_LOGGING_LEVEL, ...)
//  2. Config file (TOML or YAML)
//  3. Hardcoded defaults (NewDefaultConfig)
//
// configPath may be empty, in which case only environment variables and
// defaults apply.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := loadConfigFile(k, configPath); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("CHATVAULT_", ".", envTransformer), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(k *koanf.Koanf, configPath string) error {
	switch ext := strings.ToLower(filepath.Ext(configPath)); ext {
	case ".yaml", ".yml":
		content, err := readConfigFile(configPath)
		if err != nil {
			return err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	default:
		content, err := readConfigFile(configPath)
		if err != nil {
			return err
		}
		var raw map[string]any
		if _, err := toml.Decode(string(content), &raw); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
		if err := k.Load(confmap.Provider(raw, "."), nil); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}
	return nil
}

// envTransformer maps CHATVAULT_ENGINE_BM25_K1 -> engine.bm25_k1.
func envTransformer(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, "CHATVAULT_"))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filepath.Clean(path), err)
	}
	return content, nil
}
