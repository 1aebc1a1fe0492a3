package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml"

	"github.com/ehverify/ehverify/pkg/core/equihash"
)

// Config holds the verifier settings shared by the CLI and the validator.
type Config struct {
	// N and K select the default parameter set for jobs that omit them.
	N uint32 `toml:"n"`
	K uint32 `toml:"k"`

	// Personalization is the 8-byte BLAKE2b personalization prefix.
	Personalization string `toml:"personalization"`

	// Workers bounds concurrent verifications in a batch.
	Workers int `toml:"workers"`

	// LeafWorkers bounds goroutines expanding leaf digests inside one
	// verification. 1 keeps each verification on a single goroutine.
	LeafWorkers int `toml:"leaf_workers"`

	// StorePath is the verdict store directory. Empty means in-memory.
	StorePath string `toml:"store_path"`
}

// DefaultConfig returns the Zcash (200,9) defaults.
func DefaultConfig() Config {
	return Config{
		N:               equihash.DefaultParams.N,
		K:               equihash.DefaultParams.K,
		Personalization: equihash.DefaultPersonalization,
		Workers:         runtime.NumCPU(),
		LeafWorkers:     1,
	}
}

// Load reads a TOML file over the defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ExampleTOML renders the defaults as a TOML document.
func ExampleTOML() ([]byte, error) {
	return toml.Marshal(DefaultConfig())
}

// Params returns the configured default parameter set.
func (c Config) Params() (equihash.Params, error) {
	return equihash.LookupParams(c.N, c.K)
}

// Validate rejects unsupported parameters and non-positive worker counts.
func (c Config) Validate() error {
	p, err := c.Params()
	if err != nil {
		return fmt.Errorf("invalid n/k: %w", err)
	}
	if _, err := equihash.Personalization(c.Personalization, p); err != nil {
		return fmt.Errorf("invalid personalization: %w", err)
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.LeafWorkers < 1 {
		return errors.New("leaf_workers must be at least 1")
	}
	return nil
}
