package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/arthur-debert/gim/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration
const EnvPrefix = "GIM_"

// Probe modes
const (
	ProbeModeCommand = "command"
	ProbeModeNative  = "native"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// SupportedAlgorithms lists the key algorithms the provisioner can generate
var SupportedAlgorithms = []string{"ed25519", "rsa", "ecdsa"}

// Config is the fully resolved gim configuration
type Config struct {
	Key   KeyConfig   `koanf:"key"`
	Probe ProbeConfig `koanf:"probe"`
	SSH   SSHConfig   `koanf:"ssh"`
	Git   GitConfig   `koanf:"git"`
}

// KeyConfig controls key generation
type KeyConfig struct {
	Algorithm string `koanf:"algorithm"`
	RSABits   int    `koanf:"rsa_bits"`
}

// ProbeConfig controls the connection check of the health audit
type ProbeConfig struct {
	Mode      string        `koanf:"mode"`
	Timeout   time.Duration `koanf:"timeout"`
	SSHBinary string        `koanf:"ssh_binary"`
}

// SSHConfig locates the SSH directory
type SSHConfig struct {
	Dir string `koanf:"dir"`
}

// GitConfig locates the git executable
type GitConfig struct {
	Binary string `koanf:"binary"`
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Default returns the built-in configuration without any user overrides
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	return unmarshal(k)
}

// Load resolves the configuration from defaults, the user config file at
// configFile (skipped when absent) and the environment.
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", configFile)
			}
		}
	}

	// 3. Environment. Only the first underscore separates section from key:
	// GIM_KEY_RSA_BITS -> key.rsa_bits
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late, deep inside a command
func (c *Config) Validate() error {
	if !IsSupportedAlgorithm(c.Key.Algorithm) {
		return errors.Newf(errors.ErrConfigValid, "unsupported key algorithm %q (supported: %s)",
			c.Key.Algorithm, strings.Join(SupportedAlgorithms, ", "))
	}
	if c.Key.Algorithm == "rsa" && c.Key.RSABits < 2048 {
		return errors.Newf(errors.ErrConfigValid, "key.rsa_bits must be at least 2048, got %d", c.Key.RSABits)
	}
	switch c.Probe.Mode {
	case ProbeModeCommand, ProbeModeNative:
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown probe mode %q", c.Probe.Mode)
	}
	if c.Probe.Timeout <= 0 {
		return errors.Newf(errors.ErrConfigValid, "probe.timeout must be positive, got %s", c.Probe.Timeout)
	}
	return nil
}

// IsSupportedAlgorithm reports whether algorithm can be generated
func IsSupportedAlgorithm(algorithm string) bool {
	for _, a := range SupportedAlgorithms {
		if a == algorithm {
			return true
		}
	}
	return false
}
