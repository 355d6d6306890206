// Package config is the YAML configuration layer of the reference client.
// Values resolve in three tiers: defaults, then the config file, then
// environment variables.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// BackendConfig points the client at the assistant/schedule backend.
type BackendConfig struct {
	// BaseURL is the backend root; empty switches the client to direct
	// Google Calendar mode.
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Token is a static bearer token, mostly for development setups without
	// an OAuth flow.
	Token string `yaml:"token,omitempty" json:"token,omitempty"`
}

// GoogleConfig holds the OAuth client used in direct calendar mode.
type GoogleConfig struct {
	ClientID     string `yaml:"client_id" json:"client_id"`
	ClientSecret string `yaml:"client_secret" json:"client_secret"`
	// TokenFile is where the obtained OAuth token is cached.
	TokenFile string `yaml:"token_file" json:"token_file"`
}

// SpeechConfig configures transcription.
type SpeechConfig struct {
	// APIKey is the Deepgram key. The DEEPGRAM_API_KEY environment variable
	// overrides it.
	APIKey string `yaml:"api_key,omitempty" json:"api_key,omitempty"`
	Model  string `yaml:"model" json:"model"`
	// Language is a BCP-47 tag, e.g. "en-US".
	Language string `yaml:"language" json:"language"`
	// Live enables interim transcription over the streaming endpoint while
	// the mic is open.
	Live bool `yaml:"live" json:"live"`
}

// Config is the top-level client configuration.
type Config struct {
	// Timezone is the IANA timezone anchoring schedule windows.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WindowDays is the schedule window span in days, 1-3.
	WindowDays int `yaml:"window_days" json:"window_days"`

	// AudioBackend selects the capture backend: "miniaudio" (default) or
	// "portaudio".
	AudioBackend string `yaml:"audio_backend" json:"audio_backend"`

	Backend BackendConfig `yaml:"backend" json:"backend"`
	Google  GoogleConfig  `yaml:"google" json:"google"`
	Speech  SpeechConfig  `yaml:"speech" json:"speech"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone:   "UTC",
		WindowDays: 1,
		Google: GoogleConfig{
			TokenFile: "token.json",
		},
		Speech: SpeechConfig{
			Model:    "nova-2",
			Language: "en-US",
		},
	}
}

// Normalize fills missing or out-of-range values so partially filled configs
// still behave.
func (c *Config) Normalize() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.WindowDays < 1 {
		c.WindowDays = 1
	}
	if c.WindowDays > 3 {
		c.WindowDays = 3
	}
	switch c.AudioBackend {
	case "miniaudio", "portaudio":
	default:
		c.AudioBackend = "miniaudio"
	}
	if c.Google.TokenFile == "" {
		c.Google.TokenFile = "token.json"
	}
	if c.Speech.Model == "" {
		c.Speech.Model = "nova-2"
	}
	if c.Speech.Language == "" {
		c.Speech.Language = "en-US"
	}
}

// ApplyEnv overlays environment variables onto the loaded config. Variables
// win over file values.
func (c *Config) ApplyEnv() {
	if value := os.Getenv("VOXCAL_BACKEND_URL"); value != "" {
		c.Backend.BaseURL = value
	}
	if value := os.Getenv("VOXCAL_BACKEND_TOKEN"); value != "" {
		c.Backend.Token = value
	}
	if value := os.Getenv("VOXCAL_TIMEZONE"); value != "" {
		c.Timezone = value
	}
	if value := os.Getenv("VOXCAL_WINDOW_DAYS"); value != "" {
		if days, err := strconv.Atoi(value); err == nil {
			c.WindowDays = days
		}
	}
	if value := os.Getenv("GOOGLE_CLIENT_ID"); value != "" {
		c.Google.ClientID = value
	}
	if value := os.Getenv("GOOGLE_CLIENT_SECRET"); value != "" {
		c.Google.ClientSecret = value
	}
	if value := os.Getenv("DEEPGRAM_API_KEY"); value != "" {
		c.Speech.APIKey = value
	}
	c.Normalize()
}

// UsesBackend reports whether the client talks to a dedicated backend rather
// than Google Calendar directly.
func (c *Config) UsesBackend() bool {
	return c.Backend.BaseURL != ""
}

// Load reads configuration from the given YAML path. A missing file yields
// the defaults and writes them back for the next run.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration atomically with 0600 permissions; the file
// can carry credentials.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".voxcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
