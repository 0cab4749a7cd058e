package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string `yaml:"version" json:"version"`
	Save    Save   `yaml:"save" json:"save"`
	Backup  Backup `yaml:"backup" json:"backup"`
}

type Save struct {
	// Dir is the save directory. Empty means the per-user data dir.
	Dir               string `yaml:"dir" json:"dir"`
	FileName          string `yaml:"file_name" json:"file_name"`
	QuarantineCorrupt *bool  `yaml:"quarantine_corrupt" json:"quarantine_corrupt,omitempty"`
}

type Backup struct {
	Dir string `yaml:"dir" json:"dir"`
}

func (s *Save) ApplyDefaults() {
	if strings.TrimSpace(s.FileName) == "" {
		s.FileName = "player.nest"
	}
	if s.QuarantineCorrupt == nil {
		on := true
		s.QuarantineCorrupt = &on
	}
}

func (s Save) Quarantine() bool {
	return s.QuarantineCorrupt == nil || *s.QuarantineCorrupt
}

func (b *Backup) ApplyDefaults() {
	if strings.TrimSpace(b.Dir) == "" {
		b.Dir = "backups"
	}
}

func (c *Config) ApplyDefaults() {
	c.Save.ApplyDefaults()
	c.Backup.ApplyDefaults()
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{Version: "1"}
	c.ApplyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}
