package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays ANTHILL_* environment variables onto cfg.
// Unset or malformed values leave the field unchanged.
func FromEnv(cfg *Config) *Config {
	if cfg == nil {
		cfg = Default()
	}

	if val := getEnv("ANTHILL_SAVE_DIR"); val != "" {
		cfg.Save.Dir = val
	}
	if val := getEnv("ANTHILL_SAVE_FILE"); val != "" {
		cfg.Save.FileName = val
	}
	if val, ok := getEnvBool("ANTHILL_QUARANTINE"); ok {
		cfg.Save.QuarantineCorrupt = &val
	}
	if val := getEnv("ANTHILL_BACKUP_DIR"); val != "" {
		cfg.Backup.Dir = val
	}

	return cfg
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvBool(key string) (bool, bool) {
	val := getEnv(key)
	if val == "" {
		return false, false
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, false
	}
	return b, true
}
