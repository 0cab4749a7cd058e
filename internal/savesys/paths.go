package savesys

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	DefaultAppName  = "anthill"
	DefaultFileName = "player.nest"
)

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9._-]`)

func sanitizeName(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeNameChars.ReplaceAllString(s, "")
	if s == "" || s == "." || s == ".." {
		s = DefaultAppName
	}
	return s
}

// DataDir resolves the per-user data directory for appName:
//
//	Windows: %APPDATA%\<app>\
//	macOS:   ~/Library/Application Support/<app>/
//	Linux:   ~/.config/<app>/
//
// The directory is not created here; Save does that.
func DataDir(appName string) (string, error) {
	app := sanitizeName(appName)
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, app), nil
	}
	if dir, err := os.UserHomeDir(); err == nil && dir != "" {
		return filepath.Join(dir, "."+app), nil
	}
	return "", errors.New("no per-user data directory available")
}
