package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) (saveDir, cfgPath string) {
	t.Helper()
	saveDir = filepath.Join(t.TempDir(), "saves")
	t.Setenv("ANTHILL_SAVE_DIR", saveDir)
	t.Setenv("ANTHILL_BACKUP_DIR", filepath.Join(t.TempDir(), "backups"))
	return saveDir, filepath.Join(t.TempDir(), "missing.yml")
}

func TestRun_ShowCreatesSave(t *testing.T) {
	saveDir, cfgPath := setupEnv(t)

	var out bytes.Buffer
	require.NoError(t, run("show", []string{"--config", cfgPath}, &out))

	var got struct {
		Outcome string `json:"outcome"`
		Data    struct {
			Level int `json:"level"`
			HP    int `json:"hp"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "created", got.Outcome)
	assert.Equal(t, 1, got.Data.Level)
	assert.Equal(t, 100, got.Data.HP)
	assert.FileExists(t, filepath.Join(saveDir, "player.nest"))

	out.Reset()
	require.NoError(t, run("show", []string{"--config", cfgPath, "--inspect"}, &out))
	assert.Contains(t, out.String(), `"schemaVersion": 2`)
}

func TestRun_PathAndReset(t *testing.T) {
	saveDir, cfgPath := setupEnv(t)

	var out bytes.Buffer
	require.NoError(t, run("path", []string{"--config", cfgPath}, &out))
	assert.Equal(t, filepath.Join(saveDir, "player.nest"), strings.TrimSpace(out.String()))

	require.NoError(t, run("show", []string{"--config", cfgPath}, &bytes.Buffer{}))
	require.NoError(t, run("reset", []string{"--config", cfgPath}, &bytes.Buffer{}))
	assert.NoFileExists(t, filepath.Join(saveDir, "player.nest"))
	require.NoError(t, run("reset", []string{"--config", cfgPath}, &bytes.Buffer{}))
}

func TestRun_BackupRestoreDrill(t *testing.T) {
	saveDir, cfgPath := setupEnv(t)
	require.NoError(t, run("show", []string{"--config", cfgPath}, &bytes.Buffer{}))
	original, err := os.ReadFile(filepath.Join(saveDir, "player.nest"))
	require.NoError(t, err)

	archive := filepath.Join(t.TempDir(), "b.tar.gz")
	var out bytes.Buffer
	require.NoError(t, run("backup", []string{"--config", cfgPath, "--out", archive}, &out))
	assert.Equal(t, archive, strings.TrimSpace(out.String()))

	require.NoError(t, os.WriteFile(filepath.Join(saveDir, "player.nest"), []byte("broken"), 0o644))
	require.NoError(t, run("restore", []string{"--config", cfgPath, "--archive", archive}, &bytes.Buffer{}))
	restored, err := os.ReadFile(filepath.Join(saveDir, "player.nest"))
	require.NoError(t, err)
	assert.Equal(t, original, restored)

	out.Reset()
	require.NoError(t, run("drill", []string{"--config", cfgPath, "--work-dir", t.TempDir()}, &out))
	assert.Contains(t, out.String(), "digest:")
}

func TestRun_Errors(t *testing.T) {
	_, cfgPath := setupEnv(t)

	assert.Equal(t, errUsage, run("bogus", nil, &bytes.Buffer{}))
	assert.Error(t, run("restore", []string{"--config", cfgPath}, &bytes.Buffer{}))
	assert.Error(t, run("show", []string{"--config", cfgPath, "--inspect"}, &bytes.Buffer{}))
}
