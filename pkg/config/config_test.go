package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "http://127.0.0.1:8080", cfg.URL())
	assert.False(t, cfg.Sheets.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "helpqueue.json")
	data := []byte(`{"port":9090,"timezone":"America/Argentina/Buenos_Aires","sheets":{"credentialsFile":"sa.json","spreadsheetID":"abc"}}`)
	require.NoError(t, os.WriteFile(file, data, 0o644))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Sheets.Enabled())
	assert.Equal(t, "Log", cfg.Sheets.LogSheet, "defaults survive partial files")
	assert.Equal(t, "America/Argentina/Buenos_Aires", cfg.Location().String())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	file := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"port":`), 0o644))
	_, err = Load(file)
	assert.Error(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("HELPQUEUE_PORT", "7001")
	t.Setenv("HELPQUEUE_ROSTER_FILE", "roster.json")
	t.Setenv("HELPQUEUE_SHEETS_SPREADSHEET_ID", "sheet")

	cfg := Default()
	require.NoError(t, FromEnv(&cfg))
	assert.Equal(t, 7001, cfg.Port, "HELPQUEUE_PORT wins over PORT")
	assert.Equal(t, "roster.json", cfg.RosterFile)
	assert.Equal(t, "sheet", cfg.Sheets.SpreadsheetID)
}

func TestFromEnvRejectsMalformedIntegers(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("HELPQUEUE_PORT", "abc")
	t.Setenv("HELPQUEUE_SHEETS_WRITES_PER_MINUTE", "sixty")
	t.Setenv("HELPQUEUE_ROSTER_FILE", "roster.json")

	cfg := Default()
	err := FromEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `HELPQUEUE_PORT: invalid integer "abc"`)
	assert.Contains(t, err.Error(), "HELPQUEUE_SHEETS_WRITES_PER_MINUTE")
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 60, cfg.Sheets.WritesPerMinute)
	assert.Equal(t, "roster.json", cfg.RosterFile, "valid variables still apply")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Port = 0
	cfg.Timezone = "Mars/Olympus"
	cfg.Sheets.CredentialsFile = "sa.json"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "invalid timezone")
	assert.Contains(t, err.Error(), "spreadsheet id")
}
