package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_LoadsFromFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"endpoint_addr":           ":9000",
		"database_dsn":            "postgres://u:p@h/db",
		"secret_key":              "json-secret",
		"token_validity_duration": "6h",
		"bcrypt_cost":             8,
	})
	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9000", cfg.EndpointAddr)
	assert.Equal(t, "postgres://u:p@h/db", cfg.DatabaseDSN)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 6*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 8, cfg.BcryptCost)
}

func Test_parseJson_NoFlagLeavesConfigUntouched(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, 12*time.Hour, cfg.TokenValidityDuration)
}

func Test_parseJson_InvalidFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	os.Args = []string{"testbin", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Panics(t, func() { parseJson(cfg) })
}
