package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "reflect.db", c.DSN)
	assert.Equal(t, StorageSQLite, c.Storage)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, 100, c.AuditLogLimit)
	assert.Equal(t, 15*time.Minute, c.IdleLock)
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), *cfg))
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"dsn":"j.db","log_format":"json","audit_log_limit":20,"idle_lock":"5m"}`)

	cfg, err := Load([]string{"-c", path})
	require.NoError(t, err)

	want := defaults()
	want.DSN = "j.db"
	want.LogFormat = "json"
	want.AuditLogLimit = 20
	want.IdleLock = 5 * time.Minute
	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "storage: memory\nlog_level: debug\nidle_lock: 30s\n")

	cfg, err := Load([]string{"-config", path})
	require.NoError(t, err)

	want := defaults()
	want.Storage = StorageMemory
	want.LogLevel = "debug"
	want.IdleLock = 30 * time.Second
	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"dsn":"file.db","log_level":"warn","log_format":"json"}`)
	t.Setenv("REFLECT_DSN", "env.db")
	t.Setenv("REFLECT_LOG_LEVEL", "error")
	t.Setenv("REFLECT_IDLE_LOCK", "1m")

	cfg, err := Load([]string{"-c", path, "-d", "flag.db", "-i", "2m"})
	require.NoError(t, err)

	want := defaults()
	want.DSN = "flag.db"
	want.LogLevel = "error"
	want.LogFormat = "json"
	want.IdleLock = 2 * time.Minute
	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
		env  map[string]string
	}{
		{
			name: "missing file",
			args: func(t *testing.T) []string { return []string{"-c", filepath.Join(t.TempDir(), "nope.json")} },
		},
		{
			name: "invalid json",
			args: func(t *testing.T) []string { return []string{"-c", writeFile(t, "bad.json", "{ nope")} },
		},
		{
			name: "bad flag duration",
			args: func(*testing.T) []string { return []string{"-i", "abc"} },
		},
		{
			name: "bad env number",
			args: func(*testing.T) []string { return nil },
			env:  map[string]string{"REFLECT_AUDIT_LOG_LIMIT": "many"},
		},
		{
			name: "unknown storage",
			args: func(*testing.T) []string { return []string{"-s", "s3"} },
		},
		{
			name: "unknown log format",
			args: func(*testing.T) []string { return []string{"-f", "xml"} },
		},
		{
			name: "negative idle lock",
			args: func(*testing.T) []string { return []string{"-i=-1m"} },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(tc.args(t))
			require.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	c := defaults()
	require.NoError(t, c.Validate())

	c.DSN = ""
	require.Error(t, c.Validate())

	c.Storage = StorageMemory
	require.NoError(t, c.Validate(), "memory storage needs no dsn")

	c.AuditLogLimit = 0
	require.Error(t, c.Validate())
}
