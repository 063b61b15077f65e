package featureflags_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	featureflags "github.com/easytrade/featureflags-go"
)

func TestLoadSettingsFromEnvironment(t *testing.T) {
	// Given
	t.Setenv("APP_FLAGS_ENABLE_MODIFY", "true")
	t.Setenv("APP_FLAGS_ENABLE_DB_NOT_RESPONDING", "True")
	t.Setenv("APP_FLAGS_ENABLE_TIMEOUT_ERROR", "")

	// When
	s, err := featureflags.LoadSettings()

	// Then
	require.NoError(t, err)
	assert.True(t, s.ModifyEnabled())

	v, ok := s.Lookup("enableDbNotResponding")
	assert.True(t, ok)
	assert.Equal(t, "True", v)

	_, ok = s.Lookup("enableTimeoutError")
	assert.False(t, ok, "empty values count as unset")

	c, _ := featureflags.BuildCatalog(s, s.ModifyEnabled())
	db, _ := c.Lookup(featureflags.FlagDBNotResponding)
	assert.True(t, db.Enabled)
	assert.True(t, db.Modifiable)
}

func TestLoadSettingsFromEnvFile(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_FLAGS_ENABLE_LARGE_PAYLOAD=1\nAPP_FLAGS_ENABLE_HIGH_CPU_USAGE=false\n"), 0o600))
	// godotenv sets variables in the process; let t.Setenv restore them afterwards.
	t.Setenv("APP_FLAGS_ENABLE_LARGE_PAYLOAD", "")
	t.Setenv("APP_FLAGS_ENABLE_HIGH_CPU_USAGE", "")
	require.NoError(t, os.Unsetenv("APP_FLAGS_ENABLE_LARGE_PAYLOAD"))
	require.NoError(t, os.Unsetenv("APP_FLAGS_ENABLE_HIGH_CPU_USAGE"))

	// When
	s, err := featureflags.LoadSettings(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "1", s.LargePayload)
	assert.True(t, featureflags.LookupBoolForTest(s, "enableLargePayload"))
	assert.False(t, featureflags.LookupBoolForTest(s, "enableHighCpuUsage"))
	assert.False(t, s.ModifyEnabled())
}

func TestLoadSettingsMissingEnvFile(t *testing.T) {
	_, err := featureflags.LoadSettings(filepath.Join(t.TempDir(), "missing.env"))

	assert.ErrorIs(t, err, featureflags.ErrLoadingSettings)
}

func TestLookupBool(t *testing.T) {
	tests := []struct {
		name     string
		src      featureflags.ConfigSource
		expected bool
	}{
		{"nil source", nil, false},
		{"missing", featureflags.MapSource{}, false},
		{"true", featureflags.MapSource{"x": "true"}, true},
		{"upper case", featureflags.MapSource{"x": "TRUE"}, true},
		{"padded", featureflags.MapSource{"x": "  true\n"}, true},
		{"one", featureflags.MapSource{"x": "1"}, true},
		{"false", featureflags.MapSource{"x": "false"}, false},
		{"garbage", featureflags.MapSource{"x": "enabled"}, false},
		{"empty", featureflags.MapSource{"x": ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, featureflags.LookupBoolForTest(tt.src, "x"))
		})
	}
}
