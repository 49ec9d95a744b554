package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, load(viper.New()))
	assert.Equal(t, "http://localhost:8080", APIBaseURL)
	assert.Equal(t, 15*time.Second, HTTPTimeout)
	assert.Equal(t, 24*time.Hour, TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, CORSOrigins)
	assert.Equal(t, "token", filepath.Base(TokenFile))
}

func TestLoad_EnvFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("API_BASE_URL=https://campus.example.edu/api/\nHTTP_TIMEOUT=3s\n"), 0o600))
	t.Setenv("LOG_LEVEL", "debug")

	require.NoError(t, load(viper.New()))
	assert.Equal(t, "https://campus.example.edu/api", APIBaseURL)
	assert.Equal(t, 3*time.Second, HTTPTimeout)
	assert.Equal(t, "debug", LogLevel)
}

func TestLoad_RejectsNonPositiveTimeout(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_TIMEOUT", "0s")

	assert.Error(t, load(viper.New()))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, parseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, parseLevel("warn"))
	assert.Equal(t, logrus.InfoLevel, parseLevel("verbose"))
}
