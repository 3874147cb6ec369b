package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfiguration(t *testing.T) {
	t.Run("should provide default settings", func(t *testing.T) {
		cfg := NewConfiguration()

		assert.Equal(t, "./radios", cfg.GetAudioDir())
		assert.Equal(t, ".m4a", cfg.GetAudioExtension())
		assert.Equal(t, "./radios/transcript", cfg.GetTranscriptDir())
		assert.Equal(t, "es", cfg.GetLanguage())
		assert.Equal(t, "transcript_combined.txt", cfg.GetCombinedFilename())
	})

	t.Run("should have no api key by default", func(t *testing.T) {
		cfg := NewConfiguration()

		assert.Equal(t, "", cfg.GetOpenAIAPIKey())
	})
}

func TestNewConfigurationFromFile(t *testing.T) {
	t.Run("should load settings from a yaml file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte("audio:\n  dir: /tmp/audio\ntranscript:\n  language: en\n")
		require.NoError(t, os.WriteFile(path, content, 0o644))

		cfg, err := NewConfigurationFromFile(path)

		require.NoError(t, err)
		assert.Equal(t, "/tmp/audio", cfg.GetAudioDir())
		assert.Equal(t, "en", cfg.GetLanguage())
		// Unset keys keep their defaults.
		assert.Equal(t, ".m4a", cfg.GetAudioExtension())
	})

	t.Run("should return error for missing file", func(t *testing.T) {
		_, err := NewConfigurationFromFile("/nonexistent/config.yaml")

		assert.Error(t, err)
	})
}

func TestNewConfigurationFromEnv(t *testing.T) {
	t.Run("should read prefixed environment variables", func(t *testing.T) {
		t.Setenv("SPANISH_HELPER_AUDIO_DIR", "/data/audio")
		t.Setenv("SPANISH_HELPER_LANGUAGE", "pt")

		cfg := NewConfigurationFromEnv()

		assert.Equal(t, "/data/audio", cfg.GetAudioDir())
		assert.Equal(t, "pt", cfg.GetLanguage())
	})

	t.Run("should read the api key from its conventional variable", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg := NewConfigurationFromEnv()

		assert.Equal(t, "sk-test", cfg.GetOpenAIAPIKey())
	})

	t.Run("should fall back to defaults when unset", func(t *testing.T) {
		cfg := NewConfigurationFromEnv()

		assert.Equal(t, ".m4a", cfg.GetAudioExtension())
	})
}
