package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration provides type-safe access to application settings.
type Configuration struct {
	viper *viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("audio.dir", "./radios")
	v.SetDefault("audio.extension", ".m4a")
	v.SetDefault("transcript.dir", "./radios/transcript")
	v.SetDefault("transcript.language", "es")
	v.SetDefault("transcript.combined_filename", "transcript_combined.txt")
}

// NewConfiguration creates a Configuration instance with default settings.
func NewConfiguration() *Configuration {
	v := viper.New()
	setDefaults(v)
	return &Configuration{viper: v}
}

// NewConfigurationFromFile creates a Configuration instance from a config file.
func NewConfigurationFromFile(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}
	return &Configuration{viper: v}, nil
}

// NewConfigurationFromEnv creates a Configuration instance that reads from
// environment variables with the SPANISH_HELPER prefix.
func NewConfigurationFromEnv() *Configuration {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SPANISH_HELPER")
	v.AutomaticEnv()

	v.BindEnv("audio.dir", "SPANISH_HELPER_AUDIO_DIR")
	v.BindEnv("audio.extension", "SPANISH_HELPER_AUDIO_EXTENSION")
	v.BindEnv("transcript.dir", "SPANISH_HELPER_TRANSCRIPT_DIR")
	v.BindEnv("transcript.language", "SPANISH_HELPER_LANGUAGE")
	v.BindEnv("transcript.combined_filename", "SPANISH_HELPER_COMBINED_FILENAME")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")

	return &Configuration{viper: v}
}

// GetAudioDir returns the directory scanned for audio files.
func (c *Configuration) GetAudioDir() string {
	return c.viper.GetString("audio.dir")
}

// GetAudioExtension returns the audio file extension to process.
func (c *Configuration) GetAudioExtension() string {
	return c.viper.GetString("audio.extension")
}

// GetTranscriptDir returns the directory transcripts are written to.
func (c *Configuration) GetTranscriptDir() string {
	return c.viper.GetString("transcript.dir")
}

// GetLanguage returns the transcription language code.
func (c *Configuration) GetLanguage() string {
	return c.viper.GetString("transcript.language")
}

// GetCombinedFilename returns the output name for combined transcripts.
func (c *Configuration) GetCombinedFilename() string {
	return c.viper.GetString("transcript.combined_filename")
}

// GetOpenAIAPIKey returns the transcription service API key, "" when the
// pipeline should run text-only.
func (c *Configuration) GetOpenAIAPIKey() string {
	return c.viper.GetString("openai.api_key")
}
