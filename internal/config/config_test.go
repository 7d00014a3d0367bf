package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	// get the prev state that we'll restore
	prev, err := Get()
	if err != nil {
		// if not exists, it must create the config with defaults
		if errors.Is(err, ErrNoConfig) {
			prev, err = Load()
		}
		assert.NotErrorIs(t, err, ErrNoConfig, "failed to get/load config, got: %v", err)
	}
	// defer the call to restore the previous state
	defer func() {
		err := Save(prev)
		assert.NoErrorf(t, err, "failed to restore previous config: %v", err)
	}()
	// now get the file and delete it
	f, err := getUserConfigFile()
	assert.NoErrorf(t, err, "failed to get user config file: %v", err)
	assert.NoError(t, f.Close(), "failed to close user config file: %v", err)
	assert.NoErrorf(t, os.Remove(f.Name()), "failed to remove user config file: %v", err)

	// now save a new config
	cfg := Config{
		Client: ClientConfig{
			ServerAddr:     "http://127.0.0.1:9190",
			Instance:       "TestInstance",
			TimeoutSeconds: 30,
		},
		Serve: ServeConfig{
			Instance:          "TestInstance",
			Port:              9191,
			StoppableInstance: true,
		},
		Clean: CleanConfig{
			NormalizePhones:      true,
			StandardizeSpecialty: true,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
	}

	assert.NoErrorf(t, Save(cfg), "failed to save config: %v", err)

	// it must be loaded as Save() will cache the saved config
	saved, err := Get()
	assert.NoErrorf(t, err, "failed to get config: %v", err)
	assert.Exactly(t, cfg, saved, "Saved config does not match expected config")
}

func TestGeminiKey(t *testing.T) {
	c := Config{Gemini: GeminiConfig{APIKey: "from-file"}}
	t.Setenv("GEMINI_API_KEY", "")
	assert.Equal(t, "from-file", c.GeminiKey())
	t.Setenv("GEMINI_API_KEY", "from-env")
	assert.Equal(t, "from-env", c.GeminiKey())
}
