package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Source     SourceConfig `yaml:"source"`
	UI         UIConfig     `yaml:"ui"`
	QuitWord   string       `yaml:"quit_word"`
	Transcript bool         `yaml:"transcript"`
}

type SourceConfig struct {
	URL string `yaml:"url"`
}

type UIConfig struct {
	Markdown bool `yaml:"markdown"`
}

func Default() Config {
	return Config{
		UI:         UIConfig{Markdown: true},
		QuitWord:   "quit",
		Transcript: true,
	}
}

// Load reads the user config, falling back to defaults when the file is
// missing. Unset fields keep their default values.
func Load() (Config, error) {
	cfg := Default()

	configFile, err := GetConfigFile()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", configFile, err)
	}
	if cfg.QuitWord == "" {
		cfg.QuitWord = "quit"
	}
	return cfg, nil
}
