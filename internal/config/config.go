// Package config loads the optional YAML configuration described in
// SPEC_FULL.md §4.H: REPL banner text, prompt strings, and a list of
// startup files loaded before the REPL (or a requested script) runs.
// Absence of the file is not an error — the zero Config plus Defaults
// gives sensible built-in behavior.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of ~/.goscheme.yaml.
type Config struct {
	Banner             string   `yaml:"banner"`
	PrimaryPrompt      string   `yaml:"primary_prompt"`
	ContinuationPrompt string   `yaml:"continuation_prompt"`
	StartupFiles       []string `yaml:"startup_files"`
}

// Defaults returns the built-in configuration used when no file is
// present or a field is left unset.
func Defaults() Config {
	return Config{
		Banner:             "",
		PrimaryPrompt:      "> ",
		ContinuationPrompt: "| ",
	}
}

// Load reads and parses the YAML file at path, filling any field the
// file leaves unset from Defaults. A missing file is not an error: it
// returns Defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg, err
	}

	if parsed.Banner != "" {
		cfg.Banner = parsed.Banner
	}
	if parsed.PrimaryPrompt != "" {
		cfg.PrimaryPrompt = parsed.PrimaryPrompt
	}
	if parsed.ContinuationPrompt != "" {
		cfg.ContinuationPrompt = parsed.ContinuationPrompt
	}
	if len(parsed.StartupFiles) > 0 {
		cfg.StartupFiles = parsed.StartupFiles
	}

	return cfg, nil
}

// DefaultPath returns ~/.goscheme.yaml, or "" if the home directory
// cannot be determined (the caller then skips loading rather than
// treating this as an error).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.goscheme.yaml"
}
