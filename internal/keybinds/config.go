package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// ComboList is one combo or a list of combos. It decodes from either a
// JSON string or an array of strings.
type ComboList []string

func (c *ComboList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = ComboList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("combo must be a string or a list of strings: %w", err)
	}
	*c = list
	return nil
}

// Config represents the user's keybinding configuration
type Config struct {
	Version  string               `json:"version"`
	Bindings map[string]ComboList `json:"bindings"`
}

// ParseConfig decodes keybinds.json content. Comments and trailing
// commas are allowed.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}
	return &config, nil
}

// LoadConfig loads keybinding configuration from a JSONC file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ApplyConfig applies user configuration to a registry.
// User bindings override default bindings action by action; combos are
// normalized when they parse and kept verbatim otherwise so the
// validator can report them.
func ApplyConfig(registry *Registry, config *Config) {
	for name, combos := range config.Bindings {
		list := make([]string, 0, len(combos))
		for _, c := range combos {
			if normalized, err := NormalizeCombo(c); err == nil {
				c = normalized
			}
			list = append(list, c)
		}
		registry.Set(Action(name), list...)
	}
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()
	if configPath == "" {
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
	}

	ApplyConfig(registry, config)
	return registry, nil
}

// ExportDefaults exports default keybindings as a config file
func ExportDefaults() *Config {
	config := &Config{
		Version:  "1.0",
		Bindings: make(map[string]ComboList, len(allActions)),
	}
	for _, action := range allActions {
		config.Bindings[string(action)] = append(ComboList(nil), defaultCombos[action]...)
	}
	return config
}
