package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesConfig holds user-defined analysis rules loaded from a YAML file.
// Known commands are never reported as typos; exclude patterns drop
// matching commands at ingestion time.
type RulesConfig struct {
	KnownCommands   []string `yaml:"known_commands"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

// LoadRules loads the rules file from the given path. A missing file is
// not an error; it yields empty rules.
func LoadRules(path string) (*RulesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RulesConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read rules file: %v", err)
	}

	var rules RulesConfig
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %v", err)
	}

	return &rules, nil
}

// SaveRules writes the rules file to the given path
func SaveRules(path string, rules *RulesConfig) error {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rules file: %v", err)
	}

	return nil
}
