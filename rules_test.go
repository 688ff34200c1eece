package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRules(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("MissingFileYieldsEmptyRules", func(t *testing.T) {
		rules, err := LoadRules(filepath.Join(tempDir, "missing.yaml"))
		if err != nil {
			t.Fatalf("LoadRules failed on missing file: %v", err)
		}
		if len(rules.KnownCommands) != 0 || len(rules.ExcludePatterns) != 0 {
			t.Errorf("Expected empty rules, got %+v", rules)
		}
	})

	t.Run("LoadsRulesFile", func(t *testing.T) {
		rulesPath := filepath.Join(tempDir, "rules.yaml")
		content := "known_commands:\n  - kubectl\n  - terraform\nexclude_patterns:\n  - password\n"
		if err := os.WriteFile(rulesPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write rules file: %v", err)
		}

		rules, err := LoadRules(rulesPath)
		if err != nil {
			t.Fatalf("LoadRules failed: %v", err)
		}
		if len(rules.KnownCommands) != 2 || rules.KnownCommands[0] != "kubectl" {
			t.Errorf("Unexpected known commands: %v", rules.KnownCommands)
		}
		if len(rules.ExcludePatterns) != 1 || rules.ExcludePatterns[0] != "password" {
			t.Errorf("Unexpected exclude patterns: %v", rules.ExcludePatterns)
		}
	})

	t.Run("MalformedFileFails", func(t *testing.T) {
		rulesPath := filepath.Join(tempDir, "bad.yaml")
		if err := os.WriteFile(rulesPath, []byte("known_commands: {not: [valid"), 0644); err != nil {
			t.Fatalf("Failed to write rules file: %v", err)
		}
		if _, err := LoadRules(rulesPath); err == nil {
			t.Error("Expected error for malformed rules file")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		rulesPath := filepath.Join(tempDir, "roundtrip.yaml")
		original := &RulesConfig{
			KnownCommands:   []string{"gti"},
			ExcludePatterns: []string{"secret"},
		}
		if err := SaveRules(rulesPath, original); err != nil {
			t.Fatalf("SaveRules failed: %v", err)
		}

		loaded, err := LoadRules(rulesPath)
		if err != nil {
			t.Fatalf("LoadRules failed: %v", err)
		}
		if len(loaded.KnownCommands) != 1 || loaded.KnownCommands[0] != "gti" {
			t.Errorf("Unexpected known commands after round trip: %v", loaded.KnownCommands)
		}
	})
}
