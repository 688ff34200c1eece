package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SystemConfig contains all persisted configuration
type SystemConfig struct {
	ConfigVersion string         `json:"config_version"`
	LastUpdated   time.Time      `json:"last_updated"`
	HistoryPath   string         `json:"history_path,omitempty"`
	DatabasePath  string         `json:"database_path"`
	Analysis      AnalysisConfig `json:"analysis"`
}

// ConfigManager provides centralized configuration management
type ConfigManager struct {
	configDir     string
	configPath    string
	config        SystemConfig
	mutex         sync.RWMutex
	isInitialized bool
	lastSaved     time.Time
}

// NewConfigManager creates a new configuration manager instance
func NewConfigManager() (*ConfigManager, error) {
	// Set up config directory in user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
	}

	// Use ~/.config/hindsight directory for config files
	configDir := filepath.Join(homeDir, ".config", "hindsight")
	err = os.MkdirAll(configDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create config directory: %v", err)
	}

	return NewConfigManagerWithDir(configDir), nil
}

// NewConfigManagerWithDir creates a configuration manager rooted at the
// given directory
func NewConfigManagerWithDir(configDir string) *ConfigManager {
	return &ConfigManager{
		configDir:  configDir,
		configPath: filepath.Join(configDir, "config.json"),
		config:     defaultSystemConfig(configDir),
	}
}

// defaultSystemConfig returns the default configuration
func defaultSystemConfig(configDir string) SystemConfig {
	return SystemConfig{
		ConfigVersion: "1.0",
		DatabasePath:  filepath.Join(configDir, "history.db"),
		Analysis:      DefaultAnalysisConfig(),
	}
}

// Initialize loads the configuration, saving defaults on first run
func (cm *ConfigManager) Initialize() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	// Try to load existing configuration
	if err := cm.loadConfig(); err != nil {
		// If loading fails, save the default configuration
		if err := cm.saveConfig(); err != nil {
			return fmt.Errorf("failed to save default configuration: %v", err)
		}
	}

	cm.isInitialized = true
	return nil
}

// loadConfig loads the configuration from disk
func (cm *ConfigManager) loadConfig() error {
	// Check if config file exists
	_, err := os.Stat(cm.configPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("configuration file does not exist")
	}

	// Read the config file
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	// Parse the JSON data
	var config SystemConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return err
	}

	if config.DatabasePath == "" {
		config.DatabasePath = filepath.Join(cm.configDir, "history.db")
	}
	if config.Analysis.TopCommandCount == 0 {
		config.Analysis = DefaultAnalysisConfig()
	}

	cm.config = config
	cm.lastSaved = config.LastUpdated
	return nil
}

// saveConfig saves the configuration to disk
func (cm *ConfigManager) saveConfig() error {
	cm.config.ConfigVersion = "1.0"
	cm.config.LastUpdated = time.Now()

	// Marshal to JSON with indentation for readability
	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err = os.MkdirAll(cm.configDir, 0755); err != nil {
		return err
	}

	// Write to file
	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return err
	}

	cm.lastSaved = cm.config.LastUpdated
	return nil
}

// GetConfig returns a copy of the current configuration
func (cm *ConfigManager) GetConfig() SystemConfig {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return cm.config
}

// DatabasePath returns the path of the SQLite command log
func (cm *ConfigManager) DatabasePath() string {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return cm.config.DatabasePath
}

// HistoryPath returns the configured history file path, falling back to
// detection of the common shell history files
func (cm *ConfigManager) HistoryPath() string {
	cm.mutex.RLock()
	configured := cm.config.HistoryPath
	cm.mutex.RUnlock()

	if configured != "" {
		return configured
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
	}
	return DetectHistoryFile(homeDir)
}

// RulesPath returns the path of the optional analysis rules file
func (cm *ConfigManager) RulesPath() string {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return filepath.Join(cm.configDir, "rules.yaml")
}

// UpdateAnalysisConfig updates the analysis thresholds
func (cm *ConfigManager) UpdateAnalysisConfig(config AnalysisConfig) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.config.Analysis = config
	return cm.saveConfig()
}

// UpdateHistoryPath sets a fixed history file path
func (cm *ConfigManager) UpdateHistoryPath(path string) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.config.HistoryPath = path
	return cm.saveConfig()
}
