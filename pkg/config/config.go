/*
Package config manages TOML config for the corpus miner.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Mining MiningConfig `toml:"mining"`
	Loader LoaderConfig `toml:"loader"`
	CLI    CliConfig    `toml:"cli"`
}

// MiningConfig holds defaults for the mining parameters.
type MiningConfig struct {
	MinDocs int `toml:"min_docs"`
	Ngrams  int `toml:"ngrams"`
}

// LoaderConfig holds defaults for corpus-loading parameters.
type LoaderConfig struct {
	Sampling   float64 `toml:"sampling"`
	Threads    int     `toml:"threads"`
	MemLimitMB int     `toml:"mem_limit_mb"`
	CacheSize  int     `toml:"cache_size"`
	CSVDelim   string  `toml:"csv_delim"`
}

// CliConfig holds CLI-facing defaults.
type CliConfig struct {
	InMemory bool `toml:"in_memory"`
	Preload  bool `toml:"preload"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := executableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "corpusminer")
	if status := checkDirStatus(primaryPath); status.writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "corpusminer")
	if status := checkDirStatus(macOSPath); status.writable {
		return macOSPath, nil
	}
	execDir, err := executableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. customConfigPath, when non-empty
// 2. Default path: [UserConfigDir]/corpusminer/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with the built-in CLI flag defaults.
func DefaultConfig() *Config {
	return &Config{
		Mining: MiningConfig{
			MinDocs: 10,
			Ngrams:  4,
		},
		Loader: LoaderConfig{
			Sampling:   1.0,
			Threads:    0,
			MemLimitMB: 0,
			CacheSize:  1000,
			CSVDelim:   ",",
		},
		CLI: CliConfig{
			InMemory: false,
			Preload:  false,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := ensureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !fileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := loadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := parseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if miningSection, ok := tomlSection(tempConfig, "mining"); ok {
		extractMiningConfig(miningSection, &config.Mining)
	}
	if loaderSection, ok := tomlSection(tempConfig, "loader"); ok {
		extractLoaderConfig(loaderSection, &config.Loader)
	}
	if cliSection, ok := tomlSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

// extractMiningConfig extracts mining configuration from a map
func extractMiningConfig(data map[string]any, mining *MiningConfig) {
	if val, ok := tomlInt(data, "min_docs"); ok {
		mining.MinDocs = val
	}
	if val, ok := tomlInt(data, "ngrams"); ok {
		mining.Ngrams = val
	}
}

// extractLoaderConfig extracts loader configuration from a map
func extractLoaderConfig(data map[string]any, loader *LoaderConfig) {
	if val, ok := tomlInt(data, "threads"); ok {
		loader.Threads = val
	}
	if val, ok := tomlInt(data, "mem_limit_mb"); ok {
		loader.MemLimitMB = val
	}
	if val, ok := tomlInt(data, "cache_size"); ok {
		loader.CacheSize = val
	}
	if val, ok := data["sampling"].(float64); ok {
		loader.Sampling = val
	}
	if val, ok := data["csv_delim"].(string); ok {
		loader.CSVDelim = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := tomlBool(data, "in_memory"); ok {
		cli.InMemory = val
	}
	if val, ok := tomlBool(data, "preload"); ok {
		cli.Preload = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := ensureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return saveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return absoluteConfigPath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return saveTOMLFile(config, configPath)
}
