/*
Package config manages the TOML config for phonetype.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/bastiangx/phonetype/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Suggest SuggestConfig `toml:"suggest"`
	Rules   RulesConfig   `toml:"rules"`
	CLI     CliConfig     `toml:"cli"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
	MaxInput int `toml:"max_input"`
}

// SuggestConfig holds autocomplete options.
type SuggestConfig struct {
	DefaultLimit int `toml:"default_limit"`
	CacheSize    int `toml:"cache_size"`
}

// RulesConfig selects the conversion table.
type RulesConfig struct {
	// Path to a .json, .yaml or .toml rules file. Empty uses the bundled table.
	Path                 string `toml:"path"`
	LegacyExactBound     bool   `toml:"legacy_exact_bound"`
	InclusivePrefixBound bool   `toml:"inclusive_prefix_bound"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	ShowSuggestions bool `toml:"show_suggestions"`
}

// EnvConfigDir overrides the config directory when set.
const EnvConfigDir = "PHONETYPE_CONFIG_DIR"

// GetConfigDir returns the config directory with fallback priority:
// 1. $PHONETYPE_CONFIG_DIR
// 2. [xdg.ConfigHome]/phonetype
// 3. Current executable dir
func GetConfigDir() (string, error) {
	primaryPath := os.Getenv(EnvConfigDir)
	if primaryPath == "" && xdg.ConfigHome != "" {
		primaryPath = filepath.Join(xdg.ConfigHome, "phonetype")
	}

	if primaryPath != "" {
		if result := utils.CheckDirStatus(primaryPath); result.Writable {
			return primaryPath, nil
		}
	}

	execDir, err := utils.GetExecutableDir()
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
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/phonetype/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
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

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit: 64,
			MaxInput: 4096,
		},
		Suggest: SuggestConfig{
			DefaultLimit: 8,
			CacheSize:    2048,
		},
		Rules: RulesConfig{
			Path:                 "",
			LegacyExactBound:     false,
			InclusivePrefixBound: false,
		},
		CLI: CliConfig{
			DefaultLimit:    5,
			ShowSuggestions: true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Values that fail to parse keep their
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	config.normalize()
	return config, nil
}

// tryPartialParse keeps whatever sections and keys of a broken file still parse
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "suggest"); ok {
		extractSuggestConfig(section, &config.Suggest)
	}
	if section, ok := utils.ExtractSection(tempConfig, "rules"); ok {
		extractRulesConfig(section, &config.Rules)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_input"); ok {
		server.MaxInput = val
	}
}

func extractSuggestConfig(data map[string]any, suggest *SuggestConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		suggest.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		suggest.CacheSize = val
	}
}

func extractRulesConfig(data map[string]any, rules *RulesConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		rules.Path = val
	}
	if val, ok := utils.ExtractBool(data, "legacy_exact_bound"); ok {
		rules.LegacyExactBound = val
	}
	if val, ok := utils.ExtractBool(data, "inclusive_prefix_bound"); ok {
		rules.InclusivePrefixBound = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "show_suggestions"); ok {
		cli.ShowSuggestions = val
	}
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Server.MaxLimit < 1 {
		log.Warnf("server.max_limit %d is invalid, using %d", c.Server.MaxLimit, def.Server.MaxLimit)
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.MaxInput < 1 {
		log.Warnf("server.max_input %d is invalid, using %d", c.Server.MaxInput, def.Server.MaxInput)
		c.Server.MaxInput = def.Server.MaxInput
	}
	if c.Suggest.DefaultLimit < 1 {
		c.Suggest.DefaultLimit = def.Suggest.DefaultLimit
	}
	c.Suggest.DefaultLimit = min(c.Suggest.DefaultLimit, c.Server.MaxLimit)
	if c.Suggest.CacheSize < 0 {
		c.Suggest.CacheSize = 0
	}
	if c.CLI.DefaultLimit < 0 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
}

// ResolveRulesPath returns the rules file to load, or "" for the bundled
// table. Relative paths are searched next to the config file first.
func (c *Config) ResolveRulesPath(configPath string) (string, error) {
	if c.Rules.Path == "" {
		return "", nil
	}
	configDir := ""
	if configPath != "" {
		configDir = filepath.Dir(configPath)
	}
	pr := utils.NewPathResolver(configDir)
	log.Debug("Resolving rules path", "path", c.Rules.Path, "env", pr.RuntimeInfo())
	return pr.Resolve(c.Rules.Path)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
