package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/unclass/domain"
	"github.com/ludo-technologies/unclass/internal/config"
	"github.com/ludo-technologies/unclass/internal/constants"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.RewriteRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	return c.convertToRewriteRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration, first checking for unclass.config.json
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.RewriteRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err == nil {
		return c.convertToRewriteRequest(cfg)
	}

	// Fall back to hardcoded default configuration
	cfg = config.DefaultConfig()
	return c.convertToRewriteRequest(cfg)
}

// FindDefaultConfigFile searches for a default configuration file
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	// List of possible config file names in order of preference
	configFiles := []string{
		constants.ConfigFileName,
		".unclassrc.json",
		".unclassrc",
		"unclass.yaml",
		"unclass.yml",
		".unclass.toml",
		".unclass.yml",
		"unclass.json",
		".unclass.json",
	}

	// Check current directory
	for _, file := range configFiles {
		if _, err := os.Stat(file); err == nil {
			return file
		}
	}

	// Check parent directories up to root
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, file := range configFiles {
			configPath := filepath.Join(currentDir, file)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move to parent directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// MergeConfig merges CLI flags with configuration file
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.RewriteRequest, override *domain.RewriteRequest) *domain.RewriteRequest {
	// Start with base configuration
	merged := *base

	// Always override paths as they come from command arguments
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}

	// Output configuration
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}

	// Write modes are always taken from flags
	if override.Write {
		merged.Write = override.Write
	}

	if override.OutDir != "" {
		merged.OutDir = override.OutDir
	}

	if override.DryRun {
		merged.DryRun = override.DryRun
	}

	// File selection
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}

	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}

	// Config path is always from override if provided
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	if override.NoProgress {
		merged.NoProgress = override.NoProgress
	}

	return &merged
}

// convertToRewriteRequest converts a Config to RewriteRequest
func (c *ConfigurationLoaderImpl) convertToRewriteRequest(cfg *config.Config) *domain.RewriteRequest {
	return &domain.RewriteRequest{
		// Paths are set by the caller, not from config
		Paths: []string{},

		// Output settings
		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		OutDir:       cfg.Output.Directory,

		// Rewrite settings
		DealiasProps:              cfg.Rewrite.DealiasProps,
		CollapseConstructorAccess: cfg.Rewrite.CollapseConstructorAccess,

		// File selection
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}
}

// ValidateConfig validates the configuration
func (c *ConfigurationLoaderImpl) ValidateConfig(req *domain.RewriteRequest) error {
	// Write modes are mutually exclusive
	if req.Write && req.OutDir != "" {
		return fmt.Errorf("--write and --out-dir cannot be combined")
	}

	if req.DryRun && req.Write {
		return fmt.Errorf("--dry-run and --write cannot be combined")
	}

	// Validate output format
	validFormats := map[domain.OutputFormat]bool{
		domain.OutputFormatText: true,
		domain.OutputFormatJSON: true,
		domain.OutputFormatYAML: true,
	}

	if !validFormats[req.OutputFormat] {
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml)",
			req.OutputFormat)
	}

	return nil
}
