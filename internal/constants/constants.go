package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "unclass"

	// ConfigFileName is the default config file name
	ConfigFileName = "unclass.config.json"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "UNCLASS"
)
