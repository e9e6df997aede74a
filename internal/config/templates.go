package config

import "strconv"

// ProjectType represents the type of JavaScript/TypeScript project
type ProjectType string

const (
	ProjectTypeGeneric     ProjectType = "generic"
	ProjectTypeReact       ProjectType = "react"
	ProjectTypeVue         ProjectType = "vue"
	ProjectTypeNodeBackend ProjectType = "node"
)

// Aggressiveness represents how much the rewrite is allowed to restructure
type Aggressiveness string

const (
	AggressivenessConservative Aggressiveness = "conservative"
	AggressivenessStandard     Aggressiveness = "standard"
	AggressivenessAggressive   Aggressiveness = "aggressive"
)

// ProjectPreset holds file selection presets for different project types
type ProjectPreset struct {
	IncludePatterns []string
	ExcludePatterns []string
}

// AggressivenessPreset holds rewrite switches for different levels
type AggressivenessPreset struct {
	DealiasProps              bool
	CollapseConstructorAccess bool
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			IncludePatterns: []string{
				"**/*.js",
				"**/*.ts",
				"**/*.jsx",
				"**/*.tsx",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/dist/**",
				"**/build/**",
				"**/*.min.js",
				"**/*.bundle.js",
			},
		},
		ProjectTypeReact: {
			IncludePatterns: []string{
				"**/*.js",
				"**/*.ts",
				"**/*.jsx",
				"**/*.tsx",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/dist/**",
				"**/build/**",
				"**/.next/**",
				"**/coverage/**",
				"**/*.min.js",
				"**/*.bundle.js",
			},
		},
		ProjectTypeVue: {
			IncludePatterns: []string{
				"**/*.js",
				"**/*.ts",
				"**/*.jsx",
				"**/*.tsx",
				"**/*.vue",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/dist/**",
				"**/build/**",
				"**/.nuxt/**",
				"**/coverage/**",
				"**/*.min.js",
				"**/*.bundle.js",
			},
		},
		ProjectTypeNodeBackend: {
			IncludePatterns: []string{
				"**/*.js",
				"**/*.ts",
				"**/*.mjs",
				"**/*.cjs",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/dist/**",
				"**/build/**",
				"**/test/**",
				"**/tests/**",
				"**/__tests__/**",
				"**/*.min.js",
				"**/*.bundle.js",
			},
		},
	}
}

// GetAggressivenessPresets returns presets for different rewrite levels
func GetAggressivenessPresets() map[Aggressiveness]AggressivenessPreset {
	return map[Aggressiveness]AggressivenessPreset{
		AggressivenessConservative: {
			DealiasProps:              false,
			CollapseConstructorAccess: false,
		},
		AggressivenessStandard: {
			DealiasProps:              true,
			CollapseConstructorAccess: false,
		},
		AggressivenessAggressive: {
			DealiasProps:              true,
			CollapseConstructorAccess: true,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as JSONC
func GetFullConfigTemplate(projectType ProjectType, aggressiveness Aggressiveness) string {
	projectPresets := GetProjectPresets()
	rewritePresets := GetAggressivenessPresets()

	preset := projectPresets[projectType]
	rewrite := rewritePresets[aggressiveness]

	includePatterns := formatJSONArray(preset.IncludePatterns)
	excludePatterns := formatJSONArray(preset.ExcludePatterns)

	return `{
  // unclass Configuration
  // Documentation: https://github.com/ludo-technologies/unclass

  // ============================================================================
  // REWRITE BEHAVIOR
  // ============================================================================
  // Controls how compiled-class idioms are rewritten into class declarations
  "rewrite": {
    // Collapse aliases of this.props back to this.props
    // (e.g. "var p = this.props; p.x" becomes "this.props.x")
    "dealias_props": ` + strconv.FormatBool(rewrite.DealiasProps) + `,

    // Collapse this.constructor member accesses to this
    // (matches what the original compiler emitted for static dispatch)
    "collapse_constructor_access": ` + strconv.FormatBool(rewrite.CollapseConstructorAccess) + `
  },

  // ============================================================================
  // OUTPUT SETTINGS
  // ============================================================================
  "output": {
    // Report format: "text", "json", "yaml"
    "format": "text",

    // Directory to mirror rewritten files into (empty = stdout / in place)
    "directory": ""
  },

  // ============================================================================
  // FILE SELECTION
  // ============================================================================
  // Controls which files are rewritten
  "analysis": {
    // File patterns to include (glob patterns)
    "include_patterns": ` + includePatterns + `,

    // File patterns to exclude (glob patterns)
    "exclude_patterns": ` + excludePatterns + `,

    // Recurse into directories
    "recursive": true,

    // Skip files matched by .gitignore
    "respect_gitignore": true
  },

  // ============================================================================
  // PERFORMANCE
  // ============================================================================
  "performance": {
    // Number of files rewritten concurrently
    "max_goroutines": ` + strconv.Itoa(DefaultMaxGoroutines) + `,

    // Timeout for a whole batch in seconds
    "timeout_seconds": ` + strconv.Itoa(DefaultTimeoutSeconds) + `
  }
}
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `{
  // unclass Configuration (minimal)
  // See full options: https://github.com/ludo-technologies/unclass

  "rewrite": {
    "dealias_props": true,
    "collapse_constructor_access": true
  },

  "analysis": {
    "include_patterns": ["**/*.js", "**/*.jsx", "**/*.mjs", "**/*.cjs"],
    "exclude_patterns": ["**/node_modules/**", "**/dist/**"]
  }
}
`
}

// formatJSONArray formats a string slice as a JSON array with proper indentation
func formatJSONArray(items []string) string {
	if len(items) == 0 {
		return "[]"
	}

	result := "[\n"
	for i, item := range items {
		result += `      "` + item + `"`
		if i < len(items)-1 {
			result += ","
		}
		result += "\n"
	}
	result += "    ]"
	return result
}
