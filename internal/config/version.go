package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GetVersion returns the service version from the environment (set by
// CI/CD) or from the VERSION file in the repository root.
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}
	return getBaseVersion()
}

// getBaseVersion reads the base version from the VERSION file
func getBaseVersion() string {
	// Paths relative to the binary's working directory and to a
	// package under internal/ (when running tests)
	candidates := []string{
		"VERSION",
		filepath.Join("..", "..", "VERSION"),
	}
	for _, path := range candidates {
		if content, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return "0.1.0"
}
