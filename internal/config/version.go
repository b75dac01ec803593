package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// buildVersion is set with -ldflags "-X hampropdisplay/internal/config.buildVersion=..."
var buildVersion string

// GetVersion returns the firmware version: linker-injected first, then
// APP_VERSION, then the VERSION file plus git commit count.
func GetVersion() string {
	if buildVersion != "" {
		return buildVersion
	}
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	baseVersion := getBaseVersion()
	if commitCount := getGitCommitCount(); commitCount > 0 {
		return baseVersion + "." + strconv.Itoa(commitCount)
	}
	return baseVersion
}

// getBaseVersion reads VERSION from the working directory or its parent
func getBaseVersion() string {
	for _, p := range []string{"VERSION", filepath.Join("..", "VERSION")} {
		if content, err := os.ReadFile(p); err == nil {
			if v := strings.TrimSpace(string(content)); v != "" {
				return v
			}
		}
	}
	return "0.1.0"
}

func getGitCommitCount() int {
	output, err := exec.Command("git", "rev-list", "--count", "HEAD").Output()
	if err != nil {
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		return 0
	}
	return count
}
