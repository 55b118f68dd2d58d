package githubauth

import (
	"os"
	"strings"
)

// Environment variable names consulted for a GitHub API token, in order of preference.
const (
	EnvModgenGitHubToken = "MODGEN_GITHUB_TOKEN"
	EnvGitHubCLIToken    = "GH_TOKEN"
	EnvGitHubToken       = "GITHUB_TOKEN"
)

// EnvironmentLookup mirrors os.LookupEnv.
type EnvironmentLookup func(key string) (string, bool)

var tokenPreference = []string{
	EnvModgenGitHubToken,
	EnvGitHubCLIToken,
	EnvGitHubToken,
}

// ResolveToken returns the first non-empty token from the process environment.
func ResolveToken() (string, bool) {
	return ResolveTokenFrom(os.LookupEnv)
}

// ResolveTokenFrom returns the first non-empty token reported by lookup.
func ResolveTokenFrom(lookup EnvironmentLookup) (string, bool) {
	if lookup == nil {
		return "", false
	}
	for _, variableName := range tokenPreference {
		variableValue, exists := lookup(variableName)
		if !exists {
			continue
		}
		trimmedValue := strings.TrimSpace(variableValue)
		if len(trimmedValue) > 0 {
			return trimmedValue, true
		}
	}
	return "", false
}
