package scaffold

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/temirov/modgen/internal/execshell"
	"github.com/temirov/modgen/internal/utils/flags"
)

const (
	configurationDirectoryKeyConstant        = "directory"
	configurationPackageManagerKeyConstant   = "package_manager"
	configurationInstallKeyConstant          = "install"
	configurationPackagesKeyConstant         = "packages"
	configurationInitialVersionKeyConstant   = "initial_version"
	configurationPrettierKeyConstant         = "prettier"
	configurationGitHubLookupKeyConstant     = "github_lookup"
	configurationGitHubAPIBaseURLKeyConstant = "github_api_base_url"
	configurationKeySeparatorConstant        = "."
	defaultDirectoryConstant                 = "."
	defaultInitialVersionConstant            = "0.0.0"
	invalidInitialVersionTemplateConstant    = "invalid initial version %q: %w"
	invalidPackageManagerTemplateConstant    = "invalid package manager: %w"
	emptyPackageNameMessageConstant          = "package list contains an empty entry"
)

// SupportedPackageManagers lists the installers the npm command can invoke.
var SupportedPackageManagers = []string{
	string(execshell.CommandNPM),
	string(execshell.CommandYarn),
	string(execshell.CommandPNPM),
}

// Configuration captures persistent settings for the npm command.
type Configuration struct {
	Directory        string   `mapstructure:"directory"`
	PackageManager   string   `mapstructure:"package_manager"`
	Install          bool     `mapstructure:"install"`
	Packages         []string `mapstructure:"packages"`
	InitialVersion   string   `mapstructure:"initial_version"`
	Prettier         bool     `mapstructure:"prettier"`
	GitHubLookup     bool     `mapstructure:"github_lookup"`
	GitHubAPIBaseURL string   `mapstructure:"github_api_base_url"`
}

// DefaultConfiguration returns baseline values for the npm command.
func DefaultConfiguration() Configuration {
	return Configuration{
		Directory:      defaultDirectoryConstant,
		PackageManager: string(execshell.CommandNPM),
		Install:        true,
		InitialVersion: defaultInitialVersionConstant,
		Prettier:       true,
	}
}

// DefaultConfigurationValues flattens DefaultConfiguration into viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	qualify := func(key string) string {
		if len(prefix) == 0 {
			return key
		}
		return prefix + configurationKeySeparatorConstant + key
	}
	return map[string]any{
		qualify(configurationDirectoryKeyConstant):        defaults.Directory,
		qualify(configurationPackageManagerKeyConstant):   defaults.PackageManager,
		qualify(configurationInstallKeyConstant):          defaults.Install,
		qualify(configurationPackagesKeyConstant):         []string{},
		qualify(configurationInitialVersionKeyConstant):   defaults.InitialVersion,
		qualify(configurationPrettierKeyConstant):         defaults.Prettier,
		qualify(configurationGitHubLookupKeyConstant):     defaults.GitHubLookup,
		qualify(configurationGitHubAPIBaseURLKeyConstant): defaults.GitHubAPIBaseURL,
	}
}

// Sanitize trims values and fills blanks with defaults.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration

	sanitized.Directory = strings.TrimSpace(configuration.Directory)
	if len(sanitized.Directory) == 0 {
		sanitized.Directory = defaults.Directory
	}
	sanitized.PackageManager = strings.ToLower(strings.TrimSpace(configuration.PackageManager))
	if len(sanitized.PackageManager) == 0 {
		sanitized.PackageManager = defaults.PackageManager
	}
	sanitized.InitialVersion = strings.TrimSpace(configuration.InitialVersion)
	if len(sanitized.InitialVersion) == 0 {
		sanitized.InitialVersion = defaults.InitialVersion
	}
	sanitized.GitHubAPIBaseURL = strings.TrimSpace(configuration.GitHubAPIBaseURL)

	trimmedPackages := make([]string, 0, len(configuration.Packages))
	for _, packageName := range configuration.Packages {
		trimmedPackages = append(trimmedPackages, strings.TrimSpace(packageName))
	}
	sanitized.Packages = trimmedPackages

	return sanitized
}

// Validate checks the initial version and package manager.
func (configuration Configuration) Validate() error {
	if _, versionError := semver.StrictNewVersion(configuration.InitialVersion); versionError != nil {
		return fmt.Errorf(invalidInitialVersionTemplateConstant, configuration.InitialVersion, versionError)
	}
	if _, choiceError := flags.ParseChoice(configuration.PackageManager, string(execshell.CommandNPM), SupportedPackageManagers); choiceError != nil {
		return fmt.Errorf(invalidPackageManagerTemplateConstant, choiceError)
	}
	for _, packageName := range configuration.Packages {
		if len(packageName) == 0 {
			return errors.New(emptyPackageNameMessageConstant)
		}
	}
	return nil
}
