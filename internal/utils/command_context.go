package utils

import "context"

type configurationFilePathKey struct{}

// CommandContextAccessor stores invocation metadata on cobra command contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath records the configuration file that was loaded.
// An empty path means only embedded defaults and the environment were used.
func (CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathKey{}, configurationFilePath)
}

// ConfigurationFilePath reports the recorded configuration file, if any file was loaded.
func (CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, _ := executionContext.Value(configurationFilePathKey{}).(string)
	return configurationFilePath, len(configurationFilePath) > 0
}
