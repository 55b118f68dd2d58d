// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses ConfigurationLoader and LoggerFactory, which layer Viper configuration
// with MODGEN_ environment overrides and build zap loggers for the CLI.
package utils
