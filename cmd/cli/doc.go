// Package cli constructs the modgen command-line interface, wiring the Cobra
// command hierarchy, the layered configuration loader, and the zap loggers
// shared by every generator command.
package cli
