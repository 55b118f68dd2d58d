// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution and OSExecutableLocator for PATH discovery, and
// defines the abstractions modgen uses to run git, package managers, and
// formatters in a testable manner.
package execshell
