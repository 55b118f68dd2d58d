// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger turns shell executor events into concise log lines
// while detailed telemetry keeps flowing through structured loggers, and
// ProgressPrinter reports generation steps to the terminal.
package ui
