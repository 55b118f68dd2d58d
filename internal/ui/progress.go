package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	progressLineTemplateConstant = "  %s %s\n"
	successSymbolConstant        = "✔"
	informationSymbolConstant    = "→"
	warningSymbolConstant        = "!"
)

// ProgressPrinter writes short status lines for steps that users watch interactively.
type ProgressPrinter struct {
	writer      io.Writer
	successMark func(a ...interface{}) string
	infoMark    func(a ...interface{}) string
	warningMark func(a ...interface{}) string
}

// NewProgressPrinter builds a printer targeting the writer. A nil writer discards output.
func NewProgressPrinter(writer io.Writer) *ProgressPrinter {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressPrinter{
		writer:      writer,
		successMark: color.New(color.FgGreen).SprintFunc(),
		infoMark:    color.New(color.FgCyan).SprintFunc(),
		warningMark: color.New(color.FgYellow).SprintFunc(),
	}
}

// Success reports a completed step.
func (printer *ProgressPrinter) Success(format string, arguments ...any) {
	printer.printLine(printer.successMark(successSymbolConstant), format, arguments...)
}

// Info reports an informational step.
func (printer *ProgressPrinter) Info(format string, arguments ...any) {
	printer.printLine(printer.infoMark(informationSymbolConstant), format, arguments...)
}

// Warning reports a step that failed without aborting the run.
func (printer *ProgressPrinter) Warning(format string, arguments ...any) {
	printer.printLine(printer.warningMark(warningSymbolConstant), format, arguments...)
}

func (printer *ProgressPrinter) printLine(symbol string, format string, arguments ...any) {
	if printer == nil {
		return
	}
	_, _ = fmt.Fprintf(printer.writer, progressLineTemplateConstant, symbol, fmt.Sprintf(format, arguments...))
}
