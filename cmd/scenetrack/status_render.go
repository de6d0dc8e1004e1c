package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"scenetrack/internal/anchor"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func statusColor(status anchor.Status) string {
	switch status {
	case anchor.StatusStable:
		return ansiGreen
	case anchor.StatusMoved:
		return ansiBlue
	case anchor.StatusDegenerate, anchor.StatusUnanchored:
		return ansiYellow
	case anchor.StatusFrozen:
		return ansiRed
	default:
		return ""
	}
}

func renderStatus(status anchor.Status, colorize bool) string {
	label := status.String()
	if colorize {
		if color := statusColor(status); color != "" {
			return color + label + ansiReset
		}
	}
	return label
}

// passSummary renders a one-line count of outcomes by status.
func passSummary(pass anchor.Pass) string {
	return fmt.Sprintf("%d scenes: %d moved, %d stable, %d unanchored, %d degenerate, %d frozen",
		len(pass.Outcomes),
		pass.Count(anchor.StatusMoved),
		pass.Count(anchor.StatusStable),
		pass.Count(anchor.StatusUnanchored),
		pass.Count(anchor.StatusDegenerate),
		pass.Count(anchor.StatusFrozen),
	)
}

func formatRange(r anchor.Range) string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
