package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/fermata-energy/fermata/schema"
)

// Color variables for console output.
var (
	OKColor      = color.New(color.FgGreen, color.Bold) // OKColor marks a written feature table.
	EmptyColor   = color.New(color.FgYellow)            // EmptyColor marks a merge with no rows.
	SkippedColor = color.New(color.FgCyan)              // SkippedColor marks a building without inputs.
	FailedColor  = color.New(color.FgRed, color.Bold)   // FailedColor marks a broken building.
)

// GetColorStatus returns a colored status label for console output (table).
func GetColorStatus(status schema.BuildingStatus) string {
	text := string(status)

	switch status {
	case schema.OKStatus:
		return OKColor.Sprint(text)
	case schema.EmptyStatus:
		return EmptyColor.Sprint(text)
	case schema.SkippedStatus:
		return SkippedColor.Sprint(text)
	default:
		return FailedColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".fermata_runs.db"
	}
	return filepath.Join(homeDir, ".fermata_runs.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
