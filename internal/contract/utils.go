package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Temperature band label constants.
const (
	HotValue  = "Hot"  // Hot value
	WarmValue = "Warm" // Warm value
	MildValue = "Mild" // Mild value
	CoolValue = "Cool" // Cool value
)

// Lower bounds of each temperature band in Fahrenheit.
const (
	HotThreshold  = 58.0
	WarmThreshold = 55.0
	MildThreshold = 52.0
)

// Color variables for console output.
var (
	HotColor  = color.New(color.FgRed, color.Bold)     // hotColor represents the top of the range.
	WarmColor = color.New(color.FgYellow, color.Bold)  // warmColor represents above-average readings.
	MildColor = color.New(color.FgGreen)               // mildColor represents typical readings.
	CoolColor = color.New(color.FgCyan)                // coolColor represents the bottom of the range.
	BoxColor  = color.New(color.FgHiWhite, color.Bold) // boxColor is used for value box figures.
)

// GetPlainLabel returns a plain text label for the temperature band a
// reading falls in. This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(temp float64) string {
	switch {
	case temp >= HotThreshold:
		return HotValue
	case temp >= WarmThreshold:
		return WarmValue
	case temp >= MildThreshold:
		return MildValue
	default:
		return CoolValue
	}
}

// GetColorLabel returns a colored text label for console output.
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(temp float64) string {
	text := GetPlainLabel(temp)

	switch text {
	case HotValue:
		return HotColor.Sprint(text)
	case WarmValue:
		return WarmColor.Sprint(text)
	case MildValue:
		return MildColor.Sprint(text)
	default: // "Cool"
		return CoolColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
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

// GetJournalDBFilePath returns the path to the SQLite DB file for journal storage.
func GetJournalDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tempdash_journal.db"
	}
	return filepath.Join(homeDir, ".tempdash_journal.db")
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
