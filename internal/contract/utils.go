package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/songwei/vitalrisk/schema"
)

// Severity label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetPlainRiskLabel returns a plain text severity label for a 0-100 risk
// score. This is the core logic used for CSV, JSON, and table printing.
func GetPlainRiskLabel(score float64) string {
	switch {
	case score >= 70:
		return CriticalValue
	case score >= 45:
		return HighValue
	case score >= 25:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorRiskLabel returns a colored severity label for console output.
func GetColorRiskLabel(score float64) string {
	text := GetPlainRiskLabel(score)
	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// ColorHealthLevel returns a colored health level for console output.
func ColorHealthLevel(level schema.HealthLevel) string {
	switch level {
	case schema.HealthHighRisk:
		return CriticalColor.Sprint(string(level))
	case schema.HealthAttentionNeeded:
		return HighColor.Sprint(string(level))
	case schema.HealthSuboptimal:
		return ModerateColor.Sprint(string(level))
	default:
		return LowColor.Sprint(string(level))
	}
}

// ColorAlertLevel returns a colored alert level for console output.
func ColorAlertLevel(level schema.AlertLevel) string {
	switch level {
	case schema.AlertCritical:
		return CriticalColor.Sprint(string(level))
	case schema.AlertWarning:
		return HighColor.Sprint(string(level))
	case schema.AlertAttention:
		return ModerateColor.Sprint(string(level))
	default:
		return LowColor.Sprint(string(level))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
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
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
}
