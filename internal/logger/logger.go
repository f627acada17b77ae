// Package logger provides the colored console output used by the demo
// runner: tagged level lines plus a startup banner and section headers.
package logger

import (
	"fmt"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

func line(color, tag, message string) {
	fmt.Printf("%s%s%s %s[%s]%s %s\n",
		colorGray, time.Now().Format("15:04:05"), colorReset,
		color, tag, colorReset, message)
}

// Info logs a neutral progress line.
func Info(tag, message string) {
	line(colorCyan, tag, message)
}

// Success logs a completed step.
func Success(tag, message string) {
	line(colorGreen, tag, message)
}

// Warn logs a non-fatal problem.
func Warn(tag, message string) {
	line(colorYellow, tag, message)
}

// Error logs a failure.
func Error(tag, message string) {
	line(colorRed, tag, message)
}

// Banner prints the startup header with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Printf("%s╔══════════════════════════════════════╗%s\n", colorCyan, colorReset)
	fmt.Printf("%s║%s      sedori decision engine %-8s %s║%s\n", colorCyan, colorReset, version, colorCyan, colorReset)
	fmt.Printf("%s╚══════════════════════════════════════╝%s\n", colorCyan, colorReset)
}

// Section prints a visual divider before a group of related output.
func Section(name string) {
	fmt.Printf("\n%s── %s %s%s\n", colorCyan, name, "──────────────────────", colorReset)
}

// Stats prints one aligned key-value line.
func Stats(key string, value any) {
	fmt.Printf("  %s%-24s%s %v\n", colorGray, key, colorReset, value)
}
