package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// out is swapped by tests
var out io.Writer = os.Stdout

func colored(color, symbol, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		fmt.Fprintf(out, "%s %s\n", symbol, msg)
		return
	}
	fmt.Fprintf(out, "%s%s %s%s\n", color, symbol, msg, colorReset)
}

func PrintInfo(format string, a ...interface{})    { colored(colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...interface{}) { colored(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...interface{}) { colored(colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...interface{})   { colored(colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Fprintln(out)
	colored(colorYellow, "===", "%s ===", title)
}

// dangerousPatterns are rejected in anything handed to exec.Command
var dangerousPatterns = []string{"|", "`", "$(", "&&", "||", ">", "<"}

// checkHostile rejects shell metacharacters, newlines and null bytes in command arguments.
// '&' alone and ';' stay allowed for connection strings.
func checkHostile(inputs ...string) error {
	for _, s := range inputs {
		if strings.ContainsAny(s, "\n\r") {
			return fmt.Errorf("hostile input detected: newlines or carriage returns")
		}
		if strings.Contains(s, "\x00") {
			return fmt.Errorf("hostile input detected: null byte")
		}
		for _, p := range dangerousPatterns {
			if strings.Contains(s, p) {
				return fmt.Errorf("hostile input detected: pattern %q in %q", p, s)
			}
		}
	}
	return nil
}

func command(name string, args ...string) (*exec.Cmd, error) {
	if err := checkHostile(append([]string{name}, args...)...); err != nil {
		return nil, err
	}
	// #nosec G204 - arguments are checked above
	return exec.Command(name, args...), nil
}

func getCommandOutput(name string, args ...string) (string, error) {
	cmd, err := command(name, args...)
	if err != nil {
		return "", err
	}
	b, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// runCommand runs a command silently
func runCommand(name string, args ...string) error {
	cmd, err := command(name, args...)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// runCommandVerbose runs a command with its output on the terminal
func runCommandVerbose(name string, args ...string) error {
	cmd, err := command(name, args...)
	if err != nil {
		return err
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
