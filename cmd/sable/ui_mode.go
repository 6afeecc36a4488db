package main

import (
	"fmt"
	"os"
	"strings"
)

// resolveUIMode interprets the --ui flag. "on" and "off" force the
// choice; "auto" enables the live view only when stdout is a terminal.
func resolveUIMode(value string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}
