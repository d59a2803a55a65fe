package main

import (
	"os"
	"strings"
)

// init runs before Bubble Tea acquires the terminal (and before any TUI starts).
//
// In some PTY/TTY capture environments, Bubble Tea's init triggers
// Lipgloss/Termenv background detection, which can emit OSC/DSR control
// sequences to stdout. Those sequences are harmless in a real terminal but
// corrupt exported snapshots or --version output piped to other tools.
//
// Non-interactive invocations are treated as CI: Termenv uses the CI variable
// to disable TTY probing, preventing those sequences from being written.
func init() {
	if os.Getenv("CI") != "" {
		return
	}

	if !shouldSuppressTTYQueries(os.Args, os.Getenv("PC_TEST_MODE") != "") {
		return
	}

	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "--export") || strings.HasPrefix(arg, "-export") {
			return true
		}
		switch arg {
		case "--version", "-version", "--help", "-help":
			return true
		}
	}

	return false
}
