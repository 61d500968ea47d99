//go:build windows

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "conscroll is not supported on Windows. It requires a POSIX PTY and is supported on Linux/macOS.")
	os.Exit(1)
}
