//go:build !windows

package capture

import "os"

// ProcessName returns "unknown" on non-Windows platforms, matching the
// original implementation's stub behavior; the real lookup only applies
// under Windows injection (see process_windows.go).
func ProcessName() string {
	return "unknown"
}

// ProcessID returns the current process id.
func ProcessID() uint32 {
	return uint32(os.Getpid())
}
