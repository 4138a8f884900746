//go:build windows

package capture

import (
	"golang.org/x/sys/windows"
)

// ProcessName resolves the current process's image name via
// QueryFullProcessImageName, falling back to "unknown" on any failure.
func ProcessName() string {
	h, err := windows.GetCurrentProcess()
	if err != nil {
		return "unknown"
	}
	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "unknown"
	}
	return windows.UTF16ToString(buf[:size])
}

// ProcessID returns the current process id.
func ProcessID() uint32 {
	return windows.GetCurrentProcessId()
}
