//go:build !windows

package bootstrap

// DllMain is a no-op off Windows; there is no loader event to observe. It
// exists so callers and tests can reference a single entry point name
// across platforms.
func DllMain(cfg Config) {}
