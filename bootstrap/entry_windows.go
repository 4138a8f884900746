//go:build windows

package bootstrap

import (
	"wiresplice/bus"
	"wiresplice/hook"
)

// pipeDialer dials the production Windows named-pipe transport.
type pipeDialer struct{}

// NewPipeDialer returns the production Dialer, backed by named pipes.
func NewPipeDialer() Dialer { return pipeDialer{} }

func (pipeDialer) DialCommand(name string) (bus.CommandChannel, error) { return bus.DialCommandPipe(name) }
func (pipeDialer) DialData(name string) (bus.DataChannel, error)       { return bus.DialDataPipe(name) }

// DllMain is the library-load entry point. It must observe PROCESS_ATTACH
// and return immediately after spawning the worker goroutine: no
// allocation, synchronization, or third-party initialisation happens here,
// only the goroutine launch, matching the loader-lock discipline the
// concurrency model requires for a real DLL entry point written in Go (via
// a cgo export or a Go-linked DLL's init hook feeding this function).
func DllMain(cfg Config) {
	go func() {
		_ = Run(cfg, hook.NewWinsockPrimitive(), NewPipeDialer())
	}()
}
