//go:build windows

package bus

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"

	engineerrors "wiresplice/errors"
)

// pipeBufferSize is the named pipe's in/out buffer size; large enough for
// a gob-encoded HookCommand or PacketRecord without fragmentation in the
// common case.
const pipeBufferSize = 64 * 1024

// DialCommandPipe connects to an existing named pipe created by the
// controller and returns it framed as a CommandChannel.
func DialCommandPipe(name string) (CommandChannel, error) {
	conn, err := dialPipe(name)
	if err != nil {
		return nil, err
	}
	return NewGobCommandChannel(conn), nil
}

// DialDataPipe connects to an existing named pipe created by the controller
// and returns it framed as a DataChannel.
func DialDataPipe(name string) (DataChannel, error) {
	conn, err := dialPipe(name)
	if err != nil {
		return nil, err
	}
	return NewGobDataChannel(conn), nil
}

func dialPipe(name string) (*os.File, error) {
	path, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, engineerrors.Wrap(err, engineerrors.ErrChannel, "bus.dialPipe")
	}
	handle, err := windows.CreateFile(
		path,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return nil, engineerrors.Wrap(err, engineerrors.ErrChannel, "bus.dialPipe")
	}
	return os.NewFile(uintptr(handle), name), nil
}

// ListenCommandPipe creates the named pipe named by name (used by the
// controller side of a test harness or a reference bring-up) and returns
// it framed as a CommandChannel once a client connects.
func ListenCommandPipe(name string) (CommandChannel, error) {
	conn, err := listenPipe(name)
	if err != nil {
		return nil, err
	}
	return NewGobCommandChannel(conn), nil
}

// ListenDataPipe is the data-channel counterpart of ListenCommandPipe.
func ListenDataPipe(name string) (DataChannel, error) {
	conn, err := listenPipe(name)
	if err != nil {
		return nil, err
	}
	return NewGobDataChannel(conn), nil
}

func listenPipe(name string) (*os.File, error) {
	path, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, engineerrors.Wrap(err, engineerrors.ErrChannel, "bus.listenPipe")
	}
	handle, err := windows.CreateNamedPipe(
		path,
		windows.PIPE_ACCESS_DUPLEX,
		windows.PIPE_TYPE_BYTE|windows.PIPE_READMODE_BYTE|windows.PIPE_WAIT,
		windows.PIPE_UNLIMITED_INSTANCES,
		pipeBufferSize,
		pipeBufferSize,
		0,
		nil,
	)
	if err != nil {
		return nil, engineerrors.Wrap(err, engineerrors.ErrChannel, "bus.listenPipe")
	}
	if err := windows.ConnectNamedPipe(handle, nil); err != nil && err != syscall.ERROR_PIPE_CONNECTED {
		windows.CloseHandle(handle)
		return nil, engineerrors.Wrap(err, engineerrors.ErrChannel, "bus.listenPipe")
	}
	return os.NewFile(uintptr(handle), name), nil
}
