//go:build windows

package capture

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// InferProtocol queries the socket's type option to infer its transport
// protocol: stream sockets are TCP, datagram sockets are UDP, anything else
// is UNKNOWN. A failed query defaults to TCP, per the documented policy.
func InferProtocol(socket uintptr) Protocol {
	h := windows.Handle(socket)
	typ, err := windows.GetsockoptInt(h, windows.SOL_SOCKET, windows.SO_TYPE)
	if err != nil {
		return TCP
	}
	switch typ {
	case windows.SOCK_STREAM:
		return TCP
	case windows.SOCK_DGRAM:
		return UDP
	default:
		return Unknown
	}
}

// LocalAddr formats the socket's local address via getsockname.
func LocalAddr(socket uintptr) string {
	return sockaddrString(socket, false)
}

// RemoteAddr formats the socket's peer address via getpeername. For
// inbound-before-first-packet UDP sockets the peer may be unknown, in which
// case the empty string is returned.
func RemoteAddr(socket uintptr) string {
	return sockaddrString(socket, true)
}

func sockaddrString(socket uintptr, peer bool) string {
	h := windows.Handle(socket)
	var sa windows.Sockaddr
	var err error
	if peer {
		sa, err = windows.Getpeername(h)
	} else {
		sa, err = windows.Getsockname(h)
	}
	if err != nil {
		return ""
	}
	switch addr := sa.(type) {
	case *windows.SockaddrInet4:
		ip := addr.Addr
		return FormatIPv4(ip[0], ip[1], ip[2], ip[3], uint16(addr.Port))
	case *windows.SockaddrInet6:
		return FormatIPv6Placeholder()
	default:
		return fmt.Sprintf("%v", sa)
	}
}
