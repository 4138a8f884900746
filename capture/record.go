// Package capture builds the observational record mirrored to the data
// plane for every intercepted call: packet identity, timing, process and
// socket context, protocol inference, and hex-formatted payload.
package capture

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"wiresplice/rule"
)

// Protocol is the inferred transport protocol tag.
type Protocol string

const (
	TCP     Protocol = "TCP"
	UDP     Protocol = "UDP"
	Unknown Protocol = "UNKNOWN"
)

// ipv6Placeholder is rendered for IPv6 peers. Formatting the full 16-byte
// address is left for a future revision (see design notes on address
// resolution).
const ipv6Placeholder = "::1:0"

// PacketRecord is the unit emitted on the data channel for one intercepted
// call.
type PacketRecord struct {
	ID          uint64
	TimestampMS int64
	ProcessID   uint32
	ProcessName string
	Protocol    Protocol
	Direction   string
	SrcAddr     string
	DstAddr     string
	Size        int
	Socket      uintptr
	HookKind    string
	PayloadHex  string
}

var packetCounter uint64

// nextPacketID returns a monotonic, process-local packet id starting at 0.
func nextPacketID() uint64 {
	return atomic.AddUint64(&packetCounter, 1) - 1
}

// ResetCounter zeroes the packet id counter. Exposed for tests; production
// code never calls this once the engine has started emitting records.
func ResetCounter() {
	atomic.StoreUint64(&packetCounter, 0)
}

// BytesToHex renders data as space-separated, upper-case two-digit hex
// bytes, e.g. []byte{0xAB, 0x01} -> "AB 01".
func BytesToHex(data []byte) string {
	var b strings.Builder
	for i, c := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02X", c)
	}
	return b.String()
}

// Clock returns the current time. Overridable in tests.
var Clock = time.Now

// Build assembles a PacketRecord for one intercepted payload. processID and
// processName are resolved by the caller (see ProcessID and ProcessName);
// local/remote are
// formatted address strings, or "" if unavailable.
func Build(kind rule.HookKind, direction string, socket uintptr, payload []byte, processID uint32, processName string, protocol Protocol, local, remote string) PacketRecord {
	return PacketRecord{
		ID:          nextPacketID(),
		TimestampMS: Clock().UnixMilli(),
		ProcessID:   processID,
		ProcessName: processName,
		Protocol:    protocol,
		Direction:   direction,
		SrcAddr:     local,
		DstAddr:     remote,
		Size:        len(payload),
		Socket:      socket,
		HookKind:    kind.String(),
		PayloadHex:  BytesToHex(payload),
	}
}

// FormatIPv6Placeholder returns the documented IPv6 address placeholder.
// Kept as a named helper (rather than a literal scattered across callers)
// so the eventual real formatter has one call site to replace.
func FormatIPv6Placeholder() string {
	return ipv6Placeholder
}

// FormatIPv4 renders an IPv4 address and port as "a.b.c.d:port".
func FormatIPv4(a, b, c, d byte, port uint16) string {
	return fmt.Sprintf("%d.%d.%d.%d:%d", a, b, c, d, port)
}
