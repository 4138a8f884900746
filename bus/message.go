// Package bus defines the command and data plane channel contracts between
// the injected engine and its controller, and ships one concrete reference
// transport for each (a Windows named pipe framed with encoding/gob) plus a
// portable net.Pipe-based transport used by tests. The wire format itself
// is treated as an external, already-solved concern — these are ordered,
// reliable, typed channels; only the Go-to-Go framing choice here (gob) is
// this module's own decision.
package bus

import "wiresplice/rule"

// CommandKind identifies the variant of a HookCommand message.
type CommandKind int

const (
	ToggleHook CommandKind = iota
	AddTamperRule
	UpdateTamperRule
	RemoveTamperRule
	EnableTamperRule
	DisableTamperRule
	ListTamperRules
	ClearAllHits
)

// HookCommand is the single message type carried on the command channel:
// either a hook enable/disable toggle, or a rule lifecycle operation.
type HookCommand struct {
	Kind CommandKind

	// Set for ToggleHook.
	HookKind rule.HookKind
	Enabled  bool

	// Set for AddTamperRule / UpdateTamperRule.
	Rule rule.TamperRule

	// Set for RemoveTamperRule / EnableTamperRule / DisableTamperRule.
	RuleID string
}

// CommandChannel is a typed, reliable, ordered channel carrying HookCommand
// messages from the controller to the engine.
type CommandChannel interface {
	Send(cmd HookCommand) error
	Receive() (HookCommand, error)
	Close() error
}

// PacketRecord is the data-plane payload type. Declared locally (rather
// than importing the capture package) to keep bus free of a dependency on
// the subsystem that fills its messages; capture.PacketRecord has the same
// shape and gob-encodes identically field-for-field.
type PacketRecord struct {
	ID          uint64
	TimestampMS int64
	ProcessID   uint32
	ProcessName string
	Protocol    string
	Direction   string
	SrcAddr     string
	DstAddr     string
	Size        int
	Socket      uintptr
	HookKind    string
	PayloadHex  string
}

// DataChannel is a typed, reliable-in-order channel carrying PacketRecord
// messages from the engine (multi-producer) to the controller
// (single-consumer).
type DataChannel interface {
	Send(rec PacketRecord) error
	Receive() (PacketRecord, error)
	Close() error
}
