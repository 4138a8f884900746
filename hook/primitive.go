// Package hook implements the per-entry-point hook instances, the shared
// interception dispatcher, and the hook manager described by the engine's
// hook engine subsystem. The inline-hook primitive itself — placing a
// trampoline at a named export and producing a callable original-function
// pointer — is defined here only as an interface; trampoline byte-patching
// is an external, already-solved concern, exactly as a production hooking
// library (min-hook-style) would provide it.
package hook

import "wiresplice/rule"

// Primitive is the external hook engine's contract: install a trampoline at
// a named export, then toggle it active/inactive, then remove it. Target
// identifies the installed trampoline to the primitive across calls; its
// concrete representation (an address, a handle, whatever the underlying
// hooking engine uses) is opaque to callers.
type Primitive interface {
	// Install places a trampoline redirecting module!export to detour, and
	// returns an opaque target handle plus the address of a callable
	// original-function trampoline. The returned trampoline does not yet
	// run the detour; a separate Enable call activates it.
	Install(module, export string, detour uintptr) (target uintptr, trampoline uintptr, err error)

	// Enable activates a previously installed trampoline so that calls to
	// the export are redirected to the detour.
	Enable(target uintptr) error

	// Disable deactivates an installed trampoline without removing it;
	// calls to the export resume reaching the original code directly.
	Disable(target uintptr) error

	// Remove deactivates (if necessary) and releases a trampoline. Target
	// is not valid for further use afterward.
	Remove(target uintptr) error
}

// ActionKind is the decision an interception applies to a payload.
type ActionKind int

const (
	// Allow passes the payload through unchanged.
	Allow ActionKind = iota
	// ActionBlock discards the payload.
	ActionBlock
	// ActionReplace substitutes new payload bytes.
	ActionReplace
)

// Action is the effective decision for one interception: what to do with
// the payload, and (for ActionReplace) the replacement bytes.
type Action struct {
	Kind        ActionKind
	Replacement []byte
}

// Callback is the user-supplied instance callback consulted on every
// interception. ctx carries the call's socket and addressing context; the
// returned Action is equivalent to Allow when no callback is registered.
type Callback func(ctx CallContext) Action

// CallContext carries the per-call arguments a callback needs beyond the
// payload bytes themselves.
type CallContext struct {
	Socket  uintptr
	Kind    rule.HookKind
	Flags   int32
	PeerSet bool
	Peer    string
}
