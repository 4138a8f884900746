package hook

import (
	"sync"

	engineerrors "wiresplice/errors"
	"wiresplice/rule"
)

// exportName maps each hook kind to the ws2_32 export it intercepts.
var exportName = map[rule.HookKind]string{
	rule.Send:     "send",
	rule.Recv:     "recv",
	rule.SendTo:   "sendto",
	rule.RecvFrom: "recvfrom",
	rule.WSASend:  "WSASend",
	rule.WSARecv:  "WSARecv",
}

// Instance wraps one Winsock export: its state machine (installed/enabled),
// the trampoline target handed back by the Primitive, and the user
// callback bound to this kind.
//
// The original-function trampoline and the callback are held on the
// Instance itself and read through Trampoline and Callback; there is no
// process-wide slot per kind that a detour reads them from.
type Instance struct {
	mu sync.Mutex

	kind   rule.HookKind
	detour uintptr

	primitive Primitive
	callback  Callback

	target     uintptr
	trampoline uintptr
	installed  bool
	enabled    bool
}

// NewInstance returns an uninstalled, disabled instance for kind, hooking
// through primitive with detour as the redirect target once installed.
func NewInstance(kind rule.HookKind, primitive Primitive, detour uintptr) *Instance {
	return &Instance{kind: kind, primitive: primitive, detour: detour}
}

// SetCallback stores f as the instance-bound callback. Callers typically set
// this once at construction, before Enable. The callback is only stored on
// the Instance; Enable does not register it anywhere else.
func (i *Instance) SetCallback(f Callback) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.callback = f
}

// Callback returns the currently registered callback, or nil.
func (i *Instance) Callback() Callback {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.callback
}

// Kind returns the hook kind this instance wraps.
func (i *Instance) Kind() rule.HookKind {
	return i.kind
}

// Trampoline returns the callable original-function address, valid once
// Enable has installed the trampoline at least once.
func (i *Instance) Trampoline() uintptr {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.trampoline
}

// IsEnabled reports whether the trampoline is currently active.
func (i *Instance) IsEnabled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.enabled
}

// IsInstalled reports whether a trampoline has been placed for this
// instance (regardless of whether it is currently active).
func (i *Instance) IsInstalled() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.installed
}

// Enable installs the trampoline on first use and activates it. A second
// call while already enabled is a no-op. Installation failures propagate to
// the caller and leave the instance uninstalled and disabled.
func (i *Instance) Enable() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.enabled {
		return nil
	}

	if !i.installed {
		target, trampoline, err := i.primitive.Install("ws2_32", exportName[i.kind], i.detour)
		if err != nil {
			return engineerrors.WrapWithDetail(err, engineerrors.ErrInstallation, "hook.enable", exportName[i.kind])
		}
		i.target = target
		i.trampoline = trampoline
		i.installed = true
	}

	if err := i.primitive.Enable(i.target); err != nil {
		return engineerrors.WrapWithDetail(err, engineerrors.ErrInstallation, "hook.enable", exportName[i.kind])
	}
	i.enabled = true
	return nil
}

// Disable deactivates the trampoline, leaving it installed. A no-op if
// already disabled.
func (i *Instance) Disable() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.enabled {
		return nil
	}
	if err := i.primitive.Disable(i.target); err != nil {
		return engineerrors.Wrap(err, engineerrors.ErrInstallation, "hook.disable")
	}
	i.enabled = false
	return nil
}

// Cleanup disables (if enabled) and removes the trampoline, clearing
// installed state.
func (i *Instance) Cleanup() error {
	i.mu.Lock()
	enabled := i.enabled
	installed := i.installed
	target := i.target
	i.mu.Unlock()

	if enabled {
		if err := i.Disable(); err != nil {
			return err
		}
	}
	if !installed {
		return nil
	}
	if err := i.primitive.Remove(target); err != nil {
		return engineerrors.Wrap(err, engineerrors.ErrInstallation, "hook.cleanup")
	}

	i.mu.Lock()
	i.installed = false
	i.target = 0
	i.trampoline = 0
	i.mu.Unlock()
	return nil
}
