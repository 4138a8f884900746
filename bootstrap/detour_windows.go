//go:build windows

package bootstrap

import (
	"wiresplice/hook"
	"wiresplice/rule"
)

// detourFor returns a callable uintptr for kind's hook, wrapping a Go
// closure via syscall.NewCallback so the trampoline has a real address to
// redirect to. The wrapped function itself is inert here: a real detour
// decodes the raw stdcall arguments into a payload slice and an
// hook.Original closure bound to the trampoline returned by Primitive's
// Install, then hands both to DispatchOutbound/DispatchInbound, which run
// capture, rule evaluation, the user callback, and the apply step
// (tail-call, buffer copy, or synthesized Block return) against them. Only
// that argument marshalling is left undone here, the same ABI-level
// boundary as the hook primitive's trampoline byte-patching.
func detourFor(kind rule.HookKind) uintptr {
	return hook.NewDetour(func(args *uintptr) uintptr {
		return 0
	})
}
