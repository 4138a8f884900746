package bootstrap

import (
	"wiresplice/hook"
	"wiresplice/rule"
)

// DispatchOutbound is the call site a real per-architecture detour shim
// invokes once it has decoded a Winsock export's stdcall arguments into a
// plain payload slice and a callable original function: it runs the full
// interception sequence (capture, rule evaluation, user callback, and the
// apply step) for an outbound hook kind and returns the byte count and
// error the caller should hand back to the application in place of the
// real original's return. Decoding the raw calling-convention arguments
// into payload and original is the trampoline shim's job, same as the hook
// primitive (see hook package doc).
func DispatchOutbound(engine *Engine, kind rule.HookKind, socket uintptr, payload []byte, original hook.Original) (int, error) {
	inst := engine.Manager.Instance(kind)
	var callback hook.Callback
	if inst != nil {
		callback = inst.Callback()
	}
	capturer := newDataCapturer(engine.Writer)
	ctx := hook.CallContext{Socket: socket, Kind: kind}
	return hook.EvaluateOutbound(engine.Manager.Store(), kind, payload, capturer, socket, callback, ctx, original)
}

// DispatchInbound is the inbound counterpart of DispatchOutbound. It calls
// original itself to fill buf, so callers must not have called the
// original function beforehand; buf is the caller's full receive buffer,
// and the returned count reflects the effective action applied in place.
func DispatchInbound(engine *Engine, kind rule.HookKind, socket uintptr, buf []byte, original hook.Original) (int, error) {
	inst := engine.Manager.Instance(kind)
	var callback hook.Callback
	if inst != nil {
		callback = inst.Callback()
	}
	capturer := newDataCapturer(engine.Writer)
	ctx := hook.CallContext{Socket: socket, Kind: kind}
	return hook.EvaluateInbound(engine.Manager.Store(), kind, buf, capturer, socket, callback, ctx, original)
}
