package hook

import "wiresplice/rule"

// Capturer receives a snapshot of an intercepted payload for mirroring to
// the data plane. Implementations must not block the caller and must never
// let a write failure propagate back into the interception.
type Capturer interface {
	Capture(kind rule.HookKind, direction string, socket uintptr, payload []byte)
}

// Original is the preserved original-function call for one intercepted
// socket operation, bound by the detour to the real arguments (socket,
// flags, peer address) it captured before dispatch began. Outbound hooks
// tail-call it with the buffer the effective action selects; inbound hooks
// call it first to fill buf, exactly as the ws2_32 export itself would be
// invoked directly by the application.
type Original func(buf []byte) (n int, err error)

// EvaluateOutbound runs the shared dispatch sequence for an outbound hook
// (send, sendto, WSASend): capture, rule evaluation, the user callback, and
// finally applies the effective action by tail-calling original with the
// original buffer (Allow), the replacement buffer (Replace), or not at all
// (Block, which synthesises a success return equal to the caller's
// requested byte count without touching original).
func EvaluateOutbound(store *rule.Store, kind rule.HookKind, payload []byte, capturer Capturer, socket uintptr, callback Callback, ctx CallContext, original Original) (int, error) {
	if len(payload) > 0 && capturer != nil {
		capturer.Capture(kind, "send", socket, payload)
	}
	action := evaluate(store, kind, payload, callback, ctx)
	return applyOutbound(action, payload, original)
}

func applyOutbound(action Action, payload []byte, original Original) (int, error) {
	switch action.Kind {
	case ActionBlock:
		return len(payload), nil
	case ActionReplace:
		return original(action.Replacement)
	default:
		return original(payload)
	}
}

// EvaluateInbound runs the shared dispatch sequence for an inbound hook
// (recv, recvfrom, WSARecv). It calls original first to fill buf; if the
// call reports n <= 0 it returns immediately without capturing or
// evaluating rules. Otherwise it captures the filled portion, evaluates
// rules and the user callback, and applies the effective action to buf in
// place: Allow leaves buf and n untouched, Replace copies up to
// min(len(bytes), len(buf)) bytes into buf and reports that length, and
// Block reports 0, discarding the original content.
func EvaluateInbound(store *rule.Store, kind rule.HookKind, buf []byte, capturer Capturer, socket uintptr, callback Callback, ctx CallContext, original Original) (int, error) {
	n, err := original(buf)
	if err != nil || n <= 0 {
		return n, err
	}

	payload := buf[:n]
	if capturer != nil {
		capturer.Capture(kind, "receive", socket, payload)
	}
	action := evaluate(store, kind, payload, callback, ctx)
	return applyInbound(action, buf, n), nil
}

func applyInbound(action Action, buf []byte, n int) int {
	switch action.Kind {
	case ActionBlock:
		return 0
	case ActionReplace:
		return copy(buf, action.Replacement)
	default:
		return n
	}
}

// evaluate runs rule evaluation then the user callback, and resolves the
// effective action per the dispatcher's precedence rule: a fired rule
// action always wins over the callback's return. The callback is consulted
// on every interception regardless of rule outcome, but its return is
// discarded when a rule fired.
func evaluate(store *rule.Store, kind rule.HookKind, payload []byte, callback Callback, ctx CallContext) Action {
	outcome := store.FindAction(payload, kind)

	var instanceAction Action
	if callback != nil {
		instanceAction = callback(ctx)
	}

	if !outcome.Fired {
		return instanceAction
	}

	switch outcome.Action {
	case rule.Block:
		return Action{Kind: ActionBlock}
	case rule.Replace:
		return Action{Kind: ActionReplace, Replacement: outcome.NewPayload}
	default:
		return Action{Kind: Allow}
	}
}
