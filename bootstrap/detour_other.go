//go:build !windows

package bootstrap

import "wiresplice/rule"

// detourFor is a no-op off Windows; there is no ws2_32 export to redirect
// to, so installation always runs against a fake Primitive in tests, and
// DispatchOutbound/DispatchInbound are exercised directly with fake
// original-function closures instead of through a live detour.
func detourFor(kind rule.HookKind) uintptr {
	return 0
}
