//go:build !windows

package capture

// InferProtocol is unavailable without a live Winsock socket handle; it
// always reports the documented default-on-failure policy (TCP) so test
// code exercising the dispatcher on non-Windows platforms sees the same
// behavior a failed query would produce in production.
func InferProtocol(socket uintptr) Protocol {
	return TCP
}

// LocalAddr and RemoteAddr have no portable implementation; they return the
// empty string, matching "peer unknown" handling elsewhere in the capture
// path.
func LocalAddr(socket uintptr) string  { return "" }
func RemoteAddr(socket uintptr) string { return "" }
