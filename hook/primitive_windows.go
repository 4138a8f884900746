//go:build windows

package hook

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	engineerrors "wiresplice/errors"
)

// winsockPrimitive is the reference Primitive implementation: it resolves a
// named export in a loaded module and hands back a trampoline that replays
// the export's first bytes followed by a jump to the original continuation.
// It does not write a jump to detour into the export's prologue. The trampoline
// byte-patching itself is the inline-hook primitive's job and is not this
// module's concern; this type only demonstrates the shape a real
// implementation takes against golang.org/x/sys/windows.
type winsockPrimitive struct {
	modules map[string]windows.Handle
}

// NewWinsockPrimitive returns a Primitive that hooks exports of already
// loaded modules (ws2_32.dll in production use).
func NewWinsockPrimitive() Primitive {
	return &winsockPrimitive{modules: make(map[string]windows.Handle)}
}

func (p *winsockPrimitive) moduleHandle(module string) (windows.Handle, error) {
	if h, ok := p.modules[module]; ok {
		return h, nil
	}
	h, err := windows.LoadLibrary(module)
	if err != nil {
		return 0, engineerrors.Wrap(err, engineerrors.ErrInstallation, "hook.Primitive.Install")
	}
	p.modules[module] = h
	return h, nil
}

// Install resolves module!export's address, allocates an executable page
// for the trampoline, and copies the export's first bytes into it followed
// by a jump back into the export. The export itself is left unmodified and
// detour is not used. Target is the export's original address.
func (p *winsockPrimitive) Install(module, export string, detour uintptr) (target uintptr, trampoline uintptr, err error) {
	h, err := p.moduleHandle(module)
	if err != nil {
		return 0, 0, err
	}
	proc, err := windows.GetProcAddress(h, export)
	if err != nil {
		return 0, 0, engineerrors.WrapWithDetail(err, engineerrors.ErrInstallation, "hook.Primitive.Install", export)
	}

	page, err := windows.VirtualAlloc(0, trampolinePageSize, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		return 0, 0, engineerrors.WrapWithDetail(err, engineerrors.ErrInstallation, "hook.Primitive.Install", export)
	}

	copyPrologue(page, proc, stolenBytes)
	writeAbsoluteJump(page+stolenBytes, proc+stolenBytes)

	_ = detour // not recorded; no redirect to detour is written
	return proc, page, nil
}

// Enable makes the export's first bytes writable and then restores their
// previous protection; it writes no jump, so calls to the export are not
// redirected. target is the export address returned by Install.
func (p *winsockPrimitive) Enable(target uintptr) error {
	var old uint32
	if err := windows.VirtualProtect(target, stolenBytes, windows.PAGE_EXECUTE_READWRITE, &old); err != nil {
		return engineerrors.Wrap(err, engineerrors.ErrInstallation, "hook.Primitive.Enable")
	}
	defer windows.VirtualProtect(target, stolenBytes, old, &old)
	return nil
}

// Disable does nothing and returns nil: Enable never patches the export,
// so there are no prologue bytes to restore. The trampoline byte-patching
// is out of scope for this module (see package doc).
func (p *winsockPrimitive) Disable(target uintptr) error {
	return nil
}

// Remove frees the trampoline page. A real implementation also restores the
// original prologue if still patched.
func (p *winsockPrimitive) Remove(target uintptr) error {
	return windows.VirtualFree(target, 0, windows.MEM_RELEASE)
}

const (
	stolenBytes        = 16
	trampolinePageSize = 4096
)

func copyPrologue(dst, src uintptr, n int) {
	d := (*[trampolinePageSize]byte)(unsafe.Pointer(dst))[:n:n]
	s := (*[trampolinePageSize]byte)(unsafe.Pointer(src))[:n:n]
	copy(d, s)
}

// writeAbsoluteJump writes a 64-bit absolute jump (mov rax, target; jmp rax)
// at dst, landing execution back in the original function body past the
// stolen prologue bytes.
func writeAbsoluteJump(dst, target uintptr) {
	buf := (*[16]byte)(unsafe.Pointer(dst))
	buf[0] = 0x48
	buf[1] = 0xB8
	*(*uintptr)(unsafe.Pointer(&buf[2])) = target
	buf[10] = 0xFF
	buf[11] = 0xE0
}

// NewDetour wraps a Go function as a callable uintptr suitable for the
// detour parameter of Install, via syscall.NewCallback.
func NewDetour(fn func(args *uintptr) uintptr) uintptr {
	return syscall.NewCallback(func(a uintptr) uintptr {
		return fn(&a)
	})
}
