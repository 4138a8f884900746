//go:build !windows

package hook

import engineerrors "wiresplice/errors"

// NewWinsockPrimitive is unavailable off Windows; the inline-hook primitive
// only makes sense against a live ws2_32.dll. Tests use a fake Primitive
// instead (see hook_test.go).
func NewWinsockPrimitive() Primitive {
	return unsupportedPrimitive{}
}

type unsupportedPrimitive struct{}

func (unsupportedPrimitive) Install(module, export string, detour uintptr) (uintptr, uintptr, error) {
	return 0, 0, engineerrors.New(engineerrors.ErrInstallation, "hook.Primitive.Install", "winsock hooking requires windows")
}

func (unsupportedPrimitive) Enable(target uintptr) error {
	return engineerrors.New(engineerrors.ErrInstallation, "hook.Primitive.Enable", "winsock hooking requires windows")
}

func (unsupportedPrimitive) Disable(target uintptr) error {
	return engineerrors.New(engineerrors.ErrInstallation, "hook.Primitive.Disable", "winsock hooking requires windows")
}

func (unsupportedPrimitive) Remove(target uintptr) error {
	return engineerrors.New(engineerrors.ErrInstallation, "hook.Primitive.Remove", "winsock hooking requires windows")
}
