package hook

import (
	"errors"
	"sync"
	"testing"

	"wiresplice/rule"
)

// fakePrimitive is an in-memory stand-in for the external hook primitive.
type fakePrimitive struct {
	mu          sync.Mutex
	nextTarget  uintptr
	enabled     map[uintptr]bool
	installErr  error
	installed   []string
	enableCalls int
}

func newFakePrimitive() *fakePrimitive {
	return &fakePrimitive{enabled: make(map[uintptr]bool), nextTarget: 1}
}

func (f *fakePrimitive) Install(module, export string, detour uintptr) (uintptr, uintptr, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.installErr != nil {
		return 0, 0, f.installErr
	}
	target := f.nextTarget
	f.nextTarget++
	f.installed = append(f.installed, module+"!"+export)
	f.enabled[target] = false
	return target, target + 1000, nil
}

func (f *fakePrimitive) Enable(target uintptr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enableCalls++
	f.enabled[target] = true
	return nil
}

func (f *fakePrimitive) Disable(target uintptr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled[target] = false
	return nil
}

func (f *fakePrimitive) Remove(target uintptr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.enabled, target)
	return nil
}

func TestInstance_EnableInstallsOnce(t *testing.T) {
	prim := newFakePrimitive()
	inst := NewInstance(rule.Send, prim, 0xdead)

	if err := inst.Enable(); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if err := inst.Enable(); err != nil {
		t.Fatalf("second Enable failed: %v", err)
	}
	if len(prim.installed) != 1 {
		t.Errorf("Install called %d times, want 1", len(prim.installed))
	}
	if prim.installed[0] != "ws2_32!send" {
		t.Errorf("installed export = %q, want ws2_32!send", prim.installed[0])
	}
	if !inst.IsEnabled() || !inst.IsInstalled() {
		t.Error("instance should be enabled and installed")
	}
}

func TestInstance_DisableThenEnableSkipsReinstall(t *testing.T) {
	prim := newFakePrimitive()
	inst := NewInstance(rule.Recv, prim, 0xbeef)

	inst.Enable()
	inst.Disable()
	if inst.IsEnabled() {
		t.Error("instance should be disabled")
	}
	if !inst.IsInstalled() {
		t.Error("disable must not uninstall")
	}

	inst.Enable()
	if len(prim.installed) != 1 {
		t.Errorf("Install called %d times across disable/enable, want 1", len(prim.installed))
	}
}

func TestInstance_Cleanup(t *testing.T) {
	prim := newFakePrimitive()
	inst := NewInstance(rule.SendTo, prim, 0x1)
	inst.Enable()

	if err := inst.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if inst.IsEnabled() || inst.IsInstalled() {
		t.Error("instance should be fully torn down after cleanup")
	}
}

func TestInstance_InstallFailureLeavesUninstalled(t *testing.T) {
	prim := newFakePrimitive()
	prim.installErr = errors.New("trampoline rejected")
	inst := NewInstance(rule.WSASend, prim, 0x2)

	if err := inst.Enable(); err == nil {
		t.Fatal("expected Enable to fail")
	}
	if inst.IsInstalled() || inst.IsEnabled() {
		t.Error("instance must remain uninstalled and disabled after a failed Enable")
	}
}

type fakeCapturer struct {
	mu    sync.Mutex
	calls []capturedCall
}

type capturedCall struct {
	kind      rule.HookKind
	direction string
	payload   []byte
}

func (f *fakeCapturer) Capture(kind rule.HookKind, direction string, socket uintptr, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	f.calls = append(f.calls, capturedCall{kind, direction, cp})
}

// fakeOriginal is a stand-in for the preserved original ws2_32 function. It
// records every buffer it was called with and replays a scripted (n, err)
// pair, defaulting to "accepted the whole buffer" when none is scripted.
type fakeOriginal struct {
	calls [][]byte
	n     int
	err   error
	fill  []byte // for inbound fakes: bytes to deposit into the caller's buf
}

func (f *fakeOriginal) call(buf []byte) (int, error) {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	f.calls = append(f.calls, cp)
	if f.fill != nil {
		n := copy(buf, f.fill)
		return n, f.err
	}
	if f.n != 0 || f.err != nil {
		return f.n, f.err
	}
	return len(buf), nil
}

func TestEvaluateOutbound_Allow_TailCallsOriginal(t *testing.T) {
	store := rule.NewStore()
	orig := &fakeOriginal{}

	n, err := EvaluateOutbound(store, rule.Send, []byte{0x01, 0x02, 0x03}, nil, 1, nil, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("n = %d, want 3", n)
	}
	if len(orig.calls) != 1 || string(orig.calls[0]) != "\x01\x02\x03" {
		t.Errorf("original called with %v, want the original payload", orig.calls)
	}
}

func TestEvaluateOutbound_BlockStopsOriginal(t *testing.T) {
	store := rule.NewStore()
	store.Add(rule.TamperRule{ID: "r1", MatchPattern: "62 6C 6F 63 6B", Action: rule.Block, Active: true, Hook: rule.Send})

	capturer := &fakeCapturer{}
	orig := &fakeOriginal{}
	payload := []byte("please block me")

	n, err := EvaluateOutbound(store, rule.Send, payload, capturer, 42, nil, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(payload) {
		t.Errorf("n = %d, want %d (requested byte count)", n, len(payload))
	}
	if len(orig.calls) != 0 {
		t.Errorf("original must not be called on Block, got %d calls", len(orig.calls))
	}
	if store.List()[0].Hits != 1 {
		t.Error("hit counter should be 1")
	}
	if len(capturer.calls) != 1 || capturer.calls[0].direction != "send" {
		t.Errorf("expected one send capture, got %+v", capturer.calls)
	}
}

func TestEvaluateOutbound_Replace(t *testing.T) {
	store := rule.NewStore()
	store.Add(rule.TamperRule{ID: "r1", MatchPattern: "aa ?? cc", Replace: "ff ee", Action: rule.Replace, Active: true, Hook: rule.Send})
	orig := &fakeOriginal{}

	n, err := EvaluateOutbound(store, rule.Send, []byte{0xaa, 0xbb, 0xcc, 0xdd}, nil, 1, nil, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0xff, 0xee, 0xdd}
	if n != len(want) {
		t.Errorf("n = %d, want %d", n, len(want))
	}
	if len(orig.calls) != 1 || string(orig.calls[0]) != string(want) {
		t.Errorf("original called with %x, want %x", orig.calls, want)
	}
}

func TestEvaluateInbound_Allow_ReturnsOriginalLength(t *testing.T) {
	store := rule.NewStore()
	orig := &fakeOriginal{fill: []byte{0x10, 0x20, 0x30}}
	buf := make([]byte, 8)

	n, err := EvaluateInbound(store, rule.Recv, buf, nil, 1, nil, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	if string(buf[:3]) != "\x10\x20\x30" {
		t.Errorf("buf = %x, want original content untouched on Allow", buf[:3])
	}
	if len(orig.calls) != 1 {
		t.Errorf("original should be called exactly once, got %d", len(orig.calls))
	}
}

func TestEvaluateInbound_NonPositiveReturnsImmediately(t *testing.T) {
	store := rule.NewStore()
	orig := &fakeOriginal{fill: []byte{}} // deposits nothing and returns 0
	buf := make([]byte, 8)

	n, err := EvaluateInbound(store, rule.Recv, buf, nil, 1, nil, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
}

func TestEvaluateInbound_Block_ReturnsZeroAfterCallingOriginal(t *testing.T) {
	store := rule.NewStore()
	store.Add(rule.TamperRule{ID: "r1", MatchPattern: "aa ?? cc", Action: rule.Block, Active: true, Hook: rule.Recv})
	orig := &fakeOriginal{fill: []byte{0xaa, 0xbb, 0xcc}}
	buf := make([]byte, 8)

	n, err := EvaluateInbound(store, rule.Recv, buf, nil, 1, nil, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
	if len(orig.calls) != 1 {
		t.Errorf("original must still be called first, got %d calls", len(orig.calls))
	}
}

func TestEvaluateInbound_Replace(t *testing.T) {
	store := rule.NewStore()
	store.Add(rule.TamperRule{ID: "r1", MatchPattern: "aa ?? cc", Replace: "ff ee", Action: rule.Replace, Active: true, Hook: rule.Recv})
	orig := &fakeOriginal{fill: []byte{0xaa, 0xbb, 0xcc, 0xdd}}
	buf := make([]byte, 8)

	n, err := EvaluateInbound(store, rule.Recv, buf, nil, 1, nil, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0xff, 0xee, 0xdd}
	if n != len(want) {
		t.Fatalf("n = %d, want %d", n, len(want))
	}
	if string(buf[:n]) != string(want) {
		t.Errorf("buf[:n] = %x, want %x", buf[:n], want)
	}
}

func TestEvaluateInbound_Replace_TruncatesToBufferCapacity(t *testing.T) {
	store := rule.NewStore()
	store.Add(rule.TamperRule{ID: "r1", MatchPattern: "aa bb", Replace: "11 22 33 44 55", Action: rule.Replace, Active: true, Hook: rule.Recv})
	orig := &fakeOriginal{fill: []byte{0xaa, 0xbb}}
	buf := make([]byte, 3)

	n, err := EvaluateInbound(store, rule.Recv, buf, nil, 1, nil, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3 (truncated to buffer capacity)", n)
	}
	want := []byte{0x11, 0x22, 0x33}
	if string(buf) != string(want) {
		t.Errorf("buf = %x, want %x", buf, want)
	}
}

func TestEvaluate_NoMatchForwardsOriginal(t *testing.T) {
	store := rule.NewStore()
	store.Add(rule.TamperRule{ID: "r1", MatchPattern: "ff ff ff", Action: rule.Block, Active: true, Hook: rule.Send})
	orig := &fakeOriginal{}

	n, err := EvaluateOutbound(store, rule.Send, []byte{0x00, 0x01, 0x02}, nil, 1, nil, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	if store.List()[0].Hits != 0 {
		t.Error("hit counter must remain 0 on no match")
	}
}

func TestEvaluate_InactiveRuleSkipped(t *testing.T) {
	store := rule.NewStore()
	store.Add(rule.TamperRule{ID: "r1", MatchPattern: "bb ?? dd", Action: rule.Block, Active: false, Hook: rule.Send})
	orig := &fakeOriginal{}

	n, err := EvaluateOutbound(store, rule.Send, []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee}, nil, 1, nil, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Fatalf("n = %d, want 5 (Allow for inactive rule)", n)
	}
}

func TestEvaluate_CallbackConsultedButOverridden(t *testing.T) {
	store := rule.NewStore()
	store.Add(rule.TamperRule{ID: "r1", MatchPattern: "aa bb", Action: rule.Block, Active: true, Hook: rule.Send})
	orig := &fakeOriginal{}

	calls := 0
	callback := func(ctx CallContext) Action {
		calls++
		return Action{Kind: Allow}
	}

	payload := []byte{0xaa, 0xbb, 0xcc}
	n, err := EvaluateOutbound(store, rule.Send, payload, nil, 1, callback, CallContext{}, orig.call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != len(payload) {
		t.Fatalf("n = %d, want %d (Block wins over callback)", n, len(payload))
	}
	if len(orig.calls) != 0 {
		t.Error("original must not be called when a rule blocks, regardless of callback")
	}
	if calls != 1 {
		t.Errorf("callback invoked %d times, want exactly 1", calls)
	}
}

func TestManager_EnableAllContinuesPastFailure(t *testing.T) {
	m := NewManager()
	failing := newFakePrimitive()
	failing.installErr = errors.New("boom")
	m.AddHook(NewInstance(rule.Send, failing, 1))
	m.AddHook(NewInstance(rule.Recv, newFakePrimitive(), 2))

	m.EnableAll()

	if m.Instance(rule.Send).IsEnabled() {
		t.Error("failing hook must not report enabled")
	}
	if !m.Instance(rule.Recv).IsEnabled() {
		t.Error("healthy hook should still be enabled")
	}
}

func TestManager_RuleProxying(t *testing.T) {
	m := NewManager()
	if err := m.AddTamperRule(rule.TamperRule{ID: "r1", Active: true}); err != nil {
		t.Fatalf("AddTamperRule failed: %v", err)
	}
	if len(m.ListTamperRules()) != 1 {
		t.Fatal("expected one rule listed")
	}
	if err := m.EnableTamperRule("r1"); err != nil {
		t.Fatalf("EnableTamperRule failed: %v", err)
	}
	if err := m.RemoveTamperRule("r1"); err != nil {
		t.Fatalf("RemoveTamperRule failed: %v", err)
	}
	if len(m.ListTamperRules()) != 0 {
		t.Error("rule should have been removed")
	}
}

func TestManager_EnableUnknownKindFails(t *testing.T) {
	m := NewManager()
	if err := m.Enable(rule.WSARecv); err == nil {
		t.Fatal("expected error for unregistered hook kind")
	}
}
