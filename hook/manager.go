package hook

import (
	engineerrors "wiresplice/errors"
	"wiresplice/logging"
	"wiresplice/rule"
)

// Manager owns the six hook instances and the rule store, and proxies rule
// operations to the store so the command plane has a single entry point.
type Manager struct {
	instances map[rule.HookKind]*Instance
	store     *rule.Store
}

// NewManager returns a Manager with an empty rule store and no instances
// registered. Callers add instances with AddHook.
func NewManager() *Manager {
	return &Manager{
		instances: make(map[rule.HookKind]*Instance),
		store:     rule.NewStore(),
	}
}

// Store returns the manager's rule store.
func (m *Manager) Store() *rule.Store {
	return m.store
}

// AddHook registers an instance under its kind, replacing any previous
// instance for that kind.
func (m *Manager) AddHook(inst *Instance) {
	m.instances[inst.Kind()] = inst
}

// Instance returns the registered instance for kind, or nil if none was
// added.
func (m *Manager) Instance(kind rule.HookKind) *Instance {
	return m.instances[kind]
}

// EnableAll enables every registered instance. Failures are logged per hook
// and do not stop the remaining instances from being enabled.
func (m *Manager) EnableAll() {
	for kind, inst := range m.instances {
		if err := inst.Enable(); err != nil {
			logging.Error("hook enable failed", "hook_kind", kind.String(), "error", err)
		}
	}
}

// DisableAll disables every registered instance, continuing past individual
// failures.
func (m *Manager) DisableAll() {
	for kind, inst := range m.instances {
		if err := inst.Disable(); err != nil {
			logging.Error("hook disable failed", "hook_kind", kind.String(), "error", err)
		}
	}
}

// CleanupAll disables and removes every registered instance, continuing
// past individual failures.
func (m *Manager) CleanupAll() {
	for kind, inst := range m.instances {
		if err := inst.Cleanup(); err != nil {
			logging.Error("hook cleanup failed", "hook_kind", kind.String(), "error", err)
		}
	}
}

// Enable enables a single hook by kind.
func (m *Manager) Enable(kind rule.HookKind) error {
	inst, ok := m.instances[kind]
	if !ok {
		return engineerrors.New(engineerrors.ErrInvalidConfig, "hook.Enable", "unknown hook kind: "+kind.String())
	}
	return inst.Enable()
}

// Disable disables a single hook by kind.
func (m *Manager) Disable(kind rule.HookKind) error {
	inst, ok := m.instances[kind]
	if !ok {
		return engineerrors.New(engineerrors.ErrInvalidConfig, "hook.Disable", "unknown hook kind: "+kind.String())
	}
	return inst.Disable()
}

// The remaining methods proxy directly to the rule store, giving the
// command plane a single surface for both hook and rule control messages.

// AddTamperRule adds a new rule to the manager's store.
func (m *Manager) AddTamperRule(r rule.TamperRule) error {
	return m.store.Add(r)
}

// RemoveTamperRule removes a rule by id.
func (m *Manager) RemoveTamperRule(id string) error {
	return m.store.Remove(id)
}

// UpdateTamperRule replaces a rule in place.
func (m *Manager) UpdateTamperRule(r rule.TamperRule) error {
	return m.store.Update(r)
}

// EnableTamperRule activates a rule by id.
func (m *Manager) EnableTamperRule(id string) error {
	return m.store.Enable(id)
}

// DisableTamperRule deactivates a rule by id.
func (m *Manager) DisableTamperRule(id string) error {
	return m.store.Disable(id)
}

// ListTamperRules returns a snapshot of all rules.
func (m *Manager) ListTamperRules() []rule.TamperRule {
	return m.store.List()
}

// ClearAllHits zeroes every rule's hit counter.
func (m *Manager) ClearAllHits() {
	m.store.ClearAllHits()
}
