// Package errors provides predefined sentinel errors for common failure cases.
package errors

// Rule store errors.
var (
	// ErrRuleNotFound indicates the referenced tamper rule does not exist.
	ErrRuleNotFound = &EngineError{
		Kind:   ErrNotFound,
		Detail: "tamper rule not found",
	}

	// ErrRuleExists indicates a rule with the same ID already exists.
	ErrRuleExists = &EngineError{
		Kind:   ErrAlreadyExists,
		Detail: "tamper rule with this id already exists",
	}

	// ErrEmptyRuleID indicates the rule ID is empty.
	ErrEmptyRuleID = &EngineError{
		Kind:   ErrInvalidConfig,
		Detail: "tamper rule id cannot be empty",
	}
)

// Hook lifecycle errors.
var (
	// ErrHookInstall indicates the hook primitive failed to install a trampoline.
	ErrHookInstall = &EngineError{
		Kind:   ErrInstallation,
		Detail: "failed to install hook trampoline",
	}

	// ErrHookNotInstalled indicates an operation required an installed hook.
	ErrHookNotInstalled = &EngineError{
		Kind:   ErrInvalidState,
		Detail: "hook is not installed",
	}

	// ErrUnknownHookKind indicates an unrecognized hook kind was requested.
	ErrUnknownHookKind = &EngineError{
		Kind:   ErrInvalidConfig,
		Detail: "unknown hook kind",
	}
)

// Bus / channel errors.
var (
	// ErrBusDisconnected indicates the command channel's peer disconnected.
	ErrBusDisconnected = &EngineError{
		Kind:   ErrChannel,
		Detail: "bus disconnected",
	}

	// ErrBusAlreadyInitialized indicates the one-shot channel singleton was
	// already set.
	ErrBusAlreadyInitialized = &EngineError{
		Kind:   ErrAlreadyExists,
		Detail: "bus endpoint already initialized",
	}

	// ErrDataChannelFull indicates a bounded data channel dropped a record.
	ErrDataChannelFull = &EngineError{
		Kind:   ErrChannel,
		Detail: "data channel full, record dropped",
	}
)

// Pattern parsing errors (never surfaced across the detour — see design notes
// on interception error handling).
var (
	// ErrPatternMalformed indicates an odd token count or invalid hex digit.
	ErrPatternMalformed = &EngineError{
		Kind:   ErrMalformedPattern,
		Detail: "malformed wildcard pattern",
	}

	// ErrReplacementMalformed indicates the replacement string could not be
	// parsed as hex; callers fall back to the literal bytes of the string.
	ErrReplacementMalformed = &EngineError{
		Kind:   ErrMalformedReplacement,
		Detail: "malformed replacement, falling back to literal bytes",
	}
)
