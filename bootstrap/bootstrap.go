// Package bootstrap wires the engine's subsystems together the way the
// library-load entry point does in production: it initialises logging,
// opens the data and command channels, installs and enables the six hooks,
// and runs the command-receive loop. The library-load callback itself
// (PROCESS_ATTACH) only spawns the worker thread; all real initialisation
// happens on that worker, never under the loader lock.
package bootstrap

import (
	"runtime"

	"wiresplice/bus"
	"wiresplice/hook"
	"wiresplice/logging"
	"wiresplice/rule"
)

// Config holds the already-resolved settings the worker needs to bring the
// engine up; constructing these from the command line or environment is the
// config package's job.
type Config struct {
	Logging         logging.Config
	CommandPipe     string
	DataPipe        string
	OnInterceptFunc func(rule.HookKind) hook.Callback
}

// Engine is the running set of subsystems a successful bootstrap produces:
// the hook manager (rule store + instances), the data-plane writer, and the
// command channel the receive loop reads from.
type Engine struct {
	Manager *hook.Manager
	Writer  *bus.Writer
	Command bus.CommandChannel
	Data    bus.DataChannel
}

// Run performs the worker-thread bring-up sequence: logging, data channel,
// hook installation, command channel, and then blocks forever servicing
// commands. It pins the calling goroutine to its OS thread for the lifetime
// of the command loop, matching the dedicated command-receive thread the
// concurrency model requires; callers invoke Run in its own goroutine.
func Run(cfg Config, primitive hook.Primitive, dial Dialer) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	logging.SetDefault(logging.NewLogger(cfg.Logging))
	logging.Info("bootstrap starting")

	data, err := dial.DialData(cfg.DataPipe)
	if err != nil {
		logging.Error("data channel open failed", "error", err)
		return err
	}
	writer := bus.NewWriter(data, 4096)

	manager := hook.NewManager()
	installHooks(manager, primitive, cfg.OnInterceptFunc)
	manager.EnableAll()
	logging.Info("hooks installed and enabled")

	command, err := dial.DialCommand(cfg.CommandPipe)
	if err != nil {
		logging.Error("command channel open failed", "error", err)
		return err
	}

	engine := &Engine{Manager: manager, Writer: writer, Command: command, Data: data}
	ReceiveLoop(engine)
	return nil
}

// installHooks registers one Instance per hook kind against primitive, with
// the per-kind detour from detourFor and a user callback sourced from
// onIntercept (nil leaves the hook installed but without a user callback —
// evaluation still runs against the rule store).
func installHooks(manager *hook.Manager, primitive hook.Primitive, onIntercept func(rule.HookKind) hook.Callback) {
	kinds := []rule.HookKind{rule.Send, rule.Recv, rule.SendTo, rule.RecvFrom, rule.WSASend, rule.WSARecv}
	for _, kind := range kinds {
		detour := detourFor(kind)
		inst := hook.NewInstance(kind, primitive, detour)
		if onIntercept != nil {
			inst.SetCallback(onIntercept(kind))
		}
		manager.AddHook(inst)
	}
}

// Dialer opens the two bus endpoints by name. Production wiring uses the
// Windows named-pipe transport; tests use the in-process net.Pipe transport.
type Dialer interface {
	DialCommand(name string) (bus.CommandChannel, error)
	DialData(name string) (bus.DataChannel, error)
}
