package bootstrap

import (
	"errors"
	"io"

	"wiresplice/bus"
	"wiresplice/logging"
)

// ReceiveLoop blocks on engine.Command, dispatching every HookCommand
// against engine.Manager until the channel disconnects. Errors from
// individual commands are logged; the loop never exits on a failed command,
// only on disconnection (io.EOF or any other Receive error).
func ReceiveLoop(engine *Engine) {
	for {
		cmd, err := engine.Command.Receive()
		if err != nil {
			if errors.Is(err, io.EOF) {
				logging.Info("command channel disconnected, shutting down")
			} else {
				logging.Error("command channel receive failed, shutting down", "error", err)
			}
			return
		}
		dispatch(engine, cmd)
	}
}

func dispatch(engine *Engine, cmd bus.HookCommand) {
	var err error
	switch cmd.Kind {
	case bus.ToggleHook:
		if cmd.Enabled {
			err = engine.Manager.Enable(cmd.HookKind)
		} else {
			err = engine.Manager.Disable(cmd.HookKind)
		}
	case bus.AddTamperRule:
		err = engine.Manager.AddTamperRule(cmd.Rule)
	case bus.UpdateTamperRule:
		err = engine.Manager.UpdateTamperRule(cmd.Rule)
	case bus.RemoveTamperRule:
		err = engine.Manager.RemoveTamperRule(cmd.RuleID)
	case bus.EnableTamperRule:
		err = engine.Manager.EnableTamperRule(cmd.RuleID)
	case bus.DisableTamperRule:
		err = engine.Manager.DisableTamperRule(cmd.RuleID)
	case bus.ListTamperRules:
		rules := engine.Manager.ListTamperRules()
		logging.Info("rule list", "count", len(rules))
	case bus.ClearAllHits:
		engine.Manager.ClearAllHits()
	}
	if err != nil {
		logging.Error("command failed", "command_kind", int(cmd.Kind), "error", err)
	}
}
