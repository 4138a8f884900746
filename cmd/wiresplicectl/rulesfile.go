package main

import (
	"encoding/json"
	"fmt"
	"os"

	"wiresplice/rule"
	"wiresplice/wildcard"
)

// ruleFileEntry mirrors rule.TamperRule's JSON shape for a rule-set file,
// with Hook and Action spelled as names rather than enum ints.
type ruleFileEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MatchPattern string `json:"match_pattern"`
	Replace      string `json:"replace"`
	Action       string `json:"action"`
	Active       bool   `json:"active"`
	Hook         string `json:"hook"`
}

var hookByName = map[string]rule.HookKind{
	"send":     rule.Send,
	"recv":     rule.Recv,
	"sendto":   rule.SendTo,
	"recvfrom": rule.RecvFrom,
	"WSASend":  rule.WSASend,
	"WSARecv":  rule.WSARecv,
}

// loadRuleFile parses path as a JSON array of ruleFileEntry and returns the
// decoded rules alongside a list of human-readable warnings for unknown
// hooks, malformed patterns, and malformed replacements of replace rules;
// these are never treated as fatal, matching the
// engine's "never an error to the caller" rule-evaluation contract.
func loadRuleFile(path string) ([]rule.TamperRule, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var entries []ruleFileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil, err
	}

	var warnings []string
	rules := make([]rule.TamperRule, 0, len(entries))
	for _, e := range entries {
		kind, ok := hookByName[e.Hook]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("rule %s: unknown hook %q, defaulting to send", e.ID, e.Hook))
			kind = rule.Send
		}
		action := rule.Block
		if e.Action == "replace" {
			action = rule.Replace
		}
		if !wildcard.Validate(e.MatchPattern) {
			warnings = append(warnings, fmt.Sprintf("rule %s: malformed match pattern %q", e.ID, e.MatchPattern))
		}
		if action == rule.Replace {
			if _, err := decodeHexLine(e.Replace); err != nil {
				warnings = append(warnings, fmt.Sprintf("rule %s: malformed replacement %q, its literal bytes will be used", e.ID, e.Replace))
			}
		}
		rules = append(rules, rule.TamperRule{
			ID:           e.ID,
			Name:         e.Name,
			MatchPattern: e.MatchPattern,
			Replace:      e.Replace,
			Action:       action,
			Active:       e.Active,
			Hook:         kind,
		})
	}
	return rules, warnings, nil
}
