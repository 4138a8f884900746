package rule

import (
	"fmt"
	"strings"
)

// FormatRuleTable renders a snapshot of rules as "id: name (active, hits)"
// lines, one per rule in insertion order. This mirrors the listing the
// original injected library logged on ListTamperRules, and is used by the
// diagnostics CLI's rule table printer.
func FormatRuleTable(rules []TamperRule) string {
	var b strings.Builder
	for _, r := range rules {
		state := "inactive"
		if r.Active {
			state = "active"
		}
		fmt.Fprintf(&b, "%s: %s (%s, %d hits)\n", r.ID, r.Name, state, r.Hits)
	}
	return b.String()
}
