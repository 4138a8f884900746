package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wiresplice/hook"
	"wiresplice/rule"
)

var replayCmd = &cobra.Command{
	Use:   "replay <traffic-file> <rules-file>",
	Short: "Replay a newline-hex traffic sample through a rule set's dispatcher logic",
	Long: `replay loads a JSON rule set and a newline-hex traffic sample, runs each
line through the outbound dispatch path against a fake original function,
and prints the resulting action and updated hit counts. It is intended for
validating a rule set before an operator ships it to a live target.`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	trafficPath, rulesPath := args[0], args[1]

	rules, warnings, err := loadRuleFile(rulesPath)
	if err != nil {
		return fmt.Errorf("loading rule file: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	store := rule.NewStore()
	for _, r := range rules {
		if err := store.Add(r); err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping rule %s: %v\n", r.ID, err)
		}
	}

	f, err := os.Open(trafficPath)
	if err != nil {
		return fmt.Errorf("opening traffic file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		payload, err := decodeHexLine(line)
		if err != nil {
			fmt.Printf("line %d: malformed hex, skipped\n", lineNo)
			continue
		}

		orig := &recordingOriginal{}
		n, err := hook.EvaluateOutbound(store, rule.Send, payload, nil, 0, nil, hook.CallContext{Kind: rule.Send}, orig.call)
		if err != nil {
			fmt.Printf("line %d: original call failed: %v\n", lineNo, err)
			continue
		}
		fmt.Printf("line %d: %s\n", lineNo, describeResult(payload, orig, n))
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(rule.FormatRuleTable(store.List()))
	return nil
}

// recordingOriginal stands in for the preserved original send(): it
// accepts whichever buffer it is handed, as a live socket normally would,
// and remembers whether and with what bytes it was called so the replay
// output can report the action that was actually applied.
type recordingOriginal struct {
	called bool
	sent   []byte
}

func (o *recordingOriginal) call(buf []byte) (int, error) {
	o.called = true
	o.sent = buf
	return len(buf), nil
}

// describeResult reports the action EvaluateOutbound applied by observing
// whether and with what bytes it reached the original: never called means
// Block, called with bytes identical to payload means Allow, anything else
// is the replacement Replace substituted.
func describeResult(payload []byte, orig *recordingOriginal, n int) string {
	if !orig.called {
		return fmt.Sprintf("BLOCK (%d bytes suppressed)", n)
	}
	if string(orig.sent) == string(payload) {
		return fmt.Sprintf("ALLOW (%d bytes)", n)
	}
	return fmt.Sprintf("REPLACE -> %X", orig.sent)
}

func decodeHexLine(line string) ([]byte, error) {
	normalized := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, line)
	return hex.DecodeString(normalized)
}
