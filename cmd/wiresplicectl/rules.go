package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wiresplice/rule"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate tamper rule sets",
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate <rules-file>",
	Short: "Parse a rule file and report malformed patterns/replacements as warnings",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesValidate,
}

var rulesListCmd = &cobra.Command{
	Use:   "list <rules-file>",
	Short: "Print a rule file as a table, sized to the terminal width",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesList,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesListCmd)
}

func runRulesValidate(cmd *cobra.Command, args []string) error {
	rules, warnings, err := loadRuleFile(args[0])
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	fmt.Printf("%d rule(s) parsed, %d warning(s)\n", len(rules), len(warnings))
	return nil
}

func runRulesList(cmd *cobra.Command, args []string) error {
	rules, warnings, err := loadRuleFile(args[0])
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	table := rule.FormatRuleTable(rules)
	for _, line := range wrapLines(table, width) {
		fmt.Println(line)
	}
	return nil
}

// wrapLines splits s into its existing newline-delimited lines, truncating
// any line wider than width so the table never wraps mid-row in a narrow
// terminal.
func wrapLines(s string, width int) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, truncate(s[start:i], width))
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, truncate(s[start:], width))
	}
	return lines
}

func truncate(line string, width int) string {
	if width <= 0 || len(line) <= width {
		return line
	}
	return line[:width]
}
