package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/domain/practice"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by the plan command.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func newPlanCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "plan <operation> <a> <b>",
		Short: "Print the worked solution of one exercise",
		Long: `Print every step of a worked solution.

Operations: addition (add, +), subtraction (sub, -), multiplication (mul, x)
and division (div, /).`,
		Example: "  tally plan div 144 12\n  tally plan x 47 36 --output yaml",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := domain.ParseOperation(args[0])
			if err != nil {
				return err
			}
			a, b, err := parseOperands(args[1], args[2])
			if err != nil {
				return err
			}
			worked, err := practice.Work(op, a, b)
			if err != nil {
				return fmt.Errorf("cannot plan %d %s %d: %w", a, op.Symbol(), b, err)
			}
			return writeWorked(cmd.OutOrStdout(), worked, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, json or yaml")
	return cmd
}

func writeWorked(w io.Writer, worked *practice.Worked, format string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(worked)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(worked); err != nil {
			return err
		}
		return enc.Close()
	case outputText:
		return writeWorkedText(w, worked)
	default:
		return fmt.Errorf("unknown output format %q (expected text, json or yaml)", format)
	}
}

func writeWorkedText(w io.Writer, worked *practice.Worked) error {
	if _, err := fmt.Fprintf(w, "%d %s %d = %s\n\n",
		worked.OperandA, worked.Operation.Symbol(), worked.OperandB, worked.Answer); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKIND\tCELL\tINPUT\tHINT")
	for _, s := range worked.Steps {
		input := s.Expected
		if s.Action {
			input = "(" + s.Writes + ")"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.Index+1, s.Kind, s.Cell, input, s.Hint)
	}
	return tw.Flush()
}
