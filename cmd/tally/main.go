// Command tally prints worked solutions and runs step-by-step arithmetic
// practice in the terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "tally",
		Short:        "Step-by-step arithmetic practice",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, ok := logger.ParseLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}
			l := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			cmd.SetContext(logger.WithLogger(cmd.Context(), l))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(newPlanCmd(), newPlayCmd())
	return root
}

// parseOperands parses the two operand arguments.
func parseOperands(rawA, rawB string) (int, int, error) {
	a, err := strconv.Atoi(rawA)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: first operand %q is not a number", domain.ErrValidation, rawA)
	}
	b, err := strconv.Atoi(rawB)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: second operand %q is not a number", domain.ErrValidation, rawB)
	}
	return a, b, nil
}
