package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/phrazzld/tally-api/internal/domain"
	"github.com/phrazzld/tally-api/internal/domain/guard"
	"github.com/phrazzld/tally-api/internal/domain/plan"
	"github.com/phrazzld/tally-api/internal/domain/practice"
	"github.com/phrazzld/tally-api/internal/domain/sequencer"
	"github.com/phrazzld/tally-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

// clock is replaced in tests.
var clock = time.Now

type playOptions struct {
	seed        uint64
	difficulty  string
	minInterval time.Duration
	maxAttempts int
}

func newPlayCmd() *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play <operation> [a b]",
		Short: "Solve one exercise step by step",
		Long: `Solve one exercise in the terminal, one digit at a time.

Operands are generated from --difficulty unless both are given. At the prompt
type a digit, press Enter to perform an action such as a bring-down, or use
"hint", "reset" or "quit".`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return errors.New("expected an operation, optionally followed by both operands")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := domain.ParseOperation(args[0])
			if err != nil {
				return err
			}

			var a, b int
			if len(args) == 3 {
				if a, b, err = parseOperands(args[1], args[2]); err != nil {
					return err
				}
			} else {
				d, err := domain.ParseDifficulty(opts.difficulty)
				if err != nil {
					return err
				}
				seed := opts.seed
				if seed == 0 {
					seed = rand.Uint64()
				}
				operands, err := practice.NewSeededGenerator(seed).Next(op, d)
				if err != nil {
					return err
				}
				a, b = operands.A, operands.B
			}

			p, err := practice.Build(op, a, b)
			if err != nil {
				return fmt.Errorf("cannot plan %d %s %d: %w", a, op.Symbol(), b, err)
			}
			log := logger.FromContextOrDefault(cmd.Context(), nil)
			return play(cmd.InOrStdin(), cmd.OutOrStdout(), op, p, opts, log)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for generated operands (0 picks one at random)")
	cmd.Flags().StringVar(&opts.difficulty, "difficulty", string(domain.DifficultyMedium), "easy, medium or hard")
	cmd.Flags().DurationVar(&opts.minInterval, "min-interval", guard.DefaultMinInterval, "minimum time between inputs on one step")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", guard.DefaultMaxAttempts, "wrong answers before a step locks")
	return cmd
}

// terminalEffects prints feedback for each resolved input.
type terminalEffects struct {
	out io.Writer
	log *slog.Logger
}

var _ sequencer.Effects = (*terminalEffects)(nil)

func (e *terminalEffects) Correct(_ int, t plan.Target) {
	fmt.Fprintf(e.out, "  ✓ %s\n", string(t.Writes))
}

func (e *terminalEffects) Wrong(int, plan.Target) {
	fmt.Fprintln(e.out, "  ✗ Not quite, try again.")
}

func (e *terminalEffects) Solved() {
	fmt.Fprintln(e.out, "Solved!")
}

func (e *terminalEffects) OnTransition(from, to sequencer.State) {
	e.log.Debug("sequencer transition", "from", from, "to", to)
}

// play runs the input loop until the exercise is solved, the learner quits or
// in runs out.
func play(in io.Reader, out io.Writer, op domain.Operation, p plan.Plan, opts playOptions, log *slog.Logger) error {
	targets := p.Targets()
	g := guard.New(guard.Config{MinInterval: opts.minInterval, MaxAttempts: opts.maxAttempts})
	seq, err := sequencer.New(targets, g, &terminalEffects{out: out, log: log})
	if err != nil {
		return err
	}

	a, b := p.Operands()
	fmt.Fprintf(out, "%d %s %d\n", a, op.Symbol(), b)
	seq.Start()

	sc := bufio.NewScanner(in)
	for {
		t, ok := seq.Current()
		if !ok {
			break
		}
		prompt(out, seq.Cursor(), len(targets), t)

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			fmt.Fprintln(out, "\nStopped before the exercise was solved.")
			return nil
		}

		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "quit", "q":
			fmt.Fprintln(out, "Bye.")
			return nil
		case "hint", "?":
			fmt.Fprintf(out, "  %s\n", t.Hint)
			continue
		case "reset":
			seq.Reset()
			fmt.Fprintln(out, "  Starting over.")
			continue
		}

		var o sequencer.Outcome
		if t.IsAction() {
			o, err = seq.Act(clock())
		} else {
			o, err = seq.Enter(line, clock())
		}
		if err != nil {
			log.Debug("input rejected", "kind", guard.KindOf(err), "error", err)
			fmt.Fprintf(out, "  %s\n", rejection(err))
			continue
		}
		if o.Locked {
			fmt.Fprintf(out, "  That was the last try. The digit was %s. Type \"reset\" to start over.\n",
				t.ExpectedString())
		}
	}

	mistakes := seq.Mistakes()
	fmt.Fprintf(out, "%d %s %d = %s  (mistakes: %d, score: %d)\n",
		a, op.Symbol(), b, p.Answer(), mistakes, domain.ScoreFor(len(targets), mistakes))
	return nil
}

func prompt(out io.Writer, cursor, total int, t plan.Target) {
	if t.IsAction() {
		fmt.Fprintf(out, "[%d/%d] %s %s: press Enter\n", cursor+1, total, t.Kind, t.Cell)
		return
	}
	fmt.Fprintf(out, "[%d/%d] %s %s> ", cursor+1, total, t.Kind, t.Cell)
}

func rejection(err error) string {
	switch guard.KindOf(err) {
	case guard.KindEmpty:
		return "Type a digit."
	case guard.KindNonNumeric, guard.KindOutOfRange:
		return "Type a single digit from 0 to 9."
	case guard.KindTooFast:
		return "Slow down a little."
	case guard.KindTooManyAttempts:
		return "This step is locked. Type \"reset\" to start over."
	default:
		return err.Error()
	}
}
