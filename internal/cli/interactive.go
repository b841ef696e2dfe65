package cli

import (
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/roach88/ciao/internal/drive"
	"github.com/roach88/ciao/internal/events"
	"github.com/roach88/ciao/internal/machine"
)

// InteractiveOptions holds flags for the interactive command.
type InteractiveOptions struct {
	*RootOptions
	Machine string
	Limit   int

	// SessionIDs overrides the session id generator (for testing).
	SessionIDs drive.SessionIDGenerator
}

const interactiveHelp = `Commands (first letter, any case):
  p  press the button
  r  release the button
  m  send a message
Anything else just steps the machine. End input (Ctrl-D) to quit.
`

// NewInteractiveCommand creates the interactive command.
func NewInteractiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InteractiveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Step the machine once per line of input",
		Long: `Read one line per step from standard input and turn it into an event
before stepping the machine: p presses the button, r releases it, m sends a
message. The loop ends when the machine asks to stop or when input ends;
the latter exits with status 1.

Example:
  ciao interactive
  printf 'p\nm\nr\nm\n' | ciao interactive --machine watcher --limit 2`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Machine, "machine", machine.NameWatcher, "machine to drive")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "machine limit (0 = machine default)")

	return cmd
}

func runInteractive(opts *InteractiveOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	evs := events.NewStore()
	m, err := machine.New(machine.Config{Name: opts.Machine, Limit: opts.Limit}, evs)
	if err != nil {
		_ = f.Error(ErrCodeMachine, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid machine", err)
	}

	in := cmd.InOrStdin()
	var input drive.Input = drive.NewLineInput(in)
	if isTerminal(in) && !f.JSON() {
		f.Printf("%s", interactiveHelp)
		input = drive.NewPromptedInput(in, cmd.OutOrStdout(), "> ")
	}

	reporter, _ := m.(machine.Reporter)
	loopOpts := []drive.Option{
		drive.WithInput(input),
		drive.WithLogger(newLogger(opts.RootOptions, cmd.ErrOrStderr())),
		drive.AfterAdvance(func(s drive.Step) {
			f.Printf("[%d] %s -> %s\n", s.Iteration, strconv.Quote(s.Token), s.Command)
			if reporter != nil {
				f.Printf("    %s\n", reporter.Report())
			}
		}),
	}
	if opts.SessionIDs != nil {
		loopOpts = append(loopOpts, drive.WithSessionIDs(opts.SessionIDs))
	}

	res, err := drive.New(m, evs, loopOpts...).Run()
	summary := RunSummary{
		Mode:       drive.ModeInteractive,
		Machine:    opts.Machine,
		Iterations: res.Iterations,
		Reason:     res.Reason,
		SessionID:  res.SessionID,
	}

	if err != nil {
		var ae *drive.AcquisitionError
		if !errors.As(err, &ae) {
			return WrapExitError(ExitCommandError, "drive loop failed", err)
		}
		summary.FailedAt = ae.Iteration
		if f.JSON() {
			_ = f.Error(ErrCodeInput, ae.Error(), summary)
		}
		return WrapExitError(ExitFailure, "aborted", err)
	}

	return reportOutcome(f, summary)
}

// isTerminal reports whether r is a terminal, so prompts are only printed
// for a human.
func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
