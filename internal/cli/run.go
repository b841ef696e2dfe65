package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ciao/internal/drive"
	"github.com/roach88/ciao/internal/events"
	"github.com/roach88/ciao/internal/machine"
)

// RunOptions holds flags for scripted runs.
type RunOptions struct {
	*RootOptions
	Steps   int
	Machine string
	Limit   int

	// SessionIDs overrides the session id generator (for testing).
	// If nil, defaults to UUIDv7.
	SessionIDs drive.SessionIDGenerator
}

// RunSummary is the JSON payload describing a finished loop.
type RunSummary struct {
	Mode       drive.Mode       `json:"mode"`
	Machine    string           `json:"machine"`
	Bound      int              `json:"bound,omitempty"`
	Iterations int              `json:"iterations"`
	Reason     drive.StopReason `json:"reason"`
	SessionID  string           `json:"session_id"`
	FailedAt   int              `json:"failed_at,omitempty"`
}

// NewRunCommand creates the run command. It is what the root command does
// when given no subcommand.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Advance the machine a fixed number of times",
		Long: `Initialize the machine, then call its step function up to --steps times.
The loop ends early if the machine asks to stop.

Example:
  ciao run
  ciao run --steps 5 --machine countdown --limit 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripted(opts, cmd)
		},
	}
	addRunFlags(cmd, opts)

	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *RunOptions) {
	cmd.Flags().IntVar(&opts.Steps, "steps", drive.DefaultBound, "iteration bound")
	cmd.Flags().StringVar(&opts.Machine, "machine", machine.NameIdle,
		fmt.Sprintf("machine to drive %v", machine.Names()))
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "machine limit (0 = machine default)")
}

func runScripted(opts *RunOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	if opts.Steps <= 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--steps must be positive, got %d", opts.Steps))
	}

	evs := events.NewStore()
	m, err := machine.New(machine.Config{Name: opts.Machine, Limit: opts.Limit}, evs)
	if err != nil {
		_ = f.Error(ErrCodeMachine, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid machine", err)
	}

	loopOpts := []drive.Option{
		drive.WithBound(opts.Steps),
		drive.WithLogger(newLogger(opts.RootOptions, cmd.ErrOrStderr())),
		drive.BeforeAdvance(func(s drive.Step) {
			f.Printf("[%d/%d] Calling step().\n", s.Iteration, s.Bound)
		}),
	}
	if opts.SessionIDs != nil {
		loopOpts = append(loopOpts, drive.WithSessionIDs(opts.SessionIDs))
	}

	res, err := drive.New(m, evs, loopOpts...).Run()
	if err != nil {
		return WrapExitError(ExitCommandError, "drive loop failed", err)
	}

	return reportOutcome(f, RunSummary{
		Mode:       drive.ModeScripted,
		Machine:    opts.Machine,
		Bound:      opts.Steps,
		Iterations: res.Iterations,
		Reason:     res.Reason,
		SessionID:  res.SessionID,
	})
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// reportOutcome prints how a loop ended normally.
func reportOutcome(f *OutputFormatter, s RunSummary) error {
	if f.JSON() {
		return f.Success(s)
	}
	switch s.Reason {
	case drive.StopRequested:
		f.Printf("Stopped: machine requested stop after %d iteration(s).\n", s.Iterations)
	case drive.BoundReached:
		f.Printf("Stopped: bound of %d iteration(s) reached.\n", s.Bound)
	}
	f.VerboseLog("session %s", s.SessionID)
	return nil
}
