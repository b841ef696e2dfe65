// Package drive runs the loop that alternates between collecting operator
// input and stepping a state machine under test.
//
// # Lifecycle
//
//	Start ──Initialize()──▶ Running ──Advance()==true────────▶ Stopped
//	                          │  ▲     bound reached ─────────▶ Stopped
//	                          │  │     ReadLine() failed ─────▶ Stopped (error)
//	                          └──┘ Advance()==false
//
// Each iteration reads at most one token (interactive mode only), applies it
// to the event store through the command interpreter, then calls Advance.
// Mutations from an iteration are always visible before that iteration's
// Advance. Nothing runs concurrently and there is no cancellation: the
// machine stops the loop, the bound stops the loop, or the input runs dry.
//
// # Modes
//
// Scripted mode has no Input and requires a positive bound. Interactive mode
// has an Input and normally no bound.
//
//	store := events.NewStore()
//	loop := drive.New(machine.NewWatcher(store, 2), store,
//		drive.WithInput(drive.NewLineInput(os.Stdin)))
//	res, err := loop.Run()
//	if drive.IsAcquisitionError(err) {
//		// input ended before the machine asked to stop
//	}
package drive
