// Package events holds the latched event state that operator input is turned
// into and that a state machine under test polls.
//
// There are exactly two event kinds and they deliberately do not share a
// representation:
//
//   - message: edge-triggered. SetMessagePending latches it; the next
//     PollMessage observes it and clears it in the same call. Every later
//     poll reports false until another message is latched.
//   - button: level-triggered. SetButton records held/released and
//     PollButton reports that value on every call without changing it.
//
// A Store is owned by one drive loop and touched from a single goroutine.
// Machines only ever see the Poller view; the command interpreter only ever
// sees the Mutator view.
package events
