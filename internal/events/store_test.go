package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_ZeroValue(t *testing.T) {
	var s Store
	assert.False(t, s.PollMessage())
	assert.False(t, s.PollButton())
	assert.Equal(t, State{}, s.Snapshot())
}

func TestStore_MessageIsConsumedOnce(t *testing.T) {
	s := NewStore()
	s.SetMessagePending()

	assert.True(t, s.PollMessage(), "first poll must observe the message")
	for i := 0; i < 5; i++ {
		assert.False(t, s.PollMessage(), "poll %d after consumption", i)
	}
}

func TestStore_MessageLatchIsIdempotent(t *testing.T) {
	s := NewStore()
	s.SetMessagePending()
	s.SetMessagePending()
	s.SetMessagePending()

	assert.True(t, s.PollMessage())
	assert.False(t, s.PollMessage(), "repeated latches must not queue")
}

func TestStore_ButtonPersistsAcrossPolls(t *testing.T) {
	s := NewStore()
	s.SetButton(true)

	for i := 0; i < 10; i++ {
		assert.True(t, s.PollButton(), "poll %d", i)
	}

	s.SetButton(false)
	assert.False(t, s.PollButton())
	assert.False(t, s.PollButton())
}

func TestStore_EventsAreIndependent(t *testing.T) {
	s := NewStore()
	s.SetButton(true)
	s.SetMessagePending()

	assert.True(t, s.PollMessage())
	assert.True(t, s.PollButton(), "consuming a message must not release the button")

	s.SetButton(false)
	s.SetMessagePending()
	assert.False(t, s.PollButton())
	assert.True(t, s.PollMessage(), "releasing the button must not drop a pending message")
}

func TestStore_SnapshotDoesNotConsume(t *testing.T) {
	s := NewStore()
	s.SetMessagePending()
	s.SetButton(true)

	assert.Equal(t, State{MessagePending: true, ButtonHeld: true}, s.Snapshot())
	assert.Equal(t, State{MessagePending: true, ButtonHeld: true}, s.Snapshot())
	assert.True(t, s.PollMessage())
	assert.Equal(t, State{ButtonHeld: true}, s.Snapshot())
}
