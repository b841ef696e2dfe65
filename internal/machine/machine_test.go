package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ciao/internal/events"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"countdown", "idle", "watcher"}, Names())
}

func TestNew(t *testing.T) {
	store := events.NewStore()

	m, err := New(Config{Name: NameIdle}, store)
	require.NoError(t, err)
	assert.IsType(t, &Idle{}, m)

	m, err = New(Config{Name: NameCountdown, Limit: 5}, store)
	require.NoError(t, err)
	require.IsType(t, &Countdown{}, m)
	assert.Equal(t, 5, m.(*Countdown).n)

	m, err = New(Config{Name: NameWatcher}, store)
	require.NoError(t, err)
	require.IsType(t, &Watcher{}, m)
	assert.Equal(t, DefaultMessageLimit, m.(*Watcher).limit)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Config{Name: "blinker"}, events.NewStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown machine "blinker"`)

	_, err = New(Config{Name: NameWatcher, Limit: -1}, events.NewStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestIdle_NeverStops(t *testing.T) {
	m := &Idle{}
	m.Initialize()
	for i := 0; i < 100; i++ {
		assert.False(t, m.Advance())
	}
	assert.Equal(t, "idle: 100 advance(s)", m.Report())

	m.Initialize()
	assert.Equal(t, "idle: 0 advance(s)", m.Report())
}

func TestCountdown(t *testing.T) {
	c := NewCountdown(3)
	c.Initialize()

	assert.False(t, c.Advance())
	assert.False(t, c.Advance())
	assert.False(t, c.Advance())
	assert.Equal(t, "countdown: pending 3/3", c.Report())
	assert.True(t, c.Advance(), "ready after n pending advances")
	assert.True(t, c.Advance(), "stays ready")
	assert.Equal(t, "countdown: done", c.Report())

	c.Initialize()
	assert.False(t, c.Advance(), "Initialize rewinds")
}

func TestCountdown_Default(t *testing.T) {
	c := NewCountdown(0)
	c.Initialize()
	stops := 0
	for i := 0; i < DefaultCountdown+1; i++ {
		if c.Advance() {
			stops = i + 1
			break
		}
	}
	assert.Equal(t, DefaultCountdown+1, stops)
}

func TestWatcher(t *testing.T) {
	store := events.NewStore()
	w := NewWatcher(store, 2)
	w.Initialize()
	assert.Equal(t, "watcher: no observations", w.Report())

	store.SetButton(true)
	assert.False(t, w.Advance())
	assert.Equal(t, "watcher: button held, message none (0/2)", w.Report())

	store.SetMessagePending()
	assert.False(t, w.Advance())
	assert.Equal(t, "watcher: button held, message received (1/2)", w.Report())

	store.SetButton(false)
	assert.False(t, w.Advance())

	assert.Equal(t, "watcher: button released, message none (1/2)", w.Report())

	store.SetMessagePending()
	assert.True(t, w.Advance())
	assert.Equal(t, "watcher: button released, message received (2/2)", w.Report())

	w.Initialize()
	assert.Equal(t, "watcher: no observations", w.Report())
}

func TestWatcher_ConsumesMessage(t *testing.T) {
	store := events.NewStore()
	w := NewWatcher(store, 5)
	w.Initialize()

	store.SetMessagePending()
	w.Advance()
	assert.False(t, store.PollMessage(), "the watcher's poll must consume the message")
}
