package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicClock_Next(t *testing.T) {
	clock := NewDeterministicClock()

	assert.Equal(t, int64(1), clock.Next())
	assert.Equal(t, int64(2), clock.Next())
	assert.Equal(t, int64(3), clock.Next())
}

func TestDeterministicClock_Independent(t *testing.T) {
	a := NewDeterministicClock()
	b := NewDeterministicClock()
	a.Next()
	a.Next()

	assert.Equal(t, int64(1), b.Next())
	assert.Equal(t, int64(3), a.Next())
}
