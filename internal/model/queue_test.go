package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePairsLongestWaiting(t *testing.T) {
	q := NewQueue()

	require.NoError(t, q.AddPlayer(Player{ID: "p1"}))
	require.NoError(t, q.AddPlayer(Player{ID: "p2"}))
	require.NoError(t, q.AddPlayer(Player{ID: "p3"}))
	assert.Equal(t, 3, q.Size())

	p1, p2 := q.GetNextPair()
	assert.Equal(t, "p1", p1.ID)
	assert.Equal(t, "p2", p2.ID)
	assert.Equal(t, 1, q.Size())
}

func TestQueueRejectsDuplicatePlayer(t *testing.T) {
	q := NewQueue()

	require.NoError(t, q.AddPlayer(Player{ID: "p1"}))
	assert.Error(t, q.AddPlayer(Player{ID: "p1"}))
	assert.Equal(t, 1, q.Size())
}
