package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgw/authgw/internal/db/models"
)

type staticBackend struct {
	name   string
	result Result
	err    error
	calls  int
}

func (b *staticBackend) Name() string { return b.name }

func (b *staticBackend) Authenticate(string, string) (Result, error) {
	b.calls++

	return b.result, b.err
}

func TestChainFirstAcceptedWins(t *testing.T) {
	alice := &models.User{Username: "alice"}

	first := &staticBackend{name: "first"}
	second := &staticBackend{name: "second", result: accepted(alice)}
	third := &staticBackend{name: "third", result: accepted(&models.User{Username: "other"})}

	result, err := NewChain(first, nil, second, third).Authenticate("alice", "pw")
	require.NoError(t, err)

	assert.Equal(t, Accepted, result.Outcome)
	assert.Same(t, alice, result.User)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, third.calls)
}

func TestChainAllDeferred(t *testing.T) {
	result, err := NewChain(&staticBackend{name: "a"}, &staticBackend{name: "b"}).Authenticate("alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, Deferred, result.Outcome)
	assert.Nil(t, result.User)
}

func TestChainStopsAtHardError(t *testing.T) {
	boom := errors.New("boom")
	next := &staticBackend{name: "next", result: accepted(&models.User{})}

	_, err := NewChain(&staticBackend{name: "broken", err: boom}, next).Authenticate("alice", "pw")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, next.calls)
}

func TestChainWithoutBackends(t *testing.T) {
	chain := NewChain(nil)
	assert.Equal(t, 0, chain.Len())

	_, err := chain.Authenticate("alice", "pw")
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "deferred", Deferred.String())
}
