package passhash

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_ProducesSelfDescribingRecord(t *testing.T) {
	h := NewHasher()

	rec, err := h.Hash(context.Background(), "hunter2")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rec.Hash, "$argon2id$v="), "hash must embed algorithm and version: %s", rec.Hash)
	assert.Contains(t, rec.Hash, "$m=65536,t=1,p=4$", "hash must embed cost parameters")
	assert.NotEmpty(t, rec.Salt)
	assert.Contains(t, rec.Hash, rec.Salt, "encoded hash must embed the salt")
}

func TestHash_NonDeterministic(t *testing.T) {
	h := NewHasher()
	ctx := context.Background()

	first, err := h.Hash(ctx, "hunter2")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "hunter2")
	require.NoError(t, err)

	require.NotEqual(t, first.Hash, second.Hash, "same password must hash differently")
	require.NotEqual(t, first.Salt, second.Salt)

	for _, rec := range []*Record{first, second} {
		ok, err := Verify(rec.Hash, "hunter2")
		require.NoError(t, err)
		assert.True(t, ok, "each hash must independently verify")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	h := NewHasher()

	rec, err := h.Hash(context.Background(), "hunter2")
	require.NoError(t, err)

	ok, err := Verify(rec.Hash, "*******")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_MalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "not phc", encoded: "plainhash"},
		{name: "wrong algorithm", encoded: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "wrong version", encoded: "$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "bad params", encoded: "$argon2id$v=19$m=abc$c2FsdA$aGFzaA"},
		{name: "bad salt encoding", encoded: "$argon2id$v=19$m=65536,t=1,p=4$!!$aGFzaA"},
		{name: "zero rounds", encoded: "$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$aGFzaA"},
		{name: "zero parallelism", encoded: "$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$aGFzaA"},
		{name: "empty salt", encoded: "$argon2id$v=19$m=65536,t=1,p=4$$aGFzaA"},
		{name: "empty digest", encoded: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.encoded, "hunter2")
			assert.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}

func TestHash_CanceledContext(t *testing.T) {
	h := NewHasher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// With the semaphore fully available the acquire may still succeed on a
	// canceled context only if it does not block; take all permits first so
	// the acquire has to consult the context.
	require.NoError(t, h.sem.Acquire(context.Background(), 1))
	for h.sem.TryAcquire(1) {
	}

	_, err := h.Hash(ctx, "hunter2")
	assert.Error(t, err)
}

func TestHash_ConcurrentCallsDoNotDeadlock(t *testing.T) {
	h := NewHasher()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.Hash(ctx, "hunter2")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
