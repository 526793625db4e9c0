// Package passhash produces and verifies salted argon2id password hashes.
//
// Hashes are stored in the PHC string format
// ($argon2id$v=19$m=...,t=...,p=...$salt$hash), so stored credentials are
// self-describing and verification needs no separately persisted parameters.
package passhash

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"

	"github.com/waypost/waypost/internal/common"
)

// ErrMalformedHash is returned by Verify when the encoded hash cannot be
// parsed or was produced by an unsupported algorithm/version.
var ErrMalformedHash = errors.New("malformed password hash")

// Default argon2id cost parameters.
const (
	defaultTime    = 1
	defaultMemory  = 64 * 1024
	defaultThreads = 4
	defaultKeyLen  = 32
	defaultSaltLen = 16
)

// Record holds the encoded outputs of a single hashing operation.
type Record struct {
	// Hash is the PHC-formatted argon2id hash, embedding parameters and salt.
	Hash string
	// Salt is the base64-encoded random salt used for this hash.
	Salt string
}

// Hasher derives argon2id hashes with a fixed parameter set.
//
// Key derivation is CPU- and memory-bound, so concurrent Hash calls are
// bounded by a weighted semaphore sized to the number of usable CPUs. A
// flood of signups therefore queues at the hasher instead of starving
// every other goroutine of CPU time.
type Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
	sem     *semaphore.Weighted
}

// NewHasher returns a Hasher with the default cost parameters.
func NewHasher() *Hasher {
	return &Hasher{
		time:    defaultTime,
		memory:  defaultMemory,
		threads: defaultThreads,
		keyLen:  defaultKeyLen,
		saltLen: defaultSaltLen,
		sem:     semaphore.NewWeighted(int64(max(1, runtime.GOMAXPROCS(0)))),
	}
}

// Hash derives a salted hash of password with a freshly generated random
// salt. Two calls with the same password produce different hash strings.
//
// The returned error wraps common.ErrHashingFailure when the primitive or
// its inputs fail; such errors are terminal for the caller's attempt.
func (h *Hasher) Hash(ctx context.Context, password string) (*Record, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHashingFailure, err)
	}
	defer h.sem.Release(1)

	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHashingFailure, err)
	}

	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLen)

	b64 := base64.RawStdEncoding
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		b64.EncodeToString(salt), b64.EncodeToString(key))

	return &Record{Hash: encoded, Salt: b64.EncodeToString(salt)}, nil
}

// Verify reports whether password matches the PHC-encoded hash. The
// comparison is constant-time in the derived key.
func Verify(encoded string, password string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrMalformedHash
	}
	if version != argon2.Version {
		return false, ErrMalformedHash
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrMalformedHash
	}
	// argon2 panics on zero rounds or zero parallelism.
	if time == 0 || threads == 0 {
		return false, ErrMalformedHash
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return false, ErrMalformedHash
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return false, ErrMalformedHash
	}

	candidate := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}
