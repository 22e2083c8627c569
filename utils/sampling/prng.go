package sampling

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// PRNG is the source of randomness of a run: key generation, class selection
// and simulated noise each draw from their own PRNG.
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG draws from crypto/rand.
type ThreadSafePRNG struct {
}

// NewPRNG returns a PRNG backed by the operating system's entropy source.
func NewPRNG() (*ThreadSafePRNG, error) {
	return &ThreadSafePRNG{}, nil
}

// Read fills buf from crypto/rand.
func (prng *ThreadSafePRNG) Read(buf []byte) (n int, err error) {
	return rand.Read(buf)
}

// KeyedPRNG is a blake2b XOF stream. Two instances with the same key produce
// the same bytes, so a run keyed this way can be replayed.
// Reads are serialized, but the stream is only reproducible if a single
// goroutine draws from it.
type KeyedPRNG struct {
	mutex    sync.Mutex
	key      []byte
	xof      blake2b.XOF
	consumed uint64
}

// NewKeyedPRNG creates a KeyedPRNG. A nil key is the empty key. blake2b limits
// the key to 64 bytes.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, fmt.Errorf("cannot NewKeyedPRNG: %w", err)
	}
	return &KeyedPRNG{
		key: append([]byte{}, key...),
		xof: xof,
	}, nil
}

// NewSeededPRNG returns the KeyedPRNG of purpose under seed. The key is derived
// from seed with BLAKE3 in the context of purpose, so the streams of different
// purposes are independent and do not depend on the order they are drawn in.
func NewSeededPRNG(seed, purpose string) (*KeyedPRNG, error) {
	key := make([]byte, 32)
	blake3.DeriveKey("clangover "+purpose, []byte(seed), key)
	return NewKeyedPRNG(key)
}

// Key returns a copy of the key of the PRNG.
func (prng *KeyedPRNG) Key() []byte {
	return append([]byte{}, prng.key...)
}

// Read fills buf with the next bytes of the stream.
func (prng *KeyedPRNG) Read(buf []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	n, err = prng.xof.Read(buf)
	prng.consumed += uint64(n)
	return
}

// Consumed returns the number of bytes read since creation or the last Reset.
func (prng *KeyedPRNG) Consumed() uint64 {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.consumed
}

// Reset rewinds the stream to its first byte.
func (prng *KeyedPRNG) Reset() {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	prng.xof.Reset()
	prng.consumed = 0
}
