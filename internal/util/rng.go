package util

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// ShardSeed derives the generator seed for one worker shard of one stream.
// Streams are sweep pairings; shards are the workers inside a batch.
func ShardSeed(seed int64, stream, shard int) int64 {
	return seed + int64(stream)*104729 + int64(shard)*7919
}

// NewSeed draws a seed from crypto/rand for runs that did not ask for one.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
