package utils

import (
	"encoding/hex"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// etagHasherPool holds reusable unkeyed BLAKE2b-256 hashers.
var etagHasherPool = sync.Pool{
	New: func() any {
		h, err := blake2b.New256(nil)
		if err != nil {
			// New256 only fails for keys longer than 64 bytes.
			panic(err)
		}
		return h
	},
}

// ContentETag returns a version token for a stored blob body: the
// hex-encoded BLAKE2b-256 digest of data, quoted the way HTTP and S3 quote
// entity tags.
//
// Two bodies get the same tag only when they are byte-identical, which makes
// the tag usable as the expected version in a compare-and-swap.
//
// Example usage:
//
//	etag := utils.ContentETag([]byte(`{"appData":{}}`))
func ContentETag(data []byte) string {
	return `"` + hex.EncodeToString(Hash(data)) + `"`
}

// Hash computes a BLAKE2b-256 digest of data using a hasher from the pool.
func Hash(data []byte) []byte {
	h := etagHasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	etagHasherPool.Put(h)

	return sum
}
