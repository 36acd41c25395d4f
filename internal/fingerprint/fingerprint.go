// Package fingerprint computes a content fingerprint over raw section bytes,
// for diagnostics and cache-invalidation use (not part of the on-disk
// format itself).
package fingerprint

import "github.com/cespare/xxhash/v2"

// Of computes the xxHash64 fingerprint of data.
func Of(data []byte) uint64 {
	return xxhash.Sum64(data)
}
