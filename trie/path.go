// Package trie verifies Ethereum execution-state Merkle-Patricia Trie
// proofs: account proofs (C5), storage proofs, and the supplemental
// receipt-trie proof (C6), grounded on the keccak256-keyed MPT walk used by
// eth_getProof responses.
package trie

import (
	"github.com/ethlc/verify/types"
)

// bytesToNibbles expands a byte string into its hex-nibble representation,
// high nibble first, the form trie paths are compared in.
func bytesToNibbles(b []byte) []byte {
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, c>>4, c&0x0f)
	}
	return out
}

// decodeCompactPath decodes a hex-prefix (compact) encoded path as found in
// extension and leaf nodes: the high nibble of the first byte carries a
// leaf flag and an odd-length flag, with an optional odd first nibble
// packed alongside it.
func decodeCompactPath(encoded []byte) (isLeaf bool, nibbles []byte, err error) {
	if len(encoded) == 0 {
		return false, nil, types.ErrCompactPathInvalid.Withf("empty path")
	}
	flags := encoded[0]
	if flags&0xc0 != 0 {
		return false, nil, types.ErrCompactPathInvalid.Withf("reserved flag bits set: 0x%x", flags)
	}
	isLeaf = flags&0x20 != 0
	oddLen := flags&0x10 != 0

	if oddLen {
		nibbles = append(nibbles, flags&0x0f)
	} else if flags&0x0f != 0 {
		return false, nil, types.ErrCompactPathInvalid.Withf("even-length path must zero-pad first nibble")
	}
	nibbles = append(nibbles, bytesToNibbles(encoded[1:])...)
	return isLeaf, nibbles, nil
}

// hasPrefix reports whether nibbles starts with prefix.
func hasPrefix(nibbles, prefix []byte) bool {
	if len(prefix) > len(nibbles) {
		return false
	}
	for i := range prefix {
		if nibbles[i] != prefix[i] {
			return false
		}
	}
	return true
}
