// Package ssz implements the subset of SSZ Merkleization needed by the
// light client: generalized-index branch verification, and hash-tree-root
// for beacon block headers and sync committees (spec.md C2/C3).
package ssz

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/ethlc/verify/types"
)

// HashPair is the two-child Merkle hash, exported for callers outside this
// package that need to combine two already-computed roots (e.g. package
// domain's ForkData and SigningData containers).
func HashPair(a, b [32]byte) [32]byte {
	return sha256Pair(a, b)
}

func sha256Pair(a, b [32]byte) [32]byte {
	h := sha256.New()
	h.Write(a[:])
	h.Write(b[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// VerifyMerkleBranch walks a generalized-index Merkle branch bottom-up,
// hashing the running value with each sibling in the order selected by the
// corresponding bit of gindex (0 = value is left child, 1 = value is right
// child), and compares the result against root.
func VerifyMerkleBranch(leaf types.Hash32, branch []types.Hash32, depth int, gindex uint64, root types.Hash32) bool {
	if len(branch) != depth {
		return false
	}
	value := [32]byte(leaf)
	for i := 0; i < depth; i++ {
		sibling := [32]byte(branch[i])
		if (gindex>>uint(i))&1 == 1 {
			value = sha256Pair(sibling, value)
		} else {
			value = sha256Pair(value, sibling)
		}
	}
	return value == [32]byte(root)
}

// merkleize hashes a list of 32-byte chunks bottom-up, zero-padding to the
// next power of two (or to limit chunks if limit exceeds len(chunks), the
// SSZ convention for variable-capacity lists with a fixed maximum).
func merkleize(chunks [][32]byte, limit int) [32]byte {
	size := limit
	if size < len(chunks) {
		size = len(chunks)
	}
	width := 1
	for width < size {
		width *= 2
	}
	if width == 0 {
		width = 1
	}
	layer := make([][32]byte, width)
	copy(layer, chunks)

	for width > 1 {
		next := make([][32]byte, width/2)
		for i := 0; i < width/2; i++ {
			next[i] = sha256Pair(layer[2*i], layer[2*i+1])
		}
		layer = next
		width /= 2
	}
	return layer[0]
}

func uint64Chunk(v uint64) [32]byte {
	var c [32]byte
	binary.LittleEndian.PutUint64(c[:8], v)
	return c
}

// HashTreeRootHeader computes the SSZ hash-tree-root of a beacon block
// header: five fixed-size fields padded to eight Merkle leaves.
func HashTreeRootHeader(h types.BeaconBlockHeader) types.Hash32 {
	chunks := [][32]byte{
		uint64Chunk(uint64(h.Slot)),
		uint64Chunk(h.ProposerIndex),
		[32]byte(h.ParentRoot),
		[32]byte(h.StateRoot),
		[32]byte(h.BodyRoot),
	}
	return types.Hash32(merkleize(chunks, 8))
}

// pubkeyChunks splits a 48-byte BLS public key into the two 32-byte SSZ
// chunks its Bytes48 basic-type packing occupies, the second zero-padded.
func pubkeyChunks(pk types.BLSPubKey) [2][32]byte {
	var c [2][32]byte
	copy(c[0][:], pk[:32])
	copy(c[1][:16], pk[32:48])
	return c
}

// HashTreeRootSyncCommittee computes the SSZ hash-tree-root of a
// SyncCommittee: a length-512 vector of pubkeys, packed two chunks per
// pubkey and merkleized, paired with the aggregate pubkey's own root.
func HashTreeRootSyncCommittee(c *types.SyncCommittee) (types.Hash32, error) {
	if err := c.Validate(); err != nil {
		return types.Hash32{}, err
	}
	chunks := make([][32]byte, 0, len(c.Pubkeys)*2)
	for _, pk := range c.Pubkeys {
		pair := pubkeyChunks(pk)
		chunks = append(chunks, pair[0], pair[1])
	}
	pubkeysRoot := merkleize(chunks, len(chunks))

	aggPair := pubkeyChunks(c.AggregatePubkey)
	aggregateRoot := merkleize(aggPair[:], 2)

	root := sha256Pair(pubkeysRoot, aggregateRoot)
	return types.Hash32(root), nil
}
