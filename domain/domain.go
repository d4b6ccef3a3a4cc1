// Package domain computes the fork-versioned signing domain and signing
// root used to authenticate sync-committee signatures (spec.md C3),
// following the beacon-chain spec's compute_fork_data_root /
// compute_domain / compute_signing_root functions.
package domain

import (
	"github.com/ethlc/verify/ssz"
	"github.com/ethlc/verify/types"
)

// computeForkDataRoot hashes the ForkData container: {current_version,
// genesis_validators_root}, each padded to its own 32-byte Merkle leaf.
func computeForkDataRoot(currentVersion [4]byte, genesisValidatorsRoot types.Hash32) types.Hash32 {
	var versionChunk [32]byte
	copy(versionChunk[:4], currentVersion[:])
	return types.Hash32(ssz.HashPair(versionChunk, [32]byte(genesisValidatorsRoot)))
}

// ComputeDomain derives the 32-byte signing domain from a domain type, the
// fork version active at the signing slot, and the chain's genesis
// validators root: the first 4 bytes are the domain type, the remaining 28
// are the fork data root's high bytes.
func ComputeDomain(domainType [4]byte, forkVersion [4]byte, genesisValidatorsRoot types.Hash32) [32]byte {
	forkDataRoot := computeForkDataRoot(forkVersion, genesisValidatorsRoot)
	var out [32]byte
	copy(out[:4], domainType[:])
	copy(out[4:], forkDataRoot[:28])
	return out
}

// ComputeSigningRoot hashes the SigningData container: {object_root,
// domain}, the value that sync-committee signatures are actually computed
// over rather than the bare header root.
func ComputeSigningRoot(objectRoot types.Hash32, domain [32]byte) types.Hash32 {
	return types.Hash32(ssz.HashPair([32]byte(objectRoot), domain))
}
