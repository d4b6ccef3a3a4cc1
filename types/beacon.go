package types

import (
	"fmt"

	bitfield "github.com/prysmaticlabs/go-bitfield"
)

// BeaconBlockHeader is the minimal beacon header: enough to authenticate
// the chain without storing full blocks. Its hash-tree-root is an SSZ
// Merkle root over these five fields (see package ssz).
type BeaconBlockHeader struct {
	Slot          Slot   `json:"slot"`
	ProposerIndex uint64 `json:"proposer_index"`
	ParentRoot    Hash32 `json:"parent_root"`
	StateRoot     Hash32 `json:"state_root"`
	BodyRoot      Hash32 `json:"body_root"`
}

// IsEmpty reports whether h is the all-zero sentinel "empty header".
func (h BeaconBlockHeader) IsEmpty() bool {
	return h == BeaconBlockHeader{}
}

// BLSPubKey is a compressed BLS12-381 G1 public key (48 bytes).
type BLSPubKey [48]byte

// BLSSignature is a compressed BLS12-381 G2 signature (96 bytes).
type BLSSignature [96]byte

// SyncCommittee is the ordered set of exactly 512 BLS public keys covering
// one sync-committee period, plus its precomputed aggregate key. Its
// identity is its hash-tree-root (see package ssz).
type SyncCommittee struct {
	Pubkeys         []BLSPubKey `json:"pubkeys"`
	AggregatePubkey BLSPubKey   `json:"aggregate_pubkey"`
}

// Validate checks structural well-formedness: exactly 512 members.
func (c *SyncCommittee) Validate() error {
	if len(c.Pubkeys) != 512 {
		return fmt.Errorf("sync committee must have exactly 512 members, got %d", len(c.Pubkeys))
	}
	return nil
}

// SyncAggregate pairs the 512-bit participation vector with the aggregate
// BLS signature over the attested header's signing root.
type SyncAggregate struct {
	SyncCommitteeBits      bitfield.Bitvector512 `json:"sync_committee_bits"`
	SyncCommitteeSignature BLSSignature          `json:"sync_committee_signature"`
}

// ParticipationCount is the popcount of the 512-bit participation vector.
func (a SyncAggregate) ParticipationCount() int {
	return int(a.SyncCommitteeBits.Count())
}

// ParticipantIndices returns the committee indices of every bit set.
func (a SyncAggregate) ParticipantIndices() []int {
	indices := make([]int, 0, a.ParticipationCount())
	for i := 0; i < 512; i++ {
		if a.SyncCommitteeBits.BitAt(uint64(i)) {
			indices = append(indices, i)
		}
	}
	return indices
}

// ExecutionPayloadHeader is the subset of the execution-layer block header
// committed to inside a beacon block body. The core only needs the three
// fields used to key and describe state-proof verification.
type ExecutionPayloadHeader struct {
	StateRoot   Hash32 `json:"state_root"`
	BlockNumber uint64 `json:"block_number"`
	BlockHash   Hash32 `json:"block_hash"`
}

// LightClientBootstrap is the initial data needed to start syncing: a
// trusted checkpoint header, the sync committee in effect at that header,
// and the Merkle branch proving the committee is committed to in the
// header's state.
type LightClientBootstrap struct {
	Header                     BeaconBlockHeader
	CurrentSyncCommittee       SyncCommittee
	CurrentSyncCommitteeBranch []Hash32
	ExecutionPayloadHeader     ExecutionPayloadHeader
}

// LightClientUpdate is a light-client update as sent by a beacon-API
// server: a finality update, an optimistic update, or a full sync-committee
// rotation update, modeled as one struct with optional fields (the
// optimistic case simply leaves FinalizedHeader zero and FinalityBranch
// empty; see consensus.IngestUpdate for how each case is distinguished).
type LightClientUpdate struct {
	AttestedHeader                  BeaconBlockHeader
	NextSyncCommittee               *SyncCommittee
	NextSyncCommitteeBranch         []Hash32
	FinalizedHeader                 BeaconBlockHeader
	FinalizedExecutionPayloadHeader ExecutionPayloadHeader
	FinalityBranch                  []Hash32
	SyncAggregate                   SyncAggregate
	SignatureSlot                   Slot
}

// IsFinalityUpdate reports whether this update carries a finality branch
// (as opposed to being a bare optimistic update).
func (u *LightClientUpdate) IsFinalityUpdate() bool {
	return len(u.FinalityBranch) > 0
}

// HasNextSyncCommittee reports whether this update carries a committee
// rotation proof.
func (u *LightClientUpdate) HasNextSyncCommittee() bool {
	return u.NextSyncCommittee != nil && len(u.NextSyncCommitteeBranch) > 0
}
