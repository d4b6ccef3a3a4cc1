// Package api parses beacon-API light-client JSON payloads and
// eth_getProof JSON-RPC responses into the typed data model of package
// types (spec.md C2/C5 wire formats). Both APIs carry byte fields as
// 0x-prefixed hex; the beacon API carries integers as JSON decimal strings,
// while eth_getProof carries them as 0x-prefixed hex quantities.
package api

import (
	bitfield "github.com/prysmaticlabs/go-bitfield"

	"github.com/ethlc/verify/types"
)

type wireBeaconHeader struct {
	Slot          types.Uint64String `json:"slot"`
	ProposerIndex types.Uint64String `json:"proposer_index"`
	ParentRoot    types.Hash32       `json:"parent_root"`
	StateRoot     types.Hash32       `json:"state_root"`
	BodyRoot      types.Hash32       `json:"body_root"`
}

func (w wireBeaconHeader) toHeader() types.BeaconBlockHeader {
	return types.BeaconBlockHeader{
		Slot:          types.Slot(w.Slot),
		ProposerIndex: uint64(w.ProposerIndex),
		ParentRoot:    w.ParentRoot,
		StateRoot:     w.StateRoot,
		BodyRoot:      w.BodyRoot,
	}
}

type wireExecutionPayloadHeader struct {
	StateRoot   types.Hash32       `json:"state_root"`
	BlockNumber types.Uint64String `json:"block_number"`
	BlockHash   types.Hash32       `json:"block_hash"`
}

func (w wireExecutionPayloadHeader) toExecution() types.ExecutionPayloadHeader {
	return types.ExecutionPayloadHeader{
		StateRoot:   w.StateRoot,
		BlockNumber: uint64(w.BlockNumber),
		BlockHash:   w.BlockHash,
	}
}

// wireLightClientHeader mirrors the real protocol's LightClientHeader:
// a beacon block header paired with the execution payload header committed
// inside its body. execution_branch has no field here, so it is ignored
// when present and never verified — spec.md treats that inclusion proof as implicit
// once the beacon header itself is authenticated (section 3).
type wireLightClientHeader struct {
	Beacon    wireBeaconHeader           `json:"beacon"`
	Execution wireExecutionPayloadHeader `json:"execution"`
}

type wireSyncCommittee struct {
	Pubkeys         []types.HexBytes `json:"pubkeys"`
	AggregatePubkey types.HexBytes   `json:"aggregate_pubkey"`
}

func (w wireSyncCommittee) toCommittee() (types.SyncCommittee, error) {
	var out types.SyncCommittee
	out.Pubkeys = make([]types.BLSPubKey, len(w.Pubkeys))
	for i, raw := range w.Pubkeys {
		if len(raw) != 48 {
			return out, types.ErrInvalidSlotOrdering.Withf("pubkey %d: expected 48 bytes, got %d", i, len(raw))
		}
		copy(out.Pubkeys[i][:], raw)
	}
	if len(w.AggregatePubkey) != 48 {
		return out, types.ErrInvalidSlotOrdering.Withf("aggregate_pubkey: expected 48 bytes, got %d", len(w.AggregatePubkey))
	}
	copy(out.AggregatePubkey[:], w.AggregatePubkey)
	return out, nil
}

type wireSyncAggregate struct {
	SyncCommitteeBits      types.HexBytes `json:"sync_committee_bits"`
	SyncCommitteeSignature types.HexBytes `json:"sync_committee_signature"`
}

func (w wireSyncAggregate) toAggregate() (types.SyncAggregate, error) {
	var out types.SyncAggregate
	if len(w.SyncCommitteeBits) != 64 {
		return out, types.ErrInvalidSlotOrdering.Withf("sync_committee_bits: expected 64 bytes, got %d", len(w.SyncCommitteeBits))
	}
	out.SyncCommitteeBits = bitfield.Bitvector512(append([]byte(nil), w.SyncCommitteeBits...))
	if len(w.SyncCommitteeSignature) != 96 {
		return out, types.ErrInvalidSlotOrdering.Withf("sync_committee_signature: expected 96 bytes, got %d", len(w.SyncCommitteeSignature))
	}
	copy(out.SyncCommitteeSignature[:], w.SyncCommitteeSignature)
	return out, nil
}
