package ssz

import (
	"testing"

	"github.com/ethlc/verify/types"
)

func TestVerifyMerkleBranchSingleLevel(t *testing.T) {
	leaf := types.Hash32{0x01}
	sibling := types.Hash32{0x02}
	root := types.Hash32(sha256Pair([32]byte(leaf), [32]byte(sibling)))

	if !VerifyMerkleBranch(leaf, []types.Hash32{sibling}, 1, 0, root) {
		t.Fatalf("expected branch with gindex bit 0 to verify as left child")
	}
	if VerifyMerkleBranch(leaf, []types.Hash32{sibling}, 1, 1, root) {
		t.Fatalf("expected branch with wrong gindex bit to fail")
	}
}

func TestVerifyMerkleBranchWrongLengthFails(t *testing.T) {
	leaf := types.Hash32{0x01}
	if VerifyMerkleBranch(leaf, []types.Hash32{}, 1, 0, types.Hash32{}) {
		t.Fatalf("expected length mismatch to fail")
	}
}

func TestHashTreeRootHeaderDeterministic(t *testing.T) {
	h := types.BeaconBlockHeader{
		Slot:          100,
		ProposerIndex: 7,
		ParentRoot:    types.Hash32{0xaa},
		StateRoot:     types.Hash32{0xbb},
		BodyRoot:      types.Hash32{0xcc},
	}
	r1 := HashTreeRootHeader(h)
	r2 := HashTreeRootHeader(h)
	if r1 != r2 {
		t.Fatalf("hash tree root must be deterministic")
	}

	h2 := h
	h2.Slot = 101
	if HashTreeRootHeader(h2) == r1 {
		t.Fatalf("different headers must not collide")
	}
}

func TestHashTreeRootSyncCommitteeRejectsWrongSize(t *testing.T) {
	c := &types.SyncCommittee{Pubkeys: make([]types.BLSPubKey, 10)}
	if _, err := HashTreeRootSyncCommittee(c); err == nil {
		t.Fatalf("expected error for undersized committee")
	}
}

func TestHashTreeRootSyncCommitteeDeterministic(t *testing.T) {
	c := &types.SyncCommittee{Pubkeys: make([]types.BLSPubKey, 512)}
	for i := range c.Pubkeys {
		c.Pubkeys[i][0] = byte(i)
	}
	r1, err := HashTreeRootSyncCommittee(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := HashTreeRootSyncCommittee(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r1 != r2 {
		t.Fatalf("hash tree root must be deterministic")
	}
}
