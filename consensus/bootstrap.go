package consensus

import (
	"github.com/ethlc/verify/bls"
	"github.com/ethlc/verify/config"
	"github.com/ethlc/verify/ssz"
	"github.com/ethlc/verify/types"
)

// Bootstrap verifies a LightClientBootstrap against the fork schedule and
// initializes a fresh State (the Uninit -> Bootstrapped transition).
func Bootstrap(bootstrap *types.LightClientBootstrap, genesisValidatorsRoot types.Hash32, schedule config.ForkSchedule) (*State, error) {
	if err := bootstrap.CurrentSyncCommittee.Validate(); err != nil {
		return nil, types.ErrInvalidSlotOrdering.Withf("bootstrap committee: %v", err)
	}

	gindices, err := schedule.GindicesAt(uint64(bootstrap.Header.Slot))
	if err != nil {
		return nil, types.ErrUnsupportedFork.Withf("bootstrap header slot %d: %v", bootstrap.Header.Slot, err)
	}

	committeeRoot, err := ssz.HashTreeRootSyncCommittee(&bootstrap.CurrentSyncCommittee)
	if err != nil {
		return nil, types.ErrInvalidSlotOrdering.Withf("%v", err)
	}
	if !ssz.VerifyMerkleBranch(
		committeeRoot,
		bootstrap.CurrentSyncCommitteeBranch,
		gindices.CurrentSyncCommitteeDepth,
		gindices.CurrentSyncCommitteeGindex,
		bootstrap.Header.StateRoot,
	) {
		return nil, types.ErrBootstrapBranchInvalid
	}

	if err := verifyCommitteeAggregate(&bootstrap.CurrentSyncCommittee); err != nil {
		return nil, err
	}

	return &State{
		FinalizedHeader:         bootstrap.Header,
		CurrentSyncCommittee:    bootstrap.CurrentSyncCommittee,
		NextSyncCommittee:       nil,
		OptimisticHeader:        bootstrap.Header,
		OptimisticParticipation: 0,
		LatestExecution:         bootstrap.ExecutionPayloadHeader,
		GenesisValidatorsRoot:   genesisValidatorsRoot,
		CurrentSlotEstimate:     bootstrap.Header.Slot,
		Schedule:                schedule,
		SlotTolerance:           config.DefaultSlotTolerance,
	}, nil
}

// verifyCommitteeAggregate recomputes a committee's aggregate public key
// from its members and checks it against the stored value — invariant I5,
// never trusted from input.
func verifyCommitteeAggregate(committee *types.SyncCommittee) error {
	keys := make([]*bls.PublicKey, len(committee.Pubkeys))
	for i, raw := range committee.Pubkeys {
		pub, err := bls.ParsePublicKey(raw)
		if err != nil {
			return err
		}
		keys[i] = pub
	}
	agg, err := bls.AggregatePublicKeys(keys)
	if err != nil {
		return err
	}
	expected, err := bls.ParsePublicKey(committee.AggregatePubkey)
	if err != nil {
		return err
	}
	if !agg.Equal(expected) {
		return types.ErrAggregatePubkeyMismatch
	}
	return nil
}
