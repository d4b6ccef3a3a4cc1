// Package consensus implements the sync-committee light-client state
// machine (spec.md C4): bootstrap, update ingestion, period rotation, and
// the invariants the verified state must hold after every accepted
// transition.
package consensus

import (
	"github.com/ethlc/verify/config"
	"github.com/ethlc/verify/types"
)

// Counters tracks rejected-update observability by error category, per the
// "silently accumulated in counters" requirement — rejections never change
// V, but callers running a light client want to know how often peers are
// sending bad data.
type Counters struct {
	RejectedParse  uint64
	RejectedCrypto uint64
	RejectedState  uint64
	RejectedPolicy uint64
}

func (c *Counters) record(err error) {
	verr, ok := err.(*types.VerificationError)
	if !ok {
		return
	}
	switch verr.Category {
	case types.CategoryParse:
		c.RejectedParse++
	case types.CategoryCrypto:
		c.RejectedCrypto++
	case types.CategoryState:
		c.RejectedState++
	case types.CategoryPolicy:
		c.RejectedPolicy++
	}
}

// State is the verifier's single mutable record — V in spec.md section 3.
// It is created by Bootstrap and mutated only by IngestUpdate; all other
// access is read-only.
type State struct {
	FinalizedHeader         types.BeaconBlockHeader
	CurrentSyncCommittee    types.SyncCommittee
	NextSyncCommittee       *types.SyncCommittee
	OptimisticHeader        types.BeaconBlockHeader
	OptimisticParticipation int
	LatestExecution         types.ExecutionPayloadHeader
	GenesisValidatorsRoot   types.Hash32

	// CurrentSlotEstimate is a monotonically non-decreasing bound used only
	// to reject updates signed implausibly far in the future; it is not a
	// source of truth for the chain's actual head.
	CurrentSlotEstimate types.Slot

	Schedule config.ForkSchedule
	Counters Counters

	// SlotTolerance bounds how far signature_slot may exceed
	// CurrentSlotEstimate before an update is rejected outright.
	SlotTolerance types.Slot
}

// Snapshot is a read-only copy of the fields external readers need; it is
// never aliased to State's internal storage.
type Snapshot struct {
	FinalizedHeader         types.BeaconBlockHeader
	OptimisticHeader        types.BeaconBlockHeader
	OptimisticParticipation int
	LatestExecution         types.ExecutionPayloadHeader
	HasNextSyncCommittee    bool
}

// View returns a read-only snapshot of the current state.
func (s *State) View() Snapshot {
	return Snapshot{
		FinalizedHeader:         s.FinalizedHeader,
		OptimisticHeader:        s.OptimisticHeader,
		OptimisticParticipation: s.OptimisticParticipation,
		LatestExecution:         s.LatestExecution,
		HasNextSyncCommittee:    s.NextSyncCommittee != nil,
	}
}

// UpdateResult summarizes the effect of a single IngestUpdate call.
type UpdateResult struct {
	Verified       bool
	Advanced       bool
	FinalizedSlot  types.Slot
	OptimisticSlot types.Slot
	Participation  int
	Execution      types.ExecutionPayloadHeader
}

func maybeAdvanceCurrentSlotEstimate(s *State, signatureSlot types.Slot) {
	if signatureSlot > s.CurrentSlotEstimate {
		s.CurrentSlotEstimate = signatureSlot
	}
}
