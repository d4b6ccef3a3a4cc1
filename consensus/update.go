package consensus

import (
	"github.com/ethlc/verify/bls"
	"github.com/ethlc/verify/config"
	"github.com/ethlc/verify/domain"
	"github.com/ethlc/verify/ssz"
	"github.com/ethlc/verify/types"
)

// IngestUpdate processes one light-client update against the current
// state. Processing runs six ordered checks; failure at any stage rejects
// the update atomically and leaves the verified state unchanged (only
// s.Counters records the rejection), per spec.md section 4.4.
func (s *State) IngestUpdate(update *types.LightClientUpdate, currentSlotHint types.Slot) (UpdateResult, error) {
	prevSlotEstimate := s.CurrentSlotEstimate
	maybeAdvanceCurrentSlotEstimate(s, currentSlotHint)

	result, err := s.ingestUpdateInner(update, currentSlotHint)
	if err != nil {
		s.CurrentSlotEstimate = prevSlotEstimate
		s.Counters.record(err)
		return UpdateResult{}, err
	}
	return result, nil
}

func (s *State) ingestUpdateInner(update *types.LightClientUpdate, currentSlotHint types.Slot) (UpdateResult, error) {
	// Edge case: an optimistic update repeating the current optimistic
	// header is a no-op, accepted without running the crypto checks.
	if !update.IsFinalityUpdate() && !update.HasNextSyncCommittee() &&
		update.AttestedHeader == s.OptimisticHeader {
		return UpdateResult{
			Verified:       true,
			Advanced:       false,
			FinalizedSlot:  s.FinalizedHeader.Slot,
			OptimisticSlot: s.OptimisticHeader.Slot,
			Participation:  s.OptimisticParticipation,
			Execution:      s.LatestExecution,
		}, nil
	}

	// 1. Freshness & sanity.
	if update.IsFinalityUpdate() {
		if !(update.SignatureSlot > update.AttestedHeader.Slot && update.AttestedHeader.Slot >= update.FinalizedHeader.Slot) {
			return UpdateResult{}, types.ErrInvalidSlotOrdering.Withf(
				"finality update: signature_slot=%d attested=%d finalized=%d",
				update.SignatureSlot, update.AttestedHeader.Slot, update.FinalizedHeader.Slot)
		}
	} else if update.SignatureSlot <= update.AttestedHeader.Slot {
		return UpdateResult{}, types.ErrInvalidSlotOrdering.Withf(
			"optimistic update: signature_slot=%d must exceed attested_slot=%d",
			update.SignatureSlot, update.AttestedHeader.Slot)
	}

	participation := update.SyncAggregate.ParticipationCount()
	better := update.AttestedHeader.Slot > s.OptimisticHeader.Slot ||
		(update.AttestedHeader.Slot == s.OptimisticHeader.Slot && participation > s.OptimisticParticipation)
	if !better {
		return UpdateResult{}, types.ErrStaleUpdate.Withf(
			"attested_slot=%d not newer than optimistic_slot=%d", update.AttestedHeader.Slot, s.OptimisticHeader.Slot)
	}

	if update.SignatureSlot > s.CurrentSlotEstimate+s.SlotTolerance {
		return UpdateResult{}, types.ErrSlotBeyondTolerance.Withf(
			"signature_slot=%d exceeds estimate=%d + tolerance=%d", update.SignatureSlot, s.CurrentSlotEstimate, s.SlotTolerance)
	}

	// 2. Participation.
	if participation < config.MinSyncCommitteeParticipants {
		return UpdateResult{}, types.ErrInsufficientParticipation.Withf("%d/%d", participation, config.SyncCommitteeSize)
	}

	// 3. Committee selection.
	signaturePeriod := config.Period(uint64(update.SignatureSlot))
	finalizedPeriod := config.Period(uint64(s.FinalizedHeader.Slot))

	var committee *types.SyncCommittee
	switch {
	case signaturePeriod == finalizedPeriod:
		committee = &s.CurrentSyncCommittee
	case signaturePeriod == finalizedPeriod+1:
		if s.NextSyncCommittee == nil {
			return UpdateResult{}, types.ErrNoNextSyncCommittee
		}
		committee = s.NextSyncCommittee
	default:
		return UpdateResult{}, types.ErrNoNextSyncCommittee.Withf(
			"signature period %d is not current (%d) or next period", signaturePeriod, finalizedPeriod)
	}

	gindices, err := s.Schedule.GindicesAt(uint64(update.SignatureSlot))
	if err != nil {
		return UpdateResult{}, types.ErrUnsupportedFork.Withf("signature_slot %d: %v", update.SignatureSlot, err)
	}
	forkVersion, err := s.Schedule.VersionAt(uint64(update.SignatureSlot))
	if err != nil {
		return UpdateResult{}, types.ErrUnsupportedFork.Withf("signature_slot %d: %v", update.SignatureSlot, err)
	}

	// 4. Signature verification.
	participants := update.SyncAggregate.ParticipantIndices()
	participantKeys := make([]*bls.PublicKey, 0, len(participants))
	for _, idx := range participants {
		if idx >= len(committee.Pubkeys) {
			return UpdateResult{}, types.ErrInvalidSlotOrdering.Withf("participant index %d out of range", idx)
		}
		pub, err := bls.ParsePublicKey(committee.Pubkeys[idx])
		if err != nil {
			return UpdateResult{}, err
		}
		participantKeys = append(participantKeys, pub)
	}
	aggregatePub, err := bls.AggregatePublicKeys(participantKeys)
	if err != nil {
		return UpdateResult{}, err
	}

	headerRoot := ssz.HashTreeRootHeader(update.AttestedHeader)
	signingDomain := domain.ComputeDomain(config.DomainSyncCommittee, forkVersion, s.GenesisValidatorsRoot)
	signingRoot := domain.ComputeSigningRoot(headerRoot, signingDomain)

	sig, err := bls.ParseSignature(update.SyncAggregate.SyncCommitteeSignature)
	if err != nil {
		return UpdateResult{}, err
	}
	if !bls.VerifyAggregate(aggregatePub, signingRoot[:], sig) {
		return UpdateResult{}, types.ErrSignatureInvalid
	}

	// 5. Finality branch.
	if update.IsFinalityUpdate() {
		finalizedRoot := ssz.HashTreeRootHeader(update.FinalizedHeader)
		if !ssz.VerifyMerkleBranch(
			finalizedRoot,
			update.FinalityBranch,
			gindices.FinalizedRootDepth,
			gindices.FinalizedRootGindex,
			update.AttestedHeader.StateRoot,
		) {
			return UpdateResult{}, types.ErrFinalityBranchInvalid
		}
	}

	// 6. Committee rotation branch.
	if update.HasNextSyncCommittee() {
		if err := update.NextSyncCommittee.Validate(); err != nil {
			return UpdateResult{}, types.ErrInvalidSlotOrdering.Withf("next sync committee: %v", err)
		}
		nextRoot, err := ssz.HashTreeRootSyncCommittee(update.NextSyncCommittee)
		if err != nil {
			return UpdateResult{}, err
		}
		if !ssz.VerifyMerkleBranch(
			nextRoot,
			update.NextSyncCommitteeBranch,
			gindices.NextSyncCommitteeDepth,
			gindices.NextSyncCommitteeGindex,
			update.AttestedHeader.StateRoot,
		) {
			return UpdateResult{}, types.ErrRotationBranchInvalid
		}
		if err := verifyCommitteeAggregate(update.NextSyncCommittee); err != nil {
			return UpdateResult{}, err
		}
	}

	// All checks passed: apply atomically.
	s.OptimisticHeader = update.AttestedHeader
	s.OptimisticParticipation = participation
	advanced := true

	if update.IsFinalityUpdate() && update.FinalizedHeader.Slot > s.FinalizedHeader.Slot {
		s.FinalizedHeader = update.FinalizedHeader
		s.LatestExecution = update.FinalizedExecutionPayloadHeader
	}

	if update.HasNextSyncCommittee() {
		committeeChanged := s.NextSyncCommittee == nil || hashCommittee(s.NextSyncCommittee) != hashCommittee(update.NextSyncCommittee)
		if committeeChanged {
			next := *update.NextSyncCommittee
			s.NextSyncCommittee = &next
		}
	}

	newFinalizedPeriod := config.Period(uint64(s.FinalizedHeader.Slot))
	if newFinalizedPeriod != finalizedPeriod && s.NextSyncCommittee != nil {
		s.CurrentSyncCommittee = *s.NextSyncCommittee
		s.NextSyncCommittee = nil
	}

	return UpdateResult{
		Verified:       true,
		Advanced:       advanced,
		FinalizedSlot:  s.FinalizedHeader.Slot,
		OptimisticSlot: s.OptimisticHeader.Slot,
		Participation:  participation,
		Execution:      s.LatestExecution,
	}, nil
}

func hashCommittee(c *types.SyncCommittee) types.Hash32 {
	root, err := ssz.HashTreeRootSyncCommittee(c)
	if err != nil {
		return types.Hash32{}
	}
	return root
}
