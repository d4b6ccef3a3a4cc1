// Package config carries the compile-time constants the verification core
// treats as part of the Ethereum specification: committee sizing, domain
// tags, and the fork-version / generalized-index schedule that changes
// across hard forks.
//
// None of this is configurable at runtime in the sense of a config file —
// per the source design notes the only legitimate polymorphism is across
// fork versions, modeled here as a small table looked up by slot.
package config

// SyncCommitteeSize is the fixed size of an Ethereum sync committee.
const SyncCommitteeSize = 512

// SlotsPerEpoch is the number of slots in one epoch.
const SlotsPerEpoch = 32

// EpochsPerSyncCommitteePeriod is the number of epochs a sync committee serves.
const EpochsPerSyncCommitteePeriod = 256

// SlotsPerSyncCommitteePeriod is EpochsPerSyncCommitteePeriod * SlotsPerEpoch.
const SlotsPerSyncCommitteePeriod = EpochsPerSyncCommitteePeriod * SlotsPerEpoch

// MinSyncCommitteeParticipants is the 2/3 supermajority threshold over 512
// members: ceil(512*2/3) = 342.
const MinSyncCommitteeParticipants = (SyncCommitteeSize*2 + 2) / 3

// DefaultSlotTolerance bounds how far signature_slot may lead the caller's
// current-slot estimate before an update is rejected as outside the
// anti-replay window. ~64 slots is ~12.8 minutes at 12s/slot.
const DefaultSlotTolerance = 64

// DomainSyncCommittee is the domain type used for sync-committee signatures.
var DomainSyncCommittee = [4]byte{0x07, 0x00, 0x00, 0x00}

// Electra generalized indices for the beacon state Merkle tree, per
// spec.md section 4.1. These are fork parameters, not universal constants —
// see ForkSchedule below.
const (
	FinalizedRootGindexElectra        = 169
	FinalizedRootDepthElectra         = 7
	NextSyncCommitteeGindexElectra    = 87
	NextSyncCommitteeDepthElectra     = 6
	CurrentSyncCommitteeGindexElectra = 86
	CurrentSyncCommitteeDepthElectra  = 6
)

// GindexSet names the generalized indices and branch depths in effect for a
// given fork. A fork table maps slot ranges to a GindexSet exactly as the
// design notes require ("a small table ... looked up at the start of each
// update; avoid per-call indirection otherwise").
type GindexSet struct {
	FinalizedRootGindex        uint64
	FinalizedRootDepth         int
	NextSyncCommitteeGindex    uint64
	NextSyncCommitteeDepth     int
	CurrentSyncCommitteeGindex uint64
	CurrentSyncCommitteeDepth  int
}

// ElectraGindices is the generalized-index set currently in effect on
// mainnet (Electra and later, until the next beacon-state shape change).
var ElectraGindices = GindexSet{
	FinalizedRootGindex:        FinalizedRootGindexElectra,
	FinalizedRootDepth:         FinalizedRootDepthElectra,
	NextSyncCommitteeGindex:    NextSyncCommitteeGindexElectra,
	NextSyncCommitteeDepth:     NextSyncCommitteeDepthElectra,
	CurrentSyncCommitteeGindex: CurrentSyncCommitteeGindexElectra,
	CurrentSyncCommitteeDepth:  CurrentSyncCommitteeDepthElectra,
}

// ForkVersion identifies one fork's 4-byte signature domain version and the
// first epoch at which it activates.
type ForkVersion struct {
	Name     string
	Epoch    uint64
	Version  [4]byte
	Gindices GindexSet
}

// ForkSchedule maps a chain's forks to their activation epoch, version bytes
// and generalized-index set, ordered oldest-first. Callers select a chain's
// schedule (mainnet below, or a custom one for testnets/devnets) and look it
// up by slot with VersionAt / GindicesAt.
type ForkSchedule []ForkVersion

// MainnetForkSchedule is the canonical Ethereum mainnet fork schedule up to
// and including Electra. Later forks that don't change the sync-committee
// signing domain or the beacon-state shape can be appended without touching
// calling code.
var MainnetForkSchedule = ForkSchedule{
	{Name: "genesis", Epoch: 0, Version: [4]byte{0x00, 0x00, 0x00, 0x00}, Gindices: ElectraGindices},
	{Name: "altair", Epoch: 74240, Version: [4]byte{0x01, 0x00, 0x00, 0x00}, Gindices: ElectraGindices},
	{Name: "bellatrix", Epoch: 144896, Version: [4]byte{0x02, 0x00, 0x00, 0x00}, Gindices: ElectraGindices},
	{Name: "capella", Epoch: 194048, Version: [4]byte{0x03, 0x00, 0x00, 0x00}, Gindices: ElectraGindices},
	{Name: "deneb", Epoch: 269568, Version: [4]byte{0x04, 0x00, 0x00, 0x00}, Gindices: ElectraGindices},
	{Name: "electra", Epoch: 364032, Version: [4]byte{0x05, 0x00, 0x00, 0x00}, Gindices: ElectraGindices},
}

// ErrUnsupportedFork is returned when a slot falls before the schedule's
// earliest fork or the schedule is empty.
var ErrUnsupportedFork = errUnsupportedFork{}

type errUnsupportedFork struct{}

func (errUnsupportedFork) Error() string { return "slot falls outside the configured fork schedule" }

func (f ForkSchedule) epochForSlot(slot uint64) uint64 {
	return slot / SlotsPerEpoch
}

// ForkAt returns the ForkVersion active at the given slot, per the fork
// whose activation epoch is the greatest one not exceeding the slot's epoch.
func (f ForkSchedule) ForkAt(slot uint64) (ForkVersion, error) {
	if len(f) == 0 {
		return ForkVersion{}, ErrUnsupportedFork
	}
	epoch := f.epochForSlot(slot)
	best := -1
	for i, fv := range f {
		if fv.Epoch <= epoch {
			best = i
		}
	}
	if best < 0 {
		return ForkVersion{}, ErrUnsupportedFork
	}
	return f[best], nil
}

// VersionAt returns the 4-byte fork version active at the given slot.
func (f ForkSchedule) VersionAt(slot uint64) ([4]byte, error) {
	fv, err := f.ForkAt(slot)
	if err != nil {
		return [4]byte{}, err
	}
	return fv.Version, nil
}

// GindicesAt returns the generalized-index set active at the given slot.
func (f ForkSchedule) GindicesAt(slot uint64) (GindexSet, error) {
	fv, err := f.ForkAt(slot)
	if err != nil {
		return GindexSet{}, err
	}
	return fv.Gindices, nil
}

// Period returns the sync-committee period a slot belongs to.
func Period(slot uint64) uint64 {
	return slot / SlotsPerSyncCommitteePeriod
}
