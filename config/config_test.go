package config

import "testing"

func TestForkAtSelectsLatestActivatedFork(t *testing.T) {
	electraSlot := uint64(364032+10) * SlotsPerEpoch
	fv, err := MainnetForkSchedule.ForkAt(electraSlot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fv.Name != "electra" {
		t.Fatalf("expected electra, got %s", fv.Name)
	}
}

func TestForkAtGenesis(t *testing.T) {
	fv, err := MainnetForkSchedule.ForkAt(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fv.Name != "genesis" {
		t.Fatalf("expected genesis, got %s", fv.Name)
	}
}

func TestForkAtEmptySchedule(t *testing.T) {
	var empty ForkSchedule
	if _, err := empty.ForkAt(0); err != ErrUnsupportedFork {
		t.Fatalf("expected ErrUnsupportedFork, got %v", err)
	}
}

func TestPeriod(t *testing.T) {
	if got := Period(0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := Period(SlotsPerSyncCommitteePeriod); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := Period(SlotsPerSyncCommitteePeriod + 1); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestMinSyncCommitteeParticipants(t *testing.T) {
	if MinSyncCommitteeParticipants != 342 {
		t.Fatalf("expected 342, got %d", MinSyncCommitteeParticipants)
	}
}
