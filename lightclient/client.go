// Package lightclient wires the primitives, data model, signing-domain,
// consensus, and trie packages into the four external entry points
// spec.md section 6 requires: bootstrap, update ingestion, and the two
// state-proof verification calls (against an internal or an
// explicitly-supplied root).
package lightclient

import (
	"github.com/ethlc/verify/api"
	"github.com/ethlc/verify/config"
	"github.com/ethlc/verify/consensus"
	"github.com/ethlc/verify/trie"
	"github.com/ethlc/verify/types"
)

// Client owns a single verified light-client state and exposes the four
// external operations. It performs no I/O and holds no locks: callers
// running it behind an event loop must serialize access themselves, per
// spec.md section 5.
type Client struct {
	state *consensus.State
}

// Bootstrap parses a beacon-API bootstrap response and initializes a new
// Client against the Ethereum mainnet fork schedule.
func Bootstrap(bootstrapJSON []byte, genesisValidatorsRoot [32]byte) (*Client, error) {
	return BootstrapWithSchedule(bootstrapJSON, genesisValidatorsRoot, config.MainnetForkSchedule)
}

// BootstrapWithSchedule is Bootstrap parameterized by a custom fork
// schedule, for testnets and devnets whose fork epochs or sync-committee
// tree shape differ from mainnet.
func BootstrapWithSchedule(bootstrapJSON []byte, genesisValidatorsRoot [32]byte, schedule config.ForkSchedule) (*Client, error) {
	parsed, err := api.ParseBootstrap(bootstrapJSON)
	if err != nil {
		return nil, err
	}
	state, err := consensus.Bootstrap(parsed, types.Hash32(genesisValidatorsRoot), schedule)
	if err != nil {
		return nil, err
	}
	return &Client{state: state}, nil
}

// IngestUpdate parses and applies one beacon-API light-client update
// (optimistic, finality, or sync-committee rotation) against the client's
// current state.
func (c *Client) IngestUpdate(updateJSON []byte, currentSlotHint uint64) (consensus.UpdateResult, error) {
	parsed, err := api.ParseUpdate(updateJSON)
	if err != nil {
		return consensus.UpdateResult{}, err
	}
	return c.state.IngestUpdate(parsed, types.Slot(currentSlotHint))
}

// View returns a read-only snapshot of the client's verified state.
func (c *Client) View() consensus.Snapshot {
	return c.state.View()
}

// VerifyAccountProofAt verifies an accountProof against an explicit state
// root, the race-free entry point of spec.md section 4.6.
func VerifyAccountProofAt(stateRoot [32]byte, addressHex string, proofNodes [][]byte) (types.AccountRecord, error) {
	address, err := types.ParseAddress20(addressHex)
	if err != nil {
		return types.AccountRecord{}, types.ErrInvalidSlotOrdering.Withf("address: %v", err)
	}
	return trie.VerifyAccountProof(types.Hash32(stateRoot), address, proofNodes)
}

// VerifyAccountProofAtInternalRoot verifies an accountProof against the
// client's current latest_execution.state_root. V may advance between the
// caller fetching the proof and this call running; see spec.md section 4.6
// for the race this accepts.
func (c *Client) VerifyAccountProofAtInternalRoot(addressHex string, proofNodes [][]byte) (types.AccountRecord, error) {
	return VerifyAccountProofAt(c.state.LatestExecution.StateRoot, addressHex, proofNodes)
}

// VerifyStorageProof verifies a storageProof entry against an explicit
// storage root and returns the 32-byte big-endian slot value.
func VerifyStorageProof(storageRoot [32]byte, slotHex string, proofNodes [][]byte) ([32]byte, error) {
	slotKey, err := types.ParseHash32(slotHex)
	if err != nil {
		return [32]byte{}, types.ErrInvalidSlotOrdering.Withf("slot: %v", err)
	}
	return trie.VerifyStorageProof(types.Hash32(storageRoot), slotKey, proofNodes)
}
