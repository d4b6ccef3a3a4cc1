package api

import (
	"encoding/json"

	"github.com/ethlc/verify/types"
)

func wrapJSONErr(context string, err error) error {
	return types.ErrInvalidSlotOrdering.Withf("%s: %v", context, err)
}

type bootstrapEnvelope struct {
	Data struct {
		Header                     wireLightClientHeader `json:"header"`
		CurrentSyncCommittee       wireSyncCommittee     `json:"current_sync_committee"`
		CurrentSyncCommitteeBranch []types.Hash32        `json:"current_sync_committee_branch"`
	} `json:"data"`
}

// ParseBootstrap decodes a beacon-API
// /eth/v1/beacon/light_client/bootstrap/{block_root} response body.
func ParseBootstrap(body []byte) (*types.LightClientBootstrap, error) {
	var env bootstrapEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, wrapJSONErr("bootstrap", err)
	}

	committee, err := env.Data.CurrentSyncCommittee.toCommittee()
	if err != nil {
		return nil, err
	}

	return &types.LightClientBootstrap{
		Header:                     env.Data.Header.Beacon.toHeader(),
		CurrentSyncCommittee:       committee,
		CurrentSyncCommitteeBranch: env.Data.CurrentSyncCommitteeBranch,
		ExecutionPayloadHeader:     env.Data.Header.Execution.toExecution(),
	}, nil
}

type updateEnvelope struct {
	Data struct {
		AttestedHeader          wireLightClientHeader  `json:"attested_header"`
		NextSyncCommittee       *wireSyncCommittee     `json:"next_sync_committee"`
		NextSyncCommitteeBranch []types.Hash32         `json:"next_sync_committee_branch"`
		FinalizedHeader         *wireLightClientHeader `json:"finalized_header"`
		FinalityBranch          []types.Hash32         `json:"finality_branch"`
		SyncAggregate           wireSyncAggregate      `json:"sync_aggregate"`
		SignatureSlot           types.Uint64String     `json:"signature_slot"`
	} `json:"data"`
}

// ParseUpdate decodes any of the three beacon-API light-client update
// payloads — optimistic_update, finality_update, or a full sync-committee
// update — which differ only in which optional fields are present.
func ParseUpdate(body []byte) (*types.LightClientUpdate, error) {
	var env updateEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, wrapJSONErr("update", err)
	}

	aggregate, err := env.Data.SyncAggregate.toAggregate()
	if err != nil {
		return nil, err
	}

	update := &types.LightClientUpdate{
		AttestedHeader: env.Data.AttestedHeader.Beacon.toHeader(),
		SyncAggregate:  aggregate,
		SignatureSlot:  types.Slot(env.Data.SignatureSlot),
	}

	if env.Data.FinalizedHeader != nil {
		update.FinalizedHeader = env.Data.FinalizedHeader.Beacon.toHeader()
		update.FinalizedExecutionPayloadHeader = env.Data.FinalizedHeader.Execution.toExecution()
		update.FinalityBranch = env.Data.FinalityBranch
	}

	if env.Data.NextSyncCommittee != nil {
		committee, err := env.Data.NextSyncCommittee.toCommittee()
		if err != nil {
			return nil, err
		}
		update.NextSyncCommittee = &committee
		update.NextSyncCommitteeBranch = env.Data.NextSyncCommitteeBranch
	}

	return update, nil
}
