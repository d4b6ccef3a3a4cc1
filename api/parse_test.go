package api

import "testing"

func TestParseBootstrapDecodesHeaderAndCommittee(t *testing.T) {
	pubkey := "0x" + repeatHex("ab", 48)
	aggPubkey := "0x" + repeatHex("cd", 48)
	body := []byte(`{
		"data": {
			"header": {
				"beacon": {
					"slot": "100",
					"proposer_index": "7",
					"parent_root": "0x` + repeatHex("01", 32) + `",
					"state_root": "0x` + repeatHex("02", 32) + `",
					"body_root": "0x` + repeatHex("03", 32) + `"
				},
				"execution": {
					"state_root": "0x` + repeatHex("04", 32) + `",
					"block_number": "55",
					"block_hash": "0x` + repeatHex("05", 32) + `"
				}
			},
			"current_sync_committee": {
				"pubkeys": [` + repeatQuoted(pubkey, 512) + `],
				"aggregate_pubkey": "` + aggPubkey + `"
			},
			"current_sync_committee_branch": ["0x` + repeatHex("06", 32) + `"]
		}
	}`)

	bootstrap, err := ParseBootstrap(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bootstrap.Header.Slot != 100 {
		t.Fatalf("expected slot 100, got %d", bootstrap.Header.Slot)
	}
	if bootstrap.ExecutionPayloadHeader.BlockNumber != 55 {
		t.Fatalf("expected block number 55, got %d", bootstrap.ExecutionPayloadHeader.BlockNumber)
	}
	if len(bootstrap.CurrentSyncCommittee.Pubkeys) != 512 {
		t.Fatalf("expected 512 pubkeys, got %d", len(bootstrap.CurrentSyncCommittee.Pubkeys))
	}
}

func TestParseEthGetProofDecodesHexQuantities(t *testing.T) {
	body := []byte(`{
		"address": "0x` + repeatHex("aa", 20) + `",
		"accountProof": ["0x1234"],
		"balance": "0x16345785d8a0000",
		"codeHash": "0x` + repeatHex("00", 32) + `",
		"nonce": "0x2a",
		"storageHash": "0x` + repeatHex("00", 32) + `",
		"storageProof": [{"key": "0x` + repeatHex("00", 32) + `", "value": "0x01", "proof": ["0xabcd"]}]
	}`)

	resp, err := ParseEthGetProof(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Nonce != 42 {
		t.Fatalf("expected nonce 42, got %d", resp.Nonce)
	}
	if len(resp.StorageProof) != 1 {
		t.Fatalf("expected one storage proof entry, got %d", len(resp.StorageProof))
	}
}

func repeatHex(pair string, n int) string {
	out := make([]byte, 0, len(pair)*n)
	for i := 0; i < n; i++ {
		out = append(out, pair...)
	}
	return string(out)
}

func repeatQuoted(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += `"` + s + `"`
	}
	return out
}
