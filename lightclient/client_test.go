package lightclient

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ethlc/verify/rlpx"
	"github.com/ethlc/verify/types"
)

func TestVerifyAccountProofAtWiresThroughTrie(t *testing.T) {
	addressHex := "0xaabbccddaabbccddaabbccddaabbccddaabbccdd"
	address, err := types.ParseAddress20(addressHex)
	if err != nil {
		t.Fatalf("bad fixture address: %v", err)
	}
	key := crypto.Keccak256(address[:])

	nibbles := make([]byte, 0, 64)
	for _, b := range key {
		nibbles = append(nibbles, b>>4, b&0x0f)
	}
	compact := make([]byte, 0, 33)
	compact = append(compact, 0x20)
	for i := 0; i < len(nibbles); i += 2 {
		compact = append(compact, nibbles[i]<<4|nibbles[i+1])
	}
	accountRLP := rlpx.EncodeList([][]byte{
		rlpx.EncodeUint(7),
		rlpx.EncodeBytes([]byte{0x01}),
		rlpx.EncodeBytes(types.EmptyStorageRoot[:]),
		rlpx.EncodeBytes(types.EmptyCodeHash[:]),
	})
	leaf := rlpx.EncodeList([][]byte{rlpx.EncodeBytes(compact), rlpx.EncodeBytes(accountRLP)})
	root := crypto.Keccak256Hash(leaf)

	record, err := VerifyAccountProofAt([32]byte(root), addressHex, [][]byte{leaf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Nonce != 7 {
		t.Fatalf("expected nonce 7, got %d", record.Nonce)
	}
	if record.IsContract {
		t.Fatalf("expected non-contract account")
	}
}

func TestVerifyAccountProofAtRejectsBadAddress(t *testing.T) {
	_, err := VerifyAccountProofAt([32]byte{}, "not-hex", nil)
	if err == nil {
		t.Fatalf("expected error for malformed address")
	}
}
