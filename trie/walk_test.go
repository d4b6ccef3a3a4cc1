package trie

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ethlc/verify/rlpx"
	"github.com/ethlc/verify/types"
)

func encodeLeaf(pathNibbles []byte, value []byte) []byte {
	compact := make([]byte, 0, len(pathNibbles)/2+1)
	if len(pathNibbles)%2 == 1 {
		compact = append(compact, 0x30|pathNibbles[0])
		pathNibbles = pathNibbles[1:]
	} else {
		compact = append(compact, 0x20)
	}
	for i := 0; i < len(pathNibbles); i += 2 {
		compact = append(compact, pathNibbles[i]<<4|pathNibbles[i+1])
	}
	return rlpx.EncodeList([][]byte{rlpx.EncodeBytes(compact), rlpx.EncodeBytes(value)})
}

func TestWalkSingleLeafFound(t *testing.T) {
	nibbles := []byte{0, 1, 0, 2}
	leaf := encodeLeaf(nibbles, []byte("hello"))
	root := types.Hash32(crypto.Keccak256Hash(leaf))

	result, err := walk(root, nibbles, [][]byte{leaf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Found || !bytes.Equal(result.Value, []byte("hello")) {
		t.Fatalf("expected to find value 'hello', got %+v", result)
	}
}

func TestWalkLeafPathMismatchIsAbsence(t *testing.T) {
	nibbles := []byte{0, 1, 0, 2}
	leaf := encodeLeaf(nibbles, []byte("hello"))
	root := types.Hash32(crypto.Keccak256Hash(leaf))

	otherNibbles := []byte{0, 1, 0, 3}
	result, err := walk(root, otherNibbles, [][]byte{leaf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Found {
		t.Fatalf("expected absence for mismatched path")
	}
}

func TestWalkRejectsTamperedRoot(t *testing.T) {
	nibbles := []byte{0, 1, 0, 2}
	leaf := encodeLeaf(nibbles, []byte("hello"))
	root := types.Hash32(crypto.Keccak256Hash(leaf))
	root[0] ^= 0xff

	_, err := walk(root, nibbles, [][]byte{leaf})
	if !errors.Is(err, types.ErrStateRootMismatch) {
		t.Fatalf("expected ErrStateRootMismatch, got %v", err)
	}
}

func TestVerifyAccountProofAbsentAccount(t *testing.T) {
	address := types.Address20{0x01, 0x02, 0x03}
	key := crypto.Keccak256(address[:])
	nibbles := bytesToNibbles(key)
	// Craft a leaf whose stored path does not match the account's key, so
	// the walk demonstrates cryptographic absence.
	wrongNibbles := append([]byte{}, nibbles...)
	wrongNibbles[0] ^= 0x0f
	leaf := encodeLeaf(wrongNibbles, rlpx.EncodeList([][]byte{
		rlpx.EncodeUint(0), rlpx.EncodeUint(0),
		rlpx.EncodeBytes(types.EmptyStorageRoot[:]), rlpx.EncodeBytes(types.EmptyCodeHash[:]),
	}))
	root := types.Hash32(crypto.Keccak256Hash(leaf))

	record, err := VerifyAccountProof(root, address, [][]byte{leaf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.IsContract || record.CodeHash != types.EmptyCodeHash {
		t.Fatalf("expected absent account sentinel, got %+v", record)
	}
}

func TestVerifyAccountProofFound(t *testing.T) {
	address := types.Address20{0xaa, 0xbb, 0xcc, 0xdd}
	key := crypto.Keccak256(address[:])
	nibbles := bytesToNibbles(key)

	accountRLP := rlpx.EncodeList([][]byte{
		rlpx.EncodeUint(5),
		rlpx.EncodeBytes([]byte{0x01, 0x00}),
		rlpx.EncodeBytes(types.EmptyStorageRoot[:]),
		rlpx.EncodeBytes(types.EmptyCodeHash[:]),
	})
	leaf := encodeLeaf(nibbles, accountRLP)
	root := types.Hash32(crypto.Keccak256Hash(leaf))

	record, err := VerifyAccountProof(root, address, [][]byte{leaf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Nonce != 5 {
		t.Fatalf("expected nonce 5, got %d", record.Nonce)
	}
	if record.IsContract {
		t.Fatalf("expected non-contract account")
	}
}
