package trie

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/ethlc/verify/rlpx"
	"github.com/ethlc/verify/types"
)

// VerifyAccountProof walks an eth_getProof accountProof against a trusted
// state root and returns the authenticated account record, or the sentinel
// absent-account record if the proof cryptographically demonstrates the
// address holds no account.
func VerifyAccountProof(stateRoot types.Hash32, address types.Address20, proof [][]byte) (types.AccountRecord, error) {
	key := crypto.Keccak256(address[:])
	nibbles := bytesToNibbles(key)

	result, err := walk(stateRoot, nibbles, proof)
	if err != nil {
		return types.AccountRecord{}, err
	}
	if !result.Found {
		return types.AbsentAccount(stateRoot, uint32(len(proof))), nil
	}

	record, err := decodeAccountFromRLP(result.Value)
	if err != nil {
		return types.AccountRecord{}, err
	}
	record.ProofNodesVerified = uint32(len(proof))
	record.StateRoot = stateRoot
	record.IsContract = record.CodeHash != types.EmptyCodeHash
	return record, nil
}

// VerifyStorageProof walks an eth_getProof storageProof entry against an
// account's trusted storage root and returns the authenticated 32-byte
// big-endian slot value (zero if the proof demonstrates the slot is unset).
func VerifyStorageProof(storageRoot types.Hash32, slotKey types.Hash32, proof [][]byte) ([32]byte, error) {
	key := crypto.Keccak256(slotKey[:])
	nibbles := bytesToNibbles(key)

	result, err := walk(storageRoot, nibbles, proof)
	if err != nil {
		return [32]byte{}, err
	}
	if !result.Found {
		return [32]byte{}, nil
	}

	item, err := rlpx.Decode(result.Value)
	if err != nil {
		return [32]byte{}, types.ErrAccountRlpInvalid.Withf("storage value: %v", err)
	}
	if item.IsList() {
		return [32]byte{}, types.ErrAccountRlpInvalid.Withf("storage value must be a string")
	}
	if len(item.Data) > 32 {
		return [32]byte{}, types.ErrAccountRlpInvalid.Withf("storage value exceeds 32 bytes")
	}
	var out [32]byte
	copy(out[32-len(item.Data):], item.Data)
	return out, nil
}

// decodeAccountFromRLP decodes the canonical RLP account body:
// [nonce, balance, storageRoot, codeHash].
func decodeAccountFromRLP(raw []byte) (types.AccountRecord, error) {
	item, err := rlpx.Decode(raw)
	if err != nil {
		return types.AccountRecord{}, types.ErrAccountRlpInvalid.Withf("%v", err)
	}
	if !item.IsList() || len(item.List) != 4 {
		return types.AccountRecord{}, types.ErrAccountRlpInvalid.Withf("expected 4-element account list")
	}

	nonce, err := decodeUint(item.List[0].Data)
	if err != nil {
		return types.AccountRecord{}, types.ErrAccountRlpInvalid.Withf("nonce: %v", err)
	}

	balanceBytes := item.List[1].Data
	if len(balanceBytes) > 32 {
		return types.AccountRecord{}, types.ErrAccountRlpInvalid.Withf("balance exceeds 32 bytes")
	}
	balance := new(uint256.Int).SetBytes(balanceBytes)

	storageRootBytes := item.List[2].Data
	var storageRoot types.Hash32
	switch {
	case len(storageRootBytes) == 0:
		storageRoot = types.EmptyStorageRoot
	case len(storageRootBytes) == 32:
		copy(storageRoot[:], storageRootBytes)
	default:
		return types.AccountRecord{}, types.ErrAccountRlpInvalid.Withf("storage root must be 32 bytes, got %d", len(storageRootBytes))
	}

	codeHashBytes := item.List[3].Data
	var codeHash types.Hash32
	switch {
	case len(codeHashBytes) == 0:
		codeHash = types.EmptyCodeHash
	case len(codeHashBytes) == 32:
		copy(codeHash[:], codeHashBytes)
	default:
		return types.AccountRecord{}, types.ErrAccountRlpInvalid.Withf("code hash must be 32 bytes, got %d", len(codeHashBytes))
	}

	return types.AccountRecord{
		Nonce:       nonce,
		Balance:     balance,
		StorageRoot: storageRoot,
		CodeHash:    codeHash,
	}, nil
}

func decodeUint(b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, types.ErrAccountRlpInvalid.Withf("integer exceeds 8 bytes")
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}
